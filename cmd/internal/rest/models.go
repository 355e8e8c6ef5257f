package rest

import "time"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createUserRequest struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	IsBlocked  *bool   `json:"is_blocked"`
	IsAdmin    *bool   `json:"is_admin"`
	AddressID  *string `json:"address_id"`
}

// updateUserRequest is a partial update: nil fields are left untouched.
type updateUserRequest struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Name       *string `json:"name"`
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	IsBlocked  *bool   `json:"is_blocked"`
	IsAdmin    *bool   `json:"is_admin"`
	AddressID  *string `json:"address_id"`
}

type userResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	FirstName    *string    `json:"first_name,omitempty"`
	MiddleName   *string    `json:"middle_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	IsBlocked    bool       `json:"is_blocked"`
	IsAdmin      bool       `json:"is_admin"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
	AddressID    *string    `json:"address_id,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	ModifiedAt   *time.Time `json:"modified_at,omitempty"`
}

type createAddressRequest struct {
	PostalCode *string  `json:"postal_code"`
	Address    string   `json:"address"`
	Country    string   `json:"country"`
	State      string   `json:"state"`
	City       string   `json:"city"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

type updateAddressRequest struct {
	PostalCode *string  `json:"postal_code"`
	Address    *string  `json:"address"`
	Country    *string  `json:"country"`
	State      *string  `json:"state"`
	City       *string  `json:"city"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

type addressResponse struct {
	ID         string     `json:"id"`
	PostalCode *string    `json:"postal_code,omitempty"`
	Address    string     `json:"address"`
	Country    string     `json:"country"`
	State      string     `json:"state"`
	City       string     `json:"city"`
	Lat        *float64   `json:"lat,omitempty"`
	Lon        *float64   `json:"lon,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	CreatedBy  *string    `json:"created_by,omitempty"`
}

type updateConfigurationRequest struct {
	CheckEmailDeliverability *bool   `json:"check_email_deliverability"`
	PasswordPolicyStrength   *string `json:"password_policy_strength"`
	JWTAutoRefresh           *bool   `json:"jwt_auto_refresh"`
}

type configurationResponse struct {
	ID                       string     `json:"id"`
	CheckEmailDeliverability bool       `json:"check_email_deliverability"`
	PasswordPolicyStrength   string     `json:"password_policy_strength"`
	JWTAutoRefresh           bool       `json:"jwt_auto_refresh"`
	CreatedAt                *time.Time `json:"created_at,omitempty"`
	ModifiedAt               *time.Time `json:"modified_at,omitempty"`
}

type healthResponse struct {
	DBStatus string `json:"db_status"`
}
