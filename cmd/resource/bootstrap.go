package resource

import (
	"context"
	"strings"

	"fastusers/cmd/security/password"
)

// BootstrapAdmin describes the default admin account created at startup.
// Its ID is a configured literal (historically "admin"), not a UUID.
type BootstrapAdmin struct {
	ID       string
	Username string
	Password string
}

// EnsureDefaultConfiguration creates the singleton configuration row when the
// table is empty. Returns true when a row was created. Idempotent.
func EnsureDefaultConfiguration(ctx context.Context, st Store, adminUsername string) (bool, error) {
	configs, err := st.ListConfigurations(ctx, ListOptions{})
	if err != nil {
		return false, err
	}
	if len(configs) > 0 {
		return false, nil
	}

	cfg := &Configuration{
		ID:                       NewID(),
		CheckEmailDeliverability: false,
		PasswordPolicyStrength:   password.StrengthMin,
		JWTAutoRefresh:           false,
	}
	if err := st.CreateConfiguration(ctx, cfg, adminUsername); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureAdminUser creates the default admin account when it does not exist yet.
// Returns true when the account was created. Idempotent.
//
// The admin bypasses email-format validation (its username is a plain literal)
// but its password still has to satisfy the minimum policy.
func EnsureAdminUser(ctx context.Context, st Store, admin BootstrapAdmin, pwCfg password.Config) (bool, error) {
	const op = "resource.EnsureAdminUser"

	if strings.TrimSpace(admin.ID) == "" || strings.TrimSpace(admin.Username) == "" {
		return false, invalid(op, "admin id and username are required")
	}

	if _, err := st.GetUserByUsername(ctx, admin.Username); err == nil {
		return false, nil
	} else if !IsNotFound(err) {
		return false, err
	}

	if err := pwCfg.Validate(admin.Password, password.StrengthMin); err != nil {
		return false, invalid(op, "admin password rejected by policy")
	}
	hash, err := pwCfg.Hash(admin.Password)
	if err != nil {
		return false, err
	}

	u := &User{
		ID:           admin.ID,
		Username:     admin.Username,
		PasswordHash: hash,
		Name:         admin.Username,
		IsAdmin:      true,
	}
	if err := st.CreateUser(ctx, u, admin.ID); err != nil {
		// A concurrent boot may have created it first.
		if IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
