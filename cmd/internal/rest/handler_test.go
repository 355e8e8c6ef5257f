package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"golang.org/x/crypto/bcrypt"

	"fastusers/cmd/resource"
	"fastusers/cmd/security/password"
	"fastusers/cmd/security/token"

	_ "modernc.org/sqlite"
)

const (
	testAdminID       = "admin"
	testAdminPassword = "adminpass1"
)

type testEnv struct {
	mux    *http.ServeMux
	store  resource.Store
	tokens *token.Manager
	pwCfg  password.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	st, err := resource.NewBunStore(bun.NewDB(sqlDB, sqlitedialect.New()))
	if err != nil {
		t.Fatalf("NewBunStore: %v", err)
	}
	ctx := context.Background()
	if err := st.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	// MinCost keeps the bcrypt work factor cheap for tests.
	pwCfg := password.Config{Cost: bcrypt.MinCost, Policy: password.Policy{MinLength: 8, MaxLength: 72}}

	if _, err := resource.EnsureDefaultConfiguration(ctx, st, testAdminID); err != nil {
		t.Fatalf("EnsureDefaultConfiguration: %v", err)
	}
	admin := resource.BootstrapAdmin{ID: testAdminID, Username: testAdminID, Password: testAdminPassword}
	if _, err := resource.EnsureAdminUser(ctx, st, admin, pwCfg); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}

	tokens, err := token.NewManager(token.Config{Secret: []byte("test-secret-test-secret-test-sec"), TTL: 30 * time.Minute})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	h, err := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), st, tokens, pwCfg, Config{
		MaxBodyBytes:    1 << 20,
		DefaultPageSize: 50,
		AdminID:         testAdminID,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mux := http.NewServeMux()
	h.Register(mux)
	return &testEnv{mux: mux, store: st, tokens: tokens, pwCfg: pwCfg}
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, username, pass string) string {
	t.Helper()

	form := url.Values{"username": {username}, "password": {pass}}
	req := httptest.NewRequest(http.MethodPost, "/fast-users/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %q: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var resp tokenResponse
	decodeBody(t, rec, &resp)
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
	return resp.AccessToken
}

// createUser provisions a regular user through the API and returns its id and token.
func (e *testEnv) createUser(t *testing.T, adminTok, username, pass string) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": username,
		"password": pass,
		"name":     "Test User",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user %q: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var resp userResponse
	decodeBody(t, rec, &resp)
	return resp.ID, e.login(t, username, pass)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp detailResponse
	decodeBody(t, rec, &resp)
	return resp.Detail
}

// ---- auth ----

func TestLogin_FormAndJSON(t *testing.T) {
	env := newTestEnv(t)

	// Form login is covered by the helper.
	_ = env.login(t, testAdminID, testAdminPassword)

	rec := env.do(t, http.MethodPost, "/fast-users/auth/token", "", loginRequest{
		Username: testAdminID,
		Password: testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("json login: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ username, pass string }{
		{testAdminID, "wrong-password"},
		{"nobody@example.com", "whatever1"},
	} {
		rec := env.do(t, http.MethodPost, "/fast-users/auth/token", "", loginRequest{Username: tc.username, Password: tc.pass})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("login %q: status %d", tc.username, rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Fatalf("missing WWW-Authenticate header, got %q", got)
		}
		if d := detailOf(t, rec); d != "Incorrect username or password" {
			t.Fatalf("unexpected detail: %q", d)
		}
	}
}

func TestAuth_MissingOrGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/fast-users/users/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/fast-users/users/me", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d", rec.Code)
	}
}

func TestAuth_ExpiredTokenGrace(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	// Issue a token whose exp is already in the past.
	expired, _, err := env.tokens.Issue(testAdminID, testAdminID, time.Now().UTC().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/fast-users/users/me", expired, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token without auto refresh: status %d", rec.Code)
	}

	on := true
	rec = env.do(t, http.MethodPatch, "/fast-users/configurations", adminTok, updateConfigurationRequest{JWTAutoRefresh: &on})
	if rec.Code != http.StatusOK {
		t.Fatalf("enable auto refresh: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/fast-users/users/me", expired, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expired token with auto refresh: status %d body %s", rec.Code, rec.Body.String())
	}
}

// ---- users ----

func TestCreateUser_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodPost, "/fast-users/users", userTok, map[string]any{
		"username": "other@example.com",
		"password": "otherpass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin create: status %d", rec.Code)
	}
	if d := detailOf(t, rec); d != "Operation not allowed for current user" {
		t.Fatalf("unexpected detail: %q", d)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	rec := env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "not-an-email",
		"password": "goodpass1",
	})
	if rec.Code != http.StatusBadRequest || detailOf(t, rec) != "Invalid email address" {
		t.Fatalf("bad email: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "jane@example.com",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("weak password: status %d", rec.Code)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "jane@example.com",
		"password": "janepass1",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestUserResponse_NeverLeaksHash(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	rec := env.do(t, http.MethodGet, "/fast-users/users/me", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Fatalf("response leaks password material: %s", body)
	}
}

func TestListUsers_AdminOnlyAndRange(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodGet, "/fast-users/users", userTok, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin list: status %d", rec.Code)
	}

	for i := 0; i < 3; i++ {
		env.createUser(t, adminTok, fmt.Sprintf("user%d@example.com", i), "somepass1")
	}

	rec = env.do(t, http.MethodGet, "/fast-users/users?start=1&end=2", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list page: status %d body %s", rec.Code, rec.Body.String())
	}
	var page []userResponse
	decodeBody(t, rec, &page)
	if len(page) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page))
	}

	// An explicit end=0 means "everything from start onward".
	rec = env.do(t, http.MethodGet, "/fast-users/users?start=1&end=0", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("open-ended range: status %d body %s", rec.Code, rec.Body.String())
	}
	var tail []userResponse
	decodeBody(t, rec, &tail)
	if len(tail) != 4 {
		t.Fatalf("expected 4 users from offset 1, got %d", len(tail))
	}

	rec = env.do(t, http.MethodGet, "/fast-users/users?start=5&end=2", adminTok, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted range: status %d", rec.Code)
	}
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	name := "Jane Doe"
	rec := env.do(t, http.MethodPatch, "/fast-users/users/me", userTok, updateUserRequest{Name: &name})
	if rec.Code != http.StatusOK {
		t.Fatalf("update me: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp userResponse
	decodeBody(t, rec, &resp)
	if resp.Name != "Jane Doe" {
		t.Fatalf("name not updated: %+v", resp)
	}

	// Privilege escalation through self-update is rejected.
	isAdmin := true
	rec = env.do(t, http.MethodPatch, "/fast-users/users/me", userTok, updateUserRequest{IsAdmin: &isAdmin})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("self privilege escalation: status %d", rec.Code)
	}

	// Password change takes effect for the next login.
	newPass := "janepass2"
	rec = env.do(t, http.MethodPatch, "/fast-users/users/me", userTok, updateUserRequest{Password: &newPass})
	if rec.Code != http.StatusOK {
		t.Fatalf("update password: status %d body %s", rec.Code, rec.Body.String())
	}
	env.login(t, "jane@example.com", newPass)
}

func TestAdminUserImmutable(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	name := "New Name"
	rec := env.do(t, http.MethodPatch, "/fast-users/users/"+testAdminID, adminTok, updateUserRequest{Name: &name})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("update admin: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/fast-users/users/"+testAdminID, adminTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete admin: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodPatch, "/fast-users/users/me", adminTok, updateUserRequest{Name: &name})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("update admin via me: status %d", rec.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	userID, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodDelete, "/fast-users/users/"+userID, adminTok, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete user: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/fast-users/users/"+userID, adminTok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted user: status %d", rec.Code)
	}

	// The deleted user's still-valid token no longer authenticates.
	rec = env.do(t, http.MethodGet, "/fast-users/users/me", userTok, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user token: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/fast-users/users/"+userID, adminTok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double delete: status %d", rec.Code)
	}
}

func TestDeleteUser_Self(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	// A second admin so the guard under test is self-deletion, not the
	// bootstrap-admin immutability.
	rec := env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "second@example.com",
		"password": "secondpass1",
		"is_admin": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create second admin: status %d body %s", rec.Code, rec.Body.String())
	}
	var second userResponse
	decodeBody(t, rec, &second)
	secondTok := env.login(t, "second@example.com", "secondpass1")

	rec = env.do(t, http.MethodDelete, "/fast-users/users/"+second.ID, secondTok, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self delete: status %d body %s", rec.Code, rec.Body.String())
	}
	if d := detailOf(t, rec); d != "Cannot delete current user" {
		t.Fatalf("unexpected detail: %q", d)
	}

	// The account is still there.
	rec = env.do(t, http.MethodGet, "/fast-users/users/"+second.ID, adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get after refused self delete: status %d", rec.Code)
	}
}

func TestBlockedUser(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	userID, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	blocked := true
	rec := env.do(t, http.MethodPatch, "/fast-users/users/"+userID, adminTok, updateUserRequest{IsBlocked: &blocked})
	if rec.Code != http.StatusOK {
		t.Fatalf("block user: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/fast-users/users/me", userTok, nil)
	if rec.Code != http.StatusBadRequest || detailOf(t, rec) != "Inactive user" {
		t.Fatalf("blocked user request: status %d", rec.Code)
	}
}

// ---- addresses ----

func TestAddressLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodPost, "/fast-users/addresses", userTok, createAddressRequest{
		Address: "1 Main St",
		Country: "ES",
		State:   "Madrid",
		City:    "Madrid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create address: status %d body %s", rec.Code, rec.Body.String())
	}
	var created addressResponse
	decodeBody(t, rec, &created)

	rec = env.do(t, http.MethodGet, "/fast-users/addresses/"+created.ID, userTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get address: status %d", rec.Code)
	}

	city := "Toledo"
	rec = env.do(t, http.MethodPatch, "/fast-users/addresses/"+created.ID, userTok, updateAddressRequest{City: &city})
	if rec.Code != http.StatusOK {
		t.Fatalf("update address: status %d body %s", rec.Code, rec.Body.String())
	}
	var updated addressResponse
	decodeBody(t, rec, &updated)
	if updated.City != "Toledo" {
		t.Fatalf("city not updated: %+v", updated)
	}

	rec = env.do(t, http.MethodDelete, "/fast-users/addresses/"+created.ID, userTok, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete address: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/fast-users/addresses/"+created.ID, userTok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted address: status %d", rec.Code)
	}
}

func TestAddress_IncompleteCoordinates(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	lat := 40.4168
	rec := env.do(t, http.MethodPost, "/fast-users/addresses", userTok, createAddressRequest{
		Address: "1 Main St",
		Country: "ES",
		State:   "Madrid",
		City:    "Madrid",
		Lat:     &lat,
	})
	if rec.Code != http.StatusBadRequest || detailOf(t, rec) != "Incomplete coordinate values" {
		t.Fatalf("lat without lon: status %d", rec.Code)
	}
}

func TestAddress_Ownership(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, ownerTok := env.createUser(t, adminTok, "owner@example.com", "ownerpass1")
	_, otherTok := env.createUser(t, adminTok, "other@example.com", "otherpass1")

	rec := env.do(t, http.MethodPost, "/fast-users/addresses", ownerTok, createAddressRequest{
		Address: "1 Main St",
		Country: "ES",
		State:   "Madrid",
		City:    "Madrid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create address: status %d", rec.Code)
	}
	var created addressResponse
	decodeBody(t, rec, &created)

	rec = env.do(t, http.MethodGet, "/fast-users/addresses/"+created.ID, otherTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign address access: status %d", rec.Code)
	}
	if d := detailOf(t, rec); d != "User not allowed to retrive address" {
		t.Fatalf("unexpected detail: %q", d)
	}

	rec = env.do(t, http.MethodDelete, "/fast-users/addresses/"+created.ID, otherTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign address delete: status %d", rec.Code)
	}
	if d := detailOf(t, rec); d != "User not allowed to delete address" {
		t.Fatalf("unexpected detail: %q", d)
	}

	// Admins bypass ownership.
	rec = env.do(t, http.MethodGet, "/fast-users/addresses/"+created.ID, adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin address access: status %d", rec.Code)
	}
}

func TestAddress_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	rec := env.do(t, http.MethodGet, "/fast-users/addresses/not-a-uuid", adminTok, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid address id: status %d", rec.Code)
	}
}

// ---- configurations ----

func TestConfiguration_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)
	_, userTok := env.createUser(t, adminTok, "jane@example.com", "janepass1")

	rec := env.do(t, http.MethodGet, "/fast-users/configurations", userTok, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin configuration read: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/fast-users/configurations", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("configuration read: status %d", rec.Code)
	}
	var cfg configurationResponse
	decodeBody(t, rec, &cfg)
	if cfg.PasswordPolicyStrength != "min" {
		t.Fatalf("unexpected default strength: %q", cfg.PasswordPolicyStrength)
	}
}

func TestConfiguration_StrengthUpdate(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.login(t, testAdminID, testAdminPassword)

	bad := "extreme"
	rec := env.do(t, http.MethodPatch, "/fast-users/configurations", adminTok, updateConfigurationRequest{PasswordPolicyStrength: &bad})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid strength: status %d", rec.Code)
	}

	maxStrength := "max"
	rec = env.do(t, http.MethodPatch, "/fast-users/configurations", adminTok, updateConfigurationRequest{PasswordPolicyStrength: &maxStrength})
	if rec.Code != http.StatusOK {
		t.Fatalf("set max strength: status %d body %s", rec.Code, rec.Body.String())
	}

	// New users must now satisfy the max policy.
	rec = env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "jane@example.com",
		"password": "alllowercase1x",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("max policy not enforced: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPost, "/fast-users/users", adminTok, map[string]any{
		"username": "jane@example.com",
		"password": "GoodPassw0rd",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("max policy create: status %d body %s", rec.Code, rec.Body.String())
	}
}

// ---- health ----

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/fast-users/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	var resp healthResponse
	decodeBody(t, rec, &resp)
	if resp.DBStatus != "active" {
		t.Fatalf("unexpected db status: %q", resp.DBStatus)
	}
}
