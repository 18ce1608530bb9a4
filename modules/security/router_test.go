package security_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/guardkit/modules/security"
	"github.com/dmitrymomot/guardkit/pkg/authguard"
	"github.com/dmitrymomot/guardkit/pkg/jwt"
	"github.com/dmitrymomot/guardkit/pkg/lockout"
	"github.com/dmitrymomot/guardkit/pkg/rbac"
	"github.com/dmitrymomot/guardkit/pkg/routeguard"
	"github.com/dmitrymomot/guardkit/pkg/scope"
)

type staticCredentials struct {
	users  map[string]*authguard.User
	hashes map[uuid.UUID][]byte
}

func (s *staticCredentials) FindUserByUsername(_ context.Context, username string) (*authguard.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (s *staticCredentials) GetPasswordHash(_ context.Context, userID uuid.UUID) ([]byte, error) {
	hash, ok := s.hashes[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return hash, nil
}

type fixture struct {
	server  *httptest.Server
	adminID uuid.UUID
	aliceID uuid.UUID
	guard   *lockout.Guard
	grants  *rbac.MemorySource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	adminID := uuid.New()
	aliceID := uuid.New()

	hash := func(password string) []byte {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		return h
	}
	credentials := &staticCredentials{
		users: map[string]*authguard.User{
			"admin": {ID: adminID, Username: "admin"},
			"alice": {ID: aliceID, Username: "alice"},
		},
		hashes: map[uuid.UUID][]byte{
			adminID: hash("admin-pass"),
			aliceID: hash("alice-pass"),
		},
	}

	lockGuard, err := lockout.NewGuard(lockout.NewMemoryStore(), lockout.Config{
		MaxAttempts:  3,
		LockDuration: 30 * time.Minute,
		ResetWindow:  15 * time.Minute,
	})
	require.NoError(t, err)

	tokens, err := jwt.New([]byte("router-test-signing-key-32-bytes!!"))
	require.NoError(t, err)

	grants := rbac.NewMemorySource()
	resolver := rbac.NewResolver(grants)

	routes, err := routeguard.NewGuard(context.Background(), routeguard.NewMemorySource([]routeguard.Rule{
		{Method: http.MethodGet, Path: "/security/admin/accounts/:userID/lockout", Permission: "accounts.lockout.manage", ScopeType: scope.GlobalType},
		{Method: http.MethodPost, Path: "/security/admin/accounts/:userID/lock", Permission: "accounts.lockout.manage", ScopeType: scope.GlobalType},
		{Method: http.MethodPost, Path: "/security/admin/accounts/:userID/unlock", Permission: "accounts.lockout.manage", ScopeType: scope.GlobalType},
	}))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/security", security.Router(security.RouterOptions{
		Authenticator: authguard.NewAuthenticator(credentials, lockGuard),
		Lockout:       lockGuard,
		Tokens:        tokens,
		Guard:         routes,
		Resolver:      resolver,
	}))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{
		server:  server,
		adminID: adminID,
		aliceID: aliceID,
		guard:   lockGuard,
		grants:  grants,
	}
}

func (f *fixture) grantAdmin(t *testing.T) {
	t.Helper()
	roleID := uuid.New()
	require.NoError(t, f.grants.AssignRole(f.adminID, roleID, scope.Global()))
	require.NoError(t, f.grants.GrantPermission(roleID, "accounts.lockout.manage", scope.Global(), rbac.AccessAdmin))
}

func (f *fixture) login(t *testing.T, username, password string) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(f.server.URL+"/security/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (f *fixture) request(t *testing.T, method, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	resp, body := f.login(t, "admin", "admin-pass")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)

	resp, body := f.login(t, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", body["error"])
	assert.Equal(t, float64(2), body["remaining_attempts"])

	// Unknown usernames get the same error without a counter.
	resp, body = f.login(t, "nobody", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", body["error"])
	assert.NotContains(t, body, "remaining_attempts")
}

func TestLogin_LockedAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t)

	for rangeIter := 0; rangeIter < 2; rangeIter++ {
		resp, _ := f.login(t, "alice", "wrong")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, body := f.login(t, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, float64(0), body["remaining_attempts"])
	assert.NotEmpty(t, body["locked_until"])

	resp, body = f.login(t, "alice", "alice-pass")
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	assert.Equal(t, "account_locked", body["error"])
}

func TestAdmin_RequiresToken(t *testing.T) {
	f := newFixture(t)

	resp := f.request(t, http.MethodGet, fmt.Sprintf("/security/admin/accounts/%s/lockout", f.aliceID), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_RequiresPermission(t *testing.T) {
	f := newFixture(t)

	_, body := f.login(t, "alice", "alice-pass")
	token := body["access_token"].(string)

	resp := f.request(t, http.MethodGet, fmt.Sprintf("/security/admin/accounts/%s/lockout", f.aliceID), token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdmin_LockUnlockFlow(t *testing.T) {
	f := newFixture(t)
	f.grantAdmin(t)

	_, body := f.login(t, "admin", "admin-pass")
	token := body["access_token"].(string)

	lockPath := fmt.Sprintf("/security/admin/accounts/%s/lock", f.aliceID)
	resp := f.request(t, http.MethodPost, lockPath, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The locked account cannot log in even with the right password.
	loginResp, loginBody := f.login(t, "alice", "alice-pass")
	assert.Equal(t, http.StatusLocked, loginResp.StatusCode)
	assert.Equal(t, "account_locked", loginBody["error"])

	statusPath := fmt.Sprintf("/security/admin/accounts/%s/lockout", f.aliceID)
	resp = f.request(t, http.MethodGet, statusPath, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, true, status["locked"])
	assert.Equal(t, true, status["permanent"])

	unlockPath := fmt.Sprintf("/security/admin/accounts/%s/unlock", f.aliceID)
	resp = f.request(t, http.MethodPost, unlockPath, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	loginResp, _ = f.login(t, "alice", "alice-pass")
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)
}

func TestAdmin_InvalidUserID(t *testing.T) {
	f := newFixture(t)
	f.grantAdmin(t)

	_, body := f.login(t, "admin", "admin-pass")
	token := body["access_token"].(string)

	resp := f.request(t, http.MethodGet, "/security/admin/accounts/not-a-uuid/lockout", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
