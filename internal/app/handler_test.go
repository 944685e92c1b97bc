package app

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/janus/internal/account"
	"github.com/stolasapp/janus/internal/config"
	"github.com/stolasapp/janus/internal/kv"
)

const testAdminKey = "test-admin-key"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Default()
	cfg.AdminKey = testAdminKey

	store := kv.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	repo := account.NewRepository(store, slog.Default())
	return New(cfg, slog.Default(), repo)
}

func do(srv *echo.Echo, method, path, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createAccount(t *testing.T, srv *echo.Echo, email, password string) account.Account {
	t.Helper()
	rec := do(srv, http.MethodPost, "/users", testAdminKey,
		`{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var acct account.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))
	return acct
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("requires the admin key", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := do(srv, http.MethodPost, "/users", "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing auth header")

		rec = do(srv, http.MethodPost, "/users", "wrong-key", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Wrong auth header")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := do(srv, http.MethodPost, "/users", testAdminKey, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Could not create user")
	})

	t.Run("validates required fields", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := do(srv, http.MethodPost, "/users", testAdminKey, `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing password")

		rec = do(srv, http.MethodPost, "/users", testAdminKey, `{"password":"secret"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing email")
	})

	t.Run("redacts the password hash", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		acct := createAccount(t, srv, "a@x.com", "secret")
		assert.NotEmpty(t, acct.ID)
		assert.Equal(t, "a@x.com", acct.Email)
		assert.Empty(t, acct.HashedPassword)
	})

	t.Run("conflicts on duplicate email in any casing", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		first := createAccount(t, srv, "a@x.com", "secret")

		rec := do(srv, http.MethodPost, "/users", testAdminKey,
			`{"email":"A@X.com","password":"other"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "email in use")

		// The original account still authenticates with its password.
		rec = do(srv, http.MethodGet, "/users/me", basicAuth(first.ID, "secret"), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		rec := do(srv, http.MethodGet, "/users/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing authorization header")
	})

	t.Run("garbage headers are unauthorized, not a crash", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		for _, header := range []string{
			"Basic not-base64!!!",
			"Bearer sometoken",
			"nonsense",
			"Basic",
			"Basic " + basicAuthPayload("no-colon"),
		} {
			rec := do(srv, http.MethodGet, "/users/me", header, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		}
	})

	t.Run("authenticates by id", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		created := createAccount(t, srv, "a@x.com", "secret")

		rec := do(srv, http.MethodGet, "/users/me", basicAuth(created.ID, "secret"), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var acct account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))
		assert.Equal(t, created.ID, acct.ID)
		assert.Equal(t, "a@x.com", acct.Email)
		assert.Empty(t, acct.HashedPassword)

		// The email is not a valid Basic username here; lookup is id only.
		rec = do(srv, http.MethodGet, "/users/me", basicAuth("a@x.com", "secret"), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password and unknown id are indistinguishable by status", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		created := createAccount(t, srv, "a@x.com", "secret")

		wrongPassword := do(srv, http.MethodGet, "/users/me", basicAuth(created.ID, "wrong"), "")
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Contains(t, wrongPassword.Body.String(), "Invalid password")

		unknownID := do(srv, http.MethodGet, "/users/me", basicAuth("no-such-id", "wrong"), "")
		assert.Equal(t, http.StatusUnauthorized, unknownID.Code)
		assert.Contains(t, unknownID.Body.String(), "User not found")

		assert.Equal(t, wrongPassword.Code, unknownID.Code)
	})
}

func TestUnknownPath(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := do(srv, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(srv, http.MethodPost, "/users/extra/deep", testAdminKey, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func basicAuth(id, password string) string {
	return "Basic " + basicAuthPayload(id+":"+password)
}

func basicAuthPayload(credentials string) string {
	return base64.StdEncoding.EncodeToString([]byte(credentials))
}
