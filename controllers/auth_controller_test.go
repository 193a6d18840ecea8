package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/utils"
)

func TestAuthLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com")

	t.Run("valid credentials return a token and the user", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
			"email":    "admin@example.com",
			"password": "s3cret-pass",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode(t, w)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "admin@example.com", user["email"])
		// the hash never leaves the server
		assert.NotContains(t, w.Body.String(), "passwordHash")
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrong := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
			"email": "admin@example.com", "password": "wrong",
		}, "")
		unknown := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
			"email": "ghost@example.com", "password": "s3cret-pass",
		}, "")

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("missing fields reported per field", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		msgs := fieldMessages(t, w)
		assert.Equal(t, "is required", msgs["email"])
		assert.Equal(t, "is required", msgs["password"])
	})
}

func TestAuthMeAndLogout(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "admin@example.com")

	t.Run("me returns the token owner", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/auth/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		me := decode(t, w)["user"].(map[string]interface{})
		assert.EqualValues(t, user.ID, me["id"])
	})

	t.Run("me without token returns 401", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/auth/me", nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/auth/me", nil, "not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/logout", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())

		after := env.request(t, http.MethodGet, "/api/auth/me", nil, token)
		require.Equal(t, http.StatusUnauthorized, after.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, after.Body.String())
	})
}

func TestLogoutRevokesOnlyThePresentedToken(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(t, "admin@example.com")

	// Tokens for the same user minted within the same second must still be
	// distinct; a shared byte representation would make revoking one revoke
	// them all.
	first, err := utils.GenerateToken(user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	second, err := utils.GenerateToken(user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	w := env.request(t, http.MethodPost, "/api/auth/logout", nil, first)
	require.Equal(t, http.StatusOK, w.Code)

	revoked := env.request(t, http.MethodGet, "/api/auth/me", nil, first)
	require.Equal(t, http.StatusUnauthorized, revoked.Code)

	alive := env.request(t, http.MethodGet, "/api/auth/me", nil, second)
	require.Equal(t, http.StatusOK, alive.Code, alive.Body.String())
}
