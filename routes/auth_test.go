package routes_test

import (
	"net/http"
	"testing"

	"github.com/herbsera/herbsera-backend/middleware"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authCookie(w interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookie {
			return c
		}
	}
	return nil
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newServer(t)

	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "Asha@Example.com",
		"password":    "turmeric-glow",
		"displayName": "Asha",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var registered models.AuthResponse
	env.Decode(t, &registered)
	assert.Equal(t, "asha@example.com", registered.User.Email)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.NotEmpty(t, registered.Token)
	require.NotNil(t, authCookie(w))
	assert.True(t, authCookie(w).HttpOnly)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "asha@example.com",
		"password":    "another-password",
		"displayName": "Asha again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "turmeric-glow",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var session models.AuthResponse
	env.Decode(t, &session)

	w, env = testutil.DoJSON(t, srv, http.MethodGet, "/api/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	env.Decode(t, &me)
	assert.Equal(t, registered.User.ID, me.ID)
}

func TestRegisterValidation(t *testing.T) {
	srv := newServer(t)

	w, _ := testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "not-an-email",
		"password":    "turmeric-glow",
		"displayName": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "asha@example.com",
		"password":    "short",
		"displayName": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailures(t *testing.T) {
	srv := newServer(t)
	testutil.CreateUser(t, "asha@example.com", testutil.WithPassword("turmeric-glow"))
	testutil.CreateUser(t, "ravi@example.com", testutil.WithPassword("turmeric-glow"), testutil.Inactive)

	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "asha@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "nobody@example.com", "password": "turmeric-glow",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ravi@example.com", "password": "turmeric-glow",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeactivatedTokenRejected(t *testing.T) {
	srv := newServer(t)
	user := testutil.CreateUser(t, "asha@example.com", testutil.Inactive)

	w, _ := testutil.DoJSON(t, srv, http.MethodGet, "/api/auth/me", testutil.Token(t, user), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := newServer(t)

	w, _ := testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := authCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestGoogleSignInNotConfigured(t *testing.T) {
	srv := newServer(t)

	w, _ := testutil.DoJSON(t, srv, http.MethodGet, "/api/auth/google", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/auth/google/token", "", map[string]any{"idToken": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
