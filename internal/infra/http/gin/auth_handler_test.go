package ginserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, env *testEnv, email, password string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/register", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func loginUser(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/register", map[string]string{
		"email":    "guest@example.com",
		"password": "correct horse",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "guest@example.com", user["email"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "guest@example.com", "correct horse")

	rec := env.do(t, http.MethodPost, "/api/register", map[string]string{
		"email":    "guest@example.com",
		"password": "another password",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decodeBody(t, rec)["message"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "guest@example.com", "correct horse")

	token := loginUser(t, env, "guest@example.com", "correct horse")

	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "guest@example.com", "correct horse")

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"email":    "guest@example.com",
		"password": "wrong horse",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "correct horse",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
}
