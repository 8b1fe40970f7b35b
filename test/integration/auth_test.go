//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	server := newServer(t)

	_, token := registerAndLogin(t, server.URL, "reader@example.com")

	resp, body := doJSON(t, http.MethodGet, server.URL+"/authentication/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &user))
	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, "Test Reader", user.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server := newServer(t)

	registerAndLogin(t, server.URL, "reader@example.com")

	resp, body := doJSON(t, http.MethodPost, server.URL+"/authentication/register", map[string]string{
		"email": "READER@example.com", "password": "secret1", "name": "Other Reader",
	}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	server := newServer(t)

	registerAndLogin(t, server.URL, "reader@example.com")

	resp, wrongPassword := doJSON(t, http.MethodPost, server.URL+"/authentication/login", map[string]string{
		"email": "reader@example.com", "password": "wrong-pass",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, wrongPassword.Error)

	resp, unknownEmail := doJSON(t, http.MethodPost, server.URL+"/authentication/login", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, unknownEmail.Error)

	// No signal distinguishing unknown email from wrong password.
	assert.Equal(t, wrongPassword.Error.Message, unknownEmail.Error.Message)
}

func TestProfileRequiresToken(t *testing.T) {
	server := newServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/authentication/profile", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "authorization header required", body.Error.Message)
}
