package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyToken(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.APIError {
	t.Helper()

	var parsed model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.NotNil(t, parsed.Error)
	return *parsed.Error
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	mw.RequireAuth(okHandler(t, "u1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization header required", decodeError(t, rec).Message)
}

func TestRequireAuthEmptyBearerToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "Bearer   ")
	mw.RequireAuth(okHandler(t, "u1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid authorization header format", decodeError(t, rec).Message)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{err: apierror.Unauthorized("invalid or expired token")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	mw.RequireAuth(okHandler(t, "u1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeError(t, rec).Message)
}

func TestRequireAuthAttachesClaims(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1", Email: "ada@example.com"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	mw.RequireAuth(okHandler(t, "u1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthAcceptsRawToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "sometoken")
	mw.RequireAuth(okHandler(t, "u1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthProceedsAnonymously(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{err: apierror.Unauthorized("invalid or expired token")})

	var sawIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawIdentity = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer expired")
	mw.OptionalAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawIdentity)
}

func TestOptionalAuthAttachesValidClaims(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

	var userID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	mw.OptionalAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, "u1", userID)
}
