//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagepilot/internal/config"
	"pagepilot/internal/database"
	"pagepilot/internal/handler"
	"pagepilot/internal/middleware"
	"pagepilot/internal/repository"
	"pagepilot/internal/router"
	"pagepilot/internal/service"
)

// newServer spins up the full HTTP stack against the database named by
// TEST_DATABASE_URL, with all tables truncated.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE favorites, books, authors, users`)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		JWTSecret:      "test-secret",
		TokenTTL:       7 * 24 * time.Hour,
		CORSOrigins:    []string{"*"},
	}

	userRepo := repository.NewUserRepository(db.Pool)
	authorRepo := repository.NewAuthorRepository(db.Pool)
	bookRepo := repository.NewBookRepository(db.Pool)
	favoriteRepo := repository.NewFavoriteRepository(db.Pool)

	authService := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL, userRepo)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	server := httptest.NewServer(router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Author:   handler.NewAuthorHandler(service.NewAuthorService(authorRepo, bookRepo)),
		Book:     handler.NewBookHandler(service.NewBookService(bookRepo, authorRepo)),
		Favorite: handler.NewFavoriteHandler(service.NewFavoriteService(favoriteRepo, bookRepo, userRepo)),
	}))
	t.Cleanup(server.Close)

	return server
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method string, url string, body any, token string) (*http.Response, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func registerAndLogin(t *testing.T, serverURL string, email string) (userID string, token string) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, serverURL+"/authentication/register", map[string]string{
		"email": email, "password": "secret1", "name": "Test Reader",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &user))

	resp, body = doJSON(t, http.MethodPost, serverURL+"/authentication/login", map[string]string{
		"email": email, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	return user.ID, login.AccessToken
}

func createAuthor(t *testing.T, serverURL string, token string, name string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, serverURL+"/authors", map[string]any{
		"name": name, "bio": "test bio", "birthYear": 1950,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var author struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &author))
	return author.ID
}

func createBook(t *testing.T, serverURL string, token string, title string, year int, authorID string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, serverURL+"/books", map[string]any{
		"title": title, "summary": "test summary", "publicationYear": year, "authorId": authorID,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var book struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &book))
	return book.ID
}
