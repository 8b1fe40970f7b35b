//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorAndBookCRUD(t *testing.T) {
	server := newServer(t)

	_, token := registerAndLogin(t, server.URL, "librarian@example.com")
	authorID := createAuthor(t, server.URL, token, "Frank Herbert")
	bookID := createBook(t, server.URL, token, "Dune", 1965, authorID)

	// Reads are public.
	resp, body := doJSON(t, http.MethodGet, server.URL+"/authors/"+authorID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var author struct {
		Name  string `json:"name"`
		Books []struct {
			Title string `json:"title"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &author))
	assert.Equal(t, "Frank Herbert", author.Name)
	require.Len(t, author.Books, 1)
	assert.Equal(t, "Dune", author.Books[0].Title)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/books/"+bookID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var book struct {
		Title  string `json:"title"`
		Author struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &book))
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author.Name)

	// Writes require a token.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/books", map[string]any{
		"title": "Hyperion", "summary": "s", "publicationYear": 1989, "authorId": authorID,
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Partial update.
	resp, body = doJSON(t, http.MethodPut, server.URL+"/books/"+bookID, map[string]any{
		"summary": "Desert planet politics",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Desert planet politics", updated.Summary)

	// Delete, then reads miss.
	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/books/"+bookID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/books/"+bookID, nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "book not found", body.Error.Message)
}

func TestCreateBookValidation(t *testing.T) {
	server := newServer(t)

	_, token := registerAndLogin(t, server.URL, "librarian@example.com")

	resp, body := doJSON(t, http.MethodPost, server.URL+"/books", map[string]any{
		"title": "", "summary": "s", "publicationYear": 1965, "authorId": "x",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}
