package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type fakeBookStore struct {
	books   map[string]model.Book
	authors map[string]model.Author
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{
		books:   map[string]model.Book{},
		authors: map[string]model.Author{"author-1": {ID: "author-1", Name: "Frank Herbert"}},
	}
}

func (f *fakeBookStore) Create(_ context.Context, b model.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookStore) List(_ context.Context) ([]model.BookWithAuthor, error) {
	out := make([]model.BookWithAuthor, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, model.BookWithAuthor{Book: b, Author: f.authors[b.AuthorID]})
	}
	return out, nil
}

func (f *fakeBookStore) FindWithAuthor(_ context.Context, id string) (model.BookWithAuthor, error) {
	b, ok := f.books[id]
	if !ok {
		return model.BookWithAuthor{}, apierror.NotFound("book not found", id)
	}
	return model.BookWithAuthor{Book: b, Author: f.authors[b.AuthorID]}, nil
}

func (f *fakeBookStore) Update(_ context.Context, b model.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return apierror.NotFound("book not found", b.ID)
	}
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookStore) Delete(_ context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return apierror.NotFound("book not found", id)
	}
	delete(f.books, id)
	return nil
}

type fakeAuthorChecker struct {
	ids map[string]bool
}

func (f *fakeAuthorChecker) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

func newTestBookService() (*BookService, *fakeBookStore) {
	store := newFakeBookStore()
	return NewBookService(store, &fakeAuthorChecker{ids: map[string]bool{"author-1": true}}), store
}

func TestCreateBook(t *testing.T) {
	svc, _ := newTestBookService()

	book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:           "Dune",
		Summary:         "Desert planet politics",
		PublicationYear: 1965,
		AuthorID:        "author-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author.Name)
}

func TestCreateBookValidation(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.CreateBookRequest
	}{
		{"empty title", model.CreateBookRequest{Summary: "s", PublicationYear: 1965, AuthorID: "author-1"}},
		{"empty summary", model.CreateBookRequest{Title: "t", PublicationYear: 1965, AuthorID: "author-1"}},
		{"future year", model.CreateBookRequest{Title: "t", Summary: "s", PublicationYear: 9999, AuthorID: "author-1"}},
		{"empty author id", model.CreateBookRequest{Title: "t", Summary: "s", PublicationYear: 1965}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBook(ctx, tc.req)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		})
	}
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	svc, _ := newTestBookService()

	_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title: "t", Summary: "s", PublicationYear: 1965, AuthorID: "author-missing",
	})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "author not found", apiErr.Message)
}

func TestUpdateBookPartial(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, model.CreateBookRequest{
		Title: "Dune", Summary: "s", PublicationYear: 1965, AuthorID: "author-1",
	})
	require.NoError(t, err)

	newTitle := "Dune Messiah"
	updated, err := svc.UpdateBook(ctx, created.ID, model.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 1965, updated.PublicationYear)
	assert.Equal(t, "author-1", updated.AuthorID)
}

func TestUpdateBookUnknownAuthor(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, model.CreateBookRequest{
		Title: "Dune", Summary: "s", PublicationYear: 1965, AuthorID: "author-1",
	})
	require.NoError(t, err)

	missing := "author-missing"
	_, err = svc.UpdateBook(ctx, created.ID, model.UpdateBookRequest{AuthorID: &missing})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestDeleteBookNotFound(t *testing.T) {
	svc, _ := newTestBookService()

	err := svc.DeleteBook(context.Background(), "missing")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}
