package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type BookStore interface {
	Create(ctx context.Context, b model.Book) error
	List(ctx context.Context) ([]model.BookWithAuthor, error)
	FindWithAuthor(ctx context.Context, id string) (model.BookWithAuthor, error)
	Update(ctx context.Context, b model.Book) error
	Delete(ctx context.Context, id string) error
}

type AuthorChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type BookService struct {
	books   BookStore
	authors AuthorChecker
}

func NewBookService(books BookStore, authors AuthorChecker) *BookService {
	return &BookService{books: books, authors: authors}
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.BookWithAuthor, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.BookWithAuthor{}, apierror.Validation("title is required and must be a non-empty string", "title")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return model.BookWithAuthor{}, apierror.Validation("summary is required and must be a non-empty string", "summary")
	}
	if !validYear(req.PublicationYear) {
		return model.BookWithAuthor{}, apierror.Validation("publication year must be a valid year", "publicationYear")
	}
	if strings.TrimSpace(req.AuthorID) == "" {
		return model.BookWithAuthor{}, apierror.Validation("authorId is required and must be a non-empty string", "authorId")
	}

	exists, err := s.authors.Exists(ctx, req.AuthorID)
	if err != nil {
		return model.BookWithAuthor{}, err
	}
	if !exists {
		return model.BookWithAuthor{}, apierror.NotFound("author not found", req.AuthorID)
	}

	now := time.Now().UTC()
	book := model.Book{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(req.Title),
		Summary:         strings.TrimSpace(req.Summary),
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.books.Create(ctx, book); err != nil {
		return model.BookWithAuthor{}, err
	}

	return s.books.FindWithAuthor(ctx, book.ID)
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]model.BookWithAuthor, error) {
	return s.books.List(ctx)
}

func (s *BookService) GetBookByID(ctx context.Context, id string) (model.BookWithAuthor, error) {
	return s.books.FindWithAuthor(ctx, id)
}

func (s *BookService) UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (model.BookWithAuthor, error) {
	existing, err := s.books.FindWithAuthor(ctx, id)
	if err != nil {
		return model.BookWithAuthor{}, err
	}
	book := existing.Book

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return model.BookWithAuthor{}, apierror.Validation("title must be a non-empty string", "title")
		}
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		if strings.TrimSpace(*req.Summary) == "" {
			return model.BookWithAuthor{}, apierror.Validation("summary must be a non-empty string", "summary")
		}
		book.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.PublicationYear != nil {
		if !validYear(*req.PublicationYear) {
			return model.BookWithAuthor{}, apierror.Validation("publication year must be a valid year", "publicationYear")
		}
		book.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		if strings.TrimSpace(*req.AuthorID) == "" {
			return model.BookWithAuthor{}, apierror.Validation("authorId must be a non-empty string", "authorId")
		}
		exists, err := s.authors.Exists(ctx, *req.AuthorID)
		if err != nil {
			return model.BookWithAuthor{}, err
		}
		if !exists {
			return model.BookWithAuthor{}, apierror.NotFound("author not found", *req.AuthorID)
		}
		book.AuthorID = *req.AuthorID
	}

	book.UpdatedAt = time.Now().UTC()
	if err := s.books.Update(ctx, book); err != nil {
		return model.BookWithAuthor{}, err
	}

	return s.books.FindWithAuthor(ctx, id)
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.books.Delete(ctx, id)
}
