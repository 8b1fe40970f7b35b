package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type AuthorStore interface {
	Create(ctx context.Context, a model.Author) error
	List(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id string) (model.Author, error)
	Update(ctx context.Context, a model.Author) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type AuthorBookLister interface {
	ListByAuthor(ctx context.Context, authorID string) ([]model.BookWithAuthor, error)
}

type AuthorService struct {
	authors AuthorStore
	books   AuthorBookLister
}

func NewAuthorService(authors AuthorStore, books AuthorBookLister) *AuthorService {
	return &AuthorService{authors: authors, books: books}
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Author{}, apierror.Validation("name is required and must be a non-empty string", "name")
	}
	if strings.TrimSpace(req.Bio) == "" {
		return model.Author{}, apierror.Validation("bio is required and must be a non-empty string", "bio")
	}
	if !validYear(req.BirthYear) {
		return model.Author{}, apierror.Validation("birth year must be a valid year", "birthYear")
	}

	now := time.Now().UTC()
	author := model.Author{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Bio:       strings.TrimSpace(req.Bio),
		BirthYear: req.BirthYear,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return model.Author{}, err
	}
	return author, nil
}

func (s *AuthorService) GetAllAuthors(ctx context.Context) ([]model.Author, error) {
	return s.authors.List(ctx)
}

func (s *AuthorService) GetAuthorByID(ctx context.Context, id string) (model.AuthorWithBooks, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return model.AuthorWithBooks{}, err
	}

	withAuthor, err := s.books.ListByAuthor(ctx, id)
	if err != nil {
		return model.AuthorWithBooks{}, err
	}

	books := make([]model.Book, 0, len(withAuthor))
	for _, b := range withAuthor {
		books = append(books, b.Book)
	}

	return model.AuthorWithBooks{Author: author, Books: books}, nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, id string, req model.UpdateAuthorRequest) (model.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return model.Author{}, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return model.Author{}, apierror.Validation("name must be a non-empty string", "name")
		}
		author.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		if strings.TrimSpace(*req.Bio) == "" {
			return model.Author{}, apierror.Validation("bio must be a non-empty string", "bio")
		}
		author.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.BirthYear != nil {
		if !validYear(*req.BirthYear) {
			return model.Author{}, apierror.Validation("birth year must be a valid year", "birthYear")
		}
		author.BirthYear = *req.BirthYear
	}

	author.UpdatedAt = time.Now().UTC()
	if err := s.authors.Update(ctx, author); err != nil {
		return model.Author{}, err
	}
	return author, nil
}

func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) error {
	return s.authors.Delete(ctx, id)
}

func (s *AuthorService) GetAuthorBooks(ctx context.Context, id string) ([]model.BookWithAuthor, error) {
	exists, err := s.authors.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apierror.NotFound("author not found", id)
	}

	return s.books.ListByAuthor(ctx, id)
}

func validYear(year int) bool {
	return year >= 0 && year <= time.Now().UTC().Year()
}
