package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type FavoriteStore interface {
	Create(ctx context.Context, f model.Favorite) error
	Delete(ctx context.Context, userID string, bookID string) error
	ListByUser(ctx context.Context, userID string) ([]model.FavoriteWithBook, error)
	Exists(ctx context.Context, userID string, bookID string) (bool, error)
}

type BookFinder interface {
	FindWithAuthor(ctx context.Context, id string) (model.BookWithAuthor, error)
}

type UserChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type FavoriteService struct {
	favorites FavoriteStore
	books     BookFinder
	users     UserChecker
}

func NewFavoriteService(favorites FavoriteStore, books BookFinder, users UserChecker) *FavoriteService {
	return &FavoriteService{favorites: favorites, books: books, users: users}
}

// AddFavorite checks book and user existence, then inserts the join row.
// The duplicate pre-check is advisory; under concurrent adds for the same
// pair the store's unique constraint decides, and its violation comes back
// as the identical conflict error.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID string, bookID string) (model.FavoriteWithBook, error) {
	if bookID == "" {
		return model.FavoriteWithBook{}, apierror.Validation("bookId is required", "bookId")
	}

	book, err := s.books.FindWithAuthor(ctx, bookID)
	if err != nil {
		return model.FavoriteWithBook{}, err
	}

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return model.FavoriteWithBook{}, err
	}
	if !exists {
		return model.FavoriteWithBook{}, apierror.NotFound("user not found", userID)
	}

	favorited, err := s.favorites.Exists(ctx, userID, bookID)
	if err != nil {
		return model.FavoriteWithBook{}, err
	}
	if favorited {
		return model.FavoriteWithBook{}, apierror.Conflict("book is already in favorites", bookID)
	}

	favorite := model.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.favorites.Create(ctx, favorite); err != nil {
		return model.FavoriteWithBook{}, err
	}

	return model.FavoriteWithBook{
		Favorite: favorite,
		Book: model.FavoriteBook{
			Book:   book.Book,
			Author: model.AuthorRef{ID: book.Author.ID, Name: book.Author.Name},
		},
	}, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID string, bookID string) error {
	return s.favorites.Delete(ctx, userID, bookID)
}

func (s *FavoriteService) GetUserFavorites(ctx context.Context, userID string) ([]model.FavoriteWithBook, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apierror.NotFound("user not found", userID)
	}

	return s.favorites.ListByUser(ctx, userID)
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID string, bookID string) (bool, error) {
	return s.favorites.Exists(ctx, userID, bookID)
}

// GetUserFavoriteStats aggregates over the user's full favorites set.
// Authors are keyed by display name, not id, so two authors sharing a name
// merge into one bucket.
func (s *FavoriteService) GetUserFavoriteStats(ctx context.Context, userID string) (model.FavoriteStats, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return model.FavoriteStats{}, err
	}
	if !exists {
		return model.FavoriteStats{}, apierror.NotFound("user not found", userID)
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return model.FavoriteStats{}, err
	}

	stats := model.FavoriteStats{
		TotalFavorites:    len(favorites),
		FavoritesByYear:   map[string]int{},
		FavoritesByAuthor: map[string]int{},
	}

	for _, favorite := range favorites {
		year := strconv.Itoa(favorite.Book.PublicationYear)
		stats.FavoritesByYear[year]++
		stats.FavoritesByAuthor[favorite.Book.Author.Name]++
	}

	return stats, nil
}
