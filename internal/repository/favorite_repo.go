package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Create inserts the join row. The unique index on (user_id, book_id) is the
// real duplicate guard; a concurrent insert that slips past the service-layer
// pre-check surfaces here as a unique violation and is reported as the same
// conflict.
func (r *FavoriteRepository) Create(ctx context.Context, f model.Favorite) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (id, user_id, book_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		f.ID, f.UserID, f.BookID, f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apierror.Conflict("book is already in favorites", f.BookID)
		}
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID string, bookID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("favorite not found", bookID)
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]model.FavoriteWithBook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.user_id, f.book_id, f.created_at,
		        b.id, b.title, b.summary, b.publication_year, b.author_id, b.created_at, b.updated_at,
		        a.id, a.name
		 FROM favorites f
		 JOIN books b ON b.id = f.book_id
		 JOIN authors a ON a.id = b.author_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteWithBook, 0)
	for rows.Next() {
		var f model.FavoriteWithBook
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.BookID, &f.CreatedAt,
			&f.Book.ID, &f.Book.Title, &f.Book.Summary, &f.Book.PublicationYear,
			&f.Book.AuthorID, &f.Book.CreatedAt, &f.Book.UpdatedAt,
			&f.Book.Author.ID, &f.Book.Author.Name); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID string, bookID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite exists: %w", err)
	}
	return exists, nil
}
