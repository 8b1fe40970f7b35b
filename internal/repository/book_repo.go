package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookWithAuthorQuery = `
	SELECT b.id, b.title, b.summary, b.publication_year, b.author_id, b.created_at, b.updated_at,
	       a.id, a.name, a.bio, a.birth_year, a.created_at, a.updated_at
	FROM books b
	JOIN authors a ON a.id = b.author_id`

func scanBookWithAuthor(row pgx.Row) (model.BookWithAuthor, error) {
	var b model.BookWithAuthor
	err := row.Scan(
		&b.ID, &b.Title, &b.Summary, &b.PublicationYear, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.Name, &b.Author.Bio, &b.Author.BirthYear,
		&b.Author.CreatedAt, &b.Author.UpdatedAt)
	return b, err
}

func (r *BookRepository) Create(ctx context.Context, b model.Book) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO books (id, title, summary, publication_year, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Title, b.Summary, b.PublicationYear, b.AuthorID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *BookRepository) List(ctx context.Context) ([]model.BookWithAuthor, error) {
	return r.queryBooks(ctx, bookWithAuthorQuery+` ORDER BY b.created_at DESC`)
}

func (r *BookRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.BookWithAuthor, error) {
	return r.queryBooks(ctx, bookWithAuthorQuery+` WHERE b.author_id = $1 ORDER BY b.created_at DESC`, authorID)
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.BookWithAuthor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.BookWithAuthor, 0)
	for rows.Next() {
		b, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) FindWithAuthor(ctx context.Context, id string) (model.BookWithAuthor, error) {
	b, err := scanBookWithAuthor(r.pool.QueryRow(ctx, bookWithAuthorQuery+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BookWithAuthor{}, apierror.NotFound("book not found", id)
	}
	if err != nil {
		return model.BookWithAuthor{}, fmt.Errorf("find book by id: %w", err)
	}
	return b, nil
}

func (r *BookRepository) Update(ctx context.Context, b model.Book) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE books SET title = $2, summary = $3, publication_year = $4, author_id = $5, updated_at = $6
		 WHERE id = $1`,
		b.ID, b.Title, b.Summary, b.PublicationYear, b.AuthorID, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("book not found", b.ID)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("book not found", id)
	}
	return nil
}

func (r *BookRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return exists, nil
}
