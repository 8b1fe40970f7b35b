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

type AuthorRepository struct {
	pool *pgxpool.Pool
}

func NewAuthorRepository(pool *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{pool: pool}
}

func (r *AuthorRepository) Create(ctx context.Context, a model.Author) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO authors (id, name, bio, birth_year, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Bio, a.BirthYear, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, bio, birth_year, created_at, updated_at
		 FROM authors ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.BirthYear, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (model.Author, error) {
	var a model.Author
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, bio, birth_year, created_at, updated_at
		 FROM authors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Bio, &a.BirthYear, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Author{}, apierror.NotFound("author not found", id)
	}
	if err != nil {
		return model.Author{}, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

func (r *AuthorRepository) Update(ctx context.Context, a model.Author) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE authors SET name = $2, bio = $3, birth_year = $4, updated_at = $5 WHERE id = $1`,
		a.ID, a.Name, a.Bio, a.BirthYear, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("author not found", a.ID)
	}
	return nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("author not found", id)
	}
	return nil
}

func (r *AuthorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}
