// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT id, name, author, price, genre, image
		FROM books
		ORDER BY id`

	books := []Summary{}
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Book, error) {
	query := `
		SELECT id, name, author, price, genre, image, description
		FROM books
		WHERE id = $1`

	var book Book
	err := r.db.GetContext(ctx, &book, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}
