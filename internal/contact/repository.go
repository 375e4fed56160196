// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	List(ctx context.Context, q ListQuery) ([]Message, int64, error)
	GetByID(ctx context.Context, id int64) (*Message, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO contact_messages (full_name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, msg, query,
		msg.FullName,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.Status,
	)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	q ListQuery,
) ([]Message, int64, error) {
	listQuery := `
		SELECT id, full_name, email, subject, message, status,
		       created_at, updated_at
		FROM contact_messages
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	messages := []Message{}
	err := r.db.SelectContext(
		ctx,
		&messages,
		listQuery,
		q.Status,
		q.Limit,
		q.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM contact_messages
		WHERE ($1 = '' OR status = $1)`

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, q.Status); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}

	return messages, total, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Message, error) {
	query := `
		SELECT id, full_name, email, subject, message, status,
		       created_at, updated_at
		FROM contact_messages
		WHERE id = $1`

	var msg Message
	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact message: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}

	return &msg, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) error {
	query := `
		UPDATE contact_messages
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update message status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contact_messages WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete contact message: %w", core.ErrNotFound)
	}

	return nil
}
