// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidStatus = errors.New("invalid message status")
)

// Deliberately loose: anything@anything.anything. The form is public
// and unauthenticated, so this only filters obvious typos.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Submit(
	ctx context.Context,
	req SubmitRequest,
) (*Message, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return nil, ErrMissingFields
	}

	if !emailPattern.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}

	msg := &Message{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   StatusNew,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("contact message received",
		"message_id", msg.ID,
		"subject", msg.Subject,
	)

	return msg, nil
}

// List returns the page plus the query it actually ran, clamps applied,
// so callers echo the effective pagination rather than the raw input.
func (s *Service) List(
	ctx context.Context,
	q ListQuery,
) ([]Message, int64, ListQuery, error) {
	if q.Status != "" && !IsValidStatus(q.Status) {
		return nil, 0, q, fmt.Errorf("status %q: %w", q.Status, ErrInvalidStatus)
	}

	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > maxListLimit {
		q.Limit = maxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	messages, total, err := s.repo.List(ctx, q)
	return messages, total, q, err
}

func (s *Service) Get(ctx context.Context, id int64) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) error {
	if !IsValidStatus(status) {
		return fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("message status updated", "message_id", id, "status", status)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("contact message deleted", "message_id", id)
	return nil
}
