// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	ErrEmptyCart       = errors.New("no items in order")
	ErrMissingShipping = errors.New("shipping information required")
	ErrInvalidStatus   = errors.New("invalid order status")
)

const defaultPaymentMethod = "credit_card"

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Place persists the order header and its line items atomically. The
// client-supplied total is kept authoritative for display purposes; a
// disagreement with the recomputed sum is logged for reconciliation.
func (s *Service) Place(
	ctx context.Context,
	userID int64,
	req PlaceOrderRequest,
) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if req.ShippingInfo == nil {
		return nil, ErrMissingShipping
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	items := make([]Item, len(req.Items))
	var computed float64
	for i, in := range req.Items {
		items[i] = Item{
			BookID:   in.BookID,
			Name:     in.Name,
			Author:   in.Author,
			Price:    in.Price,
			Genre:    in.Genre,
			Image:    in.Image,
			Quantity: in.Quantity,
		}
		computed += in.Price * float64(in.Quantity)
	}

	if math.Abs(computed-req.TotalPrice) > 0.01 {
		s.logger.Warn("order total mismatch",
			"user_id", userID,
			"client_total", req.TotalPrice,
			"computed_total", computed,
		)
	}

	order := &Order{
		UserID:        userID,
		TotalPrice:    req.TotalPrice,
		FullName:      req.ShippingInfo.FullName,
		Email:         req.ShippingInfo.Email,
		Phone:         req.ShippingInfo.Phone,
		Address:       req.ShippingInfo.Address,
		City:          req.ShippingInfo.City,
		State:         req.ShippingInfo.State,
		ZipCode:       req.ShippingInfo.ZipCode,
		Country:       req.ShippingInfo.Country,
		PaymentMethod: paymentMethod,
		Notes:         req.Notes,
		Status:        StatusPending,
		Items:         items,
	}

	if err := s.repo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", userID,
		"items", len(order.Items),
		"total", order.TotalPrice,
	)

	return order, nil
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetForUser(
	ctx context.Context,
	id, userID int64,
) (*Order, error) {
	return s.repo.GetByIDAndUser(ctx, id, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
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

	s.logger.Info("order status updated", "order_id", id, "status", status)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("order deleted", "order_id", id)
	return nil
}
