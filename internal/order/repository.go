// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type Repository interface {
	CreateWithItems(ctx context.Context, order *Order) error
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// repository holds the pool directly rather than a DBTX because order
// creation spans two tables and must run inside one transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithItems(ctx context.Context, order *Order) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO orders
				(user_id, total_price, full_name, email, phone, address,
				 city, state, zip_code, country, payment_method, notes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, order_date`

		err := tx.GetContext(ctx, order, headerQuery,
			order.UserID,
			order.TotalPrice,
			order.FullName,
			order.Email,
			order.Phone,
			order.Address,
			order.City,
			order.State,
			order.ZipCode,
			order.Country,
			order.PaymentMethod,
			order.Notes,
			order.Status,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items
				(order_id, book_id, name, author, price, genre, image, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			err := tx.GetContext(ctx, &item.ID, itemQuery,
				item.OrderID,
				item.BookID,
				item.Name,
				item.Author,
				item.Price,
				item.Genre,
				item.Image,
				item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	query := `
		SELECT id, user_id, total_price, full_name, email, phone, address,
		       city, state, zip_code, country, payment_method, notes,
		       status, order_date
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetByIDAndUser(
	ctx context.Context,
	id, userID int64,
) (*Order, error) {
	query := `
		SELECT id, user_id, total_price, full_name, email, phone, address,
		       city, state, zip_code, country, payment_method, notes,
		       status, order_date
		FROM orders
		WHERE id = $1 AND user_id = $2`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		// Ownership misses are indistinguishable from missing rows.
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	query := `
		SELECT id, user_id, total_price, full_name, email, phone, address,
		       city, state, zip_code, country, payment_method, notes,
		       status, order_date
		FROM orders
		ORDER BY order_date DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := `
		SELECT id, user_id, total_price, full_name, email, phone, address,
		       city, state, zip_code, country, payment_method, notes,
		       status, order_date
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update order status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	// order_items rows go with the header via ON DELETE CASCADE.
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete order: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) itemsForOrder(
	ctx context.Context,
	orderID int64,
) ([]Item, error) {
	query := `
		SELECT id, order_id, book_id, name, author, price, genre, image, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return items, nil
}

func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}

	query, args, err := sqlx.In(`
		SELECT id, order_id, book_id, name, author, price, genre, image, quantity
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("build order items query: %w", err)
	}

	items := []Item{}
	err = r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}

	byOrder := make(map[int64][]Item, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []Item{}
		}
	}

	return nil
}
