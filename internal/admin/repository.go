// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

// Stats feeds the dashboard's headline cards. Field names follow the
// camelCase the frontend consumes.
type Stats struct {
	TotalOrders   int64   `db:"total_orders"   json:"totalOrders"`
	TotalRevenue  float64 `db:"total_revenue"  json:"totalRevenue"`
	PendingOrders int64   `db:"pending_orders" json:"pendingOrders"`
	TotalMessages int64   `db:"total_messages" json:"totalMessages"`
	NewMessages   int64   `db:"new_messages"   json:"newMessages"`
}

type Repository interface {
	DashboardStats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) DashboardStats(ctx context.Context) (*Stats, error) {
	// One round trip; each scalar is cheap against the storefront's
	// table sizes.
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COALESCE(SUM(total_price), 0) FROM orders) AS total_revenue,
			(SELECT COUNT(*) FROM orders
			 WHERE status = 'pending') AS pending_orders,
			(SELECT COUNT(*) FROM contact_messages) AS total_messages,
			(SELECT COUNT(*) FROM contact_messages
			 WHERE status = 'new') AS new_messages`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	return &stats, nil
}
