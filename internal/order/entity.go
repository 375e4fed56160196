// AngelaMos | 2026
// entity.go

package order

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatuses is the full lifecycle, in the order the storefront's
// admin dashboard presents it.
var ValidStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order denormalizes the shipping snapshot into the header row so the
// record stays intact even if the user later changes their profile.
type Order struct {
	ID            int64     `db:"id"             json:"id"`
	UserID        int64     `db:"user_id"        json:"user_id"`
	TotalPrice    float64   `db:"total_price"    json:"total_price"`
	FullName      string    `db:"full_name"      json:"full_name"`
	Email         string    `db:"email"          json:"email"`
	Phone         string    `db:"phone"          json:"phone"`
	Address       string    `db:"address"        json:"address"`
	City          string    `db:"city"           json:"city"`
	State         string    `db:"state"          json:"state"`
	ZipCode       string    `db:"zip_code"       json:"zip_code"`
	Country       string    `db:"country"        json:"country"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	Notes         string    `db:"notes"          json:"notes"`
	Status        string    `db:"status"         json:"status"`
	OrderDate     time.Time `db:"order_date"     json:"order_date"`

	Items []Item `db:"-" json:"items"`
}

// Item is a line captured at checkout time; the book fields are frozen
// copies, not references into the live catalog.
type Item struct {
	ID       int64   `db:"id"       json:"id"`
	OrderID  int64   `db:"order_id" json:"order_id"`
	BookID   int64   `db:"book_id"  json:"book_id"`
	Name     string  `db:"name"     json:"name"`
	Author   string  `db:"author"   json:"author"`
	Price    float64 `db:"price"    json:"price"`
	Genre    string  `db:"genre"    json:"genre"`
	Image    string  `db:"image"    json:"image"`
	Quantity int     `db:"quantity" json:"quantity"`
}
