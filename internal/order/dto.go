// AngelaMos | 2026
// dto.go

package order

// ItemInput mirrors a cart line as the SPA submits it. The client sends
// the price it displayed; the service recomputes the total and logs any
// disagreement rather than rejecting the order.
type ItemInput struct {
	BookID   int64   `json:"book_id"  validate:"required,gt=0"`
	Name     string  `json:"name"     validate:"required,max=255"`
	Author   string  `json:"author"   validate:"max=255"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Genre    string  `json:"genre"    validate:"max=100"`
	Image    string  `json:"image"    validate:"max=500"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	Phone    string `json:"phone"     validate:"required,max=30"`
	Address  string `json:"address"   validate:"required,max=255"`
	City     string `json:"city"      validate:"required,max=100"`
	State    string `json:"state"     validate:"max=100"`
	ZipCode  string `json:"zip_code"  validate:"max=20"`
	Country  string `json:"country"   validate:"required,max=100"`
}

// Items and ShippingInfo carry no required tag: their absence maps to
// domain errors with their own messages, not a generic validation one.
type PlaceOrderRequest struct {
	Items         []ItemInput   `json:"items"          validate:"dive"`
	TotalPrice    float64       `json:"total_price"    validate:"gte=0"`
	ShippingInfo  *ShippingInfo `json:"shipping_info"`
	PaymentMethod string        `json:"payment_method" validate:"omitempty,max=50"`
	Notes         string        `json:"notes"          validate:"max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
