// AngelaMos | 2026
// entity.go

package book

// Book is a catalog row. Seeded at migration time; there is no write API
// for the catalog.
type Book struct {
	ID          int64   `db:"id"          json:"id"`
	Name        string  `db:"name"        json:"name"`
	Author      string  `db:"author"      json:"author"`
	Price       float64 `db:"price"       json:"price"`
	Genre       string  `db:"genre"       json:"genre"`
	Image       string  `db:"image"       json:"image"`
	Description string  `db:"description" json:"description"`
}

// Summary is the listing shape; the description only ships on the
// detail endpoint.
type Summary struct {
	ID     int64   `db:"id"     json:"id"`
	Name   string  `db:"name"   json:"name"`
	Author string  `db:"author" json:"author"`
	Price  float64 `db:"price"  json:"price"`
	Genre  string  `db:"genre"  json:"genre"`
	Image  string  `db:"image"  json:"image"`
}
