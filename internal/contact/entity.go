// AngelaMos | 2026
// entity.go

package contact

import "time"

const (
	StatusNew       = "new"
	StatusRead      = "read"
	StatusResponded = "responded"
	StatusArchived  = "archived"
)

var ValidStatuses = []string{
	StatusNew,
	StatusRead,
	StatusResponded,
	StatusArchived,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Message struct {
	ID        int64     `db:"id"         json:"id"`
	FullName  string    `db:"full_name"  json:"full_name"`
	Email     string    `db:"email"      json:"email"`
	Subject   string    `db:"subject"    json:"subject"`
	Message   string    `db:"message"    json:"message"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
