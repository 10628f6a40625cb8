package entity

import "time"

// Category labels transactions. Names are unique per user.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryIcons is the set of icon ids the clients know how to render.
// Unknown ids fall back to a generic tag on the client side.
var CategoryIcons = []string{
	"home", "market", "work", "transport", "coffee",
	"energy", "gift", "savings", "bookmark",
}
