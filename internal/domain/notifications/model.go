package notifications

import "time"

// Notification creada por un admin para un user puntual.
type Notification struct {
	ID      string
	UserID  string
	Title   string
	Message string
	IsRead  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
