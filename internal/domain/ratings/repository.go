package ratings

import (
	"context"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// Store son las operaciones de rating sobre una colección target.
// Las implementan los repos de users y products.
//
// UpsertRating DEBE ser una sola operación atómica del store
// (match-rater-then-update, else append). Dos raters concurrentes sobre el
// mismo documento tienen que persistir ambos; nada de read-modify-write del
// documento entero.
type Store interface {
	UpsertRating(ctx context.Context, targetID string, r Rating) error
	ListRatings(ctx context.Context, targetID string) ([]Rating, error)
}

// UserStore agrega el lookup de rol: solo vets y shelters pueden recibir ratings.
type UserStore interface {
	Store
	RoleOf(ctx context.Context, userID string) (auth.Role, error)
}
