package users

import (
	"context"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// Repository persiste cuentas. Además implementa ratings.UserStore:
// los ratings viven embebidos en el documento del user.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByResetToken(ctx context.Context, token string) (User, error)
	Update(ctx context.Context, u User) error
	ListByRole(ctx context.Context, role auth.Role) ([]User, error)
	CountByRole(ctx context.Context, role auth.Role) (int64, error)

	// ratings.UserStore
	UpsertRating(ctx context.Context, targetID string, r ratings.Rating) error
	ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error)
	RoleOf(ctx context.Context, userID string) (auth.Role, error)
}
