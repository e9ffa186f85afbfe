package products

import (
	"context"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
)

// Repository del catálogo. Incluye las operaciones de rating embebido
// (satisface ratings.Store) y el conteo para /totalCounts.
type Repository interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	GetByName(ctx context.Context, name string) (Product, error)
	// List devuelve el catálogo completo, más nuevos primero.
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	UpsertRating(ctx context.Context, targetID string, r ratings.Rating) error
	ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error)
}
