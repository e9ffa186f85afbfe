package orders

import "context"

type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	// ListByUser devuelve las orders del user, más nuevas primero.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Update(ctx context.Context, o Order) error
}
