package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/asif7480/FurShield-backend/internal/domain/carts"
	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrNotCancellable = errors.New("order cannot be cancelled")
)

// CartSource es lo que orders necesita del cart: leerlo y vaciarlo.
type CartSource interface {
	Get(ctx context.Context, ownerID string) (carts.Cart, error)
	Clear(ctx context.Context, ownerID string) (carts.Cart, error)
}

// ProductDirectory congela nombre y precio en el snapshot de la order.
type ProductDirectory interface {
	GetByID(ctx context.Context, id string) (products.Product, error)
}

type Service struct {
	repo    Repository
	cart    CartSource
	catalog ProductDirectory
	now     func() time.Time
}

func NewService(repo Repository, cart CartSource, catalog ProductDirectory) *Service {
	return &Service{
		repo:    repo,
		cart:    cart,
		catalog: catalog,
		now:     time.Now,
	}
}

// Place snapshotea el cart en una order inmutable y vacía el cart.
// Cart vacío => ErrEmptyCart. Productos ya borrados del catálogo se saltean.
func (s *Service) Place(ctx context.Context, userID string) (Order, error) {
	c, err := s.cart.Get(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	var lines []Line
	var total float64
	for _, it := range c.Items {
		p, err := s.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		lines = append(lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		total += p.Price * float64(it.Quantity)
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	now := s.now()
	o := Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Products:    lines,
		TotalAmount: total,
		Status:      StatusPlaced,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	if _, err := s.cart.Clear(ctx, userID); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *Service) ListOwn(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Cancel pasa la order de placed a cancelled. Solo el dueño (o admin).
func (s *Service) Cancel(ctx context.Context, id string, caller auth.Identity) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, ErrNotFound
	}
	if caller.Role != auth.RoleAdmin && o.UserID != caller.ID {
		return Order{}, ErrForbidden
	}
	if o.Status != StatusPlaced {
		return Order{}, ErrNotCancellable
	}

	o.Status = StatusCancelled
	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}
