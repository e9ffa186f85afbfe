package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asif7480/FurShield-backend/internal/domain/carts"
)

// cartRepo guarda un cart por owner. Todas las mutaciones corren bajo el
// mismo lock, así que el incremento de una línea es atómico: dos adds
// concurrentes del mismo producto suman, no se pisan.
type cartRepo struct {
	mu      sync.RWMutex
	byOwner map[string]carts.Cart
	now     func() time.Time
}

func NewCartRepo() carts.Repository {
	return &cartRepo{
		byOwner: make(map[string]carts.Cart),
		now:     time.Now,
	}
}

func (r *cartRepo) GetByOwner(ctx context.Context, ownerID string) (carts.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byOwner[ownerID]
	if !ok {
		return carts.Cart{}, carts.ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (r *cartRepo) AddItem(ctx context.Context, ownerID, productID string, qty int) (carts.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	c, ok := r.byOwner[ownerID]
	if !ok {
		c = carts.Cart{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Items:     []carts.Item{},
			CreatedAt: now,
		}
	}

	found := false
	for i, it := range c.Items {
		if it.ProductID == productID {
			c.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, carts.Item{ProductID: productID, Quantity: qty})
	}

	c.UpdatedAt = now
	r.byOwner[ownerID] = c
	return cloneCart(c), nil
}

func (r *cartRepo) SetItemQuantity(ctx context.Context, ownerID, productID string, qty int) (carts.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byOwner[ownerID]
	if !ok {
		return carts.Cart{}, carts.ErrCartNotFound
	}

	for i, it := range c.Items {
		if it.ProductID == productID {
			c.Items[i].Quantity = qty
			c.UpdatedAt = r.now()
			r.byOwner[ownerID] = c
			return cloneCart(c), nil
		}
	}
	return carts.Cart{}, carts.ErrItemNotFound
}

func (r *cartRepo) RemoveItem(ctx context.Context, ownerID, productID string) (carts.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byOwner[ownerID]
	if !ok {
		return carts.Cart{}, carts.ErrCartNotFound
	}

	items := make([]carts.Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	c.Items = items
	c.UpdatedAt = r.now()
	r.byOwner[ownerID] = c
	return cloneCart(c), nil
}

func (r *cartRepo) Clear(ctx context.Context, ownerID string) (carts.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byOwner[ownerID]
	if !ok {
		return carts.Cart{}, carts.ErrCartNotFound
	}

	c.Items = []carts.Item{}
	c.UpdatedAt = r.now()
	r.byOwner[ownerID] = c
	return cloneCart(c), nil
}

func cloneCart(c carts.Cart) carts.Cart {
	items := make([]carts.Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
