package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/asif7480/FurShield-backend/internal/domain/carts"
	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// -------------------------
// Test doubles
// -------------------------

var errRepoNotFound = errors.New("not found")

type testRepo struct {
	byID map[string]Order
}

func newTestRepo() *testRepo {
	return &testRepo{byID: make(map[string]Order)}
}

func (r *testRepo) Create(ctx context.Context, o Order) error {
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return Order{}, errRepoNotFound
	}
	return o, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, o Order) error {
	if _, ok := r.byID[o.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[o.ID] = o
	return nil
}

// testCart sirve un cart fijo por owner y registra los Clear.
type testCart struct {
	byOwner map[string][]carts.Item
	cleared []string
}

func (c *testCart) Get(ctx context.Context, ownerID string) (carts.Cart, error) {
	return carts.Cart{OwnerID: ownerID, Items: c.byOwner[ownerID]}, nil
}

func (c *testCart) Clear(ctx context.Context, ownerID string) (carts.Cart, error) {
	c.cleared = append(c.cleared, ownerID)
	c.byOwner[ownerID] = nil
	return carts.Cart{OwnerID: ownerID, Items: []carts.Item{}}, nil
}

type testCatalog map[string]products.Product

func (c testCatalog) GetByID(ctx context.Context, id string) (products.Product, error) {
	p, ok := c[id]
	if !ok {
		return products.Product{}, errRepoNotFound
	}
	return p, nil
}

// -------------------------
// Tests
// -------------------------

func TestPlace_SnapshotsCartAndClearsIt(t *testing.T) {
	repo := newTestRepo()
	cart := &testCart{byOwner: map[string][]carts.Item{
		"owner-1": {
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}}
	catalog := testCatalog{
		"p1": {ID: "p1", Name: "Croquetas", Price: 10},
		"p2": {ID: "p2", Name: "Correa", Price: 5.5},
	}
	svc := NewService(repo, cart, catalog)

	o, err := svc.Place(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if len(o.Products) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(o.Products))
	}
	if o.TotalAmount != 25.5 {
		t.Fatalf("expected total 25.5, got %v", o.TotalAmount)
	}
	if o.Status != StatusPlaced {
		t.Fatalf("expected placed, got %q", o.Status)
	}
	// Las líneas congelan nombre y precio del catálogo.
	if o.Products[0].Name != "Croquetas" || o.Products[0].Price != 10 || o.Products[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", o.Products[0])
	}
	if len(cart.cleared) != 1 || cart.cleared[0] != "owner-1" {
		t.Fatalf("expected cart cleared for owner-1, got %v", cart.cleared)
	}
}

func TestPlace_EmptyAndOrphanCarts(t *testing.T) {
	repo := newTestRepo()
	cart := &testCart{byOwner: map[string][]carts.Item{
		"empty": nil,
		// Todos los productos del cart ya no existen en el catálogo.
		"orphan": {{ProductID: "gone", Quantity: 1}},
	}}
	svc := NewService(repo, cart, testCatalog{})

	if _, err := svc.Place(context.Background(), "empty"); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart for empty cart, got %v", err)
	}
	if _, err := svc.Place(context.Background(), "orphan"); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart when nothing resolves, got %v", err)
	}
	if len(cart.cleared) != 0 {
		t.Fatalf("cart must not be cleared on failed place, got %v", cart.cleared)
	}
}

func TestPlace_SkipsDeletedProducts(t *testing.T) {
	repo := newTestRepo()
	cart := &testCart{byOwner: map[string][]carts.Item{
		"owner-1": {
			{ProductID: "p1", Quantity: 1},
			{ProductID: "gone", Quantity: 3},
		},
	}}
	catalog := testCatalog{"p1": {ID: "p1", Name: "Croquetas", Price: 10}}
	svc := NewService(repo, cart, catalog)

	o, err := svc.Place(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if len(o.Products) != 1 || o.TotalAmount != 10 {
		t.Fatalf("expected only the live product, got %+v", o)
	}
}

func TestCancel(t *testing.T) {
	repo := newTestRepo()
	cart := &testCart{byOwner: map[string][]carts.Item{
		"owner-1": {{ProductID: "p1", Quantity: 1}},
	}}
	catalog := testCatalog{"p1": {ID: "p1", Name: "Croquetas", Price: 10}}
	svc := NewService(repo, cart, catalog)

	o, err := svc.Place(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// 1) Otro owner no puede cancelar
	if _, err := svc.Cancel(context.Background(), o.ID, auth.Identity{ID: "owner-2", Role: auth.RoleOwner}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// 2) Admin sí
	cancelled, err := svc.Cancel(context.Background(), o.ID, auth.Identity{ID: "root", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("cancel by admin: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}

	// 3) Cancelar dos veces no va
	if _, err := svc.Cancel(context.Background(), o.ID, auth.Identity{ID: "owner-1", Role: auth.RoleOwner}); err != ErrNotCancellable {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}

	// 4) Order inexistente
	if _, err := svc.Cancel(context.Background(), "ghost", auth.Identity{ID: "owner-1", Role: auth.RoleOwner}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
