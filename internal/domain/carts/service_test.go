package carts_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/asif7480/FurShield-backend/internal/adapters/storage/memory"
	"github.com/asif7480/FurShield-backend/internal/domain/carts"
)

func TestAdd_SameProductIncrementsLine(t *testing.T) {
	svc := carts.NewService(memory.NewCartRepo())
	ctx := context.Background()

	// Cantidad <= 0 defaultea a 1.
	if _, err := svc.Add(ctx, "owner-1", "prod-1", 0); err != nil {
		t.Fatalf("first add: %v", err)
	}
	c, err := svc.Add(ctx, "owner-1", "prod-1", 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(c.Items))
	}
	if q := c.Items[0].Quantity; q != 3 {
		t.Fatalf("expected quantity 3, got %d", q)
	}

	// Producto distinto: línea nueva.
	c, err = svc.Add(ctx, "owner-1", "prod-2", 1)
	if err != nil {
		t.Fatalf("add second product: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(c.Items))
	}

	if _, err := svc.Add(ctx, "owner-1", "  ", 1); err != carts.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank product, got %v", err)
	}
}

func TestAdd_ConcurrentSameProduct(t *testing.T) {
	svc := carts.NewService(memory.NewCartRepo())
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Add(ctx, "owner-1", "prod-1", 1); err != nil {
				t.Errorf("concurrent add: %v", err)
			}
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, "owner-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(c.Items))
	}
	if q := c.Items[0].Quantity; q != n {
		t.Fatalf("expected quantity %d, got %d", n, q)
	}
}

func TestGet_MissingCartIsEmpty(t *testing.T) {
	svc := carts.NewService(memory.NewCartRepo())

	c, err := svc.Get(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.OwnerID != "owner-1" || len(c.Items) != 0 {
		t.Fatalf("expected empty cart for owner-1, got %+v", c)
	}
}

func TestSetQuantityRemoveClear(t *testing.T) {
	svc := carts.NewService(memory.NewCartRepo())
	ctx := context.Background()

	// Cart inexistente
	if _, err := svc.SetQuantity(ctx, "owner-1", "prod-1", 2); !errors.Is(err, carts.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	if _, err := svc.Add(ctx, "owner-1", "prod-1", 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	// Item que no está en el cart
	if _, err := svc.SetQuantity(ctx, "owner-1", "ghost", 2); !errors.Is(err, carts.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	c, err := svc.SetQuantity(ctx, "owner-1", "prod-1", 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}

	c, err = svc.Remove(ctx, "owner-1", "prod-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart after remove, got %d items", len(c.Items))
	}

	if _, err := svc.Add(ctx, "owner-1", "prod-2", 3); err != nil {
		t.Fatalf("re-seed cart: %v", err)
	}
	c, err = svc.Clear(ctx, "owner-1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected cleared cart, got %d items", len(c.Items))
	}
}
