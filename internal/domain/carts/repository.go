package carts

import (
	"context"
	"errors"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// Repository del cart. Las mutaciones son operaciones atómicas del store:
// AddItem en particular DEBE incrementar la línea existente (o agregarla)
// en una sola operación, sin read-modify-write del documento entero —
// dos adds concurrentes del mismo producto suman, no se pisan.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (Cart, error)
	// AddItem crea el cart si no existe. qty ya viene validado (> 0).
	AddItem(ctx context.Context, ownerID, productID string, qty int) (Cart, error)
	// SetItemQuantity falla con ErrCartNotFound / ErrItemNotFound.
	SetItemQuantity(ctx context.Context, ownerID, productID string, qty int) (Cart, error)
	RemoveItem(ctx context.Context, ownerID, productID string) (Cart, error)
	Clear(ctx context.Context, ownerID string) (Cart, error)
}
