package carts

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add suma el producto al cart del owner. Cantidad default 1; el mismo
// producto dos veces incrementa la línea, nunca la duplica.
func (s *Service) Add(ctx context.Context, ownerID, productID string, quantity int) (Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return Cart{}, ErrInvalidInput
	}
	if quantity <= 0 {
		quantity = 1
	}
	return s.repo.AddItem(ctx, ownerID, productID, quantity)
}

// Get devuelve el cart; si no existe todavía, uno vacío.
func (s *Service) Get(ctx context.Context, ownerID string) (Cart, error) {
	c, err := s.repo.GetByOwner(ctx, ownerID)
	if errors.Is(err, ErrCartNotFound) {
		return Cart{OwnerID: ownerID, Items: []Item{}}, nil
	}
	return c, err
}

func (s *Service) SetQuantity(ctx context.Context, ownerID, productID string, quantity int) (Cart, error) {
	if strings.TrimSpace(productID) == "" || quantity <= 0 {
		return Cart{}, ErrInvalidInput
	}
	return s.repo.SetItemQuantity(ctx, ownerID, productID, quantity)
}

func (s *Service) Remove(ctx context.Context, ownerID, productID string) (Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return Cart{}, ErrInvalidInput
	}
	return s.repo.RemoveItem(ctx, ownerID, productID)
}

func (s *Service) Clear(ctx context.Context, ownerID string) (Cart, error) {
	c, err := s.repo.Clear(ctx, ownerID)
	if errors.Is(err, ErrCartNotFound) {
		return Cart{OwnerID: ownerID, Items: []Item{}}, nil
	}
	return c, err
}
