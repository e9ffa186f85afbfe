package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
)

type productRepo struct {
	mu   sync.RWMutex
	byID map[string]products.Product
}

func NewProductRepo() products.Repository {
	return &productRepo{
		byID: make(map[string]products.Product),
	}
}

func (r *productRepo) Create(ctx context.Context, p products.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("product already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (products.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return products.Product{}, ErrNotFound
	}
	return p, nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (products.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return products.Product{}, ErrNotFound
}

func (r *productRepo) List(ctx context.Context) ([]products.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]products.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p products.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

// UpsertRating corre entera bajo el lock, igual que en userRepo.
func (r *productRepo) UpsertRating(ctx context.Context, targetID string, rating ratings.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[targetID]
	if !ok {
		return ErrNotFound
	}
	p.Ratings = upsertRating(p.Ratings, rating)
	r.byID[targetID] = p
	return nil
}

func (r *productRepo) ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[targetID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]ratings.Rating, len(p.Ratings))
	copy(out, p.Ratings)
	return out, nil
}
