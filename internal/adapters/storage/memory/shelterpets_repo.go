package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/asif7480/FurShield-backend/internal/domain/shelterpets"
)

type shelterPetRepo struct {
	mu   sync.RWMutex
	byID map[string]shelterpets.ShelterPet
}

func NewShelterPetRepo() shelterpets.Repository {
	return &shelterPetRepo{
		byID: make(map[string]shelterpets.ShelterPet),
	}
}

func (r *shelterPetRepo) Create(ctx context.Context, p shelterpets.ShelterPet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("shelter pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("shelter pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *shelterPetRepo) GetByID(ctx context.Context, id string) (shelterpets.ShelterPet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return shelterpets.ShelterPet{}, ErrNotFound
	}
	return p, nil
}

func (r *shelterPetRepo) ListByShelter(ctx context.Context, shelterID string) ([]shelterpets.ShelterPet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelterpets.ShelterPet, 0)
	for _, p := range r.byID {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}
	// Más nuevos primero, como el listado original.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *shelterPetRepo) Update(ctx context.Context, p shelterpets.ShelterPet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *shelterPetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
