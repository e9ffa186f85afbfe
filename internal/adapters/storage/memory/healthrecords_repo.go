package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/asif7480/FurShield-backend/internal/domain/healthrecords"
)

type healthRecordRepo struct {
	mu   sync.RWMutex
	byID map[string]healthrecords.Record
}

func NewHealthRecordRepo() healthrecords.Repository {
	return &healthRecordRepo{
		byID: make(map[string]healthrecords.Record),
	}
}

func (r *healthRecordRepo) Create(ctx context.Context, rec healthrecords.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("health record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("health record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordRepo) GetByID(ctx context.Context, id string) (healthrecords.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return healthrecords.Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *healthRecordRepo) ListByPet(ctx context.Context, petID string) ([]healthrecords.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]healthrecords.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *healthRecordRepo) Update(ctx context.Context, rec healthrecords.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *healthRecordRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
