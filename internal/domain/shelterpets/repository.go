package shelterpets

import "context"

type Repository interface {
	Create(ctx context.Context, p ShelterPet) error
	GetByID(ctx context.Context, id string) (ShelterPet, error)
	// ListByShelter devuelve los listings del shelter, más nuevos primero.
	ListByShelter(ctx context.Context, shelterID string) ([]ShelterPet, error)
	Update(ctx context.Context, p ShelterPet) error
	Delete(ctx context.Context, id string) error
}
