package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Appointment, error)
	ListByVet(ctx context.Context, vetID string) ([]Appointment, error)
	ExistsForVetAndPet(ctx context.Context, vetID, petID string) (bool, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}
