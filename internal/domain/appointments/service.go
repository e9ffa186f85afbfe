package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPastDate     = errors.New("appointment date must be in the future")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

// PetOwners resuelve el owner de un pet (lo implementa pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo Repository
	pets PetOwners
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwners) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID string
	VetID string
	Date  time.Time
}

// Create agenda un appointment del owner con un vet.
// La fecha debe ser estrictamente posterior a hoy: se compara contra la
// medianoche local de hoy, así que "hoy" también queda rechazado.
// El pet tiene que ser del caller.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Appointment, error) {
	petID := strings.TrimSpace(in.PetID)
	vetID := strings.TrimSpace(in.VetID)
	if petID == "" || vetID == "" || in.Date.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !in.Date.After(midnight) {
		return Appointment{}, ErrPastDate
	}

	petOwner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if petOwner != ownerID {
		return Appointment{}, ErrForbidden
	}

	a := Appointment{
		ID:        uuid.NewString(),
		PetID:     petID,
		OwnerID:   ownerID,
		VetID:     vetID,
		Date:      in.Date,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListByVet(ctx context.Context, vetID string) ([]Appointment, error) {
	return s.repo.ListByVet(ctx, vetID)
}

type UpdateInput struct {
	Status               *string
	Date                 *time.Time
	Diagnosis            *string
	PrescribedMedication *[]string
	FollowUp             *time.Time
}

// Update es la vía del vet para aprobar/reprogramar/completar y cargar
// tratamiento. Solo el vet asignado puede tocar el appointment.
func (s *Service) Update(ctx context.Context, id string, caller auth.Identity, in UpdateInput) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	if a.VetID != caller.ID {
		return Appointment{}, ErrForbidden
	}

	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if !ValidStatus(st) {
			return Appointment{}, ErrInvalidInput
		}
		a.Status = st
	}
	if in.Date != nil && !in.Date.IsZero() {
		a.Date = *in.Date
	}
	if in.Diagnosis != nil {
		a.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.PrescribedMedication != nil {
		a.PrescribedMedication = *in.PrescribedMedication
	}
	if in.FollowUp != nil {
		a.FollowUp = in.FollowUp
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Delete: solo una parte del appointment (su owner o su vet) puede cancelarlo.
func (s *Service) Delete(ctx context.Context, id string, caller auth.Identity) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if a.OwnerID != caller.ID && a.VetID != caller.ID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// HasAppointment dice si el vet tiene al menos un appointment con el pet.
// Es el gate de acceso del vet a los health records del pet.
func (s *Service) HasAppointment(ctx context.Context, vetID, petID string) (bool, error) {
	return s.repo.ExistsForVetAndPet(ctx, vetID, petID)
}
