package healthrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrPastVaccinationDate = errors.New("vaccination date must be in the future")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
)

// PetOwners resuelve el owner de un pet (pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// AppointmentChecker dice si un vet está ligado a un pet por appointment.
type AppointmentChecker interface {
	HasAppointment(ctx context.Context, vetID, petID string) (bool, error)
}

type Service struct {
	repo         Repository
	pets         PetOwners
	appointments AppointmentChecker
	now          func() time.Time
}

func NewService(repo Repository, pets PetOwners, appointments AppointmentChecker) *Service {
	return &Service{
		repo:         repo,
		pets:         pets,
		appointments: appointments,
		now:          time.Now,
	}
}

type CreateInput struct {
	PetID           string
	VaccinationDate *time.Time
	Illness         string
	Treatment       *Treatment
	Insurance       *Insurance
}

// Create agrega un record al historial del pet.
// La fecha de vacunación, si viene, debe ser estrictamente futura
// (comparada contra la medianoche local de hoy).
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (Record, error) {
	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return Record{}, ErrInvalidInput
	}

	if err := s.assertAccess(ctx, caller, petID); err != nil {
		return Record{}, err
	}

	now := s.now()
	if in.VaccinationDate != nil {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !in.VaccinationDate.After(midnight) {
			return Record{}, ErrPastVaccinationDate
		}
	}

	rec := Record{
		ID:              uuid.NewString(),
		PetID:           petID,
		VaccinationDate: in.VaccinationDate,
		Illness:         strings.TrimSpace(in.Illness),
		Treatment:       in.Treatment,
		Insurance:       in.Insurance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) ListByPet(ctx context.Context, caller auth.Identity, petID string) ([]Record, error) {
	if err := s.assertAccess(ctx, caller, petID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

// ListForPet omite el gate de acceso: lo usa la ruta de records del vet,
// que ya valida el appointment por su lado.
func (s *Service) ListForPet(ctx context.Context, petID string) ([]Record, error) {
	return s.repo.ListByPet(ctx, petID)
}

type UpdateInput struct {
	VaccinationDate *time.Time
	Illness         *string
	Treatment       *Treatment
	Insurance       *Insurance
}

func (s *Service) Update(ctx context.Context, id string, caller auth.Identity, in UpdateInput) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, ErrNotFound
	}
	if err := s.assertAccess(ctx, caller, rec.PetID); err != nil {
		return Record{}, err
	}

	if in.VaccinationDate != nil {
		now := s.now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !in.VaccinationDate.After(midnight) {
			return Record{}, ErrPastVaccinationDate
		}
		rec.VaccinationDate = in.VaccinationDate
	}
	if in.Illness != nil {
		rec.Illness = strings.TrimSpace(*in.Illness)
	}
	if in.Treatment != nil {
		rec.Treatment = in.Treatment
	}
	if in.Insurance != nil {
		rec.Insurance = in.Insurance
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string, caller auth.Identity) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.assertAccess(ctx, caller, rec.PetID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// assertAccess: el gate de ownership/vínculo, uniforme para todo el módulo.
// - owner: el pet tiene que ser suyo
// - vet: tiene que haber appointment con ese pet
// - admin: pasa
func (s *Service) assertAccess(ctx context.Context, caller auth.Identity, petID string) error {
	switch caller.Role {
	case auth.RoleAdmin:
		return nil
	case auth.RoleOwner:
		ownerID, err := s.pets.OwnerOf(ctx, petID)
		if err != nil {
			return ErrNotFound
		}
		if ownerID != caller.ID {
			return ErrForbidden
		}
		return nil
	case auth.RoleVet:
		ok, err := s.appointments.HasAppointment(ctx, caller.ID, petID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
