package shelterpets

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
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

const maxImages = 3

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Breed        string
	Age          int
	HealthStatus string
	Images       []string
}

func (s *Service) Create(ctx context.Context, shelterID string, in CreateInput) (ShelterPet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return ShelterPet{}, ErrInvalidInput
	}
	if len(in.Images) > maxImages {
		return ShelterPet{}, ErrInvalidInput
	}

	now := s.now()
	p := ShelterPet{
		ID:             uuid.NewString(),
		ShelterID:      shelterID,
		Name:           strings.TrimSpace(in.Name),
		Breed:          strings.TrimSpace(in.Breed),
		Age:            in.Age,
		HealthStatus:   strings.TrimSpace(in.HealthStatus),
		Images:         in.Images,
		CareLogs:       []CareLog{},
		AdoptionStatus: StatusAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return ShelterPet{}, err
	}
	return p, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]ShelterPet, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

func (s *Service) GetOwned(ctx context.Context, id string, caller auth.Identity) (ShelterPet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ShelterPet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return ShelterPet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name         *string
	Breed        *string
	Age          *int
	HealthStatus *string
	Images       []string
}

func (s *Service) Update(ctx context.Context, id string, caller auth.Identity, in UpdateInput) (ShelterPet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ShelterPet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return ShelterPet{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.HealthStatus != nil {
		p.HealthStatus = strings.TrimSpace(*in.HealthStatus)
	}
	if in.Images != nil {
		if len(in.Images) > maxImages {
			return ShelterPet{}, ErrInvalidInput
		}
		p.Images = in.Images
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return ShelterPet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string, caller auth.Identity) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type CareLogInput struct {
	Feeding  string
	Grooming string
	Medical  string
}

// AddCareLog agrega una entrada al log de cuidados.
// La fecha siempre la pone el server, no el cliente.
func (s *Service) AddCareLog(ctx context.Context, id string, caller auth.Identity, in CareLogInput) (ShelterPet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ShelterPet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return ShelterPet{}, err
	}

	now := s.now()
	p.CareLogs = append(p.CareLogs, CareLog{
		Date:     now,
		Feeding:  strings.TrimSpace(in.Feeding),
		Grooming: strings.TrimSpace(in.Grooming),
		Medical:  strings.TrimSpace(in.Medical),
	})
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return ShelterPet{}, err
	}
	return p, nil
}

func (s *Service) UpdateAdoptionStatus(ctx context.Context, id string, caller auth.Identity, status AdoptionStatus) (ShelterPet, error) {
	if !ValidAdoptionStatus(status) {
		return ShelterPet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ShelterPet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return ShelterPet{}, err
	}

	p.AdoptionStatus = status
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return ShelterPet{}, err
	}
	return p, nil
}

func assertOwnership(p ShelterPet, caller auth.Identity) error {
	if caller.Role == auth.RoleAdmin {
		return nil
	}
	if p.ShelterID != caller.ID {
		return ErrForbidden
	}
	return nil
}
