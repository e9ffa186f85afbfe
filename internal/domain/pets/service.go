package pets

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
	Name           string
	Species        string
	Breed          string
	Age            int
	Gender         string
	MedicalHistory string
	Image          string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(in.Name),
		Species:        strings.TrimSpace(in.Species),
		Breed:          strings.TrimSpace(in.Breed),
		Age:            in.Age,
		Gender:         strings.TrimSpace(in.Gender),
		MedicalHistory: strings.TrimSpace(in.MedicalHistory),
		Image:          strings.TrimSpace(in.Image),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetOwned trae el pet y asevera ownership explícitamente post-fetch.
// Admin pasa (las rutas lo admiten); cualquier otro caller ajeno => ErrForbidden.
func (s *Service) GetOwned(ctx context.Context, petID string, caller auth.Identity) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name           *string
	Species        *string
	Breed          *string
	Age            *int
	Gender         *string
	MedicalHistory *string
	Image          *string
}

func (s *Service) Update(ctx context.Context, petID string, caller auth.Identity, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return Pet{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil && strings.TrimSpace(*in.Species) != "" {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = strings.TrimSpace(*in.MedicalHistory)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID string, caller auth.Identity) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if err := assertOwnership(p, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

// OwnerOf expone el ownerID de un pet.
// Lo usan appointments y healthrecords para aseverar ownership sin
// acoplar esos módulos al repo de pets.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", ErrNotFound
	}
	return p.OwnerID, nil
}

func (s *Service) GetByID(ctx context.Context, petID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// Count para el agregado público /totalCounts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// assertOwnership es el gate de ownership: decisión auditable,
// separada de la forma del query.
func assertOwnership(p Pet, caller auth.Identity) error {
	if caller.Role == auth.RoleAdmin {
		return nil
	}
	if p.OwnerID != caller.ID {
		return ErrForbidden
	}
	return nil
}
