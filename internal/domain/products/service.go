package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("product already exists")
	ErrNotFound     = errors.New("not found")
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
	Name        string
	Category    Category
	Price       float64
	Description string
	Image       string
}

// Create agrega un producto al catálogo. El nombre es único:
// duplicado => ErrDuplicate (el handler lo responde como 400, no 409).
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price <= 0 || strings.TrimSpace(in.Description) == "" {
		return Product{}, ErrInvalidInput
	}
	if !ValidCategory(in.Category) {
		return Product{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Product{}, ErrDuplicate
	}

	now := s.now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    in.Category,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Ratings:     []ratings.Rating{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	return p, nil
}

type UpdateInput struct {
	Name        *string
	Category    *Category
	Price       *float64
	Description *string
	Image       *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, ErrNotFound
	}

	if in.Category != nil && !ValidCategory(*in.Category) {
		return Product{}, ErrInvalidInput
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil && *in.Price > 0 {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Count para el agregado público /totalCounts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
