package articles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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
	Title    string
	Category Category
	Content  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Article, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return Article{}, ErrInvalidInput
	}
	if !ValidCategory(in.Category) {
		return Article{}, ErrInvalidInput
	}

	now := s.now()
	a := Article{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Category:  in.Category,
		Content:   strings.TrimSpace(in.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Article{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, category Category) ([]Article, error) {
	if category != "" && !ValidCategory(category) {
		return []Article{}, nil
	}
	return s.repo.List(ctx, category)
}

func (s *Service) GetByID(ctx context.Context, id string) (Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Article{}, ErrNotFound
	}
	return a, nil
}

type UpdateInput struct {
	Title    *string
	Category *Category
	Content  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Article{}, ErrNotFound
	}

	if in.Category != nil && !ValidCategory(*in.Category) {
		return Article{}, ErrInvalidInput
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) != "" {
		a.Content = strings.TrimSpace(*in.Content)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Article{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
