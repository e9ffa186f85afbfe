package notifications

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
	UserID  string
	Title   string
	Message string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Notification, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return Notification{}, ErrInvalidInput
	}

	now := s.now()
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(in.UserID),
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) ListOwn(ctx context.Context, userID string) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead asevera ownership: el original actualizaba por id pelado y
// cualquier user podía marcar notificaciones ajenas.
func (s *Service) MarkRead(ctx context.Context, id string, caller auth.Identity) (Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if caller.Role != auth.RoleAdmin && n.UserID != caller.ID {
		return Notification{}, ErrForbidden
	}

	n.IsRead = true
	n.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}
