package ratings

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidTarget = errors.New("invalid target type")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
)

type Service struct {
	users    UserStore
	products Store
}

func NewService(users UserStore, products Store) *Service {
	return &Service{
		users:    users,
		products: products,
	}
}

type AddInput struct {
	TargetType string
	TargetID   string
	RaterID    string
	Score      int
	Comment    string
}

// AddOrUpdate hace upsert del rating del rater sobre el target.
// Para targets user, solo vets y shelters pueden recibir ratings
// (owners/admins => ErrForbidden).
func (s *Service) AddOrUpdate(ctx context.Context, in AddInput) error {
	targetID := strings.TrimSpace(in.TargetID)
	raterID := strings.TrimSpace(in.RaterID)
	if targetID == "" || raterID == "" {
		return ErrInvalidInput
	}
	if in.Score < 1 || in.Score > 5 {
		return ErrInvalidInput
	}

	r := Rating{
		By:      raterID,
		Score:   in.Score,
		Comment: strings.TrimSpace(in.Comment),
	}

	switch TargetType(in.TargetType) {
	case TargetUser:
		role, err := s.users.RoleOf(ctx, targetID)
		if err != nil {
			return ErrNotFound
		}
		if role != auth.RoleVet && role != auth.RoleShelter {
			return ErrForbidden
		}
		return s.users.UpsertRating(ctx, targetID, r)
	case TargetProduct:
		return s.products.UpsertRating(ctx, targetID, r)
	default:
		return ErrInvalidTarget
	}
}

// Average devuelve la media aritmética redondeada a un decimal y el count.
// Lista vacía => 0, 0.
func (s *Service) Average(ctx context.Context, targetType, targetID string) (Summary, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return Summary{}, ErrInvalidInput
	}

	var (
		items []Rating
		err   error
	)
	switch TargetType(targetType) {
	case TargetUser:
		items, err = s.users.ListRatings(ctx, targetID)
	case TargetProduct:
		items, err = s.products.ListRatings(ctx, targetID)
	default:
		return Summary{}, ErrInvalidTarget
	}
	if err != nil {
		return Summary{}, ErrNotFound
	}

	if len(items) == 0 {
		return Summary{Average: 0, Count: 0}, nil
	}

	total := 0
	for _, r := range items {
		total += r.Score
	}
	avg := float64(total) / float64(len(items))

	return Summary{
		Average: math.Round(avg*10) / 10,
		Count:   len(items),
	}, nil
}
