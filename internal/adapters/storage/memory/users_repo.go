package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/domain/users"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var ErrNotFound = errors.New("not found")

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[string]users.User),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return users.ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}

func (r *userRepo) GetByResetToken(ctx context.Context, token string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(token) == "" {
		return users.User{}, ErrNotFound
	}
	for _, u := range r.byID {
		if u.ResetToken == token {
			return u, nil
		}
	}
	return users.User{}, ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) ListByRole(ctx context.Context, role auth.Role) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *userRepo) CountByRole(ctx context.Context, role auth.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// UpsertRating corre entera bajo el lock: es la operación atómica que pide
// el contrato (dos raters concurrentes persisten ambos).
func (r *userRepo) UpsertRating(ctx context.Context, targetID string, rating ratings.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[targetID]
	if !ok {
		return ErrNotFound
	}
	u.Ratings = upsertRating(u.Ratings, rating)
	r.byID[targetID] = u
	return nil
}

func (r *userRepo) ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[targetID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]ratings.Rating, len(u.Ratings))
	copy(out, u.Ratings)
	return out, nil
}

func (r *userRepo) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return "", ErrNotFound
	}
	return u.Role, nil
}

// upsertRating reemplaza la entrada del rater o la agrega al final.
// Comment vacío conserva el comment anterior, como el backend original.
func upsertRating(list []ratings.Rating, in ratings.Rating) []ratings.Rating {
	for i, existing := range list {
		if existing.By == in.By {
			if in.Comment == "" {
				in.Comment = existing.Comment
			}
			list[i] = in
			return list
		}
	}
	return append(list, in)
}
