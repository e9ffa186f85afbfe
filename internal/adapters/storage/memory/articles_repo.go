package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/asif7480/FurShield-backend/internal/domain/articles"
)

type articleRepo struct {
	mu   sync.RWMutex
	byID map[string]articles.Article
}

func NewArticleRepo() articles.Repository {
	return &articleRepo{
		byID: make(map[string]articles.Article),
	}
}

func (r *articleRepo) Create(ctx context.Context, a articles.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("article id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("article already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (articles.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return articles.Article{}, ErrNotFound
	}
	return a, nil
}

func (r *articleRepo) List(ctx context.Context, category articles.Category) ([]articles.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]articles.Article, 0)
	for _, a := range r.byID {
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *articleRepo) Update(ctx context.Context, a articles.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *articleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
