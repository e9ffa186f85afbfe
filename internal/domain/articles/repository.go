package articles

import "context"

type Repository interface {
	Create(ctx context.Context, a Article) error
	GetByID(ctx context.Context, id string) (Article, error)
	// List filtra por categoría si category != "".
	List(ctx context.Context, category Category) ([]Article, error)
	Update(ctx context.Context, a Article) error
	Delete(ctx context.Context, id string) error
}
