package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asif7480/FurShield-backend/internal/domain/articles"
)

type articleDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Category  string    `bson:"category"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toArticleDoc(a articles.Article) articleDoc {
	return articleDoc{
		ID:        a.ID,
		Title:     a.Title,
		Category:  string(a.Category),
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (d articleDoc) toDomain() articles.Article {
	return articles.Article{
		ID:        d.ID,
		Title:     d.Title,
		Category:  articles.Category(d.Category),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type articleRepo struct {
	col *mongo.Collection
}

func NewArticleRepo(db *mongo.Database) articles.Repository {
	return &articleRepo{col: db.Collection("care_articles")}
}

func (r *articleRepo) Create(ctx context.Context, a articles.Article) error {
	_, err := r.col.InsertOne(ctx, toArticleDoc(a))
	return err
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (articles.Article, error) {
	var doc articleDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return articles.Article{}, ErrNotFound
	}
	if err != nil {
		return articles.Article{}, err
	}
	return doc.toDomain(), nil
}

func (r *articleRepo) List(ctx context.Context, category articles.Category) ([]articles.Article, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = string(category)
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]articles.Article, 0)
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *articleRepo) Update(ctx context.Context, a articles.Article) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, toArticleDoc(a))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *articleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
