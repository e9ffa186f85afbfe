package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
)

type productDoc struct {
	ID          string           `bson:"_id"`
	Name        string           `bson:"name"`
	Category    string           `bson:"category"`
	Price       float64          `bson:"price"`
	Description string           `bson:"description,omitempty"`
	Image       string           `bson:"image,omitempty"`
	Ratings     []ratings.Rating `bson:"ratings"`
	CreatedAt   time.Time        `bson:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt"`
}

func toProductDoc(p products.Product) productDoc {
	doc := productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Ratings:     p.Ratings,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if doc.Ratings == nil {
		doc.Ratings = []ratings.Rating{}
	}
	return doc
}

func (d productDoc) toDomain() products.Product {
	return products.Product{
		ID:          d.ID,
		Name:        d.Name,
		Category:    products.Category(d.Category),
		Price:       d.Price,
		Description: d.Description,
		Image:       d.Image,
		Ratings:     d.Ratings,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type productRepo struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) products.Repository {
	return &productRepo{col: db.Collection("products")}
}

func (r *productRepo) Create(ctx context.Context, p products.Product) error {
	_, err := r.col.InsertOne(ctx, toProductDoc(p))
	return err
}

func (r *productRepo) getOne(ctx context.Context, filter bson.M) (products.Product, error) {
	var doc productDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return products.Product{}, ErrNotFound
	}
	if err != nil {
		return products.Product{}, err
	}
	return doc.toDomain(), nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (products.Product, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *productRepo) GetByName(ctx context.Context, name string) (products.Product, error) {
	return r.getOne(ctx, bson.M{"name": name})
}

func (r *productRepo) List(ctx context.Context) ([]products.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]products.Product, 0)
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *productRepo) Update(ctx context.Context, p products.Product) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toProductDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *productRepo) UpsertRating(ctx context.Context, targetID string, in ratings.Rating) error {
	return upsertEmbeddedRating(ctx, r.col, targetID, in)
}

func (r *productRepo) ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error) {
	p, err := r.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return p.Ratings, nil
}
