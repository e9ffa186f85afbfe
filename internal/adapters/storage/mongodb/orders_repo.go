package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/orders"
)

type orderDoc struct {
	ID          string        `bson:"_id"`
	User        string        `bson:"user"`
	Products    []orders.Line `bson:"products"`
	TotalAmount float64       `bson:"totalAmount"`
	Status      string        `bson:"status"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func toOrderDoc(o orders.Order) orderDoc {
	return orderDoc{
		ID:          o.ID,
		User:        o.UserID,
		Products:    o.Products,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (d orderDoc) toDomain() orders.Order {
	return orders.Order{
		ID:          d.ID,
		UserID:      d.User,
		Products:    d.Products,
		TotalAmount: d.TotalAmount,
		Status:      orders.Status(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type orderRepo struct {
	col *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) orders.Repository {
	return &orderRepo{col: db.Collection("orders")}
}

func (r *orderRepo) Create(ctx context.Context, o orders.Order) error {
	_, err := r.col.InsertOne(ctx, toOrderDoc(o))
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	var doc orderDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return orders.Order{}, ErrNotFound
	}
	if err != nil {
		return orders.Order{}, err
	}
	return doc.toDomain(), nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]orders.Order, 0)
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *orderRepo) Update(ctx context.Context, o orders.Order) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, toOrderDoc(o))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
