package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/notifications"
)

type notificationDoc struct {
	ID        string    `bson:"_id"`
	User      string    `bson:"user"`
	Title     string    `bson:"title"`
	Message   string    `bson:"message"`
	IsRead    bool      `bson:"isRead"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toNotificationDoc(n notifications.Notification) notificationDoc {
	return notificationDoc{
		ID:        n.ID,
		User:      n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (d notificationDoc) toDomain() notifications.Notification {
	return notifications.Notification{
		ID:        d.ID,
		UserID:    d.User,
		Title:     d.Title,
		Message:   d.Message,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type notificationRepo struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) notifications.Repository {
	return &notificationRepo{col: db.Collection("notifications")}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.col.InsertOne(ctx, toNotificationDoc(n))
	return err
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	var doc notificationDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return notifications.Notification{}, ErrNotFound
	}
	if err != nil {
		return notifications.Notification{}, err
	}
	return doc.toDomain(), nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string) ([]notifications.Notification, error) {
	cur, err := r.col.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]notifications.Notification, 0)
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *notificationRepo) Update(ctx context.Context, n notifications.Notification) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": n.ID}, toNotificationDoc(n))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
