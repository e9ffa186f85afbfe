package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/carts"
)

type cartDoc struct {
	ID        string       `bson:"_id"`
	Owner     string       `bson:"owner"`
	Items     []carts.Item `bson:"items"`
	CreatedAt time.Time    `bson:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

func (d cartDoc) toDomain() carts.Cart {
	items := d.Items
	if items == nil {
		items = []carts.Item{}
	}
	return carts.Cart{
		ID:        d.ID,
		OwnerID:   d.Owner,
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type cartRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewCartRepo arma el repo y asegura el índice único por owner:
// el cart es un singleton por cuenta.
func NewCartRepo(db *mongo.Database) carts.Repository {
	col := db.Collection("carts")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &cartRepo{col: col, now: time.Now}
}

func (r *cartRepo) GetByOwner(ctx context.Context, ownerID string) (carts.Cart, error) {
	var doc cartDoc
	err := r.col.FindOne(ctx, bson.M{"owner": ownerID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return carts.Cart{}, carts.ErrCartNotFound
	}
	if err != nil {
		return carts.Cart{}, err
	}
	return doc.toDomain(), nil
}

// AddItem incrementa la línea con $inc posicional; si el producto no está,
// $push guardado con $ne (upsert crea el cart). Nunca se reescribe el
// documento entero: dos adds concurrentes suman ambos.
func (r *cartRepo) AddItem(ctx context.Context, ownerID, productID string, qty int) (carts.Cart, error) {
	now := r.now()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"owner": ownerID, "items.product": productID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": qty},
			"$set": bson.M{"updatedAt": now},
		})
	if err != nil {
		return carts.Cart{}, err
	}

	if res.MatchedCount == 0 {
		_, err = r.col.UpdateOne(ctx,
			bson.M{"owner": ownerID, "items.product": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"items": carts.Item{ProductID: productID, Quantity: qty}},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
			},
			options.Update().SetUpsert(true))
		if mongo.IsDuplicateKeyError(err) {
			// Otro request creó el cart o metió la línea entre ambos
			// updates; el $inc ahora sí matchea.
			_, err = r.col.UpdateOne(ctx,
				bson.M{"owner": ownerID, "items.product": productID},
				bson.M{
					"$inc": bson.M{"items.$.quantity": qty},
					"$set": bson.M{"updatedAt": now},
				})
		}
		if err != nil {
			return carts.Cart{}, err
		}
	}

	return r.GetByOwner(ctx, ownerID)
}

func (r *cartRepo) SetItemQuantity(ctx context.Context, ownerID, productID string, qty int) (carts.Cart, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"owner": ownerID, "items.product": productID},
		bson.M{
			"$set": bson.M{"items.$.quantity": qty, "updatedAt": r.now()},
		})
	if err != nil {
		return carts.Cart{}, err
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByOwner(ctx, ownerID); err != nil {
			return carts.Cart{}, err
		}
		return carts.Cart{}, carts.ErrItemNotFound
	}
	return r.GetByOwner(ctx, ownerID)
}

func (r *cartRepo) RemoveItem(ctx context.Context, ownerID, productID string) (carts.Cart, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"owner": ownerID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product": productID}},
			"$set":  bson.M{"updatedAt": r.now()},
		})
	if err != nil {
		return carts.Cart{}, err
	}
	if res.MatchedCount == 0 {
		return carts.Cart{}, carts.ErrCartNotFound
	}
	return r.GetByOwner(ctx, ownerID)
}

func (r *cartRepo) Clear(ctx context.Context, ownerID string) (carts.Cart, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"owner": ownerID},
		bson.M{
			"$set": bson.M{"items": []carts.Item{}, "updatedAt": r.now()},
		})
	if err != nil {
		return carts.Cart{}, err
	}
	if res.MatchedCount == 0 {
		return carts.Cart{}, carts.ErrCartNotFound
	}
	return r.GetByOwner(ctx, ownerID)
}
