package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/pets"
)

type petDoc struct {
	ID             string    `bson:"_id"`
	Owner          string    `bson:"owner"`
	Name           string    `bson:"name"`
	Species        string    `bson:"species"`
	Breed          string    `bson:"breed,omitempty"`
	Age            int       `bson:"age,omitempty"`
	Gender         string    `bson:"gender,omitempty"`
	MedicalHistory string    `bson:"medicalHistory,omitempty"`
	Image          string    `bson:"image,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:             p.ID,
		Owner:          p.OwnerID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Age:            p.Age,
		Gender:         p.Gender,
		MedicalHistory: p.MedicalHistory,
		Image:          p.Image,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d petDoc) toDomain() pets.Pet {
	return pets.Pet{
		ID:             d.ID,
		OwnerID:        d.Owner,
		Name:           d.Name,
		Species:        d.Species,
		Breed:          d.Breed,
		Age:            d.Age,
		Gender:         d.Gender,
		MedicalHistory: d.MedicalHistory,
		Image:          d.Image,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type petRepo struct {
	col *mongo.Collection
}

func NewPetRepo(db *mongo.Database) pets.Repository {
	return &petRepo{col: db.Collection("pets")}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.col.InsertOne(ctx, toPetDoc(p))
	return err
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var doc petDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return pets.Pet{}, ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return doc.toDomain(), nil
}

func (r *petRepo) list(ctx context.Context, filter bson.M) ([]pets.Pet, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0)
	for cur.Next(ctx) {
		var doc petDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, bson.M{})
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.list(ctx, bson.M{"owner": ownerID})
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPetDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *petRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
