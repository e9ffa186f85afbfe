package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/shelterpets"
)

type shelterPetDoc struct {
	ID             string                `bson:"_id"`
	Shelter        string                `bson:"shelter"`
	Name           string                `bson:"name"`
	Breed          string                `bson:"breed,omitempty"`
	Age            int                   `bson:"age,omitempty"`
	HealthStatus   string                `bson:"healthStatus,omitempty"`
	Images         []string              `bson:"images"`
	CareLogs       []shelterpets.CareLog `bson:"careLogs"`
	AdoptionStatus string                `bson:"adoptionStatus"`
	CreatedAt      time.Time             `bson:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt"`
}

func toShelterPetDoc(p shelterpets.ShelterPet) shelterPetDoc {
	doc := shelterPetDoc{
		ID:             p.ID,
		Shelter:        p.ShelterID,
		Name:           p.Name,
		Breed:          p.Breed,
		Age:            p.Age,
		HealthStatus:   p.HealthStatus,
		Images:         p.Images,
		CareLogs:       p.CareLogs,
		AdoptionStatus: string(p.AdoptionStatus),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if doc.CareLogs == nil {
		doc.CareLogs = []shelterpets.CareLog{}
	}
	return doc
}

func (d shelterPetDoc) toDomain() shelterpets.ShelterPet {
	return shelterpets.ShelterPet{
		ID:             d.ID,
		ShelterID:      d.Shelter,
		Name:           d.Name,
		Breed:          d.Breed,
		Age:            d.Age,
		HealthStatus:   d.HealthStatus,
		Images:         d.Images,
		CareLogs:       d.CareLogs,
		AdoptionStatus: shelterpets.AdoptionStatus(d.AdoptionStatus),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type shelterPetRepo struct {
	col *mongo.Collection
}

func NewShelterPetRepo(db *mongo.Database) shelterpets.Repository {
	return &shelterPetRepo{col: db.Collection("shelter_pets")}
}

func (r *shelterPetRepo) Create(ctx context.Context, p shelterpets.ShelterPet) error {
	_, err := r.col.InsertOne(ctx, toShelterPetDoc(p))
	return err
}

func (r *shelterPetRepo) GetByID(ctx context.Context, id string) (shelterpets.ShelterPet, error) {
	var doc shelterPetDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return shelterpets.ShelterPet{}, ErrNotFound
	}
	if err != nil {
		return shelterpets.ShelterPet{}, err
	}
	return doc.toDomain(), nil
}

func (r *shelterPetRepo) ListByShelter(ctx context.Context, shelterID string) ([]shelterpets.ShelterPet, error) {
	cur, err := r.col.Find(ctx, bson.M{"shelter": shelterID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]shelterpets.ShelterPet, 0)
	for cur.Next(ctx) {
		var doc shelterPetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *shelterPetRepo) Update(ctx context.Context, p shelterpets.ShelterPet) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toShelterPetDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shelterPetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
