package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/healthrecords"
)

type healthRecordDoc struct {
	ID              string                   `bson:"_id"`
	Pet             string                   `bson:"pet"`
	VaccinationDate *time.Time               `bson:"vaccinationDate,omitempty"`
	Illness         string                   `bson:"illness,omitempty"`
	Treatment       *healthrecords.Treatment `bson:"treatment,omitempty"`
	Insurance       *healthrecords.Insurance `bson:"insurance,omitempty"`
	CreatedAt       time.Time                `bson:"createdAt"`
	UpdatedAt       time.Time                `bson:"updatedAt"`
}

func toHealthRecordDoc(rec healthrecords.Record) healthRecordDoc {
	return healthRecordDoc{
		ID:              rec.ID,
		Pet:             rec.PetID,
		VaccinationDate: rec.VaccinationDate,
		Illness:         rec.Illness,
		Treatment:       rec.Treatment,
		Insurance:       rec.Insurance,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func (d healthRecordDoc) toDomain() healthrecords.Record {
	return healthrecords.Record{
		ID:              d.ID,
		PetID:           d.Pet,
		VaccinationDate: d.VaccinationDate,
		Illness:         d.Illness,
		Treatment:       d.Treatment,
		Insurance:       d.Insurance,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type healthRecordRepo struct {
	col *mongo.Collection
}

func NewHealthRecordRepo(db *mongo.Database) healthrecords.Repository {
	return &healthRecordRepo{col: db.Collection("health_records")}
}

func (r *healthRecordRepo) Create(ctx context.Context, rec healthrecords.Record) error {
	_, err := r.col.InsertOne(ctx, toHealthRecordDoc(rec))
	return err
}

func (r *healthRecordRepo) GetByID(ctx context.Context, id string) (healthrecords.Record, error) {
	var doc healthRecordDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return healthrecords.Record{}, ErrNotFound
	}
	if err != nil {
		return healthrecords.Record{}, err
	}
	return doc.toDomain(), nil
}

func (r *healthRecordRepo) ListByPet(ctx context.Context, petID string) ([]healthrecords.Record, error) {
	cur, err := r.col.Find(ctx, bson.M{"pet": petID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]healthrecords.Record, 0)
	for cur.Next(ctx) {
		var doc healthRecordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *healthRecordRepo) Update(ctx context.Context, rec healthrecords.Record) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, toHealthRecordDoc(rec))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *healthRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
