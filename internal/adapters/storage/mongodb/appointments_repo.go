package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/appointments"
)

type appointmentDoc struct {
	ID                   string     `bson:"_id"`
	Pet                  string     `bson:"pet"`
	Owner                string     `bson:"owner"`
	Vet                  string     `bson:"vet"`
	Date                 time.Time  `bson:"date"`
	Status               string     `bson:"status"`
	Diagnosis            string     `bson:"diagnosis,omitempty"`
	PrescribedMedication []string   `bson:"prescribedMedication,omitempty"`
	FollowUp             *time.Time `bson:"followUp,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt"`
}

func toAppointmentDoc(a appointments.Appointment) appointmentDoc {
	return appointmentDoc{
		ID:                   a.ID,
		Pet:                  a.PetID,
		Owner:                a.OwnerID,
		Vet:                  a.VetID,
		Date:                 a.Date,
		Status:               string(a.Status),
		Diagnosis:            a.Diagnosis,
		PrescribedMedication: a.PrescribedMedication,
		FollowUp:             a.FollowUp,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func (d appointmentDoc) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:                   d.ID,
		PetID:                d.Pet,
		OwnerID:              d.Owner,
		VetID:                d.Vet,
		Date:                 d.Date,
		Status:               appointments.Status(d.Status),
		Diagnosis:            d.Diagnosis,
		PrescribedMedication: d.PrescribedMedication,
		FollowUp:             d.FollowUp,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type appointmentRepo struct {
	col *mongo.Collection
}

func NewAppointmentRepo(db *mongo.Database) appointments.Repository {
	return &appointmentRepo{col: db.Collection("appointments")}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.col.InsertOne(ctx, toAppointmentDoc(a))
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	var doc appointmentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return appointments.Appointment{}, ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}
	return doc.toDomain(), nil
}

func (r *appointmentRepo) list(ctx context.Context, filter bson.M) ([]appointments.Appointment, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]appointments.Appointment, 0)
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(ctx, bson.M{})
}

func (r *appointmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]appointments.Appointment, error) {
	return r.list(ctx, bson.M{"owner": ownerID})
}

func (r *appointmentRepo) ListByVet(ctx context.Context, vetID string) ([]appointments.Appointment, error) {
	return r.list(ctx, bson.M{"vet": vetID})
}

func (r *appointmentRepo) ExistsForVetAndPet(ctx context.Context, vetID, petID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"vet": vetID, "pet": petID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, toAppointmentDoc(a))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
