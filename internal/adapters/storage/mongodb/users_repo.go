package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/domain/users"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

type vetProfileDoc struct {
	Specialization     string   `bson:"specialization,omitempty"`
	Experience         string   `bson:"experience,omitempty"`
	AvailableTimeSlots []string `bson:"availableTimeSlots,omitempty"`
}

type shelterProfileDoc struct {
	ShelterName   string `bson:"shelterName,omitempty"`
	ContactPerson string `bson:"contactPerson,omitempty"`
}

type userDoc struct {
	ID               string             `bson:"_id"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	ContactNumber    string             `bson:"contactNumber,omitempty"`
	Address          string             `bson:"address,omitempty"`
	Password         string             `bson:"password"`
	ProfileImg       string             `bson:"profileImg,omitempty"`
	Role             string             `bson:"role"`
	Vet              *vetProfileDoc     `bson:"vetProfile,omitempty"`
	Shelter          *shelterProfileDoc `bson:"shelterProfile,omitempty"`
	Ratings          []ratings.Rating   `bson:"ratings"`
	ResetToken       string             `bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time         `bson:"resetTokenExpiry,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toUserDoc(u users.User) userDoc {
	doc := userDoc{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		ContactNumber:    u.ContactNumber,
		Address:          u.Address,
		Password:         u.PasswordHash,
		ProfileImg:       u.ProfileImg,
		Role:             string(u.Role),
		Ratings:          u.Ratings,
		ResetToken:       u.ResetToken,
		ResetTokenExpiry: u.ResetTokenExpiry,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if doc.Ratings == nil {
		doc.Ratings = []ratings.Rating{}
	}
	if u.Vet != nil {
		doc.Vet = &vetProfileDoc{
			Specialization:     u.Vet.Specialization,
			Experience:         u.Vet.Experience,
			AvailableTimeSlots: u.Vet.AvailableTimeSlots,
		}
	}
	if u.Shelter != nil {
		doc.Shelter = &shelterProfileDoc{
			ShelterName:   u.Shelter.ShelterName,
			ContactPerson: u.Shelter.ContactPerson,
		}
	}
	return doc
}

func (d userDoc) toDomain() users.User {
	u := users.User{
		ID:               d.ID,
		Name:             d.Name,
		Email:            d.Email,
		ContactNumber:    d.ContactNumber,
		Address:          d.Address,
		PasswordHash:     d.Password,
		ProfileImg:       d.ProfileImg,
		Role:             auth.Role(d.Role),
		Ratings:          d.Ratings,
		ResetToken:       d.ResetToken,
		ResetTokenExpiry: d.ResetTokenExpiry,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.Vet != nil {
		u.Vet = &users.VetProfile{
			Specialization:     d.Vet.Specialization,
			Experience:         d.Vet.Experience,
			AvailableTimeSlots: d.Vet.AvailableTimeSlots,
		}
	}
	if d.Shelter != nil {
		u.Shelter = &users.ShelterProfile{
			ShelterName:   d.Shelter.ShelterName,
			ContactPerson: d.Shelter.ContactPerson,
		}
	}
	return u
}

type userRepo struct {
	col *mongo.Collection
}

// NewUserRepo arma el repo y asegura el índice único de email.
func NewUserRepo(db *mongo.Database) users.Repository {
	col := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &userRepo{col: col}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.col.InsertOne(ctx, toUserDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *userRepo) getOne(ctx context.Context, filter bson.M) (users.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return users.User{}, ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *userRepo) GetByResetToken(ctx context.Context, token string) (users.User, error) {
	if token == "" {
		return users.User{}, ErrNotFound
	}
	return r.getOne(ctx, bson.M{"resetToken": token})
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, toUserDoc(u))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) ListByRole(ctx context.Context, role auth.Role) ([]users.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": string(role)},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]users.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *userRepo) CountByRole(ctx context.Context, role auth.Role) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"role": string(role)})
}

// UpsertRating en una operación condicional del store, nunca
// read-modify-write del documento: primero $set sobre la entrada del rater;
// si no matcheó, $push guardado con $ne para no duplicar bajo carrera.
func (r *userRepo) UpsertRating(ctx context.Context, targetID string, in ratings.Rating) error {
	return upsertEmbeddedRating(ctx, r.col, targetID, in)
}

func (r *userRepo) ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error) {
	u, err := r.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return u.Ratings, nil
}

func (r *userRepo) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func upsertEmbeddedRating(ctx context.Context, col *mongo.Collection, targetID string, in ratings.Rating) error {
	set := bson.M{"ratings.$.rating": in.Score}
	if in.Comment != "" {
		// Comment vacío conserva el anterior, como el backend original.
		set["ratings.$.comment"] = in.Comment
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": targetID, "ratings.by": in.By},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = col.UpdateOne(ctx,
		bson.M{"_id": targetID, "ratings.by": bson.M{"$ne": in.By}},
		bson.M{"$push": bson.M{"ratings": in}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// O el target no existe, o otro request metió la entrada del rater
	// entre ambos updates; reintentar el $set cubre el segundo caso.
	res, err = col.UpdateOne(ctx,
		bson.M{"_id": targetID, "ratings.by": in.By},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
