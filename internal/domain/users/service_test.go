package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("not found")

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: make(map[string]User)}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, errRepoNotFound
}

func (r *testRepo) GetByResetToken(ctx context.Context, token string) (User, error) {
	for _, u := range r.byID {
		if u.ResetToken != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return User{}, errRepoNotFound
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) ListByRole(ctx context.Context, role auth.Role) ([]User, error) {
	var out []User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *testRepo) CountByRole(ctx context.Context, role auth.Role) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *testRepo) UpsertRating(ctx context.Context, targetID string, in ratings.Rating) error {
	u, ok := r.byID[targetID]
	if !ok {
		return errRepoNotFound
	}
	for i, existing := range u.Ratings {
		if existing.By == in.By {
			u.Ratings[i] = in
			r.byID[targetID] = u
			return nil
		}
	}
	u.Ratings = append(u.Ratings, in)
	r.byID[targetID] = u
	return nil
}

func (r *testRepo) ListRatings(ctx context.Context, targetID string) ([]ratings.Rating, error) {
	u, ok := r.byID[targetID]
	if !ok {
		return nil, errRepoNotFound
	}
	return u.Ratings, nil
}

func (r *testRepo) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	u, ok := r.byID[userID]
	if !ok {
		return "", errRepoNotFound
	}
	return u.Role, nil
}

func ownerInput(email string) RegisterInput {
	return RegisterInput{
		Name:          "Alice",
		Email:         email,
		ContactNumber: "555-0100",
		Address:       "Calle Falsa 123",
		Password:      "secret1",
		Role:          "owner",
	}
}

// -------------------------
// Tests
// -------------------------

func TestRegister_RoleProfiles(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	// 1) Vet sin specialization: nada se persiste
	in := ownerInput("vet@example.com")
	in.Role = "vet"
	in.Experience = "5 años"
	if _, err := svc.Register(context.Background(), in); err != ErrMissingVetFields {
		t.Fatalf("expected ErrMissingVetFields, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted after invalid register, got %d users", len(repo.byID))
	}

	// 2) Shelter sin contactPerson
	in = ownerInput("shelter@example.com")
	in.Role = "shelter"
	in.ShelterName = "Refugio Sur"
	if _, err := svc.Register(context.Background(), in); err != ErrMissingShelterFields {
		t.Fatalf("expected ErrMissingShelterFields, got %v", err)
	}

	// 3) Vet completo: perfil embebido, slots nunca nil
	in = ownerInput("vet@example.com")
	in.Role = "vet"
	in.Specialization = "felinos"
	in.Experience = "5 años"
	u, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register vet: %v", err)
	}
	if u.Vet == nil || u.Vet.Specialization != "felinos" {
		t.Fatalf("expected vet profile, got %+v", u.Vet)
	}
	if u.Vet.AvailableTimeSlots == nil {
		t.Fatal("expected empty slice for slots, got nil")
	}

	// 4) Shelter completo: el display name es el shelterName
	in = ownerInput("shelter@example.com")
	in.Role = "shelter"
	in.ShelterName = "Refugio Sur"
	in.ContactPerson = "Marta"
	u, err = svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register shelter: %v", err)
	}
	if u.Name != "Refugio Sur" {
		t.Fatalf("expected shelter name as display name, got %q", u.Name)
	}

	// 5) Rol desconocido
	in = ownerInput("x@example.com")
	in.Role = "superuser"
	if _, err := svc.Register(context.Background(), in); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegister_HashesPasswordAndLowercasesEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	in := ownerInput("Alice@Example.COM")
	u, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatal("expected hashed password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("hash does not match original password")
	}

	// Mismo email (otro casing) => tomado
	if _, err := svc.Register(context.Background(), ownerInput("ALICE@example.com")); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), ownerInput("alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestResetPassword_TokenLifecycle(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	if _, err := svc.Register(context.Background(), ownerInput("alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.ForgotPassword(context.Background(), "alice@example.com")
	if err != nil || token == "" {
		t.Fatalf("forgot password: token=%q err=%v", token, err)
	}

	// 1) Token vencido (16 min después) => rechazado
	at = at.Add(16 * time.Minute)
	if err := svc.ResetPassword(context.Background(), token, "newpass1"); err != ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken after expiry, got %v", err)
	}

	// 2) Token fresco dentro de la ventana => password actualizado
	token, err = svc.ForgotPassword(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("forgot password again: %v", err)
	}
	at = at.Add(14 * time.Minute)
	if err := svc.ResetPassword(context.Background(), token, "newpass1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "secret1"); err != ErrInvalidCredentials {
		t.Fatalf("expected old password rejected, got %v", err)
	}

	// 3) El token es de un solo uso
	if err := svc.ResetPassword(context.Background(), token, "another1"); err != ErrInvalidResetToken {
		t.Fatalf("expected token consumed, got %v", err)
	}
}

func TestUpdateProfile_Allowlist(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	in := ownerInput("vet@example.com")
	in.Role = "vet"
	in.Specialization = "felinos"
	in.Experience = "5 años"
	u, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "Dra. Vega"
	specialization := "exóticos"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateInput{
		Name:           &name,
		Specialization: &specialization,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Dra. Vega" || updated.Vet.Specialization != "exóticos" {
		t.Fatalf("unexpected profile after update: %+v", updated)
	}
	// El rol y el email no se tocan por esta vía.
	if updated.Role != auth.RoleVet || updated.Email != "vet@example.com" {
		t.Fatalf("role/email must be immutable, got %+v", updated)
	}
}
