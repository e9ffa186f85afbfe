package healthrecords

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// -------------------------
// Test doubles
// -------------------------

var errRepoNotFound = errors.New("not found")

type testRepo struct {
	byID map[string]Record
}

func newTestRepo() *testRepo {
	return &testRepo{byID: make(map[string]Record)}
}

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Record, error) {
	var out []Record
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

type testPetOwners map[string]string

func (p testPetOwners) OwnerOf(ctx context.Context, petID string) (string, error) {
	owner, ok := p[petID]
	if !ok {
		return "", errRepoNotFound
	}
	return owner, nil
}

// testAppointments: set de pares vet|pet ligados por appointment.
type testAppointments map[string]bool

func (a testAppointments) HasAppointment(ctx context.Context, vetID, petID string) (bool, error) {
	return a[vetID+"|"+petID], nil
}

func newTestService(pets testPetOwners, appts testAppointments, at time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, pets, appts)
	svc.now = func() time.Time { return at }
	return svc, repo
}

func owner(id string) auth.Identity { return auth.Identity{ID: id, Role: auth.RoleOwner} }
func vet(id string) auth.Identity   { return auth.Identity{ID: id, Role: auth.RoleVet} }

// -------------------------
// Tests
// -------------------------

func TestCreate_VaccinationDateMustBeFuture(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, testAppointments{}, now)

	cases := []struct {
		name string
		date time.Time
		want error
	}{
		{"ayer", now.AddDate(0, 0, -1), ErrPastVaccinationDate},
		{"hoy medianoche", time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), ErrPastVaccinationDate},
		{"hoy más tarde", now.Add(2 * time.Hour), nil},
		{"mañana", now.AddDate(0, 0, 1), nil},
	}
	for _, tc := range cases {
		d := tc.date
		_, err := svc.Create(context.Background(), owner("owner-1"), CreateInput{
			PetID: "pet-1", VaccinationDate: &d, Illness: "moquillo",
		})
		if err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Sin fecha de vacunación no hay nada que validar.
	if _, err := svc.Create(context.Background(), owner("owner-1"), CreateInput{
		PetID: "pet-1", Illness: "otitis",
	}); err != nil {
		t.Fatalf("create without vaccination date: %v", err)
	}
}

func TestCreate_AccessGate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	appts := testAppointments{"vet-1|pet-1": true}
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, appts, now)

	in := CreateInput{PetID: "pet-1", Illness: "otitis"}

	// 1) Owner ajeno => forbidden
	if _, err := svc.Create(context.Background(), owner("owner-2"), in); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign owner, got %v", err)
	}

	// 2) Vet sin appointment con el pet => forbidden
	if _, err := svc.Create(context.Background(), vet("vet-2"), in); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for unlinked vet, got %v", err)
	}

	// 3) Vet ligado por appointment sí
	if _, err := svc.Create(context.Background(), vet("vet-1"), in); err != nil {
		t.Fatalf("create by linked vet: %v", err)
	}

	// 4) El dueño sí
	if _, err := svc.Create(context.Background(), owner("owner-1"), in); err != nil {
		t.Fatalf("create by owner: %v", err)
	}

	// 5) Admin pasa directo
	if _, err := svc.Create(context.Background(), auth.Identity{ID: "root", Role: auth.RoleAdmin}, in); err != nil {
		t.Fatalf("create by admin: %v", err)
	}

	// 6) Pet inexistente (vía owner) => not found
	if _, err := svc.Create(context.Background(), owner("owner-1"), CreateInput{
		PetID: "ghost", Illness: "x",
	}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing pet, got %v", err)
	}
}

func TestUpdate_GateAndVaccinationRule(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, testAppointments{}, now)

	rec, err := svc.Create(context.Background(), owner("owner-1"), CreateInput{
		PetID: "pet-1", Illness: "otitis",
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	// El gate se asevera sobre el pet del record ya fetcheado.
	illness := "moquillo"
	if _, err := svc.Update(context.Background(), rec.ID, owner("owner-2"),
		UpdateInput{Illness: &illness}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	past := now.AddDate(0, 0, -1)
	if _, err := svc.Update(context.Background(), rec.ID, owner("owner-1"),
		UpdateInput{VaccinationDate: &past}); err != ErrPastVaccinationDate {
		t.Fatalf("expected ErrPastVaccinationDate on update, got %v", err)
	}

	future := now.AddDate(0, 0, 7)
	updated, err := svc.Update(context.Background(), rec.ID, owner("owner-1"),
		UpdateInput{VaccinationDate: &future, Illness: &illness})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Illness != "moquillo" || updated.VaccinationDate == nil || !updated.VaccinationDate.Equal(future) {
		t.Fatalf("unexpected record after update: %+v", updated)
	}
}

func TestDelete_Gate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, repo := newTestService(testPetOwners{"pet-1": "owner-1"}, testAppointments{}, now)

	rec, err := svc.Create(context.Background(), owner("owner-1"), CreateInput{
		PetID: "pet-1", Illness: "otitis",
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	if err := svc.Delete(context.Background(), rec.ID, owner("owner-2")); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), rec.ID, owner("owner-1")); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if _, ok := repo.byID[rec.ID]; ok {
		t.Fatal("expected record removed from repo")
	}
	if err := svc.Delete(context.Background(), rec.ID, owner("owner-1")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
