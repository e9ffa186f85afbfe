package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("not found")

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: make(map[string]Appointment)}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.byID {
		if a.VetID == vetID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ExistsForVetAndPet(ctx context.Context, vetID, petID string) (bool, error) {
	for _, a := range r.byID {
		if a.VetID == vetID && a.PetID == petID {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
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

func newTestService(pets testPetOwners, at time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, pets)
	svc.now = func() time.Time { return at }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestCreate_DateMustBeAfterToday(t *testing.T) {
	// Reloj fijo: 15:30 de un día cualquiera.
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, now)

	cases := []struct {
		name string
		date time.Time
		want error
	}{
		{"ayer", now.AddDate(0, 0, -1), ErrPastDate},
		{"hoy medianoche", time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), ErrPastDate},
		{"hoy más tarde", now.Add(2 * time.Hour), nil},
		{"mañana", time.Date(2025, 3, 11, 0, 0, 1, 0, time.Local), nil},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), "owner-1", CreateInput{
			PetID: "pet-1", VetID: "vet-1", Date: tc.date,
		})
		if err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreate_StartsPendingAndChecksPetOwner(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, now)
	tomorrow := now.AddDate(0, 0, 1)

	a, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID: "pet-1", VetID: "vet-1", Date: tomorrow,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %q", a.Status)
	}

	// Pet ajeno => forbidden; pet inexistente => not found.
	if _, err := svc.Create(context.Background(), "owner-2", CreateInput{
		PetID: "pet-1", VetID: "vet-1", Date: tomorrow,
	}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign pet, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID: "ghost", VetID: "vet-1", Date: tomorrow,
	}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing pet, got %v", err)
	}
}

func TestUpdate_OnlyAssignedVet(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, repo := newTestService(testPetOwners{"pet-1": "owner-1"}, now)

	a, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID: "pet-1", VetID: "vet-1", Date: now.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	approved := "approved"
	if _, err := svc.Update(context.Background(), a.ID, auth.Identity{ID: "vet-2", Role: auth.RoleVet},
		UpdateInput{Status: &approved}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for other vet, got %v", err)
	}

	bogus := "done"
	if _, err := svc.Update(context.Background(), a.ID, auth.Identity{ID: "vet-1", Role: auth.RoleVet},
		UpdateInput{Status: &bogus}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bogus status, got %v", err)
	}

	diagnosis := "otitis"
	updated, err := svc.Update(context.Background(), a.ID, auth.Identity{ID: "vet-1", Role: auth.RoleVet},
		UpdateInput{Status: &approved, Diagnosis: &diagnosis})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusApproved || updated.Diagnosis != "otitis" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if got := repo.byID[a.ID]; got.Status != StatusApproved {
		t.Fatalf("expected persisted status approved, got %q", got.Status)
	}
}

func TestDelete_OnlyParties(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, now)

	a, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID: "pet-1", VetID: "vet-1", Date: now.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), a.ID, auth.Identity{ID: "stranger"}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID, auth.Identity{ID: "vet-1"}); err != nil {
		t.Fatalf("delete by vet: %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID, auth.Identity{ID: "owner-1"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestHasAppointment(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(testPetOwners{"pet-1": "owner-1"}, now)

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID: "pet-1", VetID: "vet-1", Date: now.AddDate(0, 0, 1),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := svc.HasAppointment(context.Background(), "vet-1", "pet-1")
	if err != nil || !ok {
		t.Fatalf("expected appointment link for vet-1, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.HasAppointment(context.Background(), "vet-2", "pet-1")
	if err != nil || ok {
		t.Fatalf("expected no link for vet-2, got ok=%v err=%v", ok, err)
	}
}
