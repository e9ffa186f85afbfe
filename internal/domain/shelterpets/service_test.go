package shelterpets

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
	byID map[string]ShelterPet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: make(map[string]ShelterPet)}
}

func (r *testRepo) Create(ctx context.Context, p ShelterPet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (ShelterPet, error) {
	p, ok := r.byID[id]
	if !ok {
		return ShelterPet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID string) ([]ShelterPet, error) {
	var out []ShelterPet
	for _, p := range r.byID {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p ShelterPet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService(at time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return at }
	return svc, repo
}

func shelter(id string) auth.Identity { return auth.Identity{ID: id, Role: auth.RoleShelter} }

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsAndImageCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(now)

	p, err := svc.Create(context.Background(), "shelter-1", CreateInput{
		Name: "Rocky", Breed: "mixed", Age: 2, HealthStatus: "sano",
		Images: []string{"a.jpg", "b.jpg", "c.jpg"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.AdoptionStatus != StatusAvailable {
		t.Fatalf("expected available status by default, got %q", p.AdoptionStatus)
	}
	if p.CareLogs == nil || len(p.CareLogs) != 0 {
		t.Fatalf("expected empty care log, got %+v", p.CareLogs)
	}

	// Cuarta imagen: rechazada
	if _, err := svc.Create(context.Background(), "shelter-1", CreateInput{
		Name:   "Luna",
		Images: []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"},
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for 4 images, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "shelter-1", CreateInput{Name: "  "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestUpdate_OwnershipAndImageCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(now)

	p, err := svc.Create(context.Background(), "shelter-1", CreateInput{Name: "Rocky"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	name := "Rocco"
	if _, err := svc.Update(context.Background(), p.ID, shelter("shelter-2"),
		UpdateInput{Name: &name}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign shelter, got %v", err)
	}

	if _, err := svc.Update(context.Background(), p.ID, shelter("shelter-1"),
		UpdateInput{Images: []string{"a", "b", "c", "d"}}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for 4 images on update, got %v", err)
	}

	updated, err := svc.Update(context.Background(), p.ID, shelter("shelter-1"), UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Rocco" {
		t.Fatalf("expected renamed pet, got %q", updated.Name)
	}

	// Admin pasa el gate de ownership
	if _, err := svc.Update(context.Background(), p.ID, auth.Identity{ID: "root", Role: auth.RoleAdmin},
		UpdateInput{Name: &name}); err != nil {
		t.Fatalf("update by admin: %v", err)
	}
}

func TestAddCareLog_ServerStampsDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, repo := newTestService(now)

	p, err := svc.Create(context.Background(), "shelter-1", CreateInput{Name: "Rocky"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.AddCareLog(context.Background(), p.ID, shelter("shelter-2"),
		CareLogInput{Feeding: "2x"}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.AddCareLog(context.Background(), p.ID, shelter("shelter-1"), CareLogInput{
		Feeding: "2x croquetas", Grooming: "baño", Medical: "desparasitado",
	})
	if err != nil {
		t.Fatalf("add care log: %v", err)
	}
	if len(updated.CareLogs) != 1 {
		t.Fatalf("expected one care log entry, got %d", len(updated.CareLogs))
	}
	entry := updated.CareLogs[0]
	if !entry.Date.Equal(now) {
		t.Fatalf("expected server-stamped date %v, got %v", now, entry.Date)
	}
	if entry.Feeding != "2x croquetas" || entry.Medical != "desparasitado" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	// Las entradas se acumulan y persisten.
	if _, err := svc.AddCareLog(context.Background(), p.ID, shelter("shelter-1"),
		CareLogInput{Feeding: "3x"}); err != nil {
		t.Fatalf("second care log: %v", err)
	}
	if got := repo.byID[p.ID]; len(got.CareLogs) != 2 {
		t.Fatalf("expected two persisted entries, got %d", len(got.CareLogs))
	}
}

func TestUpdateAdoptionStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc, _ := newTestService(now)

	p, err := svc.Create(context.Background(), "shelter-1", CreateInput{Name: "Rocky"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.UpdateAdoptionStatus(context.Background(), p.ID, shelter("shelter-1"), "lost"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bogus status, got %v", err)
	}
	if _, err := svc.UpdateAdoptionStatus(context.Background(), p.ID, shelter("shelter-2"), StatusAdopted); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateAdoptionStatus(context.Background(), p.ID, shelter("shelter-1"), StatusAdopted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.AdoptionStatus != StatusAdopted {
		t.Fatalf("expected adopted, got %q", updated.AdoptionStatus)
	}

	if _, err := svc.UpdateAdoptionStatus(context.Background(), "ghost", shelter("shelter-1"), StatusPending); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
