package ratings

import (
	"context"
	"sync"
	"testing"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// -------------------------
// Test stores (in-memory)
// -------------------------

type testStore struct {
	mu     sync.Mutex
	byID   map[string][]Rating
	known  map[string]bool
	roleOf map[string]auth.Role
}

func newTestStore(ids ...string) *testStore {
	s := &testStore{
		byID:   make(map[string][]Rating),
		known:  make(map[string]bool),
		roleOf: make(map[string]auth.Role),
	}
	for _, id := range ids {
		s.known[id] = true
	}
	return s
}

func (s *testStore) UpsertRating(ctx context.Context, targetID string, r Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.known[targetID] {
		return ErrNotFound
	}
	list := s.byID[targetID]
	for i, existing := range list {
		if existing.By == r.By {
			if r.Comment == "" {
				r.Comment = existing.Comment
			}
			list[i] = r
			s.byID[targetID] = list
			return nil
		}
	}
	s.byID[targetID] = append(list, r)
	return nil
}

func (s *testStore) ListRatings(ctx context.Context, targetID string) ([]Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.known[targetID] {
		return nil, ErrNotFound
	}
	out := make([]Rating, len(s.byID[targetID]))
	copy(out, s.byID[targetID])
	return out, nil
}

func (s *testStore) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roleOf[userID]
	if !ok {
		return "", ErrNotFound
	}
	return role, nil
}

func (s *testStore) addUser(id string, role auth.Role) {
	s.known[id] = true
	s.roleOf[id] = role
}

// -------------------------
// Tests
// -------------------------

func TestAddOrUpdate_Validation(t *testing.T) {
	products := newTestStore("p1")
	svc := NewService(newTestStore(), products)

	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "product", TargetID: "p1", RaterID: "u1", Score: 0,
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for score 0, got %v", err)
	}
	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "product", TargetID: "p1", RaterID: "u1", Score: 6,
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for score 6, got %v", err)
	}
	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "shelter", TargetID: "p1", RaterID: "u1", Score: 3,
	}); err != ErrInvalidTarget {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestAddOrUpdate_UserTargetRoleGate(t *testing.T) {
	users := newTestStore()
	users.addUser("vet-1", auth.RoleVet)
	users.addUser("shelter-1", auth.RoleShelter)
	users.addUser("owner-1", auth.RoleOwner)
	svc := NewService(users, newTestStore())

	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "user", TargetID: "vet-1", RaterID: "u1", Score: 4,
	}); err != nil {
		t.Fatalf("rating a vet: %v", err)
	}
	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "user", TargetID: "shelter-1", RaterID: "u1", Score: 4,
	}); err != nil {
		t.Fatalf("rating a shelter: %v", err)
	}
	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "user", TargetID: "owner-1", RaterID: "u1", Score: 4,
	}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden rating an owner, got %v", err)
	}
	if err := svc.AddOrUpdate(context.Background(), AddInput{
		TargetType: "user", TargetID: "ghost", RaterID: "u1", Score: 4,
	}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestAddOrUpdate_UpsertSameRater(t *testing.T) {
	products := newTestStore("p1")
	svc := NewService(newTestStore(), products)

	for _, score := range []int{2, 5} {
		if err := svc.AddOrUpdate(context.Background(), AddInput{
			TargetType: "product", TargetID: "p1", RaterID: "u1", Score: score,
		}); err != nil {
			t.Fatalf("upsert score %d: %v", score, err)
		}
	}

	sum, err := svc.Average(context.Background(), "product", "p1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if sum.Count != 1 {
		t.Fatalf("expected one rating after upsert, got %d", sum.Count)
	}
	if sum.Average != 5 {
		t.Fatalf("expected average 5, got %v", sum.Average)
	}
}

func TestAddOrUpdate_ConcurrentRatersBothPersist(t *testing.T) {
	products := newTestStore("p1")
	svc := NewService(newTestStore(), products)

	var wg sync.WaitGroup
	raters := []string{"u1", "u2", "u3", "u4"}
	for _, id := range raters {
		wg.Add(1)
		go func(raterID string) {
			defer wg.Done()
			if err := svc.AddOrUpdate(context.Background(), AddInput{
				TargetType: "product", TargetID: "p1", RaterID: raterID, Score: 4,
			}); err != nil {
				t.Errorf("concurrent rating by %s: %v", raterID, err)
			}
		}(id)
	}
	wg.Wait()

	sum, err := svc.Average(context.Background(), "product", "p1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if sum.Count != len(raters) {
		t.Fatalf("expected %d ratings, got %d", len(raters), sum.Count)
	}
}

func TestAverage_RoundingAndEmpty(t *testing.T) {
	products := newTestStore("p1", "p2")
	svc := NewService(newTestStore(), products)

	for i, score := range []int{3, 4, 4} {
		if err := svc.AddOrUpdate(context.Background(), AddInput{
			TargetType: "product", TargetID: "p1",
			RaterID: "u" + string(rune('a'+i)), Score: score,
		}); err != nil {
			t.Fatalf("seed rating: %v", err)
		}
	}

	sum, err := svc.Average(context.Background(), "product", "p1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	// 11/3 = 3.666... => 3.7 a un decimal
	if sum.Average != 3.7 || sum.Count != 3 {
		t.Fatalf("expected 3.7/3, got %v/%d", sum.Average, sum.Count)
	}

	empty, err := svc.Average(context.Background(), "product", "p2")
	if err != nil {
		t.Fatalf("average empty: %v", err)
	}
	if empty.Average != 0 || empty.Count != 0 {
		t.Fatalf("expected 0/0 for empty list, got %v/%d", empty.Average, empty.Count)
	}
}
