package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

func callGate(t *testing.T, gate func(http.Handler) http.Handler, identity *auth.Identity) int {
	t.Helper()

	passed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if identity != nil {
		req = req.WithContext(WithIdentity(req.Context(), *identity))
	}

	rec := httptest.NewRecorder()
	gate(passed).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	gate := RequireRoles(auth.RoleOwner)

	if st := callGate(t, gate, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func TestRequireRoles_RoleOutsideSet(t *testing.T) {
	gate := RequireRoles(auth.RoleOwner)

	vet := &auth.Identity{ID: "v1", Role: auth.RoleVet}
	if st := callGate(t, gate, vet); st != http.StatusForbidden {
		t.Fatalf("expected 403 for vet on owner route, got %d", st)
	}
}

func TestRequireRoles_AdminHasNoImplicitOverride(t *testing.T) {
	gate := RequireRoles(auth.RoleOwner, auth.RoleVet)

	admin := &auth.Identity{ID: "a1", Role: auth.RoleAdmin}
	if st := callGate(t, gate, admin); st != http.StatusForbidden {
		t.Fatalf("expected 403 for admin not listed, got %d", st)
	}

	gateWithAdmin := RequireRoles(auth.RoleOwner, auth.RoleAdmin)
	if st := callGate(t, gateWithAdmin, admin); st != http.StatusOK {
		t.Fatalf("expected 200 for admin explicitly listed, got %d", st)
	}
}

func TestRequireRoles_AllowsListedRole(t *testing.T) {
	gate := RequireRoles(auth.RoleShelter)

	shelter := &auth.Identity{ID: "s1", Role: auth.RoleShelter}
	if st := callGate(t, gate, shelter); st != http.StatusOK {
		t.Fatalf("expected 200 for shelter, got %d", st)
	}
}
