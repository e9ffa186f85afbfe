package middleware

import (
	"net/http"

	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// RequireRoles produce un guard que solo deja pasar identidades cuyo rol
// esté en el set permitido.
// - Sin identidad en contexto => 401 (autenticación ausente o tragada upstream).
// - Rol fuera del set => 403. Admin NO tiene override implícito: si una ruta
//   lo admite, hay que listarlo.
// El gate chequea rol, no ownership; eso lo asevera cada servicio sobre el
// recurso ya fetcheado.
func RequireRoles(allowed ...auth.Role) func(http.Handler) http.Handler {
	set := make(map[auth.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok || identity.Role == "" {
				httpx.Fail(w, http.StatusUnauthorized, "Access denied. No role assigned.")
				return
			}

			if _, ok := set[identity.Role]; !ok {
				httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
