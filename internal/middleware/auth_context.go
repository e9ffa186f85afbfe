package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// SessionCookieName es la cookie donde viaja el token de sesión.
const SessionCookieName = "token"

// Authenticate corta con 401 si no hay token válido.
// Flujo: cookie "token" (o Authorization: Bearer como fallback) -> Verify ->
// lookup de la cuenta en el store -> identity al contexto.
// Si la cuenta ya no existe (borrada después de emitir el token) también es 401,
// explícito: no dejamos pasar requests con identidad ausente.
func Authenticate(verifier auth.TokenVerifier, store auth.IdentityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				httpx.Fail(w, http.StatusUnauthorized, "Token not found")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				httpx.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			identity, err := store.FindIdentity(r.Context(), claims.UserID)
			if err != nil {
				httpx.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity devuelve la identidad autenticada del contexto, si la hay.
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// WithIdentity inyecta una identidad en el contexto. Solo para tests.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
