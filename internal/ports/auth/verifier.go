package auth

import "context"

// TokenIssuer emite un token de sesión firmado para una cuenta.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier verifica un token y devuelve claims o error.
// Error => token ausente/malformado/mal firmado/expirado; el middleware corta con 401.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityStore resuelve la identidad fresca detrás de unos claims.
// Lo implementa el servicio de users; existe acá para que el middleware
// no importe el módulo de dominio.
type IdentityStore interface {
	FindIdentity(ctx context.Context, userID string) (Identity, error)
}
