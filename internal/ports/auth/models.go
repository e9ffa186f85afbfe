package auth

// Role es el tag de rol de una cuenta. Set cerrado; ninguna ruta lo muta.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleVet     Role = "vet"
	RoleShelter Role = "shelter"
	RoleAdmin   Role = "admin"
)

// ValidRole valida contra el set cerrado de roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleVet, RoleShelter, RoleAdmin:
		return true
	default:
		return false
	}
}

// Claims representa lo extraído de un token de sesión verificado.
// El rol NO viaja en el token: se relee del store en cada request,
// así un cambio de rol aplica de inmediato (un lookup extra por request).
type Claims struct {
	UserID string
}

// Identity es la vista de la cuenta autenticada que va al contexto del request.
// Nunca incluye el hash de password.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  Role
}
