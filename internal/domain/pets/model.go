package pets

import "time"

// Pet es el perfil de una mascota registrada por un owner.
// Borrar un pet NO borra sus health records ni appointments (sin cascada,
// igual que el backend anterior).
type Pet struct {
	ID      string
	OwnerID string

	Name           string
	Species        string
	Breed          string
	Age            int
	Gender         string
	MedicalHistory string
	Image          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
