package users

import (
	"time"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// User es la cuenta polimórfica: header común + payload según rol.
// En vez de un record plano con campos nullables, el payload de rol
// va en structs opcionales (Vet/Shelter), nil para los demás roles.
type User struct {
	ID string

	Name          string
	Email         string // siempre lowercase; único
	ContactNumber string
	Address       string
	PasswordHash  string
	ProfileImg    string

	Role auth.Role

	Vet     *VetProfile
	Shelter *ShelterProfile

	Ratings []ratings.Rating

	// Reset de password: token de un solo uso con expiry absoluto.
	// Se limpian ambos tras un reset exitoso.
	ResetToken       string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type VetProfile struct {
	Specialization     string   `json:"specialization"`
	Experience         string   `json:"experience"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
}

type ShelterProfile struct {
	ShelterName   string `json:"shelterName"`
	ContactPerson string `json:"contactPerson"`
}

// Identity devuelve la vista que va al contexto del request (sin hash).
func (u User) Identity() auth.Identity {
	return auth.Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// PublicUser es la vista de respuesta: nunca expone hash ni reset token.
type PublicUser struct {
	ID            string           `json:"_id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	ContactNumber string           `json:"contactNumber,omitempty"`
	Address       string           `json:"address,omitempty"`
	ProfileImg    string           `json:"profileImg,omitempty"`
	Role          auth.Role        `json:"role"`
	Vet           *VetProfile      `json:"vetProfile,omitempty"`
	Shelter       *ShelterProfile  `json:"shelterProfile,omitempty"`
	Ratings       []ratings.Rating `json:"ratings,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		ProfileImg:    u.ProfileImg,
		Role:          u.Role,
		Vet:           u.Vet,
		Shelter:       u.Shelter,
		Ratings:       u.Ratings,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Summary es el payload mínimo que devuelven register/login.
type Summary struct {
	ID    string    `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
