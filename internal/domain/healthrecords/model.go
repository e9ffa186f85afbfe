package healthrecords

import "time"

// Treatment es el detalle clínico cargado por un vet.
type Treatment struct {
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	VetID       string     `json:"vet,omitempty" bson:"vet,omitempty"`
}

type Insurance struct {
	PolicyNumber string `json:"policyNumber,omitempty" bson:"policyNumber,omitempty"`
	Provider     string `json:"provider,omitempty" bson:"provider,omitempty"`
}

// Record es el historial de salud de un pet. Sin cascada: borrar el pet
// no borra sus records.
type Record struct {
	ID    string
	PetID string

	VaccinationDate *time.Time
	Illness         string
	Treatment       *Treatment
	Insurance       *Insurance

	CreatedAt time.Time
	UpdatedAt time.Time
}
