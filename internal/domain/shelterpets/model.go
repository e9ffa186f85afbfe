package shelterpets

import "time"

// AdoptionStatus del listing. Default: available.
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "available"
	StatusAdopted   AdoptionStatus = "adopted"
	StatusPending   AdoptionStatus = "pending"
)

func ValidAdoptionStatus(s AdoptionStatus) bool {
	switch s {
	case StatusAvailable, StatusAdopted, StatusPending:
		return true
	}
	return false
}

// CareLog es una entrada de cuidado; la fecha la pone el server.
type CareLog struct {
	Date     time.Time `json:"date" bson:"date"`
	Feeding  string    `json:"feeding,omitempty" bson:"feeding,omitempty"`
	Grooming string    `json:"grooming,omitempty" bson:"grooming,omitempty"`
	Medical  string    `json:"medical,omitempty" bson:"medical,omitempty"`
}

// ShelterPet es un pet listado por un shelter para adopción.
type ShelterPet struct {
	ID        string
	ShelterID string

	Name         string
	Breed        string
	Age          int
	HealthStatus string
	Images       []string
	CareLogs     []CareLog

	AdoptionStatus AdoptionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
