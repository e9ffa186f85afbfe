package appointments

import "time"

// Status del ciclo de vida de un appointment.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRescheduled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Appointment liga owner + pet + vet en una fecha.
// Los campos de tratamiento los setea el vet al actualizar.
type Appointment struct {
	ID      string
	PetID   string
	OwnerID string
	VetID   string

	Date   time.Time
	Status Status

	Diagnosis            string
	PrescribedMedication []string
	FollowUp             *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
