package articles

import "time"

type Category string

const (
	CategoryFeeding  Category = "feeding"
	CategoryHygiene  Category = "hygiene"
	CategoryExercise Category = "exercise"
	CategoryGeneral  Category = "general"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryFeeding, CategoryHygiene, CategoryExercise, CategoryGeneral:
		return true
	}
	return false
}

// Article es una nota de cuidado publicada por un admin.
type Article struct {
	ID       string
	Title    string
	Category Category
	Content  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
