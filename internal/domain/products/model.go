package products

import (
	"time"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
)

// Category del catálogo. Cerrada, igual que en el schema original.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryGrooming    Category = "grooming"
	CategoryToys        Category = "toys"
	CategoryAccessories Category = "accessories"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryFood, CategoryGrooming, CategoryToys, CategoryAccessories:
		return true
	}
	return false
}

// Product es un item del catálogo. Ratings embebidos, una entrada por rater.
type Product struct {
	ID          string
	Name        string
	Category    Category
	Price       float64
	Description string
	Image       string
	Ratings     []ratings.Rating

	CreatedAt time.Time
	UpdatedAt time.Time
}
