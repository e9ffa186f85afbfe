package orders

import "time"

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusCancelled Status = "cancelled"
)

// Line es una línea snapshoteada del cart al momento de ordenar.
// El precio se congela acá; cambios posteriores del catálogo no la tocan.
type Line struct {
	ProductID string  `json:"product" bson:"product"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Order es un snapshot inmutable del cart. Solo el status muta
// (placed -> cancelled).
type Order struct {
	ID          string
	UserID      string
	Products    []Line
	TotalAmount float64
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
