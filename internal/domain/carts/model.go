package carts

import "time"

// Item es una línea del cart: referencia a producto + cantidad (nunca negativa).
type Item struct {
	ProductID string `json:"product" bson:"product"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart es el singleton por owner. Se crea lazy en el primer add.
type Cart struct {
	ID      string
	OwnerID string
	Items   []Item

	CreatedAt time.Time
	UpdatedAt time.Time
}
