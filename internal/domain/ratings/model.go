package ratings

// Rating es una entrada embebida en la lista de ratings de un user (vet/shelter)
// o de un producto. Una sola entrada por rater: upsert, nunca duplicado.
type Rating struct {
	By      string `json:"by" bson:"by"`
	Score   int    `json:"rating" bson:"rating"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// TargetType distingue el tipo de documento a ratear.
type TargetType string

const (
	TargetUser    TargetType = "user"
	TargetProduct TargetType = "product"
)

// Summary es el agregado que expone GET .../average.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
