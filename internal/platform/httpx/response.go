package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope de respuesta del API: { message, success, data? }.
// Mantener el shape exacto: el frontend ya depende de estos campos.
type envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

// OK escribe una respuesta exitosa con data opcional.
func OK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{
		Message: message,
		Success: true,
		Data:    data,
	})
}

// Fail escribe una respuesta de error con el mensaje dado.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		Message: message,
		Success: false,
	})
}

// Raw escribe un payload arbitrario sin envelope (p.ej. /totalCounts).
func Raw(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
