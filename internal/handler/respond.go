package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
)

// envelope es el formato de toda respuesta: {success, data?, message?, ...}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondDataCount(w http.ResponseWriter, status int, data any, count int) {
	writeJSON(w, status, envelope{Success: true, Data: data, Count: &count})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

// respondError mapea el error de servicio a su status HTTP.
func respondError(w http.ResponseWriter, err error) {
	respondErrorStatus(w, apperr.StatusCode(err), err.Error())
}

func respondErrorStatus(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
