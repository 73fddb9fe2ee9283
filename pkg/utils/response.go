package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"council-backend/internal/billing"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a JSON error body with the status implied by the billing
// error taxonomy: validation 400, not found 404, conflict 409, else 500.
func Error(w http.ResponseWriter, err error) {
	var (
		verr *billing.ValidationError
		nerr *billing.NotFoundError
		cerr *billing.ConflictError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.As(err, &nerr):
		status = http.StatusNotFound
	case errors.As(err, &cerr):
		status = http.StatusConflict
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}
