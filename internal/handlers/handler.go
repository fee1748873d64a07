package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gitlab.com/thinkfirst.net/internal/handlers/response"
)

// MaxBodyBytes caps every request body
const MaxBodyBytes = 50 << 10

// DecodeJSON reads the request body into v and writes a 400 or 413 on failure.
// It reports whether the handler may continue.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ResponseError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		ResponseError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func ResponseError(w http.ResponseWriter, message string, code int) {
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: code})
}

// ExtendWriteDeadline pushes the write deadline d past now so a slow handler
// outlives the server WriteTimeout. Writers without deadline support are ignored.
func ExtendWriteDeadline(w http.ResponseWriter, d time.Duration) error {
	err := http.NewResponseController(w).SetWriteDeadline(time.Now().Add(d))
	if err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
