package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/thinkfirst.net/internal/static/errs"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	write(w, err.StatusCode, Envelope{
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Success:    false,
	})
}

func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	if message == "" {
		message = "Success"
	}
	write(w, statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

func write(w http.ResponseWriter, statusCode int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{errs.CodeAndLanguageRequired, http.StatusBadRequest},
	{errs.UnsupportedLanguage, http.StatusBadRequest},
	{errs.EmailPasswordRequired, http.StatusBadRequest},
	{errs.EmailOTPRequired, http.StatusBadRequest},
	{errs.OTPExpired, http.StatusBadRequest},
	{errs.InvalidOTP, http.StatusBadRequest},
	{errs.TitleRequired, http.StatusBadRequest},
	{errs.UnknownQuestionField, http.StatusBadRequest},
	{errs.InvalidQuestionField, http.StatusBadRequest},
	{errs.EmptyQuestionUpdate, http.StatusBadRequest},
	{errs.ProblemRequired, http.StatusBadRequest},
	{errs.PlanRequired, http.StatusBadRequest},
	{errs.CodeRequired, http.StatusBadRequest},
	{errs.ErrorRequired, http.StatusBadRequest},
	{errs.InvalidCredentials, http.StatusUnauthorized},
	{errs.Unauthorized, http.StatusUnauthorized},
	{errs.InvalidToken, http.StatusUnauthorized},
	{errs.QuestionNotFound, http.StatusNotFound},
	{errs.AdminNotFound, http.StatusNotFound},
	{errs.EngineUnavailable, http.StatusServiceUnavailable},
	{errs.EngineError, http.StatusBadGateway},
}

// StatusFor maps a service error to an HTTP status, 500 for anything unknown
func StatusFor(err error) int {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// FromError writes err with its mapped status. Internal errors are not echoed back.
func FromError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	WriteError(w, ErrorMessage{Message: message, StatusCode: status})
}
