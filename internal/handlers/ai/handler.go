package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/mentor"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/response"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

type MentorRequest struct {
	Problem string `json:"problem"`
	Plan    string `json:"plan"`
}

type ReflectionRequest struct {
	Problem string `json:"problem"`
	Plan    string `json:"plan"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

type ReflectionResponse struct {
	Question string `json:"question"`
}

// StreamEvent is one NDJSON line of the mentor stream
type StreamEvent struct {
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	ReadyToCode *bool  `json:"readyToCode,omitempty"`
	FullMessage string `json:"fullMessage,omitempty"`
}

var validationMessages = map[error]string{
	errs.ProblemRequired: "Problem is required",
	errs.PlanRequired:    "Plan is required",
	errs.CodeRequired:    "Code is required",
	errs.ErrorRequired:   "Error is required",
}

type Handler struct {
	mentorService mentor.IMentorService
	streamTimeout time.Duration
	logger        primary.Logger
}

func NewHandler(mentorService mentor.IMentorService, mentorConfig *config.MentorConfig, logger primary.Logger) *Handler {
	return &Handler{
		mentorService: mentorService,
		streamTimeout: mentorConfig.StreamTimeout,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/mentor", h.Mentor).Methods(http.MethodPost)
	router.HandleFunc("/reflection", h.Reflection).Methods(http.MethodPost)
}

// ndjsonWriter sends the stream headers on the first event
type ndjsonWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	encoder *json.Encoder
	started bool
}

func newNDJSONWriter(w http.ResponseWriter) *ndjsonWriter {
	return &ndjsonWriter{
		w:       w,
		rc:      http.NewResponseController(w),
		encoder: json.NewEncoder(w),
	}
}

func (n *ndjsonWriter) send(event StreamEvent) error {
	if !n.started {
		n.w.Header().Set("Content-Type", "application/x-ndjson")
		n.w.Header().Set("Cache-Control", "no-cache")
		n.w.Header().Set("X-Content-Type-Options", "nosniff")
		n.w.WriteHeader(http.StatusOK)
		n.started = true
	}
	if err := n.encoder.Encode(event); err != nil {
		return err
	}
	if err := n.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

func (h *Handler) Mentor(w http.ResponseWriter, r *http.Request) {
	var req MentorRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	if h.streamTimeout > 0 {
		// the stream ends through ctx before the connection deadline cuts it
		if err := handlers.ExtendWriteDeadline(w, h.streamTimeout+time.Second); err != nil {
			h.logger.Warn("Failed to extend write deadline", "error", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.streamTimeout)
		defer cancel()
	}

	stream := newNDJSONWriter(w)
	feedback, err := h.mentorService.EvaluatePlan(ctx, req.Problem, req.Plan, func(chunk string) error {
		return stream.send(StreamEvent{Type: "chunk", Content: chunk})
	})
	if err != nil {
		if stream.started {
			h.logger.Warn("Mentor stream aborted", "error", err)
			return
		}
		h.writeError(w, "Mentor evaluation failed", err)
		return
	}

	ready := feedback.ReadyToCode
	if err := stream.send(StreamEvent{Type: "complete", ReadyToCode: &ready, FullMessage: feedback.Message}); err != nil {
		h.logger.Warn("Failed to write mentor completion", "error", err)
	}
}

func (h *Handler) Reflection(w http.ResponseWriter, r *http.Request) {
	var req ReflectionRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	question, err := h.mentorService.ReflectionQuestion(r.Context(), req.Problem, req.Plan, req.Code, req.Error)
	if err != nil {
		h.writeError(w, "Reflection failed", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, ReflectionResponse{Question: question}, "")
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	for sentinel, text := range validationMessages {
		if errors.Is(err, sentinel) {
			handlers.ResponseError(w, text, http.StatusBadRequest)
			return
		}
	}
	h.logger.Error(msg, "error", err)
	response.FromError(w, err)
}
