package questions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/question"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/response"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

type Handler struct {
	questionService question.IQuestionService
	logger          primary.Logger
}

func NewHandler(questionService question.IQuestionService, logger primary.Logger) *Handler {
	return &Handler{
		questionService: questionService,
		logger:          logger,
	}
}

// RegisterRoutes mounts the question routes. The fixed paths come before /{id}.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/public", h.ListPublic).Methods(http.MethodGet)
	router.Handle("/all", mw.RequireAdminFunc(h.ListAll)).Methods(http.MethodGet)
	router.Handle("/create", mw.RequireAdminFunc(h.Create)).Methods(http.MethodPost)
	router.Handle("/update/{id}", mw.RequireAdminFunc(h.Update)).Methods(http.MethodPut)
	router.Handle("/delete/{id}", mw.RequireAdminFunc(h.Delete)).Methods(http.MethodDelete)
	router.Handle("/toggle-public/{id}", mw.RequireAdminFunc(h.TogglePublic)).Methods(http.MethodPut)
	router.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	list, err := h.questionService.ListPublic(r.Context())
	if err != nil {
		h.fail(w, "Failed to list public questions", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nonNil(list), "")
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.questionService.ListAll(r.Context())
	if err != nil {
		h.fail(w, "Failed to list questions", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nonNil(list), "")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, errs.QuestionNotFound) {
			handlers.ResponseError(w, "Question not found", http.StatusNotFound)
			return
		}
		h.fail(w, "Failed to get question", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, q, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Question
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	admin, _ := handlers.AdminFromContext(r.Context())

	q, err := h.questionService.Create(r.Context(), &req, admin.ID)
	if err != nil {
		if errors.Is(err, errs.TitleRequired) {
			handlers.ResponseError(w, "Title and description are required", http.StatusBadRequest)
			return
		}
		h.fail(w, "Failed to create question", err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, q, "Question created successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var updates map[string]interface{}
	if !handlers.DecodeJSON(w, r, &updates) {
		return
	}

	q, err := h.questionService.Update(r.Context(), mux.Vars(r)["id"], updates)
	if err != nil {
		h.fail(w, "Failed to update question", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, q, "Question updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.questionService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, "Failed to delete question", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "Question deleted successfully")
}

func (h *Handler) TogglePublic(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionService.TogglePublic(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "Failed to toggle question visibility", err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, q, "Question visibility updated")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if response.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	response.FromError(w, err)
}

func nonNil(list []*domain.Question) []*domain.Question {
	if list == nil {
		return []*domain.Question{}
	}
	return list
}
