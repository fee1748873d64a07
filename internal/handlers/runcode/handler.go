package runcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/services/grading"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/handlers"
	"gitlab.com/thinkfirst.net/internal/handlers/response"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

type ExecuteRequest struct {
	Question   domain.QuestionSnapshot `json:"question"`
	QuestionID string                  `json:"question_id"`
	Code       string                  `json:"code"`
	Language   string                  `json:"language"`
}

type ExecuteResponse struct {
	Results []domain.TestCaseResult `json:"results"`
	// Time is the summed run time in seconds with three decimals
	Time   string `json:"time"`
	Memory int64  `json:"memory"`
}

type LanguagesResponse struct {
	Languages []domain.Language `json:"languages"`
}

// writeMargin leaves room to encode the report after grading gives up
const writeMargin = 5 * time.Second

type Handler struct {
	gradingService grading.IGradingService
	timeout        time.Duration
	logger         primary.Logger
}

func NewHandler(gradingService grading.IGradingService, gradingConfig *config.GradingConfig, logger primary.Logger) *Handler {
	return &Handler{
		gradingService: gradingService,
		timeout:        gradingConfig.RequestTimeout,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/execute", h.Execute).Methods(http.MethodPost)
	router.HandleFunc("/languages", h.Languages).Methods(http.MethodGet)
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	submission := domain.NewSubmission(req.Code, req.Language, req.Question)
	submission.QuestionID = req.QuestionID

	ctx := r.Context()
	if h.timeout > 0 {
		if err := handlers.ExtendWriteDeadline(w, h.timeout+writeMargin); err != nil {
			h.logger.Warn("Failed to extend write deadline", "error", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.gradingService.Grade(ctx, submission)
	if err != nil {
		switch {
		case errors.Is(err, errs.CodeAndLanguageRequired):
			handlers.ResponseError(w, "Code and language are required", http.StatusBadRequest)
		case errors.Is(err, errs.UnsupportedLanguage):
			handlers.ResponseError(w, fmt.Sprintf("Unsupported language: %s", req.Language), http.StatusBadRequest)
		default:
			h.logger.Error("Failed to grade submission", "error", err)
			response.FromError(w, err)
		}
		return
	}

	response.WriteSuccess(w, http.StatusOK, ExecuteResponse{
		Results: report.Results,
		Time:    fmt.Sprintf("%.3f", report.TotalTimeSeconds),
		Memory:  report.PeakMemoryKB,
	}, "Code executed successfully")
}

func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, http.StatusOK, LanguagesResponse{
		Languages: h.gradingService.SupportedLanguages(),
	}, "")
}
