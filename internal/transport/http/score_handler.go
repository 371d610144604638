package http

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"fraudcli/internal/errors"
	"fraudcli/internal/middleware"
	"fraudcli/internal/services"
	"fraudcli/pkg/contracts/domain"
)

// ScoreRequest is the batch-scoring request envelope.
type ScoreRequest struct {
	Records []domain.RawRecord `json:"records" validate:"required,min=1"`
}

// ScoreResponse is the batch-scoring response.
type ScoreResponse struct {
	Success     bool                  `json:"success"`
	ModelID     string                `json:"model_id"`
	Count       int                   `json:"count"`
	Predictions []services.Prediction `json:"predictions"`
}

// Render implements the render.Renderer interface.
func (r *ScoreResponse) Render(w http.ResponseWriter, req *http.Request) error {
	return nil
}

// ScoreHandler serves batch fraud scoring.
type ScoreHandler struct {
	logger       *slog.Logger
	service      *services.ScoringService
	validate     *validator.Validate
	maxBatchSize int
}

// NewScoreHandler creates a scoring handler.
func NewScoreHandler(logger *slog.Logger, service *services.ScoringService, maxBatchSize int) *ScoreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreHandler{
		logger:       logger,
		service:      service,
		validate:     validator.New(),
		maxBatchSize: maxBatchSize,
	}
}

// Score handles POST /api/v1/score.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.service.Ready() {
		render.Render(w, r, errors.NewErrorResponse(errors.ErrModelUnavailable))
		return
	}

	var req ScoreRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.InvalidRequestWithError(err)))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.ErrValidation("records", err.Error())))
		return
	}
	if len(req.Records) > h.maxBatchSize {
		render.Render(w, r, errors.NewErrorResponse(errors.ErrValidation("records",
			fmt.Sprintf("batch of %d records exceeds limit of %d", len(req.Records), h.maxBatchSize))))
		return
	}

	predictions, err := h.service.Score(ctx, req.Records)
	if err != nil {
		var appErr *errors.AppError
		if asAppError(err, &appErr) && appErr.Type == errors.ErrTypeParsing {
			render.Render(w, r, errors.NewErrorResponse(errors.InvalidRequestWithError(err)))
			return
		}
		h.logger.ErrorContext(ctx, "batch scoring failed", slog.String("error", err.Error()))
		render.Render(w, r, errors.NewErrorResponse(errors.ScoringError(err)))
		return
	}

	middleware.CountScoredCustomers(len(predictions))

	render.Render(w, r, &ScoreResponse{
		Success:     true,
		ModelID:     h.service.ModelID(),
		Count:       len(predictions),
		Predictions: predictions,
	})
}

// asAppError unwraps err into an AppError, avoiding a clash with the stdlib
// errors package.
func asAppError(err error, target **errors.AppError) bool {
	return stderrors.As(err, target)
}
