package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"seatkeeper/internal/domain"
	"seatkeeper/internal/dto"
	apperrors "seatkeeper/internal/errors"
	"seatkeeper/internal/result"
)

const maxBodyBytes = 1 << 20

type ReserveUseCase interface {
	Reserve(ctx context.Context, req *domain.ReservationRequest) result.Result[domain.ReservationID, domain.FailureCode]
}

type ReserveController struct {
	useCase ReserveUseCase
	logger  *zap.Logger
}

func NewReserveController(useCase ReserveUseCase, logger *zap.Logger) *ReserveController {
	return &ReserveController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ReserveController) Reserve(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logger = logger.With(zap.String("requestId", reqID))
	}

	// A JSON null body decodes to a nil request and is reported by the core.
	var body *dto.ReserveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	req, verr := toReservationRequest(body)
	if verr != nil {
		logger.Warn("invalid reservation request", zap.Error(verr))
		c.writeValidationError(w, traceID, verr.Message, verr.Details...)
		return
	}

	outcome := c.useCase.Reserve(r.Context(), req)

	if code, failed := outcome.Code(); failed {
		c.writeFailure(w, traceID, code)
		return
	}

	id, _ := outcome.Value()
	c.writeJSON(w, http.StatusCreated, dto.ReserveResponse{
		TraceID:       traceID,
		ReservationID: id.String(),
		Status:        dto.StatusReserved,
		Timestamp:     time.Now().UTC(),
	})
}

// toReservationRequest only rejects what cannot be turned into a request at
// all (the date). Everything else is left to the use case, so a bad date is
// reported ahead of the use case's validation rules.
func toReservationRequest(body *dto.ReserveRequest) (*domain.ReservationRequest, *apperrors.ValidationError) {
	if body == nil {
		return nil, nil
	}

	date, err := domain.ParseDate(body.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must use the YYYY-MM-DD format",
		})
	}

	req := domain.NewReservationRequest(date, body.Name, body.Email, body.Quantity)
	return &req, nil
}

func (c *ReserveController) writeFailure(w http.ResponseWriter, traceID string, code domain.FailureCode) {
	msg := messageFor(code)
	c.writeJSON(w, msg.status, dto.ReserveErrorResponse{
		TraceID:   traceID,
		Status:    msg.status,
		Code:      code.String(),
		Message:   msg.message,
		Retryable: code.Retryable(),
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *ReserveController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ReserveController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
