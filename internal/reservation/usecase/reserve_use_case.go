package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seatkeeper/internal/domain"
	"seatkeeper/internal/result"
)

// ReservationStore is the only way persistence faults reach the pipeline.
// Implementations turn every internal fault into READ_STORE_ERROR or
// WRITE_STORE_ERROR instead of returning errors or panicking. Create may also
// report CAPACITY_EXCEEDED when its own locked re-check finds the day full.
type ReservationStore interface {
	ReadReservations(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode]
	Create(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode]
}

type OutcomeRecorder interface {
	RecordReserved(elapsed time.Duration)
	RecordFailure(code domain.FailureCode, elapsed time.Duration)
}

type ReserveUseCase struct {
	store    ReservationStore
	logger   *zap.Logger
	capacity domain.Capacity
	recorder OutcomeRecorder
}

// NewReserveUseCase wires the pipeline. recorder may be nil.
func NewReserveUseCase(
	store ReservationStore,
	logger *zap.Logger,
	capacity domain.Capacity,
	recorder OutcomeRecorder,
) *ReserveUseCase {
	return &ReserveUseCase{
		store:    store,
		logger:   logger,
		capacity: capacity,
		recorder: recorder,
	}
}

// Reserve runs validate, read, decide and create, logging between stages.
// The first failing stage ends the run and its code is returned as is.
func (uc *ReserveUseCase) Reserve(ctx context.Context, req *domain.ReservationRequest) result.Result[domain.ReservationID, domain.FailureCode] {
	start := time.Now()

	validated := result.Tap(domain.Validate(req), uc.logValidated)

	loaded := result.Bind(validated, func(candidate domain.ReservationRequest) result.Result[admission, domain.FailureCode] {
		existing := uc.store.ReadReservations(ctx, candidate.Date)
		return result.Map(existing, func(e []domain.ReservationRequest) admission {
			return admission{candidate: candidate, existing: e}
		})
	})
	loaded = result.Tap(loaded, uc.logLoaded)

	accepted := result.Bind(loaded, func(a admission) result.Result[domain.AcceptedRequest, domain.FailureCode] {
		return domain.Decide(uc.capacity, a.candidate, a.existing)
	})

	created := result.Bind(accepted, func(a domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode] {
		return uc.store.Create(ctx, a)
	})
	created = result.Tap(created, uc.logCreated)

	uc.finish(created, time.Since(start))
	return created
}

type admission struct {
	candidate domain.ReservationRequest
	existing  []domain.ReservationRequest
}

func (uc *ReserveUseCase) logValidated(req domain.ReservationRequest) {
	uc.logger.Debug("reservation request validated",
		zap.String("date", req.Date.Format(domain.DateLayout)),
		zap.Int("quantity", req.Quantity),
	)
}

func (uc *ReserveUseCase) logLoaded(a admission) {
	uc.logger.Debug("existing reservations loaded",
		zap.String("date", a.candidate.Date.Format(domain.DateLayout)),
		zap.Int("reservationCount", len(a.existing)),
		zap.Int("reservedSeats", domain.TotalQuantity(a.existing)),
		zap.Int("capacity", int(uc.capacity)),
	)
}

func (uc *ReserveUseCase) logCreated(id domain.ReservationID) {
	uc.logger.Info("reservation created", zap.String("reservationId", id.String()))
}

func (uc *ReserveUseCase) finish(r result.Result[domain.ReservationID, domain.FailureCode], elapsed time.Duration) {
	code, failed := r.Code()
	if !failed {
		if uc.recorder != nil {
			uc.recorder.RecordReserved(elapsed)
		}
		return
	}

	fields := []zap.Field{zap.String("code", code.String()), zap.Duration("elapsed", elapsed)}
	switch {
	case code.IsInfrastructure():
		uc.logger.Error("reservation failed", fields...)
	case code.IsRejection():
		uc.logger.Info("reservation rejected", fields...)
	default:
		uc.logger.Warn("reservation request invalid", fields...)
	}

	if uc.recorder != nil {
		uc.recorder.RecordFailure(code, elapsed)
	}
}
