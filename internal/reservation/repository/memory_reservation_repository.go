package repository

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"seatkeeper/internal/domain"
	"seatkeeper/internal/result"
)

type storedReservation struct {
	id      domain.ReservationID
	request domain.ReservationRequest
}

// MemoryReservationRepository keeps reservations in process memory, keyed by day.
// Used for local runs; nothing survives a restart.
type MemoryReservationRepository struct {
	mu     sync.RWMutex
	byDay  map[string][]storedReservation
	logger *zap.Logger
}

func NewMemoryReservationRepository(logger *zap.Logger) *MemoryReservationRepository {
	return &MemoryReservationRepository{
		byDay:  make(map[string][]storedReservation),
		logger: logger,
	}
}

func (r *MemoryReservationRepository) ReadReservations(ctx context.Context, date time.Time) (res result.Result[[]domain.ReservationRequest, domain.FailureCode]) {
	defer recoverInto(&res, r.logger, "ReadReservations", domain.FailureReadStore)

	if err := ctx.Err(); err != nil {
		r.logger.Warn("reading reservations aborted", zap.Error(err))
		return result.Failure[[]domain.ReservationRequest](domain.FailureReadStore)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byDay[dayKey(date)]
	out := make([]domain.ReservationRequest, 0, len(stored))
	for _, s := range stored {
		out = append(out, s.request)
	}
	return result.Success[[]domain.ReservationRequest, domain.FailureCode](out)
}

func (r *MemoryReservationRepository) Create(ctx context.Context, accepted domain.AcceptedRequest) (res result.Result[domain.ReservationID, domain.FailureCode]) {
	defer recoverInto(&res, r.logger, "Create", domain.FailureWriteStore)

	if err := ctx.Err(); err != nil {
		r.logger.Warn("creating reservation aborted", zap.Error(err))
		return result.Failure[domain.ReservationID](domain.FailureWriteStore)
	}

	req := accepted.Request()
	id := domain.NewReservationID()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(req.Date)
	r.byDay[key] = append(r.byDay[key], storedReservation{id: id, request: req})

	return result.Success[domain.ReservationID, domain.FailureCode](id)
}

func dayKey(t time.Time) string {
	return domain.Day(t).Format(domain.DateLayout)
}
