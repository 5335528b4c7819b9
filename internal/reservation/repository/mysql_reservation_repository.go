package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"seatkeeper/internal/domain"
	apperrors "seatkeeper/internal/errors"
	"seatkeeper/internal/result"
)

const defaultTxTimeout = 5 * time.Second

// errDayFull reports that the locked re-check inside the write transaction
// found no room left for the day.
var errDayFull = errors.New("no seats left for the day")

// DB is the subset of *sql.DB the repository uses.
type DB interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type MySQLReservationRepository struct {
	db               DB
	logger           *zap.Logger
	capacity         domain.Capacity
	txTimeout        time.Duration
	maxRetryAttempts int
}

// NewMySQLReservationRepository builds a store whose Create re-checks capacity
// under a row lock before inserting, so concurrent writers cannot overbook a day.
func NewMySQLReservationRepository(db DB, logger *zap.Logger, capacity domain.Capacity, txTimeout time.Duration, maxRetryAttempts int) *MySQLReservationRepository {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	if txTimeout <= 0 {
		txTimeout = defaultTxTimeout
	}
	return &MySQLReservationRepository{
		db:               db,
		logger:           logger,
		capacity:         capacity,
		txTimeout:        txTimeout,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (r *MySQLReservationRepository) ReadReservations(ctx context.Context, date time.Time) (res result.Result[[]domain.ReservationRequest, domain.FailureCode]) {
	defer recoverInto(&res, r.logger, "ReadReservations", domain.FailureReadStore)

	reservations, err := r.findByDate(ctx, date)
	if err != nil {
		r.logger.Error("reading reservations failed",
			zap.String("date", date.Format(domain.DateLayout)),
			zap.Error(apperrors.NewInternalError("ReadReservations", "querying reservations", err)),
		)
		return result.Failure[[]domain.ReservationRequest](domain.FailureReadStore)
	}

	return result.Success[[]domain.ReservationRequest, domain.FailureCode](reservations)
}

func (r *MySQLReservationRepository) findByDate(ctx context.Context, date time.Time) ([]domain.ReservationRequest, error) {
	query := `
		SELECT date, name, email, quantity
		FROM Reservations
		WHERE date = ?
	`

	rows, err := r.db.QueryContext(ctx, query, domain.Day(date))
	if err != nil {
		return nil, fmt.Errorf("querying reservations by date: %w", err)
	}
	defer rows.Close()

	reservations := []domain.ReservationRequest{}
	for rows.Next() {
		var (
			day      time.Time
			name     string
			email    string
			quantity int
		)
		if err := rows.Scan(&day, &name, &email, &quantity); err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		reservations = append(reservations, domain.NewReservationRequest(day, name, email, quantity))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *MySQLReservationRepository) Create(ctx context.Context, accepted domain.AcceptedRequest) (res result.Result[domain.ReservationID, domain.FailureCode]) {
	defer recoverInto(&res, r.logger, "Create", domain.FailureWriteStore)

	id, err := r.insertWithRetry(ctx, accepted.Request())
	if errors.Is(err, errDayFull) {
		r.logger.Info("reservation lost the race for the last seats",
			zap.String("date", accepted.Request().Date.Format(domain.DateLayout)),
			zap.Int("quantity", accepted.Request().Quantity),
		)
		return result.Failure[domain.ReservationID](domain.FailureCapacityExceeded)
	}
	if err != nil {
		r.logger.Error("creating reservation failed",
			zap.String("date", accepted.Request().Date.Format(domain.DateLayout)),
			zap.Error(apperrors.NewInternalError("Create", "inserting reservation", err)),
		)
		return result.Failure[domain.ReservationID](domain.FailureWriteStore)
	}

	return result.Success[domain.ReservationID, domain.FailureCode](id)
}

func (r *MySQLReservationRepository) insertWithRetry(ctx context.Context, req domain.ReservationRequest) (domain.ReservationID, error) {
	// wait after attempt 1: 100ms, after attempt 2 and later: 200ms
	backoffs := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= r.maxRetryAttempts; attempt++ {
		id, err := r.insert(ctx, req)
		if err == nil {
			return id, nil
		}
		lastErr = err

		if !isDeadlockError(err) || attempt == r.maxRetryAttempts {
			break
		}

		base := backoffs[min(attempt-1, len(backoffs)-1)]
		// ±20% jitter
		wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
		r.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", r.maxRetryAttempts),
			zap.Duration("backoff", wait),
		)

		select {
		case <-ctx.Done():
			return domain.ReservationID{}, ctx.Err()
		case <-time.After(wait):
		}
	}

	return domain.ReservationID{}, lastErr
}

func (r *MySQLReservationRepository) insert(ctx context.Context, req domain.ReservationRequest) (domain.ReservationID, error) {
	txCtx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return domain.ReservationID{}, fmt.Errorf("beginning transaction: %w", err)
	}
	// MySQL ignores rollback once committed.
	defer tx.Rollback()

	day := domain.Day(req.Date)

	// FOR UPDATE takes next-key locks on idx_date, so a concurrent writer for
	// the same day blocks here (or deadlocks and is retried) until we commit.
	var reserved int64
	lockQuery := `SELECT COALESCE(SUM(quantity), 0) FROM Reservations WHERE date = ? FOR UPDATE`
	if err := tx.QueryRowContext(txCtx, lockQuery, day).Scan(&reserved); err != nil {
		return domain.ReservationID{}, fmt.Errorf("locking reservations for date: %w", err)
	}
	if reserved > int64(math.MaxInt) {
		reserved = int64(math.MaxInt)
	}
	if !domain.Fits(r.capacity, int(reserved), req.Quantity) {
		return domain.ReservationID{}, errDayFull
	}

	id := domain.NewReservationID()
	query := `INSERT INTO Reservations (id, date, name, email, quantity) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(txCtx, query, id.String(), day, req.Name, req.Email, req.Quantity); err != nil {
		return domain.ReservationID{}, fmt.Errorf("inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ReservationID{}, fmt.Errorf("committing reservation: %w", err)
	}

	return id, nil
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
