package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"seatkeeper/internal/domain"
	"seatkeeper/internal/result"
)

// Mock implementations
type mockReservationStore struct {
	ReadReservationsFunc func(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode]
	CreateFunc           func(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode]

	mu          sync.Mutex
	readCalls   int
	createCalls int
	created     []domain.AcceptedRequest
}

func (m *mockReservationStore) ReadReservations(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode] {
	m.mu.Lock()
	m.readCalls++
	m.mu.Unlock()
	return m.ReadReservationsFunc(ctx, date)
}

func (m *mockReservationStore) Create(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode] {
	m.mu.Lock()
	m.createCalls++
	m.created = append(m.created, accepted)
	m.mu.Unlock()
	return m.CreateFunc(ctx, accepted)
}

type mockRecorder struct {
	reserved int
	failures []domain.FailureCode
}

func (m *mockRecorder) RecordReserved(time.Duration) { m.reserved++ }

func (m *mockRecorder) RecordFailure(code domain.FailureCode, _ time.Duration) {
	m.failures = append(m.failures, code)
}

func storeWithLoad(quantities ...int) *mockReservationStore {
	id := domain.NewReservationID()
	return &mockReservationStore{
		ReadReservationsFunc: func(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode] {
			existing := make([]domain.ReservationRequest, 0, len(quantities))
			for _, q := range quantities {
				existing = append(existing, domain.ReservationRequest{Date: date, Name: "guest", Email: "g@x.com", Quantity: q})
			}
			return result.Success[[]domain.ReservationRequest, domain.FailureCode](existing)
		},
		CreateFunc: func(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode] {
			return result.Success[domain.ReservationID, domain.FailureCode](id)
		},
	}
}

func newTestReserveUseCase(store ReservationStore, capacity domain.Capacity) *ReserveUseCase {
	return NewReserveUseCase(store, zap.NewNop(), capacity, nil)
}

func eugene(quantity int) *domain.ReservationRequest {
	req := domain.NewReservationRequest(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), "Eugene", "e@x.com", quantity)
	return &req
}

func requireFailure(t *testing.T, r result.Result[domain.ReservationID, domain.FailureCode], want domain.FailureCode) {
	t.Helper()
	code, failed := r.Code()
	require.True(t, failed, "expected failure %s, got success", want)
	assert.Equal(t, want, code)
}

// Tests

func TestReserve_Success(t *testing.T) {
	store := storeWithLoad(20, 2)
	uc := newTestReserveUseCase(store, 100)
	req := eugene(1)

	id, ok := uc.Reserve(context.Background(), req).Value()

	require.True(t, ok)
	assert.NotEqual(t, domain.ReservationID{}, id)
	assert.Equal(t, 1, store.readCalls)
	assert.Equal(t, 1, store.createCalls)
	require.Len(t, store.created, 1)
	assert.Equal(t, *req, store.created[0].Request())
}

func TestReserve_ReadsLoadForRequestDate(t *testing.T) {
	var gotDate time.Time
	store := storeWithLoad()
	read := store.ReadReservationsFunc
	store.ReadReservationsFunc = func(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode] {
		gotDate = date
		return read(ctx, date)
	}
	uc := newTestReserveUseCase(store, 10)

	uc.Reserve(context.Background(), eugene(1))

	assert.Equal(t, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), gotDate)
}

func TestReserve_EmptyEmail_StoreNeverContacted(t *testing.T) {
	store := storeWithLoad()
	uc := newTestReserveUseCase(store, 100)
	req := eugene(1)
	req.Email = ""

	requireFailure(t, uc.Reserve(context.Background(), req), domain.FailureEmptyEmail)
	assert.Equal(t, 0, store.readCalls)
	assert.Equal(t, 0, store.createCalls)
}

func TestReserve_ValidationFailures_StoreNeverContacted(t *testing.T) {
	tests := []struct {
		name string
		req  *domain.ReservationRequest
		want domain.FailureCode
	}{
		{"missing request", nil, domain.FailureInvalidInput},
		{"empty name", &domain.ReservationRequest{Email: "e@x.com", Quantity: 1}, domain.FailureEmptyName},
		{"negative quantity", eugene(-1), domain.FailureNegativeQuantity},
		{"zero quantity", eugene(0), domain.FailureNegativeQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWithLoad()
			uc := newTestReserveUseCase(store, 100)

			requireFailure(t, uc.Reserve(context.Background(), tt.req), tt.want)
			assert.Equal(t, 0, store.readCalls)
			assert.Equal(t, 0, store.createCalls)
		})
	}
}

func TestReserve_CapacityExceeded_NoWrite(t *testing.T) {
	store := storeWithLoad(99)
	uc := newTestReserveUseCase(store, 100)

	requireFailure(t, uc.Reserve(context.Background(), eugene(2)), domain.FailureCapacityExceeded)
	assert.Equal(t, 1, store.readCalls)
	assert.Equal(t, 0, store.createCalls)
}

func TestReserve_BoundaryAdmitted(t *testing.T) {
	store := storeWithLoad(98)
	uc := newTestReserveUseCase(store, 100)

	assert.True(t, uc.Reserve(context.Background(), eugene(2)).IsSuccess())
	assert.Equal(t, 1, store.createCalls)
}

func TestReserve_ReadStoreError_StopsBeforeDecideAndCreate(t *testing.T) {
	store := storeWithLoad()
	store.ReadReservationsFunc = func(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode] {
		return result.Failure[[]domain.ReservationRequest](domain.FailureReadStore)
	}
	// Zero capacity would reject if the decider ran; the read failure must win.
	uc := newTestReserveUseCase(store, 0)

	requireFailure(t, uc.Reserve(context.Background(), eugene(1)), domain.FailureReadStore)
	assert.Equal(t, 1, store.readCalls)
	assert.Equal(t, 0, store.createCalls)
}

func TestReserve_WriteStoreError(t *testing.T) {
	store := storeWithLoad()
	store.CreateFunc = func(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode] {
		return result.Failure[domain.ReservationID](domain.FailureWriteStore)
	}
	uc := newTestReserveUseCase(store, 100)

	requireFailure(t, uc.Reserve(context.Background(), eugene(1)), domain.FailureWriteStore)
	assert.Equal(t, 1, store.createCalls)
}

func TestReserve_CreateReportsDayFull(t *testing.T) {
	store := storeWithLoad()
	store.CreateFunc = func(ctx context.Context, accepted domain.AcceptedRequest) result.Result[domain.ReservationID, domain.FailureCode] {
		return result.Failure[domain.ReservationID](domain.FailureCapacityExceeded)
	}
	uc := newTestReserveUseCase(store, 100)

	requireFailure(t, uc.Reserve(context.Background(), eugene(1)), domain.FailureCapacityExceeded)
	assert.Equal(t, 1, store.createCalls)
}

func TestReserve_LogStagesForwardValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := storeWithLoad(10, 12)
	uc := NewReserveUseCase(store, zap.New(core), 100, nil)

	r := uc.Reserve(context.Background(), eugene(1))

	require.True(t, r.IsSuccess())
	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"reservation request validated",
		"existing reservations loaded",
		"reservation created",
	}, messages)

	loaded := logs.FilterMessage("existing reservations loaded").All()[0].ContextMap()
	assert.EqualValues(t, 22, loaded["reservedSeats"])
	assert.EqualValues(t, 2, loaded["reservationCount"])
}

func TestReserve_LogsTerminalFailure(t *testing.T) {
	tests := []struct {
		name    string
		store   func() *mockReservationStore
		req     *domain.ReservationRequest
		level   zapcore.Level
		message string
	}{
		{
			name:    "validation",
			store:   func() *mockReservationStore { return storeWithLoad() },
			req:     eugene(-1),
			level:   zapcore.WarnLevel,
			message: "reservation request invalid",
		},
		{
			name:    "rejection",
			store:   func() *mockReservationStore { return storeWithLoad(100) },
			req:     eugene(1),
			level:   zapcore.InfoLevel,
			message: "reservation rejected",
		},
		{
			name: "infrastructure",
			store: func() *mockReservationStore {
				s := storeWithLoad()
				s.ReadReservationsFunc = func(ctx context.Context, date time.Time) result.Result[[]domain.ReservationRequest, domain.FailureCode] {
					return result.Failure[[]domain.ReservationRequest](domain.FailureReadStore)
				}
				return s
			},
			req:     eugene(1),
			level:   zapcore.ErrorLevel,
			message: "reservation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			uc := NewReserveUseCase(tt.store(), zap.New(core), 100, nil)

			uc.Reserve(context.Background(), tt.req)

			entries := logs.FilterMessage(tt.message).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
		})
	}
}

func TestReserve_RecordsOutcome(t *testing.T) {
	recorder := &mockRecorder{}
	uc := NewReserveUseCase(storeWithLoad(99), zap.NewNop(), 100, recorder)

	uc.Reserve(context.Background(), eugene(1))
	uc.Reserve(context.Background(), eugene(2))
	uc.Reserve(context.Background(), nil)

	assert.Equal(t, 1, recorder.reserved)
	assert.Equal(t, []domain.FailureCode{domain.FailureCapacityExceeded, domain.FailureInvalidInput}, recorder.failures)
}

func TestReserve_ConcurrentInvocations(t *testing.T) {
	store := storeWithLoad(50)
	uc := newTestReserveUseCase(store, 100)

	var wg sync.WaitGroup
	results := make([]bool, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = uc.Reserve(context.Background(), eugene(1)).IsSuccess()
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "invocation %d", i)
	}
	assert.Equal(t, 20, store.createCalls)
}
