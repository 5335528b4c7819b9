package reservation

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"seatkeeper/internal/config"
	"seatkeeper/internal/domain"
	"seatkeeper/internal/metrics"
	"seatkeeper/internal/reservation/controller"
	"seatkeeper/internal/reservation/repository"
	"seatkeeper/internal/reservation/usecase"
)

// NewStore picks the store named by cfg.Store.Driver. db is only used by the mysql driver.
func NewStore(cfg *config.Config, db *sql.DB, logger *zap.Logger) usecase.ReservationStore {
	if cfg.Store.Driver == config.StoreDriverMySQL {
		return repository.NewMySQLReservationRepository(db, logger, domain.Capacity(cfg.Reservation.Capacity), cfg.Store.TxTimeout, cfg.Store.MaxRetryAttempts)
	}
	return repository.NewMemoryReservationRepository(logger)
}

func NewModule(store usecase.ReservationStore, cfg *config.Config, logger *zap.Logger, registerer prometheus.Registerer) *controller.ReserveController {
	uc := usecase.NewReserveUseCase(
		store,
		logger.Named("reservation"),
		domain.Capacity(cfg.Reservation.Capacity),
		metrics.NewReservationMetrics(registerer),
	)
	return controller.NewReserveController(uc, logger)
}
