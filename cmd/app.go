package cmd

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftboard.com/shiftboard/internal/cache"
	config "shiftboard.com/shiftboard/internal/configs"
	"shiftboard.com/shiftboard/internal/logger"
	repository "shiftboard.com/shiftboard/internal/repositories"
	"shiftboard.com/shiftboard/internal/services"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *zap.SugaredLogger
	db     *gorm.DB
	redis  rueidis.Client
	clock  clockwork.Clock

	shifts     *repository.ShiftRepository
	workplaces *repository.WorkplaceRepository
	workers    *repository.WorkerRepository
	options    cache.OptionCache
}

func newApp() (*app, error) {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	log, err := logger.New(cfg.LogJSON)
	if err != nil {
		return nil, err
	}

	db, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		logger:     log,
		db:         db,
		clock:      clockwork.NewRealClock(),
		shifts:     repository.NewShiftRepository(db),
		workplaces: repository.NewWorkplaceRepository(db),
		workers:    repository.NewWorkerRepository(db),
	}

	ttl := time.Duration(cfg.FilterCacheTTLSeconds) * time.Second
	if cfg.RedisAddr != "" {
		client, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.options = cache.NewRedisOptionCache(client, cfg.RedisKeyPrefix, ttl)
		log.Infow("filter option cache backed by redis", "addr", cfg.RedisAddr)
	} else {
		a.options = cache.NewMemoryOptionCache(a.clock, ttl)
	}

	return a, nil
}

func (a *app) claimService() *services.ClaimService {
	return services.NewClaimService(a.shifts, a.options, a.logger)
}

func (a *app) cancellationService() *services.CancellationService {
	return services.NewCancellationService(a.shifts, a.options, a.clock, a.logger)
}

func (a *app) shiftService() *services.ShiftService {
	return services.NewShiftService(a.shifts, a.options, a.clock, a.logger, a.cfg.PageSize)
}

func (a *app) workerService() *services.WorkerService {
	return services.NewWorkerService(a.workers, a.shifts, a.clock, a.cfg.PageSize)
}

func (a *app) reportService() *services.ReportService {
	return services.NewReportService(a.shifts, a.workplaces, a.clock)
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
