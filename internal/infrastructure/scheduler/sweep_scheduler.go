package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider lists tenants that have ledger activity to sweep
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Sweeper runs the daily status sweeps over a tenant's payment ledger
type Sweeper interface {
	MarkDuePayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error)
	MarkLatePayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error)
}

// SweepSchedulerConfig holds configuration for the sweep scheduler
type SweepSchedulerConfig struct {
	// SweepHour/SweepMinute is the local time the daily sweep runs
	SweepHour   int
	SweepMinute int

	// CheckInterval is how often to check whether it is time to run
	CheckInterval time.Duration
}

// DefaultSweepSchedulerConfig returns default sweep scheduler configuration
func DefaultSweepSchedulerConfig() SweepSchedulerConfig {
	return SweepSchedulerConfig{
		SweepHour:     1, // 1am, after the billing day rolls over
		SweepMinute:   0,
		CheckInterval: time.Minute,
	}
}

// SweepScheduler runs due and late sweeps once per day for every tenant.
// The sweeps are idempotent, so a missed or repeated run is harmless.
type SweepScheduler struct {
	config         SweepSchedulerConfig
	sweeper        Sweeper
	tenantProvider TenantProvider
	logger         *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewSweepScheduler creates a new sweep scheduler
func NewSweepScheduler(
	config SweepSchedulerConfig,
	sweeper Sweeper,
	tenantProvider TenantProvider,
	logger *zap.Logger,
) *SweepScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepScheduler{
		config:         config,
		sweeper:        sweeper,
		tenantProvider: tenantProvider,
		logger:         logger,
	}
}

// Start starts the scheduler loop
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sweep scheduler started",
		zap.Int("sweep_hour", s.config.SweepHour),
		zap.Int("sweep_minute", s.config.SweepMinute),
		zap.Duration("check_interval", s.config.CheckInterval),
	)

	return nil
}

// Stop stops the scheduler and waits for an in-flight sweep to finish
func (s *SweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *SweepScheduler) checkAndRun(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == currentDate
	s.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != s.config.SweepHour || now.Minute() != s.config.SweepMinute {
		return
	}

	s.mu.Lock()
	s.lastRunDate = currentDate
	s.mu.Unlock()

	s.logger.Info("Running daily ledger sweeps")
	s.RunSweeps(ctx, now)
}

// RunSweeps executes the due and late sweeps for every active tenant.
// Exposed so operators can trigger a sweep outside the daily schedule.
func (s *SweepScheduler) RunSweeps(ctx context.Context, asOf time.Time) {
	tenantIDs, err := s.tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list tenants for ledger sweep", zap.Error(err))
		return
	}

	s.logger.Info("Sweeping tenant ledgers", zap.Int("tenant_count", len(tenantIDs)))

	for _, tenantID := range tenantIDs {
		due, err := s.sweeper.MarkDuePayments(ctx, tenantID, asOf)
		if err != nil {
			s.logger.Error("Due sweep failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}

		late, err := s.sweeper.MarkLatePayments(ctx, tenantID, asOf)
		if err != nil {
			s.logger.Error("Late sweep failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}

		if due > 0 || late > 0 {
			s.logger.Info("Tenant ledger swept",
				zap.String("tenant_id", tenantID.String()),
				zap.Int("marked_due", due),
				zap.Int("marked_late", late),
			)
		}
	}
}
