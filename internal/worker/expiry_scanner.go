package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
)

var ErrScannerRunning = errs.New("expiry scanner already running")

// ExpiryScannerConfig contains configuration for the expiry scanner
type ExpiryScannerConfig struct {
	// Interval between sweeps
	Interval time.Duration
}

func DefaultExpiryScannerConfig() ExpiryScannerConfig {
	return ExpiryScannerConfig{
		Interval: time.Minute,
	}
}

type Sweeper interface {
	EvictExpired(ctx context.Context) (*commands.SweepResult, error)
}

// ExpiryScanner turns payment deadlines into state changes on a fixed cadence.
// Correctness does not depend on it: confirm checks the deadline itself.
type ExpiryScanner struct {
	sweeper Sweeper
	clock   clock.Clock
	config  ExpiryScannerConfig
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Stats
	totalEvicted     int64
	totalScans       int64
	lastScanTime     time.Time
	lastEvictedCount int
	lastError        string
}

func NewExpiryScanner(sweeper Sweeper, clock clock.Clock, config ExpiryScannerConfig, logger *slog.Logger) *ExpiryScanner {
	if config.Interval <= 0 {
		config = DefaultExpiryScannerConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiryScanner{
		sweeper: sweeper,
		clock:   clock,
		config:  config,
		logger:  logger,
	}
}

// Start sweeps once immediately, then every Interval until Stop or ctx is done.
func (s *ExpiryScanner) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrScannerRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.logger.Info("Starting expiry scanner", slog.Duration("interval", s.config.Interval))

	s.wg.Add(1)
	go s.loop(ctx, stopCh)
	return nil
}

func (s *ExpiryScanner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Expiry scanner stopped")
}

func (s *ExpiryScanner) loop(ctx context.Context, stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	_, _ = s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-stopCh:
			return
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

// RunOnce is the on-demand sweep; the ticker uses it too.
func (s *ExpiryScanner) RunOnce(ctx context.Context) (*commands.SweepResult, error) {
	result, err := s.sweeper.EvictExpired(ctx)

	s.mu.Lock()
	s.totalScans++
	s.lastScanTime = s.clock.Now()
	s.lastEvictedCount = result.Count()
	s.totalEvicted += int64(result.Count())
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Expiry sweep failed", slog.String("error", err.Error()))
		return result, err
	}
	if result.Count() > 0 {
		s.logger.Info("Expiry sweep evicted reservations", slog.Int("count", result.Count()))
	}
	return result, nil
}

func (s *ExpiryScanner) Stats() ExpiryScannerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ExpiryScannerStats{
		IsRunning:        s.running,
		Interval:         s.config.Interval,
		TotalScans:       s.totalScans,
		TotalEvicted:     s.totalEvicted,
		LastScanTime:     s.lastScanTime,
		LastEvictedCount: s.lastEvictedCount,
		LastError:        s.lastError,
	}
}

// ExpiryScannerStats contains scanner statistics
type ExpiryScannerStats struct {
	IsRunning        bool          `json:"is_running"`
	Interval         time.Duration `json:"interval"`
	TotalScans       int64         `json:"total_scans"`
	TotalEvicted     int64         `json:"total_evicted"`
	LastScanTime     time.Time     `json:"last_scan_time"`
	LastEvictedCount int           `json:"last_evicted_count"`
	LastError        string        `json:"last_error,omitempty"`
}
