package ranking

import (
	"context"
	"sync"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

// Service runs universe rescans and publishes the result to the Store.
// API handlers and the scheduler both go through it, so concurrent
// triggers collapse into one scan at a time.
type Service struct {
	orch       *Orchestrator
	store      *Store
	cfg        *strategyconfig.Config
	configHash string
	logger     *logger.Logger

	mu       sync.Mutex
	scanning bool
}

// NewService creates a scan service. configHash stamps every published
// ranking with the parameter set that produced it.
func NewService(orch *Orchestrator, store *Store, cfg *strategyconfig.Config, configHash string, log *logger.Logger) *Service {
	return &Service{
		orch:       orch,
		store:      store,
		cfg:        cfg,
		configHash: configHash,
		logger:     log,
	}
}

// Store returns the ranking store the service publishes to
func (s *Service) Store() *Store {
	return s.store
}

// Scanning reports whether a rescan is currently running
func (s *Service) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// Rescan scans the configured universe and publishes the ranking.
// A second trigger while one is running is a no-op returning ok=false.
func (s *Service) Rescan(ctx context.Context, progress Progress) ([]contracts.RankedStock, bool, error) {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, false, nil
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	ranked, err := s.orch.Scan(ctx, s.cfg.Universe.Codes, progress)
	if err != nil {
		return nil, true, err
	}

	s.store.Set(ranked, s.configHash)
	return ranked, true, nil
}
