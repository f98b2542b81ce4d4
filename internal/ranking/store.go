package ranking

import (
	"sync"
	"time"

	"github.com/moriq/kabuscan/internal/contracts"
)

// Store holds the latest completed ranking for the API and scheduler.
// 計算結果の永続化はしない方針なのでメモリ保持のみ。
type Store struct {
	mu         sync.RWMutex
	ranked     []contracts.RankedStock
	updatedAt  time.Time
	configHash string
}

// NewStore creates an empty ranking store
func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored ranking
func (s *Store) Set(ranked []contracts.RankedStock, configHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranked = ranked
	s.configHash = configHash
	s.updatedAt = time.Now()
}

// Latest returns the stored ranking, its config hash and timestamp.
// ok is false before the first completed scan.
func (s *Store) Latest() (ranked []contracts.RankedStock, configHash string, updatedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ranked == nil {
		return nil, "", time.Time{}, false
	}
	return s.ranked, s.configHash, s.updatedAt, true
}
