package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"jude-explorer/internal/datasource"
	"jude-explorer/internal/explorer"
	"jude-explorer/internal/logging"
	"jude-explorer/internal/models"
)

var logger = logging.New("state")

// ErrNotLoaded is returned before the first successful dataset load
var ErrNotLoaded = errors.New("dataset not loaded")

// Store holds the loaded dataset and the exploration session running on it
type Store struct {
	mu sync.RWMutex

	source   datasource.Source
	session  *explorer.Session
	loadedAt time.Time
}

func NewStore(src datasource.Source) *Store {
	return &Store{source: src}
}

// Load fetches the dataset and replaces the session. The fetch happens
// outside the lock; on failure the previous dataset stays in place.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Errorf("dataset load failed: %v", err)
		return err
	}
	s.Set(data)
	return nil
}

// Set installs a dataset and starts a fresh session over it
func (s *Store) Set(data *models.ExplorationData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = explorer.NewSession(data)
	s.loadedAt = time.Now()
}

// Session returns the current exploration session
func (s *Store) Session() (*explorer.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, ErrNotLoaded
	}
	return s.session, nil
}

// Dataset returns the loaded dataset, or nil
func (s *Store) Dataset() *models.ExplorationData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	return s.session.Dataset()
}

// LoadedAt reports when the current dataset was installed
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
