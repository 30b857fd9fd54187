// Package tempfile keeps upload files on disk for the lifetime of one delivery
package tempfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
)

// Store creates scopes under a base directory
type Store struct {
	dir     string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewStore creates a store rooted at dir; empty dir means the OS temp dir
func NewStore(dir string, logger zerolog.Logger, m *metrics.Metrics) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}

	return &Store{
		dir:     dir,
		logger:  logger,
		metrics: m,
	}, nil
}

// Dir returns the base directory
func (s *Store) Dir() string {
	return s.dir
}

// NewScope starts a new group of files released together
func (s *Store) NewScope() *Scope {
	return &Scope{store: s}
}

// Scope owns every asset written through it
type Scope struct {
	store  *Store
	mu     sync.Mutex
	assets []*Asset
}

// Write stores data in a fresh file whose name ends with suffix
func (sc *Scope) Write(data []byte, suffix string) (*Asset, error) {
	name := uuid.NewString() + suffix
	path := filepath.Join(sc.store.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		// partial file
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	asset := &Asset{path: path, name: name, store: sc.store}

	sc.mu.Lock()
	sc.assets = append(sc.assets, asset)
	sc.mu.Unlock()

	return asset, nil
}

// Release removes every asset of the scope
func (sc *Scope) Release() {
	sc.mu.Lock()
	assets := sc.assets
	sc.assets = nil
	sc.mu.Unlock()

	for _, a := range assets {
		a.Release()
	}
}

// Asset is one file on disk
type Asset struct {
	path  string
	name  string
	store *Store
	once  sync.Once
}

// Upload describes the asset for the platform upload API
func (a *Asset) Upload() entities.UploadFile {
	return entities.UploadFile{Path: a.path, Name: a.name}
}

// Release deletes the file; calling it again is a no-op
func (a *Asset) Release() {
	a.once.Do(func() {
		err := os.Remove(a.path)
		switch {
		case err == nil:
			if a.store.metrics != nil {
				a.store.metrics.TempFilesReleased.Inc()
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			a.store.logger.Warn().Err(err).Str("path", a.path).Msg("Failed to remove temp file")
		}
	})
}
