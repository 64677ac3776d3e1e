package settings

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avahowell/genpass/filelock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// lockTimeout bounds how long Save waits for another writer.
	lockTimeout = 2 * time.Second

	// At most 120 writes per minute.
	defaultWriteInterval = 500 * time.Millisecond
	defaultWriteBurst    = 2
)

// DefaultPath returns the settings file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "could not locate config directory")
	}
	return filepath.Join(dir, "genpass", "settings.json"), nil
}

// Store reads and writes Settings as a JSON file.
type Store struct {
	path    string
	limiter *rate.Limiter
	log     *zap.Logger

	mu      sync.Mutex
	seq     uint64 // last SaveAsync issued
	written uint64 // last SaveAsync persisted
	pending sync.WaitGroup
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithWriteRate overrides the pace of asynchronous writes.
func WithWriteRate(limit rate.Limit, burst int) StoreOption {
	return func(s *Store) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithStoreLogger sets the logger used to report failed asynchronous writes.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:    path,
		limiter: rate.NewLimiter(rate.Every(defaultWriteInterval), defaultWriteBurst),
		log:     zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings. On first run the defaults are written and
// returned. A stored length outside the valid range is replaced by
// DefaultLength.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		set := Default()
		if err := s.Save(set); err != nil {
			return set, err
		}
		return set, nil
	}
	if err != nil {
		return Default(), errors.Wrap(err, "could not read settings")
	}

	set := Default()
	if err := json.Unmarshal(data, &set); err != nil {
		return Default(), errors.Wrapf(err, "could not parse %s", s.path)
	}
	if err := set.Validate(); err != nil {
		s.log.Warn("Ignoring stored length", zap.String("path", s.path), zap.Error(err))
		set.Length = DefaultLength
	}
	return set, nil
}

// Save writes set to disk, replacing the previous file atomically.
func (s *Store) Save(set Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(set)
}

func (s *Store) save(set Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrap(err, "could not create settings directory")
	}
	lock, err := filelock.LockTimeout(s.path, lockTimeout)
	if err != nil {
		return errors.Wrap(err, "could not lock settings")
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*")
	if err != nil {
		return errors.Wrap(err, "could not write settings")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not write settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "could not write settings")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "could not write settings")
}

// SaveAsync writes set in the background and returns immediately. Writes are
// paced by the store's rate limit; when several are waiting only the most
// recent reaches the disk. Failures are logged and not retried.
func (s *Store) SaveAsync(set Settings) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.limiter.Wait(context.Background()); err != nil {
			s.log.Warn("Could not schedule settings write", zap.Error(err))
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq <= s.written {
			return
		}
		if s.seq > seq {
			// a newer value is queued behind us
			return
		}
		if err := s.save(set); err != nil {
			s.log.Warn("Could not save settings", zap.String("path", s.path), zap.Error(err))
			return
		}
		s.written = seq
	}()
}

// Wait blocks until every SaveAsync issued so far has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}
