package localstore

import (
	"os"
	"path/filepath"

	ierr "github.com/paperstack/paperstack/internal/errors"
	goCache "github.com/patrickmn/go-cache"
)

// kv is a byte-quota bounded key-value store persisted to a single file.
// Callers hold the Store mutex.
type kv struct {
	cache *goCache.Cache
	path  string
	quota int64
}

func openKV(path string, quota int64) (*kv, error) {
	c := goCache.New(goCache.NoExpiration, 0)
	if path != "" {
		if err := c.LoadFile(path); err != nil && !os.IsNotExist(err) {
			return nil, ierr.WithError(err).
				WithMessagef("failed to load local store %s", path).
				WithHint("The local document store is unreadable").
				Mark(ierr.ErrSystem)
		}
	}
	return &kv{cache: c, path: path, quota: quota}, nil
}

func (s *kv) get(key string) ([]byte, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// size is the number of bytes held, counting keys and values
func (s *kv) size() int64 {
	var total int64
	for k, item := range s.cache.Items() {
		total += int64(len(k))
		if b, ok := item.Object.([]byte); ok {
			total += int64(len(b))
		}
	}
	return total
}

// set stores value under key, failing with ErrStorageQuotaExceeded when the
// write would take the store over its quota
func (s *kv) set(key string, value []byte) error {
	if s.quota > 0 {
		projected := s.size() + int64(len(key)) + int64(len(value))
		if old, ok := s.get(key); ok {
			projected -= int64(len(key)) + int64(len(old))
		}
		if projected > s.quota {
			return ierr.NewErrorf("local store quota exceeded writing %s", key).
				WithHint("Local storage is full. Delete some documents or sign in to sync them").
				WithReportableDetails(map[string]any{
					"key":       key,
					"projected": projected,
					"quota":     s.quota,
				}).
				Mark(ierr.ErrStorageQuotaExceeded)
		}
	}
	s.cache.Set(key, value, goCache.NoExpiration)
	return nil
}

func (s *kv) delete(keys ...string) {
	for _, k := range keys {
		s.cache.Delete(k)
	}
}

func (s *kv) flush() {
	s.cache.Flush()
}

// persist writes the store to disk through a temp file and rename
func (s *kv) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return ierr.WithError(err).WithMessage("failed to create local store directory").Mark(ierr.ErrSystem)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return ierr.WithError(err).WithMessage("failed to create local store temp file").Mark(ierr.ErrSystem)
	}
	defer os.Remove(tmp.Name())

	if err := s.cache.Save(tmp); err != nil {
		tmp.Close()
		return ierr.WithError(err).WithMessage("failed to write local store").Mark(ierr.ErrSystem)
	}
	if err := tmp.Close(); err != nil {
		return ierr.WithError(err).WithMessage("failed to flush local store").Mark(ierr.ErrSystem)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return ierr.WithError(err).WithMessage("failed to replace local store").Mark(ierr.ErrSystem)
	}
	return nil
}
