package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"opal/internal/project"
)

// Current schema version - increment when cachePayload format changes
const formatCacheSchemaVersion uint16 = 1

// FormatCache запоминает дайджесты файлов, уже приведённых к канону.
// Повторный прогон fmt по неизменённому дереву тогда не парсит ничего.
// Thread-safe for concurrent access; a nil cache is a no-op.
type FormatCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema    uint16
	Digest    project.Digest
	SavedUnix int64
}

// OpenFormatCache initializes the cache at the standard location
// ($XDG_CACHE_HOME/<app>/fmt or ~/.cache/<app>/fmt).
func OpenFormatCache(app string) (*FormatCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "fmt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FormatCache{dir: dir}, nil
}

// OpenFormatCacheAt открывает кеш в произвольном каталоге (тесты).
func OpenFormatCacheAt(dir string) (*FormatCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FormatCache{dir: dir}, nil
}

func (c *FormatCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, hexKey+".mp")
}

// Known reports whether the digest was recorded as canonical earlier.
// Любая ошибка чтения трактуется как промах: кеш только ускоряет.
func (c *FormatCache) Known(key project.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false
	}
	return payload.Schema == formatCacheSchemaVersion && payload.Digest == key
}

// Remember records the digest of a file known to be in canonical form.
// Ошибки записи глотаем: недоступный кеш не должен ломать fmt.
func (c *FormatCache) Remember(key project.Digest) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := cachePayload{
		Schema:    formatCacheSchemaVersion,
		Digest:    key,
		SavedUnix: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return
	}
	if err := f.Close(); err != nil {
		return
	}
	// Атомарная замена
	_ = os.Rename(f.Name(), p)
}

// DropAll invalidates the cache, useful after formatter upgrades.
func (c *FormatCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
