package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperifyio/goanswer/internal/qa"
)

// AnswerCache stores model answers keyed by a digest of model, question and
// context window, so re-asking a question against an unchanged document is
// free. Entries are plain JSON files; mtime is touched on read for
// age-based purging.
type AnswerCache struct {
	Dir string
	// StrictPerms, when true, enforces 0700 on the cache directory and
	// 0600 on files.
	StrictPerms bool
}

// KeyFrom builds a cache key from the model name, the question, and the
// exact context window handed to the model.
func KeyFrom(model, question, passage string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(question))
	h.Write([]byte{0})
	h.Write([]byte(passage))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *AnswerCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	if c.StrictPerms {
		if info, err := os.Stat(c.Dir); err == nil && info.Mode()&0o777 != 0o700 {
			_ = os.Chmod(c.Dir, 0o700)
		}
	}
	return nil
}

func (c *AnswerCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns a cached answer if present. A missing or unreadable entry is
// not an error.
func (c *AnswerCache) Get(_ context.Context, key string) (qa.Answer, bool) {
	if err := c.ensureDir(); err != nil {
		return qa.Answer{}, false
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return qa.Answer{}, false
	}
	var ans qa.Answer
	if err := json.Unmarshal(b, &ans); err != nil {
		return qa.Answer{}, false
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return ans, true
}

// Save writes an answer to cache. Cache writes are best-effort; callers
// typically ignore the error.
func (c *AnswerCache) Save(_ context.Context, key string, ans qa.Answer) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	b, err := json.Marshal(ans)
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if c.StrictPerms {
		mode = 0o600
	}
	return os.WriteFile(c.pathFor(key), b, mode)
}

// PurgeByAge removes cache entries older than maxAge and reports how many
// were deleted. A zero or negative maxAge is a no-op.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 || dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(dir, e.Name())) == nil {
				removed++
			}
		}
	}
	return removed, nil
}
