package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/goanswer/internal/qa"
)

func TestAnswerCache_RoundTrip(t *testing.T) {
	c := &AnswerCache{Dir: t.TempDir()}
	ctx := context.Background()
	key := KeyFrom("test-model", "What are the paid holidays?", "Employees get 10 paid holidays.")

	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := qa.Answer{Text: "10 paid holidays", Score: 0.91, Start: 14, End: 30}
	if err := c.Save(ctx, key, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatalf("expected hit after save")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestKeyFrom_DistinguishesInputs(t *testing.T) {
	base := KeyFrom("m", "question", "passage")
	if KeyFrom("other", "question", "passage") == base {
		t.Fatalf("model must affect key")
	}
	if KeyFrom("m", "other question", "passage") == base {
		t.Fatalf("question must affect key")
	}
	if KeyFrom("m", "question", "other passage") == base {
		t.Fatalf("passage must affect key")
	}
	// Field boundaries matter: shifting bytes between fields must change
	// the key.
	if KeyFrom("m", "questionpa", "ssage") == base {
		t.Fatalf("field boundary must affect key")
	}
}

func TestAnswerCache_StrictPerms(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "answers")
	c := &AnswerCache{Dir: dir, StrictPerms: true}
	ctx := context.Background()
	key := KeyFrom("m", "q", "p")
	if err := c.Save(ctx, key, qa.Answer{Text: "x", Score: 0.1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if info.Mode()&0o777 != 0o700 {
		t.Fatalf("expected 0700 dir, got %v", info.Mode())
	}
	finfo, err := os.Stat(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if finfo.Mode()&0o777 != 0o600 {
		t.Fatalf("expected 0600 file, got %v", finfo.Mode())
	}
}

func TestPurgeByAge(t *testing.T) {
	dir := t.TempDir()
	c := &AnswerCache{Dir: dir}
	ctx := context.Background()

	oldKey := KeyFrom("m", "old", "p")
	newKey := KeyFrom("m", "new", "p")
	if err := c.Save(ctx, oldKey, qa.Answer{Text: "old"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, newKey, qa.Answer{Text: "new"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, oldKey+".json"), stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, ok := c.Get(ctx, oldKey); ok {
		t.Fatalf("stale entry should be gone")
	}
	if _, ok := c.Get(ctx, newKey); !ok {
		t.Fatalf("fresh entry should survive")
	}
}

func TestPurgeByAge_ZeroIsNoop(t *testing.T) {
	removed, err := PurgeByAge(t.TempDir(), 0)
	if err != nil || removed != 0 {
		t.Fatalf("expected noop, got %d, %v", removed, err)
	}
}
