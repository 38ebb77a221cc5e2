package system

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/storage/sqlite"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type recordingSender struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (r *recordingSender) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, title)
	return nil
}

var testNow = time.Date(2024, time.March, 1, 21, 30, 0, 0, time.Local)

// newTestContext returns a context over an uninitialized SQLite store
func newTestContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "quitnow.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := &cli.Context{
		Store: store,
		Clock: fixedClock(testNow),
		Out:   &out,
	}
	return ctx, dbPath, &out
}

// initializedContext runs init and returns a loaded context
func initializedContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, _, out := newTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()
	return ctx, out
}
