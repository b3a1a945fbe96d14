package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	"github.com/stockroomapp/stockroom-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeStore persists a store with the given name and returns it.
func makeStore(t *testing.T, s *Store, name string) *domain.Store {
	t.Helper()
	st := &domain.Store{Name: name}
	st.ID = id.MustGenerate("store")
	st.InitTimestamps()
	if err := s.CreateStore(context.Background(), st); err != nil {
		t.Fatalf("CreateStore(%q): %v", name, err)
	}
	return st
}

// makeItem persists an item in the given store and returns it.
func makeItem(t *testing.T, s *Store, storeID, name string, price float64) *domain.Item {
	t.Helper()
	it := &domain.Item{Name: name, Price: price, StoreID: storeID}
	it.ID = id.MustGenerate("item")
	it.InitTimestamps()
	if err := s.CreateItem(context.Background(), it); err != nil {
		t.Fatalf("CreateItem(%q): %v", name, err)
	}
	return it
}

// makeTag persists a tag in the given store and returns it.
func makeTag(t *testing.T, s *Store, storeID, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, StoreID: storeID}
	tag.ID = id.MustGenerate("tag")
	tag.InitTimestamps()
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag(%q): %v", name, err)
	}
	return tag
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Schema application is idempotent; a fresh store should answer queries.
	stores, err := s.ListStores(context.Background())
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}
	if len(stores) != 0 {
		t.Errorf("expected empty store list, got %d", len(stores))
	}
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	out, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("got %v, want %v", out, in)
	}
}
