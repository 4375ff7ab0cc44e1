package directory

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, "7", "maria"); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	name, err := s.Username(ctx, "7")
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if name != "maria" {
		t.Errorf("Username = %q, want \"maria\"", name)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, "7", "maria"); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}
	if err := s.UpsertUser(ctx, "7", "maria.c"); err != nil {
		t.Fatalf("UpsertUser (update): %v", err)
	}

	name, err := s.Username(ctx, "7")
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if name != "maria.c" {
		t.Errorf("Username = %q, want \"maria.c\"", name)
	}
}

func TestUnknownUserIsNotAnError(t *testing.T) {
	s := openTestStore(t)

	name, err := s.Username(context.Background(), "404")
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if name != "" {
		t.Errorf("Username = %q, want empty", name)
	}
}
