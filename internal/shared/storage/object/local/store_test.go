package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"career-recommender/internal/shared/storage/object"
)

func TestSaveWithKeyThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "v1/vectorizer.json", "application/json", strings.NewReader(`{"idf":[1]}`))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != 11 {
		t.Fatalf("expected 11 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "v1/vectorizer.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"idf":[1]}` {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "career_model.json")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../secrets", "/etc/passwd", ""} {
		if _, err := store.Open(ctx, key); err == nil || errors.Is(err, object.ErrNotFound) {
			t.Fatalf("expected invalid key error for %q, got %v", key, err)
		}
		if _, err := store.SaveWithKey(ctx, key, "text/plain", strings.NewReader("x")); err == nil {
			t.Fatalf("expected invalid key error on save for %q", key)
		}
	}
}
