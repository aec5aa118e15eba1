package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestBadger(t *testing.T, dir string) *BadgerEngine {
	t.Helper()
	engine, err := NewBadgerEngine(DefaultKVConfig(dir), nil)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestBadgerEngine_BasicOperations(t *testing.T) {
	engine := newTestBadger(t, t.TempDir())
	defer engine.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		if err := engine.Set(ctx, []byte("k"), []byte("v")); err != nil {
			t.Fatal(err)
		}
		got, err := engine.Get(ctx, []byte("k"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "v" {
			t.Errorf("expected v, got %s", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, err := engine.Get(ctx, []byte("missing"))
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := engine.Delete(ctx, []byte("k")); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.Get(ctx, []byte("k")); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := engine.Delete(ctx, []byte("never-set")); err != nil {
			t.Errorf("deleting an absent key: %v", err)
		}
	})

	t.Run("SetMany", func(t *testing.T) {
		err := engine.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")})
		if err != nil {
			t.Fatal(err)
		}
		for k, want := range map[string]string{"a": "1", "b": "2"} {
			got, err := engine.Get(ctx, []byte(k))
			if err != nil || string(got) != want {
				t.Errorf("Get(%s) = %q, %v", k, got, err)
			}
		}
	})
}

func TestBadgerEngine_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	engine := newTestBadger(t, dir)
	if err := engine.Set(ctx, []byte(TokenKey), []byte("abc")); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := newTestBadger(t, dir)
	defer reopened.Close()

	got, err := reopened.Get(ctx, []byte(TokenKey))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Errorf("after reopen got %q", got)
	}
}

func TestBadgerEngine_Closed(t *testing.T) {
	engine := newTestBadger(t, t.TempDir())
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	ctx := context.Background()
	if _, err := engine.Get(ctx, []byte("k")); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after close = %v", err)
	}
	if err := engine.Set(ctx, []byte("k"), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after close = %v", err)
	}
}

func TestBadgerEngine_Collector(t *testing.T) {
	engine := newTestBadger(t, t.TempDir())
	defer engine.Close()

	if n := testutil.CollectAndCount(engine.Collector()); n != 2 {
		t.Errorf("collector emitted %d metrics, want 2", n)
	}
}

func TestNewBadgerEngine_RequiresDir(t *testing.T) {
	if _, err := NewBadgerEngine(KVConfig{}, nil); err == nil {
		t.Error("expected error for empty dir")
	}
}
