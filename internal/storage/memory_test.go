package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryEngine(t *testing.T) {
	ctx := context.Background()
	e := NewMemoryEngine()

	value := []byte("v")
	if err := e.Set(ctx, []byte("k"), value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'x'

	got, err := e.Get(ctx, []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}

	got[0] = 'y'
	again, _ := e.Get(ctx, []byte("k"))
	if string(again) != "v" {
		t.Errorf("returned value aliased stored slice: %q", again)
	}

	if err := e.Delete(ctx, []byte("k")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Get(ctx, []byte("k")); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d", e.Len())
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Set(ctx, []byte("k"), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after close = %v", err)
	}
}
