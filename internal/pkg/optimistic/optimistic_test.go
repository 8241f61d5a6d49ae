package optimistic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type memStore struct {
	data    map[string][]byte
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memStore) Set(_ context.Context, key string, value interface{}) error {
	if s.failSet {
		return errors.New("set failed")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *memStore) snapshot(t *testing.T, key string) []string {
	t.Helper()
	raw, ok := s.data[key]
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal cache entry: %v", err)
	}
	return out
}

func TestMutateRestoresSnapshotOnFailedWrite(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	if err := store.Set(ctx, "likes:u1", []string{"a", "b"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	writeErr := errors.New("db down")
	sawSpeculative := false

	err := Mutate(ctx, store, "likes:u1", func(items []string) []string {
		return append(items, "c")
	}, func(context.Context) error {
		got := store.snapshot(t, "likes:u1")
		if len(got) == 3 && got[2] == "c" {
			sawSpeculative = true
		}
		return writeErr
	})

	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if !sawSpeculative {
		t.Fatal("expected speculative value to be visible during the write")
	}

	got := store.snapshot(t, "likes:u1")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected snapshot restored, got %v", got)
	}
}

func TestMutateInvalidatesAfterSuccessfulWrite(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	if err := store.Set(ctx, "likes:u1", []string{"a"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	err := Mutate(ctx, store, "likes:u1", func(items []string) []string {
		return append(items, "b")
	}, func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if _, ok := store.data["likes:u1"]; ok {
		t.Fatal("expected cache entry invalidated after successful write")
	}
}

func TestMutateRunsWriteOnCacheMiss(t *testing.T) {
	store := newMemStore()
	called := false

	err := Mutate(context.Background(), store, "likes:u1", func(items []string) []string {
		t.Fatal("apply must not run on a cache miss")
		return items
	}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if !called {
		t.Fatal("expected write to run despite cache miss")
	}
}

func TestReadFillsCacheOnMiss(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	loads := 0

	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"x"}, nil
	}

	first, err := Read(ctx, store, "tutors:all", load)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	second, err := Read(ctx, store, "tutors:all", load)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
	if len(first) != 1 || len(second) != 1 || second[0] != "x" {
		t.Fatalf("unexpected values: %v %v", first, second)
	}
}
