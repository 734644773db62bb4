package document

import (
	"context"
	"time"

	"github.com/paperdex/paperdex/internal/db"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
)

// mockStore is an in-memory stand-in for the Redis store.
type mockStore struct {
	kv   map[string][]byte
	sets map[string]map[string]struct{}

	getErr  error
	setErr  error
	mgetErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		kv:   make(map[string][]byte),
		sets: make(map[string]map[string]struct{}),
	}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if m.mgetErr != nil {
		return nil, m.mgetErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.kv[k]
	}
	return out, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.kv, key)
	return nil
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
	return nil
}

func (m *mockStore) SRem(_ context.Context, key string, members ...string) error {
	for _, member := range members {
		delete(m.sets[key], member)
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func makeDoc(id, sourcePath string) domdoc.Document {
	return domdoc.Reconstruct(
		id, "Title "+id, []string{"Author"}, "Abstract "+id, []string{"kw"},
		"Journal", 2023, "ml", domdoc.StatusProcessed, sourcePath,
		[]float32{1, 0}, []float32{0, 1}, baseTime,
	)
}
