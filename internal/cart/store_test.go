package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPersister records every call for assertions. failSave/failClear make
// the durable mirror misbehave.
type mockPersister struct {
	initial   []Line
	SaveCalls [][]Line
	Clears    int
	failSave  bool
	failClear bool
}

func (m *mockPersister) Load(ctx context.Context) []Line {
	return m.initial
}

func (m *mockPersister) Save(ctx context.Context, lines []Line) error {
	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)
	m.SaveCalls = append(m.SaveCalls, snapshot)
	if m.failSave {
		return errors.New("slot unavailable")
	}
	return nil
}

func (m *mockPersister) Clear(ctx context.Context) error {
	m.Clears++
	if m.failClear {
		return errors.New("slot unavailable")
	}
	return nil
}

// mockNotifier records emitted events.
type mockNotifier struct {
	Added        []Line
	Removed      []Line
	ClearedCount int
}

func (m *mockNotifier) ItemAdded(ctx context.Context, l Line)   { m.Added = append(m.Added, l) }
func (m *mockNotifier) ItemRemoved(ctx context.Context, l Line) { m.Removed = append(m.Removed, l) }
func (m *mockNotifier) Cleared(ctx context.Context)             { m.ClearedCount++ }

func newTestStore(initial []Line) (*Store, *mockPersister, *mockNotifier) {
	p := &mockPersister{initial: initial}
	n := &mockNotifier{}
	return NewStore(context.Background(), p, n), p, n
}

// ============================================
// Hydration Tests
// ============================================

func TestNewStore_HydratesFromPersister(t *testing.T) {
	store, _, _ := newTestStore([]Line{line(7, "Medium", 20)})

	assert.Equal(t, 1, store.Count())
	assert.True(t, store.Visible())
}

func TestNewStore_EmptyStartsHidden(t *testing.T) {
	store, _, _ := newTestStore(nil)

	assert.Equal(t, 0, store.Count())
	assert.False(t, store.Visible())
}

// ============================================
// Add Tests
// ============================================

func TestStore_Add_PersistsExactNewCart(t *testing.T) {
	store, p, n := newTestStore(nil)
	ctx := context.Background()

	ok := store.Add(ctx, Line{ID: 7, Price: 20})

	require.True(t, ok)
	require.Len(t, p.SaveCalls, 1)
	require.Len(t, p.SaveCalls[0], 1)
	assert.Equal(t, "7-Medium", p.SaveCalls[0][0].Key())
	assert.Equal(t, store.Lines(), p.SaveCalls[0])

	require.Len(t, n.Added, 1)
	assert.Equal(t, "7-Medium", n.Added[0].Key())
}

func TestStore_Add_DuplicateLeavesStateAndStorageUntouched(t *testing.T) {
	store, p, n := newTestStore(nil)
	ctx := context.Background()

	require.True(t, store.Add(ctx, line(7, "Medium", 20)))
	ok := store.Add(ctx, line(7, "Medium", 20))

	assert.False(t, ok)
	assert.Equal(t, 1, store.Count())
	assert.Len(t, p.SaveCalls, 1)
	assert.Len(t, n.Added, 1)
}

func TestStore_Add_SaveFailureKeepsInMemoryState(t *testing.T) {
	p := &mockPersister{failSave: true}
	store := NewStore(context.Background(), p, nil)

	ok := store.Add(context.Background(), line(7, "Medium", 20))

	require.True(t, ok)
	assert.Equal(t, 1, store.Count())
	assert.Len(t, p.SaveCalls, 1)
}

// ============================================
// Remove / Clear Tests
// ============================================

func TestStore_RemoveByKey(t *testing.T) {
	store, p, n := newTestStore([]Line{line(7, "Small", 20), line(7, "Large", 30)})
	ctx := context.Background()

	store.RemoveByKey(ctx, "7-Small")

	assert.Equal(t, 1, store.Count())
	require.Len(t, p.SaveCalls, 1)
	assert.Len(t, p.SaveCalls[0], 1)
	require.Len(t, n.Removed, 1)
	assert.Equal(t, "7-Small", n.Removed[0].Key())
}

func TestStore_RemoveByKey_AbsentKeyStillPersists(t *testing.T) {
	store, p, n := newTestStore([]Line{line(7, "Small", 20)})

	store.RemoveByKey(context.Background(), "99-Medium")

	assert.Equal(t, 1, store.Count())
	assert.Len(t, p.SaveCalls, 1)
	assert.Empty(t, n.Removed)
}

func TestStore_RemoveAllVariants(t *testing.T) {
	store, _, n := newTestStore([]Line{
		line(7, "Small", 20),
		line(7, "Large", 30),
		line(8, "Medium", 15),
	})

	store.RemoveAllVariants(context.Background(), 7)

	assert.Equal(t, 1, store.Count())
	assert.Len(t, n.Removed, 2)
}

func TestStore_Clear(t *testing.T) {
	store, p, n := newTestStore([]Line{line(7, "Medium", 20)})

	store.Clear(context.Background())

	assert.Equal(t, 0, store.Count())
	assert.False(t, store.Visible())
	assert.Equal(t, 1, p.Clears)
	assert.Equal(t, 1, n.ClearedCount)
}

func TestStore_Clear_SlotFailureStillEmptiesCart(t *testing.T) {
	p := &mockPersister{initial: []Line{line(7, "Medium", 20)}, failClear: true}
	store := NewStore(context.Background(), p, nil)

	store.Clear(context.Background())

	assert.Equal(t, 0, store.Count())
}

// ============================================
// Visibility Tests
// ============================================

func TestStore_DismissedFlagFlipsBackOnAdd(t *testing.T) {
	store, _, _ := newTestStore([]Line{line(7, "Medium", 20)})
	ctx := context.Background()

	store.SetVisible(false)
	assert.False(t, store.Visible())

	require.True(t, store.Add(ctx, line(8, "Medium", 15)))
	assert.True(t, store.Visible())
}

func TestStore_RemoveDoesNotReshowDismissedCart(t *testing.T) {
	store, _, _ := newTestStore([]Line{line(7, "Small", 20), line(7, "Large", 30)})

	store.SetVisible(false)
	store.RemoveByKey(context.Background(), "7-Small")

	assert.False(t, store.Visible())
}

// ============================================
// Derived Values
// ============================================

func TestStore_TotalAndFind(t *testing.T) {
	store, _, _ := newTestStore([]Line{line(7, "Small", 19.99), line(8, "Medium", 5.01)})

	assert.InDelta(t, 25.00, store.Total(), 1e-9)

	found, ok := store.Find(7, "Small")
	require.True(t, ok)
	assert.Equal(t, "7-Small", found.Key())

	assert.Len(t, store.Variants(7), 1)
}

func TestStore_LinesReturnsCopy(t *testing.T) {
	store, _, _ := newTestStore([]Line{line(7, "Small", 20)})

	lines := store.Lines()
	lines[0].Title = "mutated"

	assert.NotEqual(t, "mutated", store.Lines()[0].Title)
}
