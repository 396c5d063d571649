package dialog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore()
	require.NoError(t, err)
	return store
}

func TestGetDefaultsToIdle(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, State{Kind: Idle}, store.Get(42))
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)

	store.Set(1, State{Kind: EditingNote, NoteID: 7})
	got := store.Get(1)
	assert.Equal(t, EditingNote, got.Kind)
	assert.Equal(t, uint(7), got.NoteID)

	// Последняя запись побеждает
	store.Set(1, State{Kind: MainMenu})
	assert.Equal(t, MainMenu, store.Get(1).Kind)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	store.Set(1, State{Kind: CreatingNote})
	store.Clear(1)
	assert.Equal(t, Idle, store.Get(1).Kind)
}

func TestDoSerializesPerUser(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Do(1, func(st State) State {
				st.NoteID++
				return st
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, uint(100), store.Get(1).NoteID, "concurrent transitions must not lose updates")
}

func TestUsersAreIndependent(t *testing.T) {
	store := newTestStore(t)
	store.Set(1, State{Kind: SettingPattern, PendingDigits: "12"})
	store.Set(2, State{Kind: MainMenu})

	assert.Equal(t, "12", store.Get(1).PendingDigits)
	assert.Equal(t, MainMenu, store.Get(2).Kind)
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	store.Set(1, State{Kind: MainMenu})
	store.Set(2, State{Kind: Unlocking})

	stats := store.Stats()
	assert.Equal(t, 2, stats["dialogs_size"])
	assert.Equal(t, DefaultCapacity, stats["cache_capacity"])
}
