package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"NotePadBot/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "notepad_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestFirstUserBecomesAdmin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.True(t, first.IsLocked)
	assert.False(t, first.HasPattern())

	second, err := store.CreateUser(ctx, 200, "bob")
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
}

func TestFirstUserAdminUniqueUnderConcurrentRegistration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = store.CreateUser(ctx, int64(i+1), fmt.Sprintf("user%d", i+1))
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	users, err := store.AllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, workers)

	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins, "admin flag must be granted exactly once")
}

func TestUserByTelegramID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	got, err := store.UserByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice", got.UserName)

	_, err = store.UserByTelegramID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPatternUnlocks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	require.NoError(t, store.SetPattern(ctx, user.ID, "1234"))

	got, err := store.UserByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "1234", got.PatternCode)
	assert.False(t, got.IsLocked)

	require.NoError(t, store.SetLocked(ctx, user.ID, true))
	got, err = store.UserByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.True(t, got.IsLocked)
}

func TestSetPatternUnknownUser(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.SetPattern(context.Background(), 12345, "1234"), ErrNotFound)
}

func TestAllUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, 200, "bob")
	require.NoError(t, err)

	users, err := store.AllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].UserName)
	assert.Equal(t, "bob", users[1].UserName)
}

func TestCreateAndGetNote(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	note, err := store.CreateNote(ctx, user.ID, "Groceries", "Milk, eggs")
	require.NoError(t, err)

	got, err := store.NoteByID(ctx, note.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "Milk, eggs", got.Content)
	assert.WithinDuration(t, got.CreatedAt, got.UpdatedAt, time.Second)
}

func TestCreateNoteValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	_, err = store.CreateNote(ctx, user.ID, "", "content")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.CreateNote(ctx, user.ID, "title", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNoteOwnershipIsExclusive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, 200, "bob")
	require.NoError(t, err)

	note, err := store.CreateNote(ctx, alice.ID, "Secret", "Only mine")
	require.NoError(t, err)

	_, err = store.NoteByID(ctx, note.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.UpdateNote(ctx, note.ID, bob.ID, "Hacked", "Hacked")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := store.DeleteNote(ctx, note.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Заметка осталась нетронутой
	got, err := store.NoteByID(ctx, note.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Title)
}

func TestUpdateNoteBumpsUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	note, err := store.CreateNote(ctx, user.ID, "Old", "Old content")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := store.UpdateNote(ctx, note.ID, user.ID, "New", "New content")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "New content", updated.Content)
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt), "updated_at must move forward")
}

func TestDeleteNoteIsIdempotentInEffect(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	note, err := store.CreateNote(ctx, user.ID, "Trash", "To be deleted")
	require.NoError(t, err)

	deleted, err := store.DeleteNote(ctx, note.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteNote(ctx, note.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.NoteByID(ctx, note.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotesByOwnerOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, 100, "alice")
	require.NoError(t, err)

	a, err := store.CreateNote(ctx, user.ID, "A", "first")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	b, err := store.CreateNote(ctx, user.ID, "B", "second")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	c, err := store.CreateNote(ctx, user.ID, "C", "third")
	require.NoError(t, err)

	// Свежие сверху
	notes, err := store.NotesByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, noteIDs(notes))

	// Правка поднимает заметку наверх
	time.Sleep(10 * time.Millisecond)
	_, err = store.UpdateNote(ctx, a.ID, user.ID, "A", "updated")
	require.NoError(t, err)

	notes, err = store.NotesByOwner(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, c.ID, b.ID}, noteIDs(notes))

	// Удаление убирает из списка ровно одну заметку
	_, err = store.DeleteNote(ctx, c.ID, user.ID)
	require.NoError(t, err)

	notes, err = store.NotesByOwner(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, noteIDs(notes))
}

func noteIDs(notes []models.Note) []uint {
	ids := make([]uint, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}
