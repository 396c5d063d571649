package bot

import (
	"context"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUserConcurrentFirstContact(t *testing.T) {
	engine, store := newTestEngine(t)
	h := &UpdateHandler{store: store, engine: engine}
	from := &tgbotapi.User{ID: 100, UserName: "alice"}

	const workers = 10
	var wg sync.WaitGroup
	start := make(chan struct{})
	ids := make([]uint, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			user, err := h.resolveUser(context.Background(), from)
			errs[i] = err
			if err == nil {
				ids[i] = user.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	// Проигравший гонку регистрации получает ту же запись, а не ошибку
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "worker %d", i)
		assert.Equal(t, ids[0], ids[i])
	}

	users, err := store.AllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
