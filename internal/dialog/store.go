package dialog

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity ограничивает число одновременно отслеживаемых диалогов.
const DefaultCapacity = 1000

// Store — потокобезопасное хранилище состояний диалогов, ключ — ID пользователя.
// Записи без TTL: брошенный диалог живет до вытеснения по ёмкости LRU.
type Store struct {
	mu      sync.Mutex
	entries *lru.Cache[uint, *entry]
}

type entry struct {
	mu    sync.Mutex
	state State
}

// NewStore создает хранилище с ограничением по размеру.
func NewStore() (*Store, error) {
	entries, err := lru.New[uint, *entry](DefaultCapacity)
	if err != nil {
		return nil, err
	}
	return &Store{entries: entries}, nil
}

func (s *Store) entryFor(userID uint) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries.Get(userID); ok {
		return e
	}
	e := &entry{}
	s.entries.Add(userID, e)
	return e
}

// Do выполняет переход состояния пользователя.
// Переходы одного пользователя сериализуются: fn держит блокировку записи,
// поэтому два быстрых события не потеряют обновления. Разные пользователи
// друг друга не блокируют.
func (s *Store) Do(userID uint, fn func(State) State) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = fn(e.state)
}

// Get возвращает текущее состояние; отсутствие записи трактуется как Idle.
func (s *Store) Get(userID uint) State {
	s.mu.Lock()
	e, ok := s.entries.Get(userID)
	s.mu.Unlock()

	if !ok {
		return State{Kind: Idle}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Set перезаписывает состояние пользователя (последняя запись побеждает).
func (s *Store) Set(userID uint, state State) {
	s.Do(userID, func(State) State { return state })
}

// Clear удаляет запись пользователя.
func (s *Store) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Remove(userID)
}

// Stats возвращает статистику для мониторинга.
func (s *Store) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"dialogs_size":   s.entries.Len(),
		"cache_capacity": DefaultCapacity,
	}
}
