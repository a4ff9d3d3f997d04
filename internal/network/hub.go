package network

import (
	"sync"

	"wildroot-server/pkg/api"
)

// Broadcaster занимается только рассылкой снимков мира подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии (игрока или бота)
func (b *Broadcaster) Register(sessionID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// Broadcast отправляет снимок всем. Полные каналы молча пропускаются:
// отставший клиент получит следующий снимок.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
