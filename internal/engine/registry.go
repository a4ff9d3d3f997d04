package engine

import (
	"sync"

	"wildroot-server/internal/domain"
	"wildroot-server/pkg/logger"
)

// MapRegistry - реестр сгенерированных карт по ID.
// Единственная точка, через которую любой код получает карту: вся
// мутация списков сущностей идет через карты, выданные отсюда.
// Карты не персистятся - после перезагрузки реестр наполняется заново
// детерминированной генерацией.
type MapRegistry struct {
	mu   sync.Mutex
	maps map[string]*domain.GameMap
}

func NewMapRegistry() *MapRegistry {
	return &MapRegistry{maps: make(map[string]*domain.GameMap)}
}

// Get возвращает карту, если она уже сгенерирована
func (r *MapRegistry) Get(mapID string) (*domain.GameMap, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.maps[mapID]
	return m, ok
}

// Set кладет карту в реестр
func (r *MapRegistry) Set(mapID string, m *domain.GameMap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[mapID] = m
}

// GetOrGenerate возвращает карту или создает ее генератором.
// Отсутствие карты - не ошибка, а повод сгенерировать; блокировки
// здесь хватает, потому что писатель у симуляции один.
func (r *MapRegistry) GetOrGenerate(mapID string, gen func() *domain.GameMap) *domain.GameMap {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.maps[mapID]; ok {
		return m
	}

	m := gen()
	if m == nil {
		// Генератор обязан вернуть карту: nil - баг связки, а не рантайм-условие
		panic("map generator returned nil for " + mapID)
	}
	r.maps[mapID] = m

	logger.Log.WithField("map_id", mapID).Info("Map generated and cached")
	return m
}

// Len возвращает число карт в реестре (для дебага и тестов)
func (r *MapRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.maps)
}
