package domain

import "fmt"

// GameMap - одна сгенерированная карта. Создается генератором один раз,
// кэшируется в реестре по ID. Тайлы неизменны; список сущностей - общая
// изменяемая структура, писать в которую может только движок хода.
type GameMap struct {
	ID         string               `json:"id"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Tiles      [][]TileType         `json:"tiles"` // [y][x]
	Entities   []*Entity            `json:"entities"`
	Neighbors  map[Direction]string `json:"neighbors,omitempty"` // Соседи по краям (оверворлд)
	Difficulty int                  `json:"difficulty"`
	Biome      string               `json:"biome"`
	IsTown     bool                 `json:"isTown"`
	IsInterior bool                 `json:"isInterior"` // Интерьеры открыты целиком с момента создания
}

// InBounds проверяет, лежит ли клетка в пределах карты
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TileAt возвращает статический тайл. Выход за границы - ошибка генератора,
// падаем сразу.
func (m *GameMap) TileAt(x, y int) TileType {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("tile index out of bounds: (%d,%d) on %s %dx%d", x, y, m.ID, m.Width, m.Height))
	}
	return m.Tiles[y][x]
}

// EntityAt возвращает первую сущность в клетке (или nil)
func (m *GameMap) EntityAt(x, y int) *Entity {
	for _, e := range m.Entities {
		if e.Pos.X == x && e.Pos.Y == y {
			return e
		}
	}
	return nil
}

// BlockingEntityAt возвращает сущность, физически занимающую клетку (или nil)
func (m *GameMap) BlockingEntityAt(x, y int) *Entity {
	for _, e := range m.Entities {
		if e.Pos.X == x && e.Pos.Y == y && e.BlocksMovement() {
			return e
		}
	}
	return nil
}

// GetEntity ищет сущность по ID
func (m *GameMap) GetEntity(id string) *Entity {
	for _, e := range m.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// RemoveEntity удаляет сущность из списка карты (смерть, подбор, телепорт).
// Порядок списка сохраняется: от него зависит порядок обработки AI.
func (m *GameMap) RemoveEntity(id string) bool {
	for i, e := range m.Entities {
		if e.ID == id {
			m.Entities = append(m.Entities[:i], m.Entities[i+1:]...)
			return true
		}
	}
	return false
}

// AddEntity добавляет сущность в конец списка
func (m *GameMap) AddEntity(e *Entity) {
	m.Entities = append(m.Entities, e)
}

// OverlayKey - ключ клетки в оверлее WorldModified ("y,x")
func OverlayKey(x, y int) string {
	return fmt.Sprintf("%d,%d", y, x)
}

// EffectiveTile возвращает тайл с учетом оверлея изменений мира.
// Оверлей (истощенные ресурсы, сработавшие механизмы) имеет приоритет.
func (m *GameMap) EffectiveTile(x, y int, overlay map[string]TileType) TileType {
	if overlay != nil {
		if t, ok := overlay[OverlayKey(x, y)]; ok {
			return t
		}
	}
	return m.TileAt(x, y)
}
