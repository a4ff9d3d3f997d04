package worldgen

import (
	"math/rand"

	"wildroot-server/internal/domain"
)

// Rect - вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// MapBuilder предоставляет fluent API для сборки карт.
// Все генераторы (город, дикие земли, подземелье, интерьер) собирают
// результат через него.
type MapBuilder struct {
	m     *domain.GameMap
	rng   *rand.Rand
	rooms []Rect
}

// NewMap создает builder с картой, залитой базовым тайлом
func NewMap(id string, width, height int, fill domain.TileType, rng *rand.Rand) *MapBuilder {
	tiles := make([][]domain.TileType, height)
	for y := 0; y < height; y++ {
		row := make([]domain.TileType, width)
		for x := 0; x < width; x++ {
			row[x] = fill
		}
		tiles[y] = row
	}

	return &MapBuilder{
		m: &domain.GameMap{
			ID:        id,
			Width:     width,
			Height:    height,
			Tiles:     tiles,
			Entities:  make([]*domain.Entity, 0),
			Neighbors: make(map[domain.Direction]string),
		},
		rng: rng,
	}
}

func (b *MapBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// SetTile кладет тайл, если координата в границах
func (b *MapBuilder) SetTile(x, y int, t domain.TileType) *MapBuilder {
	if b.m.InBounds(x, y) {
		b.m.Tiles[y][x] = t
	}
	return b
}

// FillRect заливает прямоугольник тайлом
func (b *MapBuilder) FillRect(x, y, w, h int, t domain.TileType) *MapBuilder {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.SetTile(xx, yy, t)
		}
	}
	return b
}

// Scatter случайно рассыпает count тайлов типа t поверх base
func (b *MapBuilder) Scatter(t domain.TileType, count int, base domain.TileType) *MapBuilder {
	for i := 0; i < count; i++ {
		x := b.rng.Intn(b.m.Width)
		y := b.rng.Intn(b.m.Height)
		if b.m.Tiles[y][x] == base {
			b.m.Tiles[y][x] = t
		}
	}
	return b
}

// WithRooms выкапывает комнаты и коридоры (карта должна быть залита
// стеной). Классическая генерация: непересекающиеся комнаты, каждая
// соединена коридором с предыдущей.
func (b *MapBuilder) WithRooms(maxRooms, minSize, maxSize int) *MapBuilder {
	b.rooms = b.rooms[:0]

	for i := 0; i < maxRooms; i++ {
		w := b.randRange(minSize, maxSize)
		h := b.randRange(minSize, maxSize)
		x := b.randRange(1, b.m.Width-w-2)
		y := b.randRange(1, b.m.Height-h-2)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		b.carveRoom(newRoom)

		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				b.carveHCorridor(prevX, currX, prevY)
				b.carveVCorridor(prevY, currY, currX)
			} else {
				b.carveVCorridor(prevY, currY, prevX)
				b.carveHCorridor(prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}
	return b
}

func (b *MapBuilder) carveRoom(room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			b.m.Tiles[y][x] = domain.TileFloor
		}
	}
}

func (b *MapBuilder) carveHCorridor(x1, x2, y int) {
	start, end := minInt(x1, x2), maxInt(x1, x2)
	for x := start; x <= end; x++ {
		b.SetTile(x, y, domain.TileFloor)
	}
}

func (b *MapBuilder) carveVCorridor(y1, y2, x int) {
	start, end := minInt(y1, y2), maxInt(y1, y2)
	for y := start; y <= end; y++ {
		b.SetTile(x, y, domain.TileFloor)
	}
}

// Rooms возвращает выкопанные комнаты
func (b *MapBuilder) Rooms() []Rect {
	return b.rooms
}

// AddEntity добавляет сущность на карту
func (b *MapBuilder) AddEntity(e *domain.Entity) *MapBuilder {
	b.m.AddEntity(e)
	return b
}

// WithNeighbor привязывает соседнюю карту по стороне
func (b *MapBuilder) WithNeighbor(dir domain.Direction, mapID string) *MapBuilder {
	b.m.Neighbors[dir] = mapID
	return b
}

// WithMeta задает сложность/биом/флаги
func (b *MapBuilder) WithMeta(difficulty int, biome string, isTown, isInterior bool) *MapBuilder {
	b.m.Difficulty = difficulty
	b.m.Biome = biome
	b.m.IsTown = isTown
	b.m.IsInterior = isInterior
	return b
}

// FindOpenTile ищет случайную проходимую клетку без сущностей.
// После maxTries попыток сдается и сканирует карту подряд.
func (b *MapBuilder) FindOpenTile() domain.Position {
	const maxTries = 200
	for i := 0; i < maxTries; i++ {
		x := b.rng.Intn(b.m.Width)
		y := b.rng.Intn(b.m.Height)
		if !b.m.Tiles[y][x].IsBlocked() && b.m.BlockingEntityAt(x, y) == nil {
			return domain.Position{X: x, Y: y}
		}
	}
	for y := 0; y < b.m.Height; y++ {
		for x := 0; x < b.m.Width; x++ {
			if !b.m.Tiles[y][x].IsBlocked() && b.m.BlockingEntityAt(x, y) == nil {
				return domain.Position{X: x, Y: y}
			}
		}
	}
	// Карта без единой свободной клетки - сломанный генератор
	panic("no open tile on map " + b.m.ID)
}

// Build возвращает готовую карту
func (b *MapBuilder) Build() *domain.GameMap {
	return b.m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
