package worldgen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"wildroot-server/internal/content"
	"wildroot-server/internal/domain"
	"wildroot-server/pkg/logger"
	"wildroot-server/pkg/utils"
)

// Размеры карт по умолчанию
const (
	OverworldWidth  = 40
	OverworldHeight = 30
	DungeonWidth    = 48
	DungeonHeight   = 36
	InteriorWidth   = 12
	InteriorHeight  = 10
)

// Generator детерминированно строит карты по их идентификаторам.
// Сид каждой карты выводится из мастер-сида и ID, поэтому один и тот
// же мир воспроизводится независимо от порядка посещения карт.
type Generator struct {
	Lib        *content.Library
	MasterSeed int64
}

func NewGenerator(lib *content.Library, masterSeed int64) *Generator {
	return &Generator{Lib: lib, MasterSeed: masterSeed}
}

func (g *Generator) seedFor(mapID string) int64 {
	return g.MasterSeed ^ utils.StringToSeed(mapID)
}

// ForID разбирает идентификатор карты и вызывает нужный генератор.
// Схема имен:
//
//	world_<x>_<y>                     - клетка мировой сетки
//	dungeon_world_<x>_<y>_<ex>_<ey>   - подземелье под входом (ex,ey)
//	interior_world_<x>_<y>_<dx>_<dy>  - интерьер здания с дверью (dx,dy)
func (g *Generator) ForID(mapID string) *domain.GameMap {
	rng := rand.New(rand.NewSource(g.seedFor(mapID)))

	switch {
	case strings.HasPrefix(mapID, "world_"):
		wx, wy, ok := parseWorldID(mapID)
		if !ok {
			logger.Log.WithField("map_id", mapID).Error("Некорректный идентификатор карты мира")
			return nil
		}
		if wx == 0 && wy == 0 {
			return g.GenerateTown(mapID, rng)
		}
		return g.GenerateWilderness(mapID, wx, wy, rng)
	case strings.HasPrefix(mapID, "dungeon_"):
		return g.GenerateDungeon(mapID, rng)
	case strings.HasPrefix(mapID, "interior_"):
		return g.GenerateInterior(mapID, rng)
	}

	logger.Log.WithField("map_id", mapID).Error("Неизвестный тип карты")
	return nil
}

func parseWorldID(mapID string) (int, int, bool) {
	parts := strings.Split(mapID, "_")
	if len(parts) != 3 {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(parts[1])
	y, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return x, y, true
}

// parentOf возвращает ID родительской карты для dungeon_/interior_ ID
func parentOf(mapID string) string {
	parts := strings.Split(mapID, "_")
	// <kind>_world_<x>_<y>_<ex>_<ey>
	if len(parts) >= 6 && parts[1] == "world" {
		return strings.Join(parts[1:4], "_")
	}
	return "world_0_0"
}

// WorldID строит ID клетки мировой сетки
func WorldID(x, y int) string {
	return fmt.Sprintf("world_%d_%d", x, y)
}

// DungeonID строит ID подземелья под входом на родительской карте
func DungeonID(parentID string, x, y int) string {
	return fmt.Sprintf("dungeon_%s_%d_%d", parentID, x, y)
}

// InteriorID строит ID интерьера за дверью на родительской карте
func InteriorID(parentID string, x, y int) string {
	return fmt.Sprintf("interior_%s_%d_%d", parentID, x, y)
}

// worldDifficulty растет с удалением от города
func worldDifficulty(wx, wy int) int {
	d := absInt(wx) + absInt(wy)
	if d < 1 {
		d = 1
	}
	return d
}

// GenerateTown строит стартовый город: площадь с фонтаном, дома с
// дверями, торговец и страж, немного деревьев на окраинах.
func (g *Generator) GenerateTown(mapID string, rng *rand.Rand) *domain.GameMap {
	b := NewMap(mapID, OverworldWidth, OverworldHeight, domain.TileGrass, rng).
		WithMeta(1, "town", true, false)

	cx, cy := OverworldWidth/2, OverworldHeight/2

	// Центральная площадь и дороги к краям
	b.FillRect(cx-4, cy-3, 9, 7, domain.TilePath)
	for x := 0; x < OverworldWidth; x++ {
		b.SetTile(x, cy, domain.TilePath)
	}
	for y := 0; y < OverworldHeight; y++ {
		b.SetTile(cx, y, domain.TilePath)
	}

	b.AddEntity(&domain.Entity{
		ID:      "town_fountain",
		Name:    "Фонтан",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeFountain,
		Pos:     domain.Position{X: cx, Y: cy - 1},
	})

	// Дома: крыша по периметру, пол внутри, дверь снизу
	houses := []Rect{
		{X: cx - 10, Y: cy - 8, W: 5, H: 4},
		{X: cx + 6, Y: cy - 8, W: 5, H: 4},
		{X: cx - 10, Y: cy + 4, W: 5, H: 4},
	}
	for i, h := range houses {
		b.FillRect(h.X, h.Y, h.W, h.H, domain.TileRoof)
		doorX, doorY := h.X+h.W/2, h.Y+h.H-1
		b.SetTile(doorX, doorY, domain.TileFloor)
		interiorID := InteriorID(mapID, doorX, doorY)
		b.AddEntity(&domain.Entity{
			ID:      fmt.Sprintf("town_door_%d", i),
			Name:    "Дверь",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeDoor,
			Pos:     domain.Position{X: doorX, Y: doorY},
			Link: &domain.LinkComponent{
				MapID: interiorID,
				Pos:   domain.Position{X: InteriorWidth / 2, Y: InteriorHeight - 2},
			},
		})
	}

	// Жители
	b.AddEntity(&domain.Entity{
		ID:   "npc_merchant",
		Name: "Торговец",
		Type: domain.EntityTypeNPC,
		Pos:  domain.Position{X: cx - 2, Y: cy - 2},
		Behavior: &domain.BehaviorComponent{
			AIType: domain.AITypeScheduled,
		},
		Schedule: &domain.ScheduleComponent{
			DayPos:   domain.Position{X: cx - 2, Y: cy - 2},
			NightPos: domain.Position{X: cx - 8, Y: cy - 6},
		},
	})
	b.AddEntity(&domain.Entity{
		ID:   "npc_guard",
		Name: "Страж",
		Type: domain.EntityTypeNPC,
		Pos:  domain.Position{X: cx + 3, Y: cy + 2},
		Behavior: &domain.BehaviorComponent{
			AIType: domain.AITypePassive,
		},
	})

	// Верстовой столб на площади
	b.AddEntity(&domain.Entity{
		ID:      "town_waypoint",
		Name:    "Путевой камень",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeWaypoint,
		Pos:     domain.Position{X: cx + 2, Y: cy - 1},
	})

	// Немного деревьев и воды на окраинах, чтобы было что рубить
	b.Scatter(domain.TileTree, 14, domain.TileGrass)
	b.FillRect(2, 2, 4, 3, domain.TileWater)
	b.AddEntity(&domain.Entity{
		ID:      "town_fishing_spot",
		Name:    "Рыбное место",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeFishingSpot,
		Pos:     domain.Position{X: 3, Y: 3},
	})

	g.linkWorldNeighbors(b, 0, 0)
	return b.Build()
}

// GenerateWilderness строит клетку дикой местности: биом по сиду,
// ресурсные тайлы, враги и спавнеры масштабируются по сложности.
func (g *Generator) GenerateWilderness(mapID string, wx, wy int, rng *rand.Rand) *domain.GameMap {
	difficulty := worldDifficulty(wx, wy)

	biomes := []string{"forest", "plains", "rocky"}
	biome := biomes[rng.Intn(len(biomes))]

	base := domain.TileGrass
	if biome == "rocky" {
		base = domain.TileDirt
	}

	b := NewMap(mapID, OverworldWidth, OverworldHeight, base, rng).
		WithMeta(difficulty, biome, false, false)

	// Ресурсы по биому
	switch biome {
	case "forest":
		b.Scatter(domain.TileTree, 40, base)
		b.Scatter(domain.TilePine, 15, base)
		b.Scatter(domain.TileRock, 6, base)
	case "plains":
		b.Scatter(domain.TileTree, 12, base)
		b.Scatter(domain.TileFlowers, 20, base)
		b.Scatter(domain.TileRock, 8, base)
	case "rocky":
		b.Scatter(domain.TileRock, 30, base)
		b.Scatter(domain.TileIronVein, 8+difficulty, base)
		b.Scatter(domain.TileTree, 6, base)
	}

	// Озеро с рыбным местом
	if rng.Intn(2) == 0 {
		lx := b.randRange(3, OverworldWidth-8)
		ly := b.randRange(3, OverworldHeight-6)
		b.FillRect(lx, ly, 5, 3, domain.TileWater)
		b.AddEntity(&domain.Entity{
			ID:      mapID + "_fishing_spot",
			Name:    "Рыбное место",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeFishingSpot,
			Pos:     domain.Position{X: lx + 1, Y: ly + 1},
		})
	}

	// Вход в подземелье в дальних клетках
	if difficulty >= 2 && rng.Intn(3) == 0 {
		pos := b.FindOpenTile()
		b.SetTile(pos.X, pos.Y, domain.TileEntranceCave)
	}

	// Враги: уровень и количество растут со сложностью
	enemyIDs := g.Lib.EnemyIDs()
	enemyCount := 3 + difficulty*2
	for i := 0; i < enemyCount; i++ {
		defID := enemyIDs[rng.Intn(len(enemyIDs))]
		level := 1 + rng.Intn(difficulty+1)
		if def, ok := g.Lib.Enemy(defID); ok {
			level = def.BaseLevel + rng.Intn(difficulty+1)
		}
		pos := b.FindOpenTile()
		b.AddEntity(g.Lib.SpawnEnemy(defID, level, i, pos))
	}

	// Спавнер в опасных зонах
	if difficulty >= 3 {
		pos := b.FindOpenTile()
		defID := enemyIDs[rng.Intn(len(enemyIDs))]
		b.AddEntity(&domain.Entity{
			ID:      mapID + "_spawner",
			Name:    "Гнездо",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeMobSpawner,
			Pos:     pos,
			Spawner: &domain.SpawnerComponent{
				SpawnType: defID,
				Level:     1 + difficulty,
			},
		})
	}

	// Ящики с добычей
	for i := 0; i < 2+rng.Intn(3); i++ {
		pos := b.FindOpenTile()
		b.AddEntity(&domain.Entity{
			ID:      fmt.Sprintf("%s_crate_%d", mapID, i),
			Name:    "Ящик",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeCrate,
			Pos:     pos,
			Combat:  &domain.CombatComponent{HP: 1, MaxHP: 1},
		})
	}

	g.linkWorldNeighbors(b, wx, wy)
	return b.Build()
}

// GenerateDungeon строит подземелье: комнаты и коридоры в скале,
// лестница вверх с выходом наружу в первой комнате, сундук в последней.
func (g *Generator) GenerateDungeon(mapID string, rng *rand.Rand) *domain.GameMap {
	parent := parentOf(mapID)
	wx, wy, _ := parseWorldID(parent)
	difficulty := worldDifficulty(wx, wy) + 1

	b := NewMap(mapID, DungeonWidth, DungeonHeight, domain.TileWall, rng).
		WithMeta(difficulty, "cave", false, false).
		WithRooms(9, 5, 9)

	rooms := b.Rooms()
	if len(rooms) == 0 {
		// Вырожденный случай: одна комната в центре
		b.FillRect(DungeonWidth/2-3, DungeonHeight/2-3, 6, 6, domain.TileFloor)
		b.SetTile(DungeonWidth/2, DungeonHeight/2, domain.TileStairsUp)
		b.AddEntity(g.dungeonExit(mapID, domain.Position{X: DungeonWidth / 2, Y: DungeonHeight / 2}))
		return b.Build()
	}

	sx, sy := rooms[0].Center()
	b.SetTile(sx, sy, domain.TileStairsUp)
	b.AddEntity(g.dungeonExit(mapID, domain.Position{X: sx, Y: sy}))

	// Руды в стенах рядом с комнатами
	b.Scatter(domain.TileIronVein, 6+difficulty, domain.TileWall)
	if difficulty >= 3 {
		b.Scatter(domain.TileGoldVein, difficulty, domain.TileWall)
	}
	b.Scatter(domain.TileCrackedWall, 8, domain.TileWall)

	// Враги по комнатам, кроме стартовой
	enemyIDs := g.Lib.EnemyIDs()
	for i, room := range rooms[1:] {
		cnt := 1 + rng.Intn(2)
		for j := 0; j < cnt; j++ {
			defID := enemyIDs[rng.Intn(len(enemyIDs))]
			level := difficulty + rng.Intn(3)
			if def, ok := g.Lib.Enemy(defID); ok {
				level = def.BaseLevel + difficulty + rng.Intn(3)
			}
			cx, cy := room.Center()
			pos := domain.Position{X: cx + j, Y: cy}
			if !b.m.InBounds(pos.X, pos.Y) || b.m.Tiles[pos.Y][pos.X].IsBlocked() {
				pos = b.FindOpenTile()
			}
			b.AddEntity(g.Lib.SpawnEnemy(defID, level, i*10+j, pos))
		}
	}

	// Сундук в последней комнате
	lx, ly := rooms[len(rooms)-1].Center()
	b.AddEntity(&domain.Entity{
		ID:      mapID + "_chest",
		Name:    "Сундук",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeChest,
		Pos:     domain.Position{X: lx, Y: ly},
	})

	return b.Build()
}

// dungeonExit собирает выход на лестнице вверх: шаг на нее ведет на
// родительскую карту, в клетку входа в пещеру. Координаты входа
// зашиты в ID подземелья.
func (g *Generator) dungeonExit(mapID string, stairs domain.Position) *domain.Entity {
	link := &domain.LinkComponent{MapID: parentOf(mapID)}

	parts := strings.Split(mapID, "_")
	if len(parts) >= 6 {
		ex, _ := strconv.Atoi(parts[len(parts)-2])
		ey, _ := strconv.Atoi(parts[len(parts)-1])
		link.Pos = domain.Position{X: ex, Y: ey}
	}

	return &domain.Entity{
		ID:      mapID + "_exit",
		Name:    "Выход из пещеры",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeDoor,
		Pos:     stairs,
		Link:    link,
	}
}

// GenerateInterior строит маленькую комнату здания: пол, стены по
// периметру, лестница вниз у южной стены ведет обратно наружу.
func (g *Generator) GenerateInterior(mapID string, rng *rand.Rand) *domain.GameMap {
	b := NewMap(mapID, InteriorWidth, InteriorHeight, domain.TileFloor, rng).
		WithMeta(1, "interior", false, true)

	for x := 0; x < InteriorWidth; x++ {
		b.SetTile(x, 0, domain.TileWall)
		b.SetTile(x, InteriorHeight-1, domain.TileWall)
	}
	for y := 0; y < InteriorHeight; y++ {
		b.SetTile(0, y, domain.TileWall)
		b.SetTile(InteriorWidth-1, y, domain.TileWall)
	}

	exitX, exitY := InteriorWidth/2, InteriorHeight-2
	b.SetTile(exitX, exitY, domain.TileStairsDown)

	// Выход связан с родительской картой через LinkComponent выхода;
	// координаты двери зашиты в ID интерьера.
	parts := strings.Split(mapID, "_")
	if len(parts) >= 6 {
		doorX, _ := strconv.Atoi(parts[len(parts)-2])
		doorY, _ := strconv.Atoi(parts[len(parts)-1])
		b.AddEntity(&domain.Entity{
			ID:      mapID + "_exit",
			Name:    "Выход",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeDoor,
			Pos:     domain.Position{X: exitX, Y: exitY},
			Link: &domain.LinkComponent{
				MapID: parentOf(mapID),
				Pos:   domain.Position{X: doorX, Y: doorY + 1},
			},
		})
	}

	// Обстановка: лампа и сундук
	b.AddEntity(&domain.Entity{
		ID:      mapID + "_lamp",
		Name:    "Лампа",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeLamp,
		Pos:     domain.Position{X: 2, Y: 2},
	})
	if rng.Intn(2) == 0 {
		b.AddEntity(&domain.Entity{
			ID:      mapID + "_chest",
			Name:    "Сундук",
			Type:    domain.EntityTypeObject,
			SubType: domain.SubTypeChest,
			Pos:     domain.Position{X: InteriorWidth - 3, Y: 2},
		})
	}

	return b.Build()
}

func (g *Generator) linkWorldNeighbors(b *MapBuilder, wx, wy int) {
	b.WithNeighbor(domain.DirUp, WorldID(wx, wy-1)).
		WithNeighbor(domain.DirDown, WorldID(wx, wy+1)).
		WithNeighbor(domain.DirLeft, WorldID(wx-1, wy)).
		WithNeighbor(domain.DirRight, WorldID(wx+1, wy))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
