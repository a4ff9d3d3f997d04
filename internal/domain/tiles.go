package domain

// TileType - тип клетки ландшафта. Сам ландшафт неизменяем: истощение
// ресурсов и прочие изменения мира живут в оверлее GameState.WorldModified.
type TileType string

const (
	// Проходимые
	TileGrass      TileType = "GRASS"
	TilePath       TileType = "PATH"
	TileSand       TileType = "SAND"
	TileDirt       TileType = "DIRT"
	TileFloor      TileType = "FLOOR"
	TileBridge     TileType = "BRIDGE"
	TileFlowers    TileType = "FLOWERS"
	TileStairsUp   TileType = "STAIRS_UP"
	TileStairsDown TileType = "STAIRS_DOWN"

	// Входы (спецобработка движком до проверки проходимости)
	TileEntranceCave TileType = "ENTRANCE_CAVE"

	// Блокирующие: ресурсные узлы
	TileTree         TileType = "TREE"
	TilePine         TileType = "PINE"
	TileStump        TileType = "STUMP"
	TileRock         TileType = "ROCK"
	TileIronVein     TileType = "IRON_VEIN"
	TileGoldVein     TileType = "GOLD_VEIN"
	TileDepletedVein TileType = "DEPLETED_VEIN"

	// Блокирующие: прочее
	TileWater       TileType = "WATER"
	TileWall        TileType = "WALL"
	TileCrackedWall TileType = "CRACKED_WALL"
	TileRoof        TileType = "ROOF"
	TileLava        TileType = "LAVA"
	TileObsidian    TileType = "OBSIDIAN"
	TileVoid        TileType = "VOID"
)

// blockedTiles - статический набор непроходимых клеток
var blockedTiles = map[TileType]bool{
	TileTree:         true,
	TilePine:         true,
	TileStump:        true,
	TileRock:         true,
	TileIronVein:     true,
	TileGoldVein:     true,
	TileDepletedVein: true,
	TileWater:        true,
	TileWall:         true,
	TileCrackedWall:  true,
	TileRoof:         true,
	TileLava:         true,
	TileObsidian:     true,
	TileVoid:         true,
}

// opaqueTiles - набор клеток, через которые не проходит взгляд
var opaqueTiles = map[TileType]bool{
	TileTree:         true,
	TilePine:         true,
	TileRock:         true,
	TileIronVein:     true,
	TileGoldVein:     true,
	TileDepletedVein: true,
	TileWater:        true,
	TileWall:         true,
	TileCrackedWall:  true,
	TileRoof:         true,
	TileLava:         true,
	TileObsidian:     true,
	TileVoid:         true,
	// Пень низкий, через него видно - в набор не входит
}

// IsBlocked проверяет, непроходима ли клетка
func (t TileType) IsBlocked() bool {
	return blockedTiles[t]
}

// IsOpaque проверяет, блокирует ли клетка линию взгляда
func (t TileType) IsOpaque() bool {
	return opaqueTiles[t]
}

// IsEntrance проверяет, является ли клетка входом в подземелье
func (t TileType) IsEntrance() bool {
	return t == TileEntranceCave
}
