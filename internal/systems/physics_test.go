package systems

import (
	"testing"

	"wildroot-server/internal/domain"
)

func openMap(w, h int) *domain.GameMap {
	tiles := make([][]domain.TileType, h)
	for y := 0; y < h; y++ {
		row := make([]domain.TileType, w)
		for x := 0; x < w; x++ {
			row[x] = domain.TileGrass
		}
		tiles[y] = row
	}
	return &domain.GameMap{ID: "test", Width: w, Height: h, Tiles: tiles}
}

func TestHasLineOfSight_Reflexive(t *testing.T) {
	m := openMap(10, 10)
	p := domain.Position{X: 4, Y: 4}
	if !HasLineOfSight(p, p, m, nil) {
		t.Error("LOS к самому себе обязан быть true")
	}
}

func TestHasLineOfSight_OpenGround(t *testing.T) {
	m := openMap(10, 10)
	if !HasLineOfSight(domain.Position{X: 1, Y: 1}, domain.Position{X: 8, Y: 6}, m, nil) {
		t.Error("open ground must not block sight")
	}
}

func TestHasLineOfSight_WallBetween(t *testing.T) {
	m := openMap(10, 10)
	m.Tiles[5][5] = domain.TileWall

	from := domain.Position{X: 2, Y: 5}
	to := domain.Position{X: 8, Y: 5}
	if HasLineOfSight(from, to, m, nil) {
		t.Error("wall directly between two points must block sight")
	}
	// Симметрия
	if HasLineOfSight(to, from, m, nil) {
		t.Error("wall must block sight in both directions")
	}
}

// Стена в точке старта не мешает: смотрим ИЗ нее, а не СКВОЗЬ нее
func TestHasLineOfSight_OriginExcluded(t *testing.T) {
	m := openMap(10, 10)
	m.Tiles[5][2] = domain.TileWall

	if !HasLineOfSight(domain.Position{X: 2, Y: 5}, domain.Position{X: 4, Y: 5}, m, nil) {
		t.Error("origin tile must not block its own sight")
	}
}

// Цель достижима, даже если сама по себе непрозрачна (дерево видно)
func TestHasLineOfSight_OpaqueDestination(t *testing.T) {
	m := openMap(10, 10)
	m.Tiles[5][6] = domain.TileTree

	if !HasLineOfSight(domain.Position{X: 2, Y: 5}, domain.Position{X: 6, Y: 5}, m, nil) {
		t.Error("the destination tile itself must be visible")
	}
}

// Оверлей имеет приоритет над статикой: срубленное дерево взгляд
// больше не закрывает
func TestHasLineOfSight_OverlayClearsBlocker(t *testing.T) {
	m := openMap(10, 10)
	m.Tiles[5][5] = domain.TileTree

	from := domain.Position{X: 2, Y: 5}
	to := domain.Position{X: 8, Y: 5}
	if HasLineOfSight(from, to, m, nil) {
		t.Fatal("a standing tree must block sight")
	}

	overlay := map[string]domain.TileType{
		domain.OverlayKey(5, 5): domain.TileStump,
	}
	if !HasLineOfSight(from, to, m, overlay) {
		t.Error("a stump in the overlay must not block sight")
	}
}

func TestHasLineOfSight_AdjacentCells(t *testing.T) {
	m := openMap(5, 5)
	if !HasLineOfSight(domain.Position{X: 2, Y: 2}, domain.Position{X: 3, Y: 2}, m, nil) {
		t.Error("adjacent cells always see each other")
	}
}
