package systems

import (
	"testing"

	"wildroot-server/internal/domain"
)

func TestRevealAround_Radius(t *testing.T) {
	m := openMap(20, 20)
	st := gatherState()

	center := domain.Position{X: 10, Y: 10}
	RevealAround(st, m, center)

	grid := st.Exploration[m.ID]
	if !grid[10][10] {
		t.Fatal("center must be revealed")
	}
	if !grid[6][6] || !grid[14][14] {
		t.Error("square of radius 4 must be revealed")
	}
	if grid[5][10] || grid[10][15] {
		t.Error("tiles beyond radius 4 must stay hidden")
	}
}

func TestRevealAround_VisionPerk(t *testing.T) {
	m := openMap(20, 20)
	st := gatherState()
	st.Stats.Perks[domain.PerkVision] = true

	RevealAround(st, m, domain.Position{X: 10, Y: 10})

	grid := st.Exploration[m.ID]
	if !grid[4][10] || !grid[10][16] {
		t.Error("vision perk must extend the radius to 6")
	}
	if grid[3][10] {
		t.Error("radius 7 is out of reach even with the perk")
	}
}

func TestRevealAround_ClipsAtEdges(t *testing.T) {
	m := openMap(6, 6)
	st := gatherState()

	// Не должно паниковать у границы
	RevealAround(st, m, domain.Position{X: 0, Y: 0})
	if !st.Exploration[m.ID][0][0] {
		t.Error("corner must be revealed")
	}
}

func TestEnsureExplorationGrid_Interior(t *testing.T) {
	m := openMap(8, 6)
	m.IsInterior = true
	st := gatherState()

	grid := EnsureExplorationGrid(st, m)
	for y := range grid {
		for x := range grid[y] {
			if !grid[y][x] {
				t.Fatalf("interior tile (%d,%d) must start revealed", x, y)
			}
		}
	}
}

func TestEnsureExplorationGrid_CountsMapsOnce(t *testing.T) {
	m := openMap(8, 6)
	st := gatherState()

	EnsureExplorationGrid(st, m)
	EnsureExplorationGrid(st, m)

	if st.Counters[domain.CounterMapsVisited] != 1 {
		t.Errorf("maps_discovered = %d, want 1", st.Counters[domain.CounterMapsVisited])
	}
}
