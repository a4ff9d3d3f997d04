package systems

import (
	"wildroot-server/internal/domain"
)

// Туман войны. Разведка - квадрат фиксированного радиуса вокруг
// игрока, без учета препятствий: "видел" и "видит" - разные вещи,
// LOS этим не управляет.

// EnsureExplorationGrid выделяет сетку тумана для карты, если ее еще нет.
// Интерьеры открываются целиком в момент создания.
func EnsureExplorationGrid(state *domain.GameState, m *domain.GameMap) [][]bool {
	grid, ok := state.Exploration[m.ID]
	if ok {
		return grid
	}

	grid = make([][]bool, m.Height)
	for y := range grid {
		grid[y] = make([]bool, m.Width)
		if m.IsInterior {
			for x := range grid[y] {
				grid[y][x] = true
			}
		}
	}
	if state.Exploration == nil {
		state.Exploration = make(map[string][][]bool)
	}
	state.Exploration[m.ID] = grid
	state.Bump(domain.CounterMapsVisited, 1)
	return grid
}

// RevealAround открывает квадрат вокруг позиции игрока.
// Радиус: 4 клетки, +2 с перком зрения.
func RevealAround(state *domain.GameState, m *domain.GameMap, center domain.Position) {
	grid := EnsureExplorationGrid(state, m)

	radius := domain.RevealRadius
	if state.Stats.HasPerk(domain.PerkVision) {
		radius += domain.RevealRadiusPerk
	}

	for y := center.Y - radius; y <= center.Y+radius; y++ {
		if y < 0 || y >= m.Height {
			continue
		}
		for x := center.X - radius; x <= center.X+radius; x++ {
			if x < 0 || x >= m.Width {
				continue
			}
			grid[y][x] = true
		}
	}
}
