package systems

import (
	"wildroot-server/internal/domain"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками.
// Целочисленный алгоритм Брезенхэма: идем от from к to, и если любая
// промежуточная клетка (кроме стартовой) непрозрачна или вне карты -
// взгляд заблокирован. Достижение цели всегда успех: саму цель
// (дерево, враг у стены) видно, даже если она непрозрачна.
// Тайлы читаются с учетом оверлея изменений мира: срубленное дерево
// линию огня больше не закрывает.
func HasLineOfSight(from, to domain.Position, m *domain.GameMap, overlay map[string]domain.TileType) bool {
	if from == to {
		return true
	}

	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := from.DirectionTo(to)
	err := dx - dy

	for {
		if x0 == x1 && y0 == y1 {
			return true
		}

		isOrigin := x0 == from.X && y0 == from.Y
		if !isOrigin {
			// Выход за границы по пути считается блокирующим
			if !m.InBounds(x0, y0) {
				return false
			}
			if m.EffectiveTile(x0, y0, overlay).IsOpaque() {
				return false
			}
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
