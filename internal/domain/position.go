package domain

// Position - клетка на карте (целочисленные координаты, локальные для карты)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanTo возвращает манхэттенское расстояние (для агро-радиуса)
func (p Position) ManhattanTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacent возвращает true, если цель в соседней клетке по стороне (без диагоналей)
func (p Position) IsAdjacent(other Position) bool {
	return p.ManhattanTo(other) == 1
}

// Shift возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуру по значению)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo возвращает знаки шага по осям (-1, 0, 1) в сторону цели
func (p Position) DirectionTo(other Position) (int, int) {
	return sign(other.X - p.X), sign(other.Y - p.Y)
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
