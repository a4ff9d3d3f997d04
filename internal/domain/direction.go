package domain

// Direction - сторона света, в которую смотрит/идет сущность
type Direction uint8

const (
	DirDown Direction = iota // Лицом к игроку по умолчанию
	DirUp
	DirLeft
	DirRight
)

var dirNames = map[Direction]string{
	DirDown:  "DOWN",
	DirUp:    "UP",
	DirLeft:  "LEFT",
	DirRight: "RIGHT",
}

func (d Direction) String() string {
	if s, ok := dirNames[d]; ok {
		return s
	}
	return "DOWN"
}

// MarshalJSON сериализует направление строкой ("RIGHT"), чтобы клиенту
// не приходилось знать внутренние числа
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON парсит строку из JSON (для загрузки сейвов)
func (d *Direction) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for dir, name := range dirNames {
		if name == s {
			*d = dir
			return nil
		}
	}
	*d = DirDown
	return nil
}

// DirectionFromDelta конвертирует вектор ввода в направление взгляда.
// Нулевой вектор ("взаимодействие на месте") возвращает ok=false:
// взгляд в этом случае не меняется.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	switch {
	case dx > 0:
		return DirRight, true
	case dx < 0:
		return DirLeft, true
	case dy > 0:
		return DirDown, true
	case dy < 0:
		return DirUp, true
	}
	return DirDown, false
}

// Delta возвращает единичный вектор направления
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}
