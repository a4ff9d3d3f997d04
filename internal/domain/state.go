package domain

// Stats - ресурсы и базовые характеристики игрока
type Stats struct {
	HP        int             `json:"hp"`
	MaxHP     int             `json:"maxHp"`
	Strength  int             `json:"strength"`
	Dexterity int             `json:"dexterity"`
	Intellect int             `json:"intellect"`
	Level     int             `json:"level"`
	XP        int             `json:"xp"`
	Gold      int             `json:"gold"`
	Perks     map[string]bool `json:"perks,omitempty"`
}

// HasPerk проверяет наличие перка
func (s *Stats) HasPerk(name string) bool {
	return s.Perks != nil && s.Perks[name]
}

// LogEntry - запись игрового журнала (новые записи в начале списка)
type LogEntry struct {
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, GATHER, ERROR
	Tick int    `json:"tick"`
}

// GameState - единственный корень изменяемого состояния симуляции,
// видимого игроку. Движок хода не мутирует его на месте: каждый тик
// порождает новый GameState чистой трансформацией предыдущего.
// Исключение - списки сущностей карт и семантика оверлея: они живут
// в реестре карт и разделяются между тиками.
type GameState struct {
	PlayerPos    Position  `json:"playerPos"`
	PlayerFacing Direction `json:"playerFacing"`
	CurrentMapID string    `json:"currentMapId"`

	Stats     Stats             `json:"stats"`
	Equipment map[string]*Item  `json:"equipment"` // Слот -> предмет (6 слотов)
	Skills    map[string]*Skill `json:"skills"`    // 16 именованных навыков
	Inventory []*Item           `json:"inventory"`

	Counters map[string]int `json:"counters"`

	// Exploration - туман войны: карта -> [y][x] открыта ли клетка
	Exploration map[string][][]bool `json:"exploration"`

	// WorldModified - оверлей изменений мира: карта -> "y,x" -> тайл-замена
	WorldModified map[string]map[string]TileType `json:"worldModified"`

	// Animations - одноразовые визуальные метки на тик (ID сущности -> тег)
	Animations map[string]string `json:"animations,omitempty"`

	Logs []LogEntry `json:"logs"`

	ActiveQuest string `json:"activeQuest,omitempty"`
	TimeOfDay   int    `json:"time"`
	WorldTier   int    `json:"worldTier"`
	Tick        int    `json:"tick"`
}

// Clone делает глубокую копию состояния для чистой трансформации тика
func (gs *GameState) Clone() *GameState {
	cp := *gs

	cp.Stats.Perks = cloneBoolMap(gs.Stats.Perks)

	cp.Equipment = make(map[string]*Item, len(gs.Equipment))
	for slot, it := range gs.Equipment {
		if it != nil {
			cp.Equipment[slot] = it.Clone()
		}
	}

	cp.Skills = make(map[string]*Skill, len(gs.Skills))
	for name, sk := range gs.Skills {
		s := *sk
		cp.Skills[name] = &s
	}

	cp.Inventory = make([]*Item, len(gs.Inventory))
	for i, it := range gs.Inventory {
		cp.Inventory[i] = it.Clone()
	}

	cp.Counters = make(map[string]int, len(gs.Counters))
	for k, v := range gs.Counters {
		cp.Counters[k] = v
	}

	cp.Exploration = make(map[string][][]bool, len(gs.Exploration))
	for mapID, grid := range gs.Exploration {
		rows := make([][]bool, len(grid))
		for y, row := range grid {
			rows[y] = append([]bool(nil), row...)
		}
		cp.Exploration[mapID] = rows
	}

	cp.WorldModified = make(map[string]map[string]TileType, len(gs.WorldModified))
	for mapID, overlay := range gs.WorldModified {
		o := make(map[string]TileType, len(overlay))
		for k, v := range overlay {
			o[k] = v
		}
		cp.WorldModified[mapID] = o
	}

	// Анимации одноразовые: новый тик начинает с чистого листа
	cp.Animations = make(map[string]string)

	cp.Logs = append([]LogEntry(nil), gs.Logs...)

	return &cp
}

func cloneBoolMap(src map[string]bool) map[string]bool {
	if src == nil {
		return nil
	}
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Bump увеличивает счетчик на delta
func (gs *GameState) Bump(counter string, delta int) {
	if gs.Counters == nil {
		gs.Counters = make(map[string]int)
	}
	gs.Counters[counter] += delta
}

// RecordMaxHit запоминает рекордный удар
func (gs *GameState) RecordMaxHit(damage int) {
	if damage > gs.Counters[CounterMaxHit] {
		gs.Counters[CounterMaxHit] = damage
	}
}

// AddLog добавляет запись в начало журнала и обрезает его до лимита
func (gs *GameState) AddLog(text, logType string) {
	gs.Logs = append([]LogEntry{{Text: text, Type: logType, Tick: gs.Tick}}, gs.Logs...)
	if len(gs.Logs) > MaxLogEntries {
		gs.Logs = gs.Logs[:MaxLogEntries]
	}
}

// Overlay возвращает оверлей текущей карты (может быть nil)
func (gs *GameState) Overlay(mapID string) map[string]TileType {
	return gs.WorldModified[mapID]
}

// SetOverlay записывает замену тайла в оверлей карты
func (gs *GameState) SetOverlay(mapID string, x, y int, t TileType) {
	if gs.WorldModified == nil {
		gs.WorldModified = make(map[string]map[string]TileType)
	}
	if gs.WorldModified[mapID] == nil {
		gs.WorldModified[mapID] = make(map[string]TileType)
	}
	gs.WorldModified[mapID][OverlayKey(x, y)] = t
}

// SkillLevel возвращает уровень навыка (1, если навык не найден)
func (gs *GameState) SkillLevel(name string) int {
	if sk, ok := gs.Skills[name]; ok {
		return sk.Level
	}
	return 1
}

// AddSkillXP добавляет опыт навыку, создавая его при необходимости
func (gs *GameState) AddSkillXP(name string, amount int) bool {
	sk, ok := gs.Skills[name]
	if !ok {
		sk = &Skill{Name: name, Level: 1}
		gs.Skills[name] = sk
	}
	return sk.AddXP(amount)
}

// Weapon возвращает экипированное оружие (или nil)
func (gs *GameState) Weapon() *Item {
	return gs.Equipment[SlotWeapon]
}

// ArmorBonus - суммарный бонус защиты со всей экипировки
func (gs *GameState) ArmorBonus() int {
	total := 0
	for _, it := range gs.Equipment {
		if it != nil {
			total += it.Armor
		}
	}
	return total
}

// AddItem кладет предмет в инвентарь. Стакуемые предметы сливаются в
// существующую запись по ID, уникальные всегда добавляются отдельной.
func (gs *GameState) AddItem(item *Item) {
	if item.Count <= 0 {
		item.Count = 1
	}
	if item.IsStackable() {
		for _, existing := range gs.Inventory {
			if existing.ID == item.ID {
				existing.Count += item.Count
				return
			}
		}
	}
	gs.Inventory = append(gs.Inventory, item)
}

// RemoveItem снимает count единиц предмета. Возвращает false, если не хватило.
func (gs *GameState) RemoveItem(itemID string, count int) bool {
	for i, it := range gs.Inventory {
		if it.ID != itemID {
			continue
		}
		if it.Count < count {
			return false
		}
		it.Count -= count
		if it.Count <= 0 {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
		}
		return true
	}
	return false
}
