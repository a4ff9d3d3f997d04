package domain

// --- КОМПОНЕНТЫ ---
// Сущность = тип + подтип + набор опциональных компонентов.
// Если указатель nil - свойства у сущности нет. Логика взаимодействия
// диспетчеризуется по Type/SubType и никогда не читает чужой компонент.

// CombatComponent - характеристики боеспособной сущности
type CombatComponent struct {
	HP       int    `json:"hp"`
	MaxHP    int    `json:"maxHp"`
	Level    int    `json:"level"`
	Defence  int    `json:"defence"`
	Weakness string `json:"weakness,omitempty"` // Слабость к типу урона
}

// LinkComponent - дверь/телепорт: куда ведет сущность
type LinkComponent struct {
	MapID string   `json:"mapId"`
	Pos   Position `json:"pos"`
}

// ScheduleComponent - расписание городского NPC (день/ночь)
type ScheduleComponent struct {
	DayPos   Position `json:"dayPos"`
	NightPos Position `json:"nightPos"`
}

// BehaviorComponent - параметры поведения AI
type BehaviorComponent struct {
	AIType      string `json:"aiType"` // PASSIVE, SCHEDULED, STATIC, AGGRESSIVE
	AggroRange  int    `json:"aggroRange,omitempty"`
	AttackRange int    `json:"attackRange,omitempty"`
}

// SpawnerComponent - состояние спавнера мобов
type SpawnerComponent struct {
	SpawnType     string `json:"spawnType"` // ID шаблона врага
	Level         int    `json:"level"`
	LastSpawnTick int    `json:"lastSpawnTick"`
}

// DropComponent - что лежит в ITEM_DROP / сундуке / ящике
type DropComponent struct {
	ItemID string `json:"itemId"`
	Count  int    `json:"count"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	ID      string `json:"id"` // Уникален в пределах карты
	Name    string `json:"name"`
	Type    string `json:"type"`
	SubType string `json:"subType,omitempty"`

	Pos Position `json:"pos"`

	Combat   *CombatComponent   `json:"combat,omitempty"`
	Link     *LinkComponent     `json:"link,omitempty"`
	Schedule *ScheduleComponent `json:"schedule,omitempty"`
	Behavior *BehaviorComponent `json:"behavior,omitempty"`
	Spawner  *SpawnerComponent  `json:"spawner,omitempty"`
	Drop     *DropComponent     `json:"drop,omitempty"`
}

// AggroRange возвращает агро-радиус с учетом умолчания
func (e *Entity) AggroRange() int {
	if e.Behavior != nil && e.Behavior.AggroRange > 0 {
		return e.Behavior.AggroRange
	}
	return DefaultAggroRange
}

// AttackRange возвращает радиус атаки с учетом умолчания
func (e *Entity) AttackRange() int {
	if e.Behavior != nil && e.Behavior.AttackRange > 0 {
		return e.Behavior.AttackRange
	}
	return DefaultAttackRange
}

// IsRanged - стреляет ли враг издалека (для таких атак нужен LOS)
func (e *Entity) IsRanged() bool {
	return e.AttackRange() > DefaultAttackRange
}

// BlocksMovement проверяет, занимает ли сущность клетку физически.
// Предметы на земле и декор без коллизии проходимы.
func (e *Entity) BlocksMovement() bool {
	switch e.Type {
	case EntityTypeItemDrop, EntityTypeCollectible:
		return false
	}
	if e.SubType == SubTypeWaypoint {
		return false
	}
	return true
}

// Clone возвращает глубокую копию сущности. Процессор AI работает на
// копиях и возвращает свежий список: старый тик никогда не видит
// мутаций нового.
func (e *Entity) Clone() *Entity {
	cp := *e
	if e.Combat != nil {
		c := *e.Combat
		cp.Combat = &c
	}
	if e.Link != nil {
		l := *e.Link
		cp.Link = &l
	}
	if e.Schedule != nil {
		s := *e.Schedule
		cp.Schedule = &s
	}
	if e.Behavior != nil {
		b := *e.Behavior
		cp.Behavior = &b
	}
	if e.Spawner != nil {
		s := *e.Spawner
		cp.Spawner = &s
	}
	if e.Drop != nil {
		d := *e.Drop
		cp.Drop = &d
	}
	return &cp
}

// TakeDamage наносит урон. Возвращает true, если сущность погибла.
func (c *CombatComponent) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	c.HP -= amount
	if c.HP <= 0 {
		c.HP = 0
		return true
	}
	return false
}
