package domain

// Типы сущностей
const (
	EntityTypePlayer      = "PLAYER"
	EntityTypeNPC         = "NPC"
	EntityTypeEnemy       = "ENEMY"
	EntityTypeObject      = "OBJECT"
	EntityTypeCollectible = "COLLECTIBLE"
	EntityTypeItemDrop    = "ITEM_DROP"
)

// Подтипы сущностей (определяют семантику взаимодействия)
const (
	SubTypeDoor        = "DOOR"
	SubTypeChest       = "CHEST"
	SubTypeCrate       = "CRATE"
	SubTypeMobSpawner  = "MOB_SPAWNER"
	SubTypeWaypoint    = "WAYPOINT"
	SubTypeLamp        = "LAMP"
	SubTypeFountain    = "FOUNTAIN"
	SubTypeFishingSpot = "FISHING_SPOT"
	SubTypePlant       = "PLANT"
)

// Типы поведения AI
const (
	AITypePassive    = "PASSIVE"
	AITypeScheduled  = "SCHEDULED"
	AITypeStatic     = "STATIC"
	AITypeAggressive = "AGGRESSIVE"
)

// Параметры восприятия и боя
const (
	DefaultAggroRange  = 6 // Манхэттенское расстояние начала погони
	DefaultAttackRange = 1

	// Шансы фоновых действий AI
	PassiveStepChance = 0.20 // NPC слоняется по городу
	IdleRoamChance    = 0.10 // Враг бродит вне агро-радиуса
)

// Время и спавн.
// Вся симуляция живет на логических тиках: один ввод игрока = один тик.
const (
	SpawnCooldownTicks = 30 // Перезарядка спавнера
	TimeStepPerTick    = 2  // Шаг суточных часов
	DayLength          = 2400
	NightStart         = 1800
	NightEnd           = 600
)

// Исследование (туман войны)
const (
	RevealRadius     = 4
	RevealRadiusPerk = 2 // Добавка за перк зрения
)

const MaxLogEntries = 100

// Счетчики GameState.Counters. Набор открытый: условия секретов/ачивок
// читают их по имени, движок только инкрементирует.
const (
	CounterSteps       = "steps_taken"
	CounterKills       = "enemies_killed"
	CounterDamageTaken = "damage_taken"
	CounterDamageDealt = "damage_dealt"
	CounterMaxHit      = "max_hit_dealt"
	CounterGathered    = "resources_gathered"
	CounterPickups     = "items_picked_up"
	CounterCrates      = "crates_broken"
	CounterMapsVisited = "maps_discovered"
)

// Перки (открытый набор строковых ключей в Stats.Perks)
const (
	PerkVision          = "keen_eyes"  // +2 к радиусу разведки
	PerkDamageReduction = "thick_skin" // -1..2 к входящему урону
)

// IsNight проверяет, ночное ли время на суточных часах
func IsNight(clock int) bool {
	return clock > NightStart || clock < NightEnd
}
