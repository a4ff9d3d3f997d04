package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - корневой объект, который сервер отправляет клиенту:
// полный "снимок" мира, видимого игроку после очередного тика.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Tick текущий логический такт симуляции
	Tick int `json:"tick"`

	// MapID карта, на которой стоит игрок
	MapID string `json:"mapId,omitempty"`

	// Grid метаданные о размере текущей карты
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез исследованных тайлов (туман разведки уже применен,
	// оверлей истощенных ресурсов уже наложен)
	Map []TileView `json:"map,omitempty"`

	// Entities видимые сущности текущей карты
	Entities []EntityView `json:"entities,omitempty"`

	// Player блок состояния игрока
	Player *PlayerView `json:"player,omitempty"`

	// Logs последние записи журнала, новые первыми
	Logs []LogEntry `json:"logs,omitempty"`

	// Events презентационные события тика (числа урона, переходы)
	Events *EventsView `json:"events,omitempty"`

	// TimeOfDay игровые часы 0..2400, ночь > 1800 или < 600
	TimeOfDay int `json:"timeOfDay"`
}

// GridMeta содержит размеры карты, чтобы клиент подготовил сетку
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView - DTO одного исследованного тайла
type TileView struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`

	// Blocked true для непроходимых тайлов (после оверлея)
	Blocked bool `json:"blocked,omitempty"`
}

// EntityView - DTO игровой сущности
type EntityView struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	SubType string `json:"subType,omitempty"`
	Name    string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	// HP/MaxHP присутствуют только у боеспособных сущностей
	HP    int `json:"hp,omitempty"`
	MaxHP int `json:"maxHp,omitempty"`
	Level int `json:"level,omitempty"`

	// Animation одноразовый визуальный тег тика (ATTACK, HURT, ...)
	Animation string `json:"animation,omitempty"`
}

// PlayerView - блок игрока: позиция, статы, навыки, инвентарь
type PlayerView struct {
	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`
	Facing string `json:"facing"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	Level int `json:"level"`
	Gold  int `json:"gold"`

	Skills    []SkillView          `json:"skills,omitempty"`
	Equipment map[string]*ItemView `json:"equipment,omitempty"`
	Inventory []ItemView           `json:"inventory,omitempty"`
	Counters  map[string]int       `json:"counters,omitempty"`

	IsDead bool `json:"isDead,omitempty"`
}

// SkillView - DTO навыка
type SkillView struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
}

// ItemView - DTO предмета
type ItemView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int    `json:"count"`
	Slot  string `json:"slot,omitempty"`
}

// LogEntry - одна запись игрового журнала
type LogEntry struct {
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, GATHER, LOOT, SYSTEM, ...
	Tick int    `json:"tick"`
}

// EventsView - эфемерные события тика для слоя отрисовки
type EventsView struct {
	Damage        int            `json:"damage,omitempty"`
	TargetID      string         `json:"targetId,omitempty"`
	PlayerDamage  int            `json:"playerDamage,omitempty"`
	Transition    bool           `json:"transition,omitempty"`
	DamageNumbers map[string]int `json:"damageNumbers,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект всех сообщений от клиента
type ClientCommand struct {
	// Action название действия: INIT, MOVE, ATTACK, USE, RESPAWN, SAVE
	Action string `json:"action"`

	// Payload JSON-объект с данными действия, структура зависит от Action
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload - намерение хода. (0,0) - это "ждать на месте" или
// взаимодействие под ногами: полноценный тик.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// EntityPayload - действие по сущности (ATTACK)
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// ItemPayload - действие с предметом (USE)
type ItemPayload struct {
	ItemID string `json:"itemId"`
}
