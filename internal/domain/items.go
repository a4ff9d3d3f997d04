package domain

// Типы предметов
const (
	ItemTypeMaterial   = "MATERIAL"
	ItemTypeConsumable = "CONSUMABLE"
	ItemTypeEquipment  = "EQUIPMENT"
	ItemTypeQuest      = "QUEST"
)

// Слоты экипировки (фиксированные 6)
const (
	SlotWeapon = "weapon"
	SlotHead   = "head"
	SlotBody   = "body"
	SlotLegs   = "legs"
	SlotShield = "shield"
	SlotAmulet = "amulet"
)

// EquipSlotNames - канонический порядок слотов
var EquipSlotNames = []string{SlotWeapon, SlotHead, SlotBody, SlotLegs, SlotShield, SlotAmulet}

// Категории инструментов (определяются экипированным оружием)
const (
	ToolNone    = ""
	ToolAxe     = "axe"
	ToolPickaxe = "pickaxe"
	ToolRod     = "rod"
)

// Стили урона оружия. По стилю проверяется уязвимость врага:
// категория инструмента к бою отношения не имеет.
const (
	StyleSlash = "slash"
	StyleCrush = "crush"
)

// Item - предмет в инвентаре или экипировке.
// Стакуемые типы (MATERIAL, CONSUMABLE) делят одну запись на ID предмета;
// экипировка всегда уникальна - у каждого экземпляра свой ID.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int    `json:"count"`

	// Боевые поля (экипировка)
	Slot       string  `json:"slot,omitempty"`
	Power      int     `json:"power,omitempty"`    // Сила оружия / бонус урона
	Accuracy   int     `json:"accuracy,omitempty"` // Точность оружия
	Armor      int     `json:"armor,omitempty"`    // Бонус защиты
	Style      string  `json:"style,omitempty"`    // Стиль урона (уязвимости)
	CritChance float64 `json:"critChance,omitempty"`

	// Инструмент (у оружия)
	Tool      string `json:"tool,omitempty"`
	ToolPower int    `json:"toolPower,omitempty"`

	// Расходники
	HealAmount int `json:"healAmount,omitempty"`

	Value int `json:"value,omitempty"` // Стоимость в золоте
}

// IsStackable - складывается ли предмет в стаки
func (it *Item) IsStackable() bool {
	return it.Type == ItemTypeMaterial || it.Type == ItemTypeConsumable
}

// Clone возвращает копию предмета
func (it *Item) Clone() *Item {
	cp := *it
	return &cp
}
