package content

import (
	"embed"
	"fmt"

	"wildroot-server/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DropEntry - одна строка таблицы лута с весом
type DropEntry struct {
	ItemID string  `yaml:"item"`
	Count  int     `yaml:"count"`
	Weight float64 `yaml:"weight"`
}

// NodeDef - определение ресурсного узла (дерево, жила, место рыбалки)
type NodeDef struct {
	ID            string          `yaml:"id"`
	Name          string          `yaml:"name"`
	Tile          domain.TileType `yaml:"tile"`          // Тайл, по которому узел находится
	DepletedTile  domain.TileType `yaml:"depletedTile"`  // Во что превращается после добычи
	Skill         string          `yaml:"skill"`         // Навык добычи
	RequiredLevel int             `yaml:"requiredLevel"`
	Hardness      int             `yaml:"hardness"`
	Tool          string          `yaml:"tool"` // Категория инструмента ("" = руки)
	XP            int             `yaml:"xp"`
	Drops         []DropEntry     `yaml:"drops"`

	// Апгрейд узла в сложных зонах: в зоне с difficulty >= порога
	// вместо этого узла добывается более богатый вариант.
	UpgradeTo         string `yaml:"upgradeTo,omitempty"`
	UpgradeDifficulty int    `yaml:"upgradeDifficulty,omitempty"`
}

// EnemyDef - шаблон врага. Базовые статы масштабируются уровнем
// экспоненциально (см. ScaledStat).
type EnemyDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	BaseHP      int    `yaml:"baseHp"`
	BaseLevel   int    `yaml:"baseLevel"`
	BaseDefence int    `yaml:"baseDefence"`
	Weakness    string `yaml:"weakness,omitempty"`
	AggroRange  int    `yaml:"aggroRange,omitempty"`
	AttackRange int    `yaml:"attackRange,omitempty"`
	DropItem    string `yaml:"dropItem,omitempty"`
	DropChance  float64 `yaml:"dropChance,omitempty"`
}

// ItemDef - определение предмета (прямо в доменной форме)
type ItemDef struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Slot       string  `yaml:"slot,omitempty"`
	Power      int     `yaml:"power,omitempty"`
	Accuracy   int     `yaml:"accuracy,omitempty"`
	Armor      int     `yaml:"armor,omitempty"`
	Style      string  `yaml:"style,omitempty"`
	CritChance float64 `yaml:"critChance,omitempty"`
	Tool       string  `yaml:"tool,omitempty"`
	ToolPower  int     `yaml:"toolPower,omitempty"`
	HealAmount int     `yaml:"healAmount,omitempty"`
	Value      int     `yaml:"value,omitempty"`
}

// Library - загруженные таблицы контента. Чистые справочные данные:
// ядро симуляции их только читает.
type Library struct {
	nodes       map[string]*NodeDef
	nodesByTile map[domain.TileType]*NodeDef
	enemies     map[string]*EnemyDef
	items       map[string]*ItemDef
}

// Load парсит встроенные YAML-таблицы. Ошибка здесь - ошибка сборки
// контента, жить с ней нельзя.
func Load() (*Library, error) {
	lib := &Library{
		nodes:       make(map[string]*NodeDef),
		nodesByTile: make(map[domain.TileType]*NodeDef),
		enemies:     make(map[string]*EnemyDef),
		items:       make(map[string]*ItemDef),
	}

	var nodes struct {
		Nodes []*NodeDef `yaml:"nodes"`
	}
	if err := loadYAML("data/nodes.yaml", &nodes); err != nil {
		return nil, err
	}
	for _, n := range nodes.Nodes {
		lib.nodes[n.ID] = n
		if n.Tile != "" {
			if _, dup := lib.nodesByTile[n.Tile]; !dup {
				lib.nodesByTile[n.Tile] = n
			}
		}
	}

	var enemies struct {
		Enemies []*EnemyDef `yaml:"enemies"`
	}
	if err := loadYAML("data/enemies.yaml", &enemies); err != nil {
		return nil, err
	}
	for _, e := range enemies.Enemies {
		lib.enemies[e.ID] = e
	}

	var items struct {
		Items []*ItemDef `yaml:"items"`
	}
	if err := loadYAML("data/items.yaml", &items); err != nil {
		return nil, err
	}
	for _, it := range items.Items {
		lib.items[it.ID] = it
	}

	return lib, nil
}

// MustLoad - Load с паникой (для main и тестов)
func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic("content load failed: " + err.Error())
	}
	return lib
}

func loadYAML(path string, out interface{}) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// NodeByID возвращает узел по точному ID
func (l *Library) NodeByID(id string) (*NodeDef, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// NodeByTile возвращает узел, добываемый с данного тайла
func (l *Library) NodeByTile(t domain.TileType) (*NodeDef, bool) {
	n, ok := l.nodesByTile[t]
	return n, ok
}

// Enemy возвращает шаблон врага
func (l *Library) Enemy(id string) (*EnemyDef, bool) {
	e, ok := l.enemies[id]
	return e, ok
}

// EnemyIDs возвращает список всех ID врагов (порядок не гарантирован)
func (l *Library) EnemyIDs() []string {
	ids := make([]string, 0, len(l.enemies))
	for id := range l.enemies {
		ids = append(ids, id)
	}
	return ids
}

// Item возвращает определение предмета
func (l *Library) Item(id string) (*ItemDef, bool) {
	it, ok := l.items[id]
	return it, ok
}

// NewItem создает доменный предмет из определения.
// Экипировка получает уникальный ID экземпляра, стакуемые предметы
// сохраняют ID определения (по нему идет слияние стаков).
func (l *Library) NewItem(defID string, count int, uniqueID string) *domain.Item {
	def, ok := l.items[defID]
	if !ok {
		// Сломанная ссылка в таблицах - баг контента
		panic("unknown item id: " + defID)
	}
	item := &domain.Item{
		ID:         def.ID,
		Name:       def.Name,
		Type:       def.Type,
		Count:      count,
		Slot:       def.Slot,
		Power:      def.Power,
		Accuracy:   def.Accuracy,
		Armor:      def.Armor,
		Style:      def.Style,
		CritChance: def.CritChance,
		Tool:       def.Tool,
		ToolPower:  def.ToolPower,
		HealAmount: def.HealAmount,
		Value:      def.Value,
	}
	if !item.IsStackable() {
		item.ID = defID + "_" + uniqueID
		item.Count = 1
	}
	return item
}
