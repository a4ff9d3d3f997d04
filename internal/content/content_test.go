package content

import (
	"testing"

	"wildroot-server/internal/domain"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("embedded tables must parse: %v", err)
	}

	if _, ok := lib.NodeByID("tree"); !ok {
		t.Error("node table must contain the tree")
	}
	if _, ok := lib.Enemy("rat"); !ok {
		t.Error("enemy table must contain the rat")
	}
	if _, ok := lib.Item("bread"); !ok {
		t.Error("item table must contain bread")
	}
	if len(lib.EnemyIDs()) < 3 {
		t.Error("enemy table is suspiciously small")
	}
}

func TestNodeByTile(t *testing.T) {
	lib := MustLoad()

	node, ok := lib.NodeByTile(domain.TileTree)
	if !ok || node.ID != "tree" {
		t.Fatalf("TREE tile must map to the tree node, got %v", node)
	}
	if node.Skill != domain.SkillWoodcutting || node.Tool != "axe" {
		t.Error("tree must be chopped with an axe for woodcutting xp")
	}

	// Рыбалка находится только по ID: у воды узла нет
	if _, ok := lib.NodeByTile(domain.TileWater); ok {
		t.Error("water itself is not a resource")
	}
	if _, ok := lib.NodeByID("fishing_spot"); !ok {
		t.Error("fishing node must resolve by id")
	}
}

func TestNodeUpgrades(t *testing.T) {
	lib := MustLoad()
	tree, _ := lib.NodeByID("tree")
	if tree.UpgradeTo != "pine" || tree.UpgradeDifficulty != 3 {
		t.Error("trees must upgrade to pines in hard zones")
	}
	if _, ok := lib.NodeByID(tree.UpgradeTo); !ok {
		t.Error("upgrade target must exist in the table")
	}
}

func TestDropTablesResolve(t *testing.T) {
	lib := MustLoad()
	for id, node := range lib.nodes {
		for _, d := range node.Drops {
			if _, ok := lib.Item(d.ItemID); !ok {
				t.Errorf("node %s drops unknown item %q", id, d.ItemID)
			}
			if d.Weight <= 0 {
				t.Errorf("node %s has a weightless drop %q", id, d.ItemID)
			}
		}
	}
	for id, def := range lib.enemies {
		if def.DropItem == "" {
			continue
		}
		if _, ok := lib.Item(def.DropItem); !ok {
			t.Errorf("enemy %s drops unknown item %q", id, def.DropItem)
		}
	}
}

func TestNewItem_StackingRules(t *testing.T) {
	lib := MustLoad()

	// Стакуемое: ID предмета равен ID определения
	bread := lib.NewItem("bread", 3, "ignored")
	if bread.ID != "bread" || bread.Count != 3 {
		t.Errorf("stackable item = %+v", bread)
	}

	// Экипировка: уникальный экземпляр, счетчик всегда 1
	axe := lib.NewItem("bronze_axe", 5, "abc123")
	if axe.ID != "bronze_axe_abc123" {
		t.Errorf("equipment id = %q, want a unique instance id", axe.ID)
	}
	if axe.Count != 1 {
		t.Errorf("equipment count = %d, want 1", axe.Count)
	}
	if axe.Tool != "axe" || axe.ToolPower != 1 {
		t.Error("tool stats must carry over from the definition")
	}
}

func TestNewItem_UnknownIDPanics(t *testing.T) {
	lib := MustLoad()
	defer func() {
		if recover() == nil {
			t.Fatal("an unknown item id is a content bug and must panic")
		}
	}()
	lib.NewItem("no_such_item", 1, "")
}

func TestScaledStat(t *testing.T) {
	if got := ScaledStat(10, 1, 1); got != 10 {
		t.Errorf("base level keeps the base stat, got %d", got)
	}
	if got := ScaledStat(10, 1, 0); got != 10 {
		t.Errorf("below base level keeps the base stat, got %d", got)
	}
	prev := 0
	for lvl := 1; lvl <= 20; lvl++ {
		got := ScaledStat(10, 1, lvl)
		if got < prev {
			t.Fatalf("scaling must be monotonic, level %d gave %d after %d", lvl, got, prev)
		}
		prev = got
	}
	// 1.1^10 ~ 2.59
	if got := ScaledStat(10, 1, 11); got != 25 {
		t.Errorf("ScaledStat(10,1,11) = %d, want 25", got)
	}
}

func TestSpawnEnemy(t *testing.T) {
	lib := MustLoad()

	e := lib.SpawnEnemy("goblin", 5, 7, domain.Position{X: 3, Y: 4})
	if e.ID != "goblin_7" {
		t.Errorf("id = %q, want goblin_7", e.ID)
	}
	if e.Type != domain.EntityTypeEnemy || e.Combat == nil || e.Behavior == nil {
		t.Fatal("spawned enemy must carry combat and behavior")
	}
	if e.Combat.Level != 5 {
		t.Errorf("level = %d, want 5", e.Combat.Level)
	}
	if e.Combat.HP != e.Combat.MaxHP || e.Combat.HP <= 14 {
		t.Errorf("hp %d/%d must scale above the base 14", e.Combat.HP, e.Combat.MaxHP)
	}
	if e.Combat.Weakness != "slash" {
		t.Error("weakness must carry over from the template")
	}

	// Уровень ниже базового поднимается до базового
	weak := lib.SpawnEnemy("cave_troll", 1, 0, domain.Position{})
	if weak.Combat.Level != 14 {
		t.Errorf("level = %d, want the base 14", weak.Combat.Level)
	}
}

func TestEnemyAccuracy(t *testing.T) {
	if got := EnemyAccuracy(6, 1); got != 6 {
		t.Errorf("tier 1 accuracy = %d, want 6", got)
	}
	if got := EnemyAccuracy(6, 3); got != 18 {
		t.Errorf("tier 3 accuracy = %d, want 18", got)
	}
	if got := EnemyAccuracy(6, 0); got != 6 {
		t.Errorf("tier below 1 clamps to 1, got %d", got)
	}
}

// Каждая уязвимость врага должна быть достижима: в таблицах есть хотя
// бы одно оружие с таким стилем урона
func TestEnemyWeaknessesAreReachable(t *testing.T) {
	lib := MustLoad()

	styles := make(map[string]bool)
	for _, it := range lib.items {
		if it.Style != "" {
			styles[it.Style] = true
		}
	}

	for _, id := range lib.EnemyIDs() {
		def, _ := lib.Enemy(id)
		if def.Weakness == "" {
			continue
		}
		if !styles[def.Weakness] {
			t.Errorf("enemy %s is weak to %q, but no weapon deals that style", id, def.Weakness)
		}
	}
}

func TestNewItem_CarriesStyle(t *testing.T) {
	lib := MustLoad()

	axe := lib.NewItem("bronze_axe", 1, "s1")
	if axe.Style != domain.StyleSlash {
		t.Errorf("bronze_axe style = %q, want slash", axe.Style)
	}
	pick := lib.NewItem("iron_pickaxe", 1, "s2")
	if pick.Style != domain.StyleCrush {
		t.Errorf("iron_pickaxe style = %q, want crush", pick.Style)
	}
	rod := lib.NewItem("fishing_rod", 1, "s3")
	if rod.Style != "" {
		t.Errorf("fishing_rod must have no damage style, got %q", rod.Style)
	}
}
