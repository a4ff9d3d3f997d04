package engine

import (
	"testing"

	"wildroot-server/internal/domain"
)

func enemyAt(id string, x, y int) *domain.Entity {
	return &domain.Entity{
		ID:       id,
		Name:     "Гоблин",
		Type:     domain.EntityTypeEnemy,
		Pos:      domain.Position{X: x, Y: y},
		Combat:   &domain.CombatComponent{HP: 10, MaxHP: 10, Level: 3, Defence: 1},
		Behavior: &domain.BehaviorComponent{AIType: domain.AITypeAggressive},
	}
}

func TestProcessEnemyTurns_ChasesPlayer(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.AddEntity(enemyAt("goblin_1", 2, 5))
	st := stateOn("test", 6, 5)

	out := e.ProcessEnemyTurns(st, m, st.PlayerPos)

	var moved *domain.Entity
	for _, ent := range out.Entities {
		if ent.ID == "goblin_1" {
			moved = ent
		}
	}
	if moved == nil {
		t.Fatal("enemy must survive the tick")
	}
	// Погоня по оси с большей дельтой: шаг вправо
	if moved.Pos != (domain.Position{X: 3, Y: 5}) {
		t.Errorf("chase pos = %v, want (3,5)", moved.Pos)
	}
	// Исходная сущность не мутировала: тик работает на копиях
	if m.Entities[0].Pos != (domain.Position{X: 2, Y: 5}) {
		t.Error("source entity must stay untouched")
	}
}

func TestProcessEnemyTurns_AdjacentEnemyAttacks(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.AddEntity(enemyAt("goblin_1", 5, 5))
	st := stateOn("test", 6, 5)

	// Сидированный бросок: за несколько тиков хотя бы один удар пройдет
	landed := false
	for i := 0; i < 50 && !landed; i++ {
		out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
		if out.Animations["goblin_1"] != "ATTACK" {
			t.Fatal("adjacent enemy must attack, not move")
		}
		if out.DamageToPlayer > 0 {
			landed = true
			if out.DamageNumbers["player"] != out.DamageToPlayer {
				t.Error("damage numbers must mirror total player damage")
			}
			if out.Animations["player"] != "HURT" {
				t.Error("a landed hit plays the hurt animation")
			}
			if len(out.Logs) == 0 {
				t.Error("a landed hit must be logged")
			}
		}
	}
	if !landed {
		t.Fatal("no enemy hit landed in 50 ticks")
	}
}

func TestProcessEnemyTurns_NeverEndsOnPlayerTile(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	// Враг вплотную по диагонали не может шагнуть под игрока
	ent := enemyAt("goblin_1", 5, 4)
	ent.Behavior.AggroRange = 10
	m.AddEntity(ent)
	next := domain.Position{X: 5, Y: 5}
	st := stateOn("test", 5, 5)

	for i := 0; i < 30; i++ {
		out := e.ProcessEnemyTurns(st, m, next)
		for _, got := range out.Entities {
			if got.Pos == next {
				t.Fatalf("tick %d: entity %s ended on the player's tile", i, got.ID)
			}
		}
		m.Entities = out.Entities
	}
}

func TestProcessEnemyTurns_OccupiedTilesExcluded(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	// Два врага в колонне гонятся за одной целью: столкнуться не могут
	m.AddEntity(enemyAt("goblin_1", 2, 5))
	m.AddEntity(enemyAt("goblin_2", 3, 5))
	st := stateOn("test", 8, 5)

	for i := 0; i < 20; i++ {
		out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
		seen := make(map[domain.Position]string)
		for _, got := range out.Entities {
			if !got.BlocksMovement() {
				continue
			}
			if prev, dup := seen[got.Pos]; dup {
				t.Fatalf("tick %d: %s and %s share tile %v", i, prev, got.ID, got.Pos)
			}
			seen[got.Pos] = got.ID
		}
		m.Entities = out.Entities
	}
}

func TestProcessEnemyTurns_OutOfAggroMostlyIdle(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 40, 12)
	m.AddEntity(enemyAt("goblin_1", 2, 5))
	st := stateOn("test", 35, 5) // далеко за агро-радиусом

	stayed := 0
	for i := 0; i < 100; i++ {
		out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
		if out.Entities[0].Pos == m.Entities[0].Pos {
			stayed++
		}
		m.Entities = out.Entities
	}
	// Праздный шаг - 10% шанс: подавляющее большинство тиков стоим
	if stayed < 60 {
		t.Errorf("idle enemy moved too often: stayed %d/100", stayed)
	}
}

func TestProcessEnemyTurns_SpawnerCooldown(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.AddEntity(&domain.Entity{
		ID:      "spawner_1",
		Name:    "Гнездо",
		Type:    domain.EntityTypeObject,
		SubType: domain.SubTypeMobSpawner,
		Pos:     domain.Position{X: 3, Y: 3},
		Spawner: &domain.SpawnerComponent{SpawnType: "rat", Level: 1, LastSpawnTick: 0},
	})
	st := stateOn("test", 10, 10)

	// До перезарядки спавна нет
	st.Tick = domain.SpawnCooldownTicks - 1
	out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if len(out.Entities) != 1 {
		t.Fatalf("premature spawn: %d entities", len(out.Entities))
	}

	// Перезарядка истекла: ровно один враг на соседней клетке
	st.Tick = domain.SpawnCooldownTicks
	out = e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if len(out.Entities) != 2 {
		t.Fatalf("entities = %d, want spawner + spawned", len(out.Entities))
	}
	var spawned *domain.Entity
	for _, got := range out.Entities {
		if got.ID != "spawner_1" {
			spawned = got
		}
	}
	if spawned == nil || spawned.Type != domain.EntityTypeEnemy {
		t.Fatal("spawned entity must be an enemy")
	}
	if spawned.Pos.ManhattanTo(domain.Position{X: 3, Y: 3}) != 1 {
		t.Errorf("spawn pos %v must be adjacent to the spawner", spawned.Pos)
	}

	// Перезарядка перезапущена с тика спавна
	m.Entities = out.Entities
	st.Tick++
	out = e.ProcessEnemyTurns(st, m, st.PlayerPos)
	count := 0
	for _, got := range out.Entities {
		if got.Type == domain.EntityTypeEnemy {
			count++
		}
	}
	if count != 1 {
		t.Errorf("spawner must wait out its cooldown, enemies = %d", count)
	}
}

func TestProcessEnemyTurns_ScheduledNPCWalksHome(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.AddEntity(&domain.Entity{
		ID:       "merchant_1",
		Name:     "Торговец",
		Type:     domain.EntityTypeNPC,
		Pos:      domain.Position{X: 2, Y: 2},
		Behavior: &domain.BehaviorComponent{AIType: domain.AITypeScheduled},
		Schedule: &domain.ScheduleComponent{
			DayPos:   domain.Position{X: 8, Y: 2},
			NightPos: domain.Position{X: 2, Y: 2},
		},
	})

	// Днем торговец тянется к дневному посту
	st := stateOn("test", 11, 11)
	st.TimeOfDay = 1200
	out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if out.Entities[0].Pos != (domain.Position{X: 3, Y: 2}) {
		t.Errorf("day step = %v, want (3,2)", out.Entities[0].Pos)
	}

	// Ночью с ночного поста не уходит
	st.TimeOfDay = 2000
	out = e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if out.Entities[0].Pos != (domain.Position{X: 2, Y: 2}) {
		t.Errorf("night pos = %v, want the night post", out.Entities[0].Pos)
	}
}

func TestProcessEnemyTurns_StaticNPCStays(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.AddEntity(&domain.Entity{
		ID:       "statue_1",
		Name:     "Статуя",
		Type:     domain.EntityTypeNPC,
		Pos:      domain.Position{X: 4, Y: 4},
		Behavior: &domain.BehaviorComponent{AIType: domain.AITypeStatic},
	})
	st := stateOn("test", 5, 5)

	for i := 0; i < 25; i++ {
		out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
		if out.Entities[0].Pos != (domain.Position{X: 4, Y: 4}) {
			t.Fatal("static npc must never move")
		}
		m.Entities = out.Entities
	}
}

// Лучник стреляет только по линии огня, и линия считается по
// эффективным тайлам: пень на месте срубленного дерева не закрывает
func TestProcessEnemyTurns_RangedHonorsOverlay(t *testing.T) {
	e := testEngine()
	m := flatMap("test", 12, 12)
	m.Tiles[5][4] = domain.TileTree
	m.AddEntity(&domain.Entity{
		ID:       "archer_1",
		Name:     "Скелет-лучник",
		Type:     domain.EntityTypeEnemy,
		Pos:      domain.Position{X: 2, Y: 5},
		Combat:   &domain.CombatComponent{HP: 16, MaxHP: 16, Level: 8, Defence: 5},
		Behavior: &domain.BehaviorComponent{AIType: domain.AITypeAggressive, AttackRange: 4},
	})
	st := stateOn("test", 6, 5)

	// Дерево на линии: выстрела нет, лучник идет в обход
	out := e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if out.Animations["archer_1"] == "SHOOT" {
		t.Fatal("a tree on the firing line must suppress the shot")
	}

	// Дерево срублено: та же дистанция, но линия огня открыта
	st.SetOverlay("test", 4, 5, domain.TileStump)
	out = e.ProcessEnemyTurns(st, m, st.PlayerPos)
	if out.Animations["archer_1"] != "SHOOT" {
		t.Errorf("a stump must not block the shot, got %q", out.Animations["archer_1"])
	}
	if out.Entities[0].Pos != (domain.Position{X: 2, Y: 5}) {
		t.Error("an attack always spends the move")
	}
}
