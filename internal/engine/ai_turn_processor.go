package engine

import (
	"fmt"

	"wildroot-server/internal/content"
	"wildroot-server/internal/domain"
	"wildroot-server/internal/systems"
	"wildroot-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AIOutcome - результат одного прохода AI по всем сущностям карты.
// Содержит свежий список сущностей: применяет его к карте только
// движок хода (единственный писатель).
type AIOutcome struct {
	Entities       []*domain.Entity
	DamageToPlayer int
	Logs           []domain.LogEntry
	Animations     map[string]string
	DamageNumbers  map[string]int
}

// ProcessEnemyTurns продвигает всех неигровых сущностей на один шаг.
// Решения принимаются против позиции, В КОТОРУЮ игрок переходит этим
// тиком (nextPlayerPos), а не против прошлой: враги реагируют на то,
// куда игрок идет.
//
// Порядок строго следует порядку хранения сущностей: решение каждой
// видит клетки, уже занятые предыдущими в этом же тике.
func (e *Engine) ProcessEnemyTurns(state *domain.GameState, m *domain.GameMap, nextPlayerPos domain.Position) AIOutcome {
	outcome := AIOutcome{
		Entities:      make([]*domain.Entity, 0, len(m.Entities)),
		Animations:    make(map[string]string),
		DamageNumbers: make(map[string]int),
	}

	overlay := state.Overlay(m.ID)

	// Клетки, занятые на конец тика. Клетка назначения игрока занята
	// всегда: никто не может закончить тик под ногами игрока.
	occupied := make(map[domain.Position]bool, len(m.Entities)+1)
	occupied[nextPlayerPos] = true
	for _, ent := range m.Entities {
		if ent.BlocksMovement() {
			occupied[ent.Pos] = true
		}
	}

	isFree := func(p domain.Position) bool {
		if !m.InBounds(p.X, p.Y) {
			return false
		}
		if m.EffectiveTile(p.X, p.Y, overlay).IsBlocked() {
			return false
		}
		return !occupied[p]
	}

	for _, src := range m.Entities {
		ent := src.Clone()

		// Сущность освобождает свою клетку перед выбором хода и
		// занимает ту, на которой закончила (старую или новую).
		if ent.BlocksMovement() {
			delete(occupied, ent.Pos)
		}

		switch {
		case ent.Spawner != nil:
			e.tickSpawner(state, ent, isFree, &outcome, func(p domain.Position) { occupied[p] = true })

		case ent.Type == domain.EntityTypeEnemy && ent.Combat != nil:
			e.processEnemy(state, m, ent, nextPlayerPos, isFree, &outcome)

		case ent.Type == domain.EntityTypeNPC:
			e.processNPC(state, ent, isFree)
		}

		if ent.BlocksMovement() {
			occupied[ent.Pos] = true
		}
		outcome.Entities = append(outcome.Entities, ent)
	}

	return outcome
}

// processEnemy - машина состояний врага: атака, погоня, безделье
func (e *Engine) processEnemy(state *domain.GameState, m *domain.GameMap, ent *domain.Entity, playerPos domain.Position, isFree func(domain.Position) bool, outcome *AIOutcome) {
	dist := ent.Pos.ManhattanTo(playerPos)

	// Вне агро-радиуса: 10% шанс праздного шага
	if dist > ent.AggroRange() {
		if e.Rng.Float64() < domain.IdleRoamChance {
			e.randomStep(ent, isFree)
		}
		return
	}

	// В радиусе атаки: бьем. Атака всегда съедает ход (движения нет).
	if dist <= ent.AttackRange() {
		if ent.IsRanged() && !systems.HasLineOfSight(ent.Pos, playerPos, m, state.Overlay(m.ID)) {
			// Лучник без линии огня ведет себя как преследователь
			e.chaseStep(ent, playerPos, isFree)
			return
		}
		e.enemyAttack(state, ent, outcome)
		return
	}

	// В агро-радиусе, но не в радиусе атаки: погоня
	e.chaseStep(ent, playerPos, isFree)
}

// enemyAttack разыгрывает атаку врага по игроку
func (e *Engine) enemyAttack(state *domain.GameState, ent *domain.Entity, outcome *AIOutcome) {
	combat := ent.Combat

	accuracy := content.EnemyAccuracy(combat.Level, state.WorldTier)
	defenceLevel := state.SkillLevel(domain.SkillDefence)
	armour := state.ArmorBonus()

	chance := systems.HitChance(combat.Level, accuracy, defenceLevel, armour)

	maxHit := systems.MaxHit(combat.Level, 0)
	if state.WorldTier > 1 {
		maxHit = content.ScaledStat(maxHit, 1, state.WorldTier)
	}

	damage, hit, _ := systems.RollDamage(e.Rng, chance, maxHit, 0)

	animTag := "ATTACK"
	if ent.IsRanged() {
		animTag = "SHOOT"
	}
	outcome.Animations[ent.ID] = animTag

	if !hit {
		outcome.Animations["player"] = "DODGE"
		return
	}

	// Перк снижения урона: -1..2 к каждому входящему удару
	if state.Stats.HasPerk(domain.PerkDamageReduction) {
		damage -= 1 + e.Rng.Intn(2)
		if damage < 0 {
			damage = 0
		}
	}

	outcome.DamageToPlayer += damage
	outcome.DamageNumbers["player"] += damage
	outcome.Animations["player"] = "HURT"
	outcome.Logs = append(outcome.Logs, domain.LogEntry{
		Text: fmt.Sprintf("%s бьет вас! -%d HP", ent.Name, damage),
		Type: "COMBAT",
		Tick: state.Tick,
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_processor",
		"enemy_id":  ent.ID,
		"damage":    damage,
	}).Debug("Enemy attack landed.")
}

// chaseStep - шаг погони: сначала ось с большей дельтой, при блоке -
// вторая ось, при блоке обеих сущность стоит
func (e *Engine) chaseStep(ent *domain.Entity, target domain.Position, isFree func(domain.Position) bool) {
	dx := target.X - ent.Pos.X
	dy := target.Y - ent.Pos.Y
	sx, sy := ent.Pos.DirectionTo(target)

	primary := ent.Pos.Shift(sx, 0)
	secondary := ent.Pos.Shift(0, sy)
	if abs(dy) > abs(dx) {
		primary, secondary = secondary, primary
	}

	if primary != ent.Pos && isFree(primary) {
		ent.Pos = primary
		return
	}
	if secondary != ent.Pos && isFree(secondary) {
		ent.Pos = secondary
	}
}

// processNPC - поведение мирных сущностей
func (e *Engine) processNPC(state *domain.GameState, ent *domain.Entity, isFree func(domain.Position) bool) {
	aiType := domain.AITypeStatic
	if ent.Behavior != nil {
		aiType = ent.Behavior.AIType
	}

	switch aiType {
	case domain.AITypePassive:
		// Слоняется: 20% шанс одного случайного шага
		if e.Rng.Float64() < domain.PassiveStepChance {
			e.randomStep(ent, isFree)
		}

	case domain.AITypeScheduled:
		if ent.Schedule == nil {
			return
		}
		target := ent.Schedule.DayPos
		if domain.IsNight(state.TimeOfDay) {
			target = ent.Schedule.NightPos
		}
		if ent.Pos != target {
			e.chaseStep(ent, target, isFree)
		}

	default:
		// STATIC и все прочее: стоим
	}
}

// randomStep пытается сделать один случайный шаг по стороне света
func (e *Engine) randomStep(ent *domain.Entity, isFree func(domain.Position) bool) {
	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	d := dirs[e.Rng.Intn(4)]
	next := ent.Pos.Shift(d[0], d[1])
	if isFree(next) {
		ent.Pos = next
	}
}

// tickSpawner проверяет перезарядку спавнера и порождает врага на
// первой свободной соседней клетке. LastSpawnTick обновляется только
// когда спавн реально произошел.
func (e *Engine) tickSpawner(state *domain.GameState, ent *domain.Entity, isFree func(domain.Position) bool, outcome *AIOutcome, claim func(domain.Position)) {
	sp := ent.Spawner
	if state.Tick-sp.LastSpawnTick < domain.SpawnCooldownTicks {
		return
	}

	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range dirs {
		pos := ent.Pos.Shift(d[0], d[1])
		if !isFree(pos) {
			continue
		}

		spawned := e.Content.SpawnEnemy(sp.SpawnType, sp.Level, state.Tick, pos)
		spawned.ID = ent.ID + "_" + spawned.ID
		outcome.Entities = append(outcome.Entities, spawned)
		claim(pos)
		sp.LastSpawnTick = state.Tick

		logger.Log.WithFields(logrus.Fields{
			"component":  "ai_processor",
			"spawner_id": ent.ID,
			"spawned":    spawned.ID,
		}).Debug("Spawner produced an enemy.")
		return
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
