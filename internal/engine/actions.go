package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"wildroot-server/internal/domain"
	"wildroot-server/internal/systems"
	"wildroot-server/pkg/logger"
	"wildroot-server/pkg/utils"
	"wildroot-server/pkg/worldgen"
)

// ResolveAttack - явная атака игрока по сущности. Боевой контакт идет
// отдельной командой, а не столкновением при движении: шаг во врага -
// это no-op, удар - это ResolveAttack.
func (e *Engine) ResolveAttack(prev *domain.GameState, targetID string) (*domain.GameState, Events) {
	ev := Events{}
	state := prev.Clone()

	if state.Stats.HP <= 0 {
		return state, ev
	}

	m := e.mapByID(state.CurrentMapID)
	ent := m.GetEntity(targetID)
	if ent == nil || ent.Combat == nil {
		return state, ev
	}

	// Дотянуться можно только до соседней клетки
	if state.PlayerPos.ManhattanTo(ent.Pos) > 1 {
		state.AddLog("Слишком далеко.", "INFO")
		return state, ev
	}

	e.advanceClock(state)

	if dir, ok := domain.DirectionFromDelta(
		ent.Pos.X-state.PlayerPos.X, ent.Pos.Y-state.PlayerPos.Y); ok {
		state.PlayerFacing = dir
	}

	weapon := state.Weapon()
	power, accuracy, crit := 0, 0, 0.0
	if weapon != nil {
		power = weapon.Power
		accuracy = weapon.Accuracy
		crit = weapon.CritChance
	}

	attackLevel := state.SkillLevel(domain.SkillAttack)
	strengthLevel := state.SkillLevel(domain.SkillStrength)

	maxHit := systems.MaxHit(strengthLevel, power)
	// Уязвимость: оружие подходящего стиля бьет заметно больнее
	if weapon != nil && ent.Combat.Weakness != "" && weapon.Style == ent.Combat.Weakness {
		maxHit = maxHit * 3 / 2
	}
	chance := systems.HitChance(attackLevel, accuracy, ent.Combat.Level, ent.Combat.Defence)

	damage, hit, wasCrit := systems.RollDamage(e.Rng, chance, maxHit, crit)

	state.Animations["player"] = "ATTACK"
	if !hit {
		state.Animations[ent.ID] = "DODGE"
		state.AddLog(ent.Name+" уклоняется от удара.", "COMBAT")
		e.runAITurn(state, m, &ev)
		e.reveal(state)
		return state, ev
	}

	dead := ent.Combat.TakeDamage(damage)
	state.Animations[ent.ID] = "HURT"
	ev.Damage = damage
	ev.TargetID = ent.ID
	ev.addDamageNumber(ent.ID, damage)

	state.Bump(domain.CounterDamageDealt, damage)
	state.RecordMaxHit(damage)

	// Опыт за каждый подтвержденный удар
	xp := systems.XPFromDamage(damage)
	if state.AddSkillXP(domain.SkillHitpoints, xp.HPXP) {
		state.AddLog("Навык повышен: "+domain.SkillHitpoints+"!", "LEVELUP")
	}
	if state.AddSkillXP(domain.SkillAttack, xp.CombatXP) {
		state.AddLog("Навык повышен: "+domain.SkillAttack+"!", "LEVELUP")
	}

	if wasCrit {
		state.AddLog(fmt.Sprintf("Критический удар! %s получает %d урона.", ent.Name, damage), "COMBAT")
	} else {
		state.AddLog(fmt.Sprintf("Вы бьете %s. -%d HP", ent.Name, damage), "COMBAT")
	}

	if dead {
		e.killEntity(state, m, ent)
	}

	e.runAITurn(state, m, &ev)
	e.reveal(state)
	return state, ev
}

// killEntity убирает убитого врага с карты и разыгрывает его добычу
func (e *Engine) killEntity(state *domain.GameState, m *domain.GameMap, ent *domain.Entity) {
	m.RemoveEntity(ent.ID)
	state.Bump(domain.CounterKills, 1)
	state.AddLog(ent.Name+" повержен!", "COMBAT")

	// Определение врага ищем по имени: ID сущности несет суффиксы
	// спавнера и порядкового номера
	for _, defID := range e.Content.EnemyIDs() {
		def, ok := e.Content.Enemy(defID)
		if !ok || def.Name != ent.Name {
			continue
		}
		if def.DropItem != "" && e.Rng.Float64() < def.DropChance {
			m.AddEntity(&domain.Entity{
				ID:   "drop_" + utils.GenerateID(),
				Name: "Добыча",
				Type: domain.EntityTypeItemDrop,
				Pos:  ent.Pos,
				Drop: &domain.DropComponent{ItemID: def.DropItem, Count: 1},
			})
		}
		break
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"entity_id": ent.ID,
		"map_id":    m.ID,
	}).Debug("Entity killed and removed.")
}

// UseConsumable съедает предмет из инвентаря. Действие меню: мир при
// этом не тикает и ИИ не ходит.
func (e *Engine) UseConsumable(prev *domain.GameState, itemID string) *domain.GameState {
	state := prev.Clone()

	var item *domain.Item
	for _, it := range state.Inventory {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil || item.Type != domain.ItemTypeConsumable {
		return state
	}

	healed := item.HealAmount
	if state.Stats.HP+healed > state.Stats.MaxHP {
		healed = state.Stats.MaxHP - state.Stats.HP
	}
	state.Stats.HP += healed
	state.RemoveItem(item.ID, 1)
	state.AddLog(fmt.Sprintf("Вы используете %s. +%d HP", item.Name, healed), "HEAL")
	return state
}

// Respawn возвращает погибшего игрока на городскую площадь.
// Внешняя команда: движок сам смерть не обрабатывает.
func (e *Engine) Respawn(prev *domain.GameState) *domain.GameState {
	state := prev.Clone()
	if state.Stats.HP > 0 {
		return state
	}

	// Штраф: десятая часть золота остается в могиле
	state.Stats.Gold -= state.Stats.Gold / 10
	state.Stats.HP = state.Stats.MaxHP

	town := e.mapByID(worldgen.WorldID(0, 0))
	state.CurrentMapID = town.ID
	state.PlayerPos = domain.Position{X: town.Width / 2, Y: town.Height/2 + 1}
	state.AddLog("Вы очнулись у фонтана.", "SYSTEM")

	e.reveal(state)
	return state
}
