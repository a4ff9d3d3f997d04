package content

import (
	"fmt"
	"math"

	"wildroot-server/internal/domain"
)

// ScaledStat масштабирует базовый стат шаблона под уровень зоны:
// экспонента с основанием 1.1 на каждый уровень сверх базового.
// Та же формула применяется и к статичным шаблонам генераторов,
// и к врагам из спавнеров.
func ScaledStat(base, baseLevel, level int) int {
	if level <= baseLevel {
		return base
	}
	scaled := float64(base) * math.Pow(1.1, float64(level-baseLevel))
	return int(math.Floor(scaled))
}

// EnemyAccuracy - точность врага: уровень, усиленный мировым тиром
func EnemyAccuracy(level, worldTier int) int {
	if worldTier < 1 {
		worldTier = 1
	}
	return level * worldTier
}

// SpawnEnemy создает врага из шаблона, масштабированного под уровень.
// ID уникален в пределах карты - собирается из шаблона и порядкового
// номера, который выдает вызывающая сторона.
func (l *Library) SpawnEnemy(defID string, level int, seq int, pos domain.Position) *domain.Entity {
	def, ok := l.enemies[defID]
	if !ok {
		panic("unknown enemy id: " + defID)
	}
	if level < def.BaseLevel {
		level = def.BaseLevel
	}

	return &domain.Entity{
		ID:   fmt.Sprintf("%s_%d", def.ID, seq),
		Name: def.Name,
		Type: domain.EntityTypeEnemy,
		Pos:  pos,
		Combat: &domain.CombatComponent{
			HP:       ScaledStat(def.BaseHP, def.BaseLevel, level),
			MaxHP:    ScaledStat(def.BaseHP, def.BaseLevel, level),
			Level:    level,
			Defence:  ScaledStat(def.BaseDefence, def.BaseLevel, level),
			Weakness: def.Weakness,
		},
		Behavior: &domain.BehaviorComponent{
			AIType:      domain.AITypeAggressive,
			AggroRange:  def.AggroRange,
			AttackRange: def.AttackRange,
		},
	}
}
