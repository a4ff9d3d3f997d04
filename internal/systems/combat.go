package systems

import (
	"math"
	"math/rand"
)

// Боевые формулы. Чистые функции без состояния: вся случайность
// приходит снаружи через *rand.Rand, чтобы бой был воспроизводим
// при фиксированном сиде.

// MaxHit - верхняя граница урона при подтвержденном попадании:
// max(1, floor(0.5 + (level+8)*(power+64)/96))
func MaxHit(effectiveStrengthLevel, weaponPower int) int {
	hit := int(math.Floor(0.5 + float64(effectiveStrengthLevel+8)*float64(weaponPower+64)/96.0))
	if hit < 1 {
		return 1
	}
	return hit
}

// HitChance - шанс попадания атаки по цели, зажатый в [0.05, 0.95]
func HitChance(attackLevel, weaponAccuracy, defenceLevel, defenceBonus int) float64 {
	attackRoll := float64((attackLevel + 8) * (weaponAccuracy + 64))
	defenceRoll := float64((defenceLevel + 8) * (defenceBonus + 64))

	var chance float64
	if attackRoll > defenceRoll {
		chance = 1.0 - (defenceRoll+2)/(2*(attackRoll+1))
	} else {
		chance = attackRoll / (2 * (defenceRoll + 1))
	}

	if chance < 0.05 {
		return 0.05
	}
	if chance > 0.95 {
		return 0.95
	}
	return chance
}

// XPSplit - распределение опыта от нанесенного урона
type XPSplit struct {
	HPXP     int
	CombatXP int
}

// XPFromDamage делит урон на опыт: 70% живучести, 130% боевого навыка
func XPFromDamage(damage int) XPSplit {
	return XPSplit{
		HPXP:     int(math.Floor(float64(damage) * 0.7)),
		CombatXP: int(math.Floor(float64(damage) * 1.3)),
	}
}

// RollDamage разыгрывает один удар: бросок на попадание, затем
// равномерный урон в [0, maxHit] с минимумом 1, затем независимый
// бросок на крит. Возвращает (урон, попали ли, был ли крит).
func RollDamage(rng *rand.Rand, chance float64, maxHit int, critChance float64) (int, bool, bool) {
	if rng.Float64() >= chance {
		return 0, false, false
	}

	damage := rng.Intn(maxHit + 1)
	if damage < 1 {
		damage = 1
	}

	crit := false
	if critChance > 0 && rng.Float64() < critChance {
		damage *= 2
		crit = true
	}

	return damage, true, crit
}
