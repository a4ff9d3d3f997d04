package domain

import "math"

// Названия 16 навыков
const (
	SkillAttack      = "attack"
	SkillStrength    = "strength"
	SkillDefence     = "defence"
	SkillHitpoints   = "hitpoints"
	SkillRanged      = "ranged"
	SkillMagic       = "magic"
	SkillMining      = "mining"
	SkillWoodcutting = "woodcutting"
	SkillFishing     = "fishing"
	SkillCooking     = "cooking"
	SkillSmithing    = "smithing"
	SkillCrafting    = "crafting"
	SkillAlchemy     = "alchemy"
	SkillFarming     = "farming"
	SkillThieving    = "thieving"
	SkillSlayer      = "slayer"
)

// SkillNames - канонический порядок навыков (для UI и сейвов)
var SkillNames = []string{
	SkillAttack, SkillStrength, SkillDefence, SkillHitpoints,
	SkillRanged, SkillMagic, SkillMining, SkillWoodcutting,
	SkillFishing, SkillCooking, SkillSmithing, SkillCrafting,
	SkillAlchemy, SkillFarming, SkillThieving, SkillSlayer,
}

// Skill - один навык. XP только растет; уровень - детерминированная
// функция от XP.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
}

// LevelForXP возвращает уровень по накопленному опыту:
// level = max(1, floor(log(xp/10)/log(1.12)) + 1)
func LevelForXP(xp int) int {
	if xp < 10 {
		return 1
	}
	lvl := int(math.Floor(math.Log(float64(xp)/10.0)/math.Log(1.12))) + 1
	if lvl < 1 {
		return 1
	}
	return lvl
}

// AddXP добавляет опыт и пересчитывает уровень.
// Возвращает true, если уровень вырос.
func (s *Skill) AddXP(amount int) bool {
	if amount <= 0 {
		return false
	}
	s.XP += amount
	newLevel := LevelForXP(s.XP)
	leveled := newLevel > s.Level
	s.Level = newLevel
	return leveled
}

// NewSkillSet создает стартовый набор навыков (все на 1 уровне)
func NewSkillSet() map[string]*Skill {
	skills := make(map[string]*Skill, len(SkillNames))
	for _, name := range SkillNames {
		skills[name] = &Skill{Name: name, Level: 1, XP: 0}
	}
	return skills
}
