package domain

import "testing"

func TestLevelForXP_Base(t *testing.T) {
	if got := LevelForXP(0); got != 1 {
		t.Errorf("LevelForXP(0) = %d, want 1", got)
	}
	if got := LevelForXP(5); got != 1 {
		t.Errorf("LevelForXP(5) = %d, want 1", got)
	}
}

// Уровень обязан монотонно не убывать с ростом опыта
func TestLevelForXP_Monotonic(t *testing.T) {
	prev := LevelForXP(0)
	for xp := 1; xp <= 100000; xp += 7 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level dropped: LevelForXP(%d) = %d, previous %d", xp, level, prev)
		}
		prev = level
	}
}

func TestSkill_AddXP(t *testing.T) {
	sk := &Skill{Name: SkillMining, Level: 1}

	leveled := sk.AddXP(10000)
	if !leveled {
		t.Error("expected a level up from 10000 xp")
	}
	if sk.XP != 10000 {
		t.Errorf("XP = %d, want 10000", sk.XP)
	}
	if sk.Level != LevelForXP(10000) {
		t.Errorf("Level = %d, want %d", sk.Level, LevelForXP(10000))
	}

	// Второе добавление: опыт только растет
	before := sk.XP
	sk.AddXP(5)
	if sk.XP < before {
		t.Error("xp must never decrease")
	}
}

func TestNewSkillSet(t *testing.T) {
	skills := NewSkillSet()
	if len(skills) != len(SkillNames) {
		t.Fatalf("got %d skills, want %d", len(skills), len(SkillNames))
	}
	for _, name := range SkillNames {
		sk, ok := skills[name]
		if !ok {
			t.Errorf("skill %q missing", name)
			continue
		}
		if sk.Level != 1 || sk.XP != 0 {
			t.Errorf("skill %q = lvl %d xp %d, want fresh 1/0", name, sk.Level, sk.XP)
		}
	}
}
