package secrets

import (
	"testing"

	"wildroot-server/internal/domain"
)

func emptyState() *domain.GameState {
	return &domain.GameState{
		Counters:  make(map[string]int),
		Skills:    domain.NewSkillSet(),
		TimeOfDay: 1200,
	}
}

func TestEvaluateAll_UnlocksOnce(t *testing.T) {
	st := emptyState()
	unlocked := make(map[string]bool)

	if fresh := EvaluateAll(st, unlocked); len(fresh) != 0 {
		t.Fatalf("a clean state must unlock nothing, got %d", len(fresh))
	}

	st.Counters[domain.CounterKills] = 1
	fresh := EvaluateAll(st, unlocked)
	if len(fresh) != 1 || fresh[0].ID != "first_blood" {
		t.Fatalf("first kill must unlock first_blood, got %+v", fresh)
	}

	// Повторный проход не открывает секрет заново
	if fresh := EvaluateAll(st, unlocked); len(fresh) != 0 {
		t.Error("an unlocked secret must stay silent")
	}
	if !unlocked["first_blood"] {
		t.Error("the unlocked set must be updated in place")
	}
}

func TestEvaluateAll_MultipleAtOnce(t *testing.T) {
	st := emptyState()
	st.Counters[domain.CounterKills] = 50
	st.Counters[domain.CounterSteps] = 1000

	fresh := EvaluateAll(st, make(map[string]bool))
	ids := make(map[string]bool)
	for _, c := range fresh {
		ids[c.ID] = true
	}
	for _, want := range []string{"first_blood", "slayer_of_dozens", "wanderer"} {
		if !ids[want] {
			t.Errorf("missing %s in %v", want, ids)
		}
	}
}

func TestEvaluateAll_SkillCondition(t *testing.T) {
	st := emptyState()
	// 20 опыта - 7 уровень, до дровосека еще далеко
	st.AddSkillXP(domain.SkillWoodcutting, 20)

	unlocked := make(map[string]bool)
	EvaluateAll(st, unlocked)
	if unlocked["lumberjack"] {
		t.Fatal("level below 10 must not unlock the lumberjack")
	}

	st.AddSkillXP(domain.SkillWoodcutting, 100000)
	EvaluateAll(st, unlocked)
	if !unlocked["lumberjack"] {
		t.Error("woodcutting 10+ must unlock the lumberjack")
	}
}

func TestEvaluateAll_NightOwl(t *testing.T) {
	st := emptyState()
	st.Counters[domain.CounterSteps] = 5

	st.TimeOfDay = 1200
	unlocked := make(map[string]bool)
	EvaluateAll(st, unlocked)
	if unlocked["night_owl"] {
		t.Fatal("noon is not the night")
	}

	st.TimeOfDay = 2000
	EvaluateAll(st, unlocked)
	if !unlocked["night_owl"] {
		t.Error("walking at night must unlock the night owl")
	}
}

func TestConditionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Conditions {
		if seen[c.ID] {
			t.Errorf("duplicate condition id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Check == nil {
			t.Errorf("condition %q has no predicate", c.ID)
		}
	}
}
