package systems

import (
	"math/rand"
	"os"
	"testing"

	"wildroot-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestMaxHit_AlwaysPositive(t *testing.T) {
	cases := [][2]int{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
		{10, 10}, {99, 150}, {50, 0},
	}
	for _, c := range cases {
		if got := MaxHit(c[0], c[1]); got < 1 {
			t.Errorf("MaxHit(%d, %d) = %d, want >= 1", c[0], c[1], got)
		}
	}
}

func TestMaxHit_Formula(t *testing.T) {
	// max(1, floor(0.5 + (10+8)*(10+64)/96)) = floor(14.375) = 14
	if got := MaxHit(10, 10); got != 14 {
		t.Errorf("MaxHit(10, 10) = %d, want 14", got)
	}
}

func TestHitChance_Clamped(t *testing.T) {
	cases := [][4]int{
		{0, 0, 0, 0},
		{1, 0, 99, 500},  // безнадежная атака
		{99, 500, 1, 0},  // безнадежная защита
		{10, 10, 10, 10}, // паритет
		{200, 0, 0, 200},
	}
	for _, c := range cases {
		chance := HitChance(c[0], c[1], c[2], c[3])
		if chance < 0.05 || chance > 0.95 {
			t.Errorf("HitChance(%v) = %f, want within [0.05, 0.95]", c, chance)
		}
	}
}

func TestHitChance_FavorsAttacker(t *testing.T) {
	strong := HitChance(50, 100, 5, 0)
	weak := HitChance(5, 0, 50, 100)
	if strong <= weak {
		t.Errorf("stronger attacker must hit more often: %f <= %f", strong, weak)
	}
}

func TestXPFromDamage(t *testing.T) {
	split := XPFromDamage(10)
	if split.HPXP != 7 {
		t.Errorf("HPXP = %d, want 7", split.HPXP)
	}
	if split.CombatXP != 13 {
		t.Errorf("CombatXP = %d, want 13", split.CombatXP)
	}
}

func TestRollDamage_ConfirmedHitFloorsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// С шансом 1.0 каждый бросок - подтвержденный удар не меньше 1
	for i := 0; i < 200; i++ {
		damage, hit, _ := RollDamage(rng, 1.0, 5, 0)
		if !hit {
			t.Fatal("chance 1.0 must always hit")
		}
		if damage < 1 || damage > 5 {
			t.Fatalf("damage %d outside [1, 5]", damage)
		}
	}
}

func TestRollDamage_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		d1, h1, c1 := RollDamage(a, 0.5, 10, 0.1)
		d2, h2, c2 := RollDamage(b, 0.5, 10, 0.1)
		if d1 != d2 || h1 != h2 || c1 != c2 {
			t.Fatal("same seed must produce same rolls")
		}
	}
}
