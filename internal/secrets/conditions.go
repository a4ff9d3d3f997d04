package secrets

import (
	"wildroot-server/internal/domain"
)

// Condition - одно секретное достижение: чистый предикат над
// состоянием. Ядро симуляции сюда не заглядывает: проверка идет
// внешним проходом после каждого тика.
type Condition struct {
	ID    string
	Name  string
	Check func(state *domain.GameState) bool
}

// Conditions - таблица секретов. Условия читают только открытый
// набор счетчиков и навыков, поэтому добавление нового секрета не
// трогает движок.
var Conditions = []Condition{
	{
		ID:   "first_blood",
		Name: "Первая кровь",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterKills] >= 1
		},
	},
	{
		ID:   "slayer_of_dozens",
		Name: "Истребитель",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterKills] >= 50
		},
	},
	{
		ID:   "wanderer",
		Name: "Скиталец",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterSteps] >= 1000
		},
	},
	{
		ID:   "cartographer",
		Name: "Картограф",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterMapsVisited] >= 8
		},
	},
	{
		ID:   "lumberjack",
		Name: "Дровосек",
		Check: func(s *domain.GameState) bool {
			return s.SkillLevel(domain.SkillWoodcutting) >= 10
		},
	},
	{
		ID:   "heavy_hand",
		Name: "Тяжелая рука",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterMaxHit] >= 15
		},
	},
	{
		ID:   "packrat",
		Name: "Барахольщик",
		Check: func(s *domain.GameState) bool {
			return s.Counters[domain.CounterPickups] >= 25
		},
	},
	{
		ID:   "night_owl",
		Name: "Полуночник",
		Check: func(s *domain.GameState) bool {
			return domain.IsNight(s.TimeOfDay) && s.Counters[domain.CounterSteps] > 0
		},
	},
}

// EvaluateAll прогоняет все условия и возвращает вновь открытые.
// unlocked мутируется на месте: открытый секрет не открывается заново.
func EvaluateAll(state *domain.GameState, unlocked map[string]bool) []Condition {
	var fresh []Condition
	for _, c := range Conditions {
		if unlocked[c.ID] {
			continue
		}
		if c.Check(state) {
			unlocked[c.ID] = true
			fresh = append(fresh, c)
		}
	}
	return fresh
}
