package engine

// Events - мешок презентационных событий одного тика. Эфемерный:
// слой отрисовки потребляет его сразу (всплывающие числа урона,
// эффект смены карты) и никуда не сохраняет.
type Events struct {
	Damage       int    `json:"damage,omitempty"`       // Урон, нанесенный игроком
	TargetID     string `json:"targetId,omitempty"`     // Кому нанесен
	PlayerDamage int    `json:"playerDamage,omitempty"` // Суммарный входящий урон за тик
	Transition   bool   `json:"transition,omitempty"`   // Была ли смена карты

	// DamageNumbers - числа урона по сущностям за тик (ID -> урон)
	DamageNumbers map[string]int `json:"damageNumbers,omitempty"`
}

func (ev *Events) addDamageNumber(entityID string, damage int) {
	if ev.DamageNumbers == nil {
		ev.DamageNumbers = make(map[string]int)
	}
	ev.DamageNumbers[entityID] += damage
}
