package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"wildroot-server/internal/content"
	"wildroot-server/internal/domain"
	"wildroot-server/internal/systems"
	"wildroot-server/pkg/logger"
	"wildroot-server/pkg/utils"
	"wildroot-server/pkg/worldgen"
)

// Engine - корень симуляции. Владеет реестром карт, таблицами контента
// и единственным источником случайности. Один вход игрока = один
// полностью разрешенный тик (движение, взаимодействие, бой, ходы ИИ).
type Engine struct {
	Registry *MapRegistry
	Content  *content.Library
	Gen      *worldgen.Generator
	Rng      *rand.Rand
	Cfg      Config
}

// New собирает движок. Rng сидируется мастер-сидом: при одном сиде и
// одной последовательности входов мир проигрывается идентично.
func New(cfg Config, lib *content.Library) *Engine {
	return &Engine{
		Registry: NewMapRegistry(),
		Content:  lib,
		Gen:      worldgen.NewGenerator(lib, cfg.Seed),
		Rng:      rand.New(rand.NewSource(cfg.Seed)),
		Cfg:      cfg,
	}
}

// NewGame создает стартовое состояние: игрок на площади города с
// базовой экипировкой и припасами.
func (e *Engine) NewGame() *domain.GameState {
	startMap := worldgen.WorldID(0, 0)

	state := &domain.GameState{
		CurrentMapID: startMap,
		Stats: domain.Stats{
			HP: 20, MaxHP: 20,
			Strength: 5, Dexterity: 5, Intellect: 5,
			Level: 1,
			Gold:  25,
			Perks: make(map[string]bool),
		},
		Equipment:     make(map[string]*domain.Item),
		Skills:        domain.NewSkillSet(),
		Inventory:     make([]*domain.Item, 0),
		Counters:      make(map[string]int),
		Exploration:   make(map[string][][]bool),
		WorldModified: make(map[string]map[string]domain.TileType),
		Animations:    make(map[string]string),
		Logs:          make([]domain.LogEntry, 0),
		TimeOfDay:     800,
		WorldTier:     1,
	}

	// Стартовый набор
	axe := e.Content.NewItem("bronze_axe", 1, utils.GenerateID())
	state.Equipment[domain.SlotWeapon] = axe
	state.AddItem(e.Content.NewItem("bread", 3, ""))

	m := e.mapByID(startMap)
	state.PlayerPos = domain.Position{X: m.Width / 2, Y: m.Height/2 + 1}
	state.PlayerFacing = domain.DirDown

	systems.EnsureExplorationGrid(state, m)
	systems.RevealAround(state, m, state.PlayerPos)
	state.AddLog("Добро пожаловать в Дикий Корень.", "SYSTEM")

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"seed":      e.Cfg.Seed,
		"map_id":    startMap,
	}).Info("New game created.")
	return state
}

// mapByID возвращает карту из реестра, лениво генерируя ее при первом
// обращении. Генератор, вернувший nil, роняет процесс внутри реестра:
// это ошибка связности мира, а не пользовательская ситуация.
func (e *Engine) mapByID(mapID string) *domain.GameMap {
	return e.Registry.GetOrGenerate(mapID, func() *domain.GameMap {
		return e.Gen.ForID(mapID)
	})
}

// ResolveTurn - один тик симуляции. Принимает намерение игрока
// (dx,dy) из множества {(0,±1),(±1,0),(0,0)} и возвращает новое
// состояние плюс мешок презентационных событий.
//
// Строгий порядок шагов:
//  1. поворот лицом по дельте;
//  2. пересечение края карты (переход к соседу);
//  3. вход в подземелье;
//  4. взаимодействие с заблокированным тайлом (добыча);
//  5. взаимодействие с сущностью на целевой клетке;
//  6. обычное перемещение;
//  7. ход ИИ - только если шаг засчитан как действие;
//  8. обновление тумана разведки - всегда.
//
// Часы (Tick, TimeOfDay) двигаются только когда действие принято:
// упор в стену или край без соседа хода не съедает.
func (e *Engine) ResolveTurn(prev *domain.GameState, dx, dy int) (*domain.GameState, Events) {
	ev := Events{}
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx != 0 && dy != 0) {
		return prev, ev
	}

	state := prev.Clone()

	// 1. Поворот: всегда, даже если само действие сорвется.
	// Нулевая дельта сохраняет прежнее направление.
	if dir, ok := domain.DirectionFromDelta(dx, dy); ok {
		state.PlayerFacing = dir
	}

	// Мертвый игрок действий не совершает: только поворот
	if state.Stats.HP <= 0 {
		return state, ev
	}

	m := e.mapByID(state.CurrentMapID)
	target := state.PlayerPos.Shift(dx, dy)

	// 2. Край карты: переход к соседу или ничего
	if !m.InBounds(target.X, target.Y) {
		if dir, ok := domain.DirectionFromDelta(dx, dy); ok {
			if e.crossEdge(state, m, dir) {
				e.advanceClock(state)
				ev.Transition = true
			}
		}
		e.reveal(state)
		return state, ev
	}

	tile := m.EffectiveTile(target.X, target.Y, state.Overlay(m.ID))

	// 3. Вход в подземелье: ленивая генерация, ключ - карта и клетка
	// входа, поэтому повторный вход ведет в то же подземелье
	if tile.IsEntrance() {
		e.advanceClock(state)
		e.enterDungeon(state, m, target)
		ev.Transition = true
		e.reveal(state)
		return state, ev
	}

	// 4. Заблокированный тайл: попытка добычи, иначе инертный no-op
	if tile.IsBlocked() {
		if _, ok := e.Content.NodeByTile(tile); ok {
			e.advanceClock(state)
			res := systems.AttemptGather(state, e.Content, systems.GatherRequest{Tile: tile}, m.Difficulty, e.Rng)
			e.applyGather(state, m, res, target)
		} else {
			state.AddLog("Путь прегражден.", "INFO")
		}
		e.reveal(state)
		return state, ev
	}

	acted := false

	// 5. Сущность на целевой клетке
	if ent := m.EntityAt(target.X, target.Y); ent != nil {
		done, wasAction, transition := e.interact(state, m, ent, target)
		acted = acted || wasAction
		if transition {
			ev.Transition = true
		}
		if done {
			if acted {
				e.runAITurn(state, m, &ev)
			}
			e.reveal(state)
			return state, ev
		}
	}

	// 6. Перемещение: клетка свободна и проходима
	if target != state.PlayerPos && m.BlockingEntityAt(target.X, target.Y) == nil {
		state.PlayerPos = target
		state.Bump(domain.CounterSteps, 1)
		acted = true
	} else if dx == 0 && dy == 0 {
		// Ожидание на месте - полноценное действие, мир живет дальше
		acted = true
	}

	// 7. Ход ИИ: только если тик засчитан как действие
	if acted {
		e.advanceClock(state)
		e.runAITurn(state, m, &ev)
	}

	// 8. Туман разведки обновляется безусловно
	e.reveal(state)
	return state, ev
}

// advanceClock засчитывает принятое действие: тик вперед, суточное
// время по кругу
func (e *Engine) advanceClock(state *domain.GameState) {
	state.Tick++
	state.TimeOfDay = (state.TimeOfDay + domain.TimeStepPerTick) % domain.DayLength
}

// interact разрешает столкновение с сущностью на целевой клетке.
// Возвращает (завершить тик, засчитано как действие, был переход).
// Ветки, принимающие действие, сами двигают часы; упор в блокирующую
// сущность хода не съедает.
func (e *Engine) interact(state *domain.GameState, m *domain.GameMap, ent *domain.Entity, target domain.Position) (done, acted, transition bool) {
	switch {
	case ent.Type == domain.EntityTypeItemDrop || ent.Type == domain.EntityTypeCollectible:
		// Подбор: слияние в стек или вставка уникального предмета
		if ent.Drop != nil {
			item := e.Content.NewItem(ent.Drop.ItemID, ent.Drop.Count, utils.GenerateID())
			state.AddItem(item)
			state.AddLog("Подобрано: "+item.Name+".", "LOOT")
		}
		m.RemoveEntity(ent.ID)
		state.Bump(domain.CounterPickups, 1)
		// Клетка освободилась: падаем дальше в обычное перемещение
		return false, true, false

	case ent.Link != nil:
		// Дверь, лестница, телепорт: смена карты без хода ИИ
		e.advanceClock(state)
		dest := e.mapByID(ent.Link.MapID)
		state.CurrentMapID = dest.ID
		state.PlayerPos = ent.Link.Pos
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"to_map":    dest.ID,
		}).Debug("Player teleported through a link.")
		return true, false, true

	case ent.SubType == domain.SubTypeCrate:
		// Ящик: разбиваем на месте, позиция игрока не меняется
		e.advanceClock(state)
		m.RemoveEntity(ent.ID)
		state.Bump(domain.CounterCrates, 1)
		if loot := e.rollCrateLoot(); loot != nil {
			state.AddItem(loot)
			state.AddLog("Из ящика выпадает: "+loot.Name+".", "LOOT")
		} else {
			state.AddLog("Ящик разлетается в щепки.", "INFO")
		}
		return true, true, false

	case ent.SubType == domain.SubTypeChest:
		// Сундук: гарантированная добыча, исчезает после вскрытия
		e.advanceClock(state)
		m.RemoveEntity(ent.ID)
		loot := e.rollChestLoot(m.Difficulty)
		for _, item := range loot {
			state.AddItem(item)
			state.AddLog("В сундуке: "+item.Name+".", "LOOT")
		}
		state.Bump(domain.CounterPickups, 1)
		return true, true, false

	case ent.SubType == domain.SubTypeFishingSpot:
		e.advanceClock(state)
		res := systems.AttemptGather(state, e.Content, systems.GatherRequest{NodeID: "fishing_spot"}, m.Difficulty, e.Rng)
		e.applyGather(state, m, res, domain.Position{X: -1, Y: -1})
		return true, false, false

	case ent.BlocksMovement():
		// NPC, враг при обычном шаге, прочие объекты: инертный no-op.
		// Атака по врагу идет отдельной явной командой, не движением.
		return true, false, false
	}

	return false, false, false
}

// crossEdge переводит игрока на соседнюю карту. Возвращает false,
// если сосед по этой стороне не привязан.
func (e *Engine) crossEdge(state *domain.GameState, m *domain.GameMap, dir domain.Direction) bool {
	neighborID, ok := m.Neighbors[dir]
	if !ok || neighborID == "" {
		return false
	}

	dest := e.mapByID(neighborID)
	state.CurrentMapID = dest.ID
	state.PlayerPos = entryPoint(dest, dir, state.PlayerPos)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"from_map":  m.ID,
		"to_map":    dest.ID,
		"entry":     state.PlayerPos,
	}).Debug("Player crossed a map edge.")
	return true
}

// entryPoint выбирает клетку входа на карте назначения: тайл дороги у
// места пересечения, иначе первая проходимая клетка края, иначе центр.
func entryPoint(dest *domain.GameMap, dir domain.Direction, from domain.Position) domain.Position {
	type cand struct {
		pos  domain.Position
		dist int
	}

	var edge []cand
	switch dir {
	case domain.DirRight:
		for y := 0; y < dest.Height; y++ {
			edge = append(edge, cand{domain.Position{X: 0, Y: y}, absInt(y - from.Y)})
		}
	case domain.DirLeft:
		for y := 0; y < dest.Height; y++ {
			edge = append(edge, cand{domain.Position{X: dest.Width - 1, Y: y}, absInt(y - from.Y)})
		}
	case domain.DirDown:
		for x := 0; x < dest.Width; x++ {
			edge = append(edge, cand{domain.Position{X: x, Y: 0}, absInt(x - from.X)})
		}
	case domain.DirUp:
		for x := 0; x < dest.Width; x++ {
			edge = append(edge, cand{domain.Position{X: x, Y: dest.Height - 1}, absInt(x - from.X)})
		}
	}

	// Дорога рядом с местом пересечения
	best := domain.Position{X: -1, Y: -1}
	bestDist := 1 << 30
	for _, c := range edge {
		if dest.TileAt(c.pos.X, c.pos.Y) == domain.TilePath && c.dist < bestDist {
			best, bestDist = c.pos, c.dist
		}
	}
	if best.X >= 0 {
		return best
	}

	// Первая проходимая клетка края, ближайшая к месту пересечения
	bestDist = 1 << 30
	for _, c := range edge {
		if !dest.TileAt(c.pos.X, c.pos.Y).IsBlocked() && dest.BlockingEntityAt(c.pos.X, c.pos.Y) == nil && c.dist < bestDist {
			best, bestDist = c.pos, c.dist
		}
	}
	if best.X >= 0 {
		return best
	}

	return domain.Position{X: dest.Width / 2, Y: dest.Height / 2}
}

// enterDungeon лениво создает (или переиспользует) подземелье под
// входом и ставит игрока на лестницу вверх.
func (e *Engine) enterDungeon(state *domain.GameState, m *domain.GameMap, entrance domain.Position) {
	dungeonID := worldgen.DungeonID(m.ID, entrance.X, entrance.Y)
	dm := e.mapByID(dungeonID)

	state.CurrentMapID = dm.ID
	state.PlayerPos = findTile(dm, domain.TileStairsUp)
	state.AddLog("Вы спускаетесь в подземелье...", "SYSTEM")
}

// findTile ищет первую клетку с данным тайлом; отсутствие лестницы в
// подземелье - ошибка генератора, падаем сразу.
func findTile(m *domain.GameMap, t domain.TileType) domain.Position {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x] == t {
				return domain.Position{X: x, Y: y}
			}
		}
	}
	panic("tile " + string(t) + " not found on map " + m.ID)
}

// applyGather применяет исход добычи: лут, опыт, истощение узла через
// оверлей. pos с отрицательными координатами (рыбное место) оверлей
// не трогает - истощается тайл, а не сущность.
func (e *Engine) applyGather(state *domain.GameState, m *domain.GameMap, res systems.GatherResult, pos domain.Position) {
	for _, entry := range res.Logs {
		state.AddLog(entry.Text, entry.Type)
	}
	if !res.Success {
		return
	}

	if res.Loot != nil {
		state.AddItem(res.Loot)
	}
	if res.XP > 0 && res.Skill != "" {
		if state.AddSkillXP(res.Skill, res.XP) {
			state.AddLog("Навык повышен: "+res.Skill+"!", "LEVELUP")
		}
	}
	state.Bump(domain.CounterGathered, 1)

	if pos.X >= 0 && pos.Y >= 0 {
		if node, ok := e.Content.NodeByID(res.NodeID); ok && node.DepletedTile != "" {
			state.SetOverlay(m.ID, pos.X, pos.Y, node.DepletedTile)
		}
	}
}

// runAITurn прогоняет ход ИИ и применяет его итог к состоянию:
// карта получает свежую последовательность сущностей, игрок - урон.
func (e *Engine) runAITurn(state *domain.GameState, m *domain.GameMap, ev *Events) {
	outcome := e.ProcessEnemyTurns(state, m, state.PlayerPos)
	m.Entities = outcome.Entities

	for _, entry := range outcome.Logs {
		state.AddLog(entry.Text, entry.Type)
	}
	for id, tag := range outcome.Animations {
		state.Animations[id] = tag
	}
	for id, dmg := range outcome.DamageNumbers {
		ev.addDamageNumber(id, dmg)
	}

	if outcome.DamageToPlayer > 0 {
		state.Stats.HP -= outcome.DamageToPlayer
		state.Bump(domain.CounterDamageTaken, outcome.DamageToPlayer)
		ev.PlayerDamage = outcome.DamageToPlayer

		if state.Stats.HP <= 0 {
			state.Stats.HP = 0
			state.AddLog("Вы погибли.", "DEATH")
			logger.Log.WithField("component", "engine").Info("Player died.")
		}
	}
}

// reveal обновляет туман разведки вокруг итоговой позиции игрока
func (e *Engine) reveal(state *domain.GameState) {
	m := e.mapByID(state.CurrentMapID)
	systems.EnsureExplorationGrid(state, m)
	systems.RevealAround(state, m, state.PlayerPos)
}

// rollCrateLoot - простая таблица добычи ящиков
func (e *Engine) rollCrateLoot() *domain.Item {
	roll := e.Rng.Float64()
	switch {
	case roll < 0.30:
		return e.Content.NewItem("bread", 1, "")
	case roll < 0.55:
		return e.Content.NewItem("log", 1, "")
	case roll < 0.75:
		return e.Content.NewItem("flint", 1, "")
	case roll < 0.85:
		return e.Content.NewItem("gold_coin", 2+e.Rng.Intn(4), "")
	}
	return nil
}

// rollChestLoot - сундуки щедрее ящиков и масштабируются сложностью
func (e *Engine) rollChestLoot(difficulty int) []*domain.Item {
	if difficulty < 1 {
		difficulty = 1
	}
	loot := []*domain.Item{
		e.Content.NewItem("gold_coin", 5*difficulty+e.Rng.Intn(10), ""),
	}
	if e.Rng.Float64() < 0.5 {
		loot = append(loot, e.Content.NewItem("health_potion", 1, ""))
	}
	if difficulty >= 3 && e.Rng.Float64() < 0.35 {
		loot = append(loot, e.Content.NewItem("pearl", 1, ""))
	}
	return loot
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
