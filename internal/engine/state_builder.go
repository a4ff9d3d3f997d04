package engine

import (
	"wildroot-server/internal/domain"
	"wildroot-server/pkg/api"
)

// BuildView собирает снимок мира для клиента: только исследованные
// тайлы текущей карты (с наложенным оверлеем), сущности на
// исследованных клетках и блок игрока.
func (s *GameService) BuildView(ev Events) api.ServerResponse {
	state := s.State
	m := s.Eng.mapByID(state.CurrentMapID)
	overlay := state.Overlay(m.ID)
	explored := state.Exploration[m.ID]

	resp := api.ServerResponse{
		Type:      "UPDATE",
		Tick:      state.Tick,
		MapID:     m.ID,
		Grid:      &api.GridMeta{Width: m.Width, Height: m.Height},
		TimeOfDay: state.TimeOfDay,
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if explored == nil || !explored[y][x] {
				continue
			}
			tile := m.EffectiveTile(x, y, overlay)
			resp.Map = append(resp.Map, api.TileView{
				X:       x,
				Y:       y,
				Tile:    string(tile),
				Blocked: tile.IsBlocked(),
			})
		}
	}

	for _, ent := range m.Entities {
		if explored == nil || !explored[ent.Pos.Y][ent.Pos.X] {
			continue
		}
		view := api.EntityView{
			ID:        ent.ID,
			Type:      ent.Type,
			SubType:   ent.SubType,
			Name:      ent.Name,
			Animation: state.Animations[ent.ID],
		}
		view.Pos.X = ent.Pos.X
		view.Pos.Y = ent.Pos.Y
		if ent.Combat != nil {
			view.HP = ent.Combat.HP
			view.MaxHP = ent.Combat.MaxHP
			view.Level = ent.Combat.Level
		}
		resp.Entities = append(resp.Entities, view)
	}

	resp.Player = buildPlayerView(state)
	resp.Logs = buildLogViews(state.Logs)

	if ev.Damage > 0 || ev.PlayerDamage > 0 || ev.Transition || len(ev.DamageNumbers) > 0 {
		resp.Events = &api.EventsView{
			Damage:        ev.Damage,
			TargetID:      ev.TargetID,
			PlayerDamage:  ev.PlayerDamage,
			Transition:    ev.Transition,
			DamageNumbers: ev.DamageNumbers,
		}
	}

	return resp
}

func buildPlayerView(state *domain.GameState) *api.PlayerView {
	pv := &api.PlayerView{
		Facing: state.PlayerFacing.String(),
		HP:     state.Stats.HP,
		MaxHP:  state.Stats.MaxHP,
		Level:  state.Stats.Level,
		Gold:   state.Stats.Gold,
		IsDead: state.Stats.HP <= 0,
	}
	pv.Pos.X = state.PlayerPos.X
	pv.Pos.Y = state.PlayerPos.Y

	for _, name := range domain.SkillNames {
		if sk, ok := state.Skills[name]; ok {
			pv.Skills = append(pv.Skills, api.SkillView{Name: sk.Name, Level: sk.Level, XP: sk.XP})
		}
	}

	pv.Equipment = make(map[string]*api.ItemView, len(state.Equipment))
	for slot, item := range state.Equipment {
		if item == nil {
			continue
		}
		iv := buildItemView(item)
		pv.Equipment[slot] = &iv
	}

	for _, item := range state.Inventory {
		pv.Inventory = append(pv.Inventory, buildItemView(item))
	}

	pv.Counters = state.Counters
	return pv
}

func buildItemView(item *domain.Item) api.ItemView {
	return api.ItemView{
		ID:    item.ID,
		Name:  item.Name,
		Type:  item.Type,
		Count: item.Count,
		Slot:  item.Slot,
	}
}

func buildLogViews(logs []domain.LogEntry) []api.LogEntry {
	out := make([]api.LogEntry, 0, len(logs))
	for _, entry := range logs {
		out = append(out, api.LogEntry{Text: entry.Text, Type: entry.Type, Tick: entry.Tick})
	}
	return out
}
