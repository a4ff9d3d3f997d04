package systems

import (
	"fmt"
	"math/rand"

	"wildroot-server/internal/content"
	"wildroot-server/internal/domain"
	"wildroot-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GatherResult - типизированный исход добычи. Добыча никогда не
// возвращает ошибку: отсутствие узла, нехватка уровня или инструмента -
// это штатные отказы с необязательной записью в журнал.
type GatherResult struct {
	Success bool
	NodeID  string
	Loot    *domain.Item
	XP      int
	Skill   string
	Logs    []domain.LogEntry
}

// GatherRequest - что именно добываем: либо точный ID узла (сущность
// FISHING_SPOT несет свой узел), либо тайл под ударом.
type GatherRequest struct {
	NodeID string
	Tile   domain.TileType
}

const bareHandsToolPower = 0 // Штрафная "мощность инструмента" голых рук

// AttemptGather разыгрывает одну попытку добычи.
// Порядок разрешения: узел по ID -> узел по тайлу -> апгрейд узла в
// сложной зоне -> проверка уровня -> проверка инструмента -> бросок.
// Неудачный бросок молчалив: промахи добычи журнал не засоряют.
func AttemptGather(state *domain.GameState, lib *content.Library, req GatherRequest, zoneDifficulty int, rng *rand.Rand) GatherResult {
	gatherLogger := logger.Log.WithFields(logrus.Fields{
		"component": "gather_system",
		"node_id":   req.NodeID,
		"tile":      req.Tile,
	})

	// 1. Разрешаем узел
	node, ok := lib.NodeByID(req.NodeID)
	if !ok && req.Tile != "" {
		node, ok = lib.NodeByTile(req.Tile)
	}
	if !ok {
		gatherLogger.Debug("Gather failed: no matching resource node.")
		return failResult("Здесь нечего добывать.", "INFO", state.Tick)
	}

	// Апгрейд до богатого варианта в сложной зоне
	if node.UpgradeTo != "" && node.UpgradeDifficulty > 0 && zoneDifficulty >= node.UpgradeDifficulty {
		if upgraded, ok := lib.NodeByID(node.UpgradeTo); ok {
			node = upgraded
		}
	}

	// 2. Проверка уровня навыка
	level := state.SkillLevel(node.Skill)
	if level < node.RequiredLevel {
		gatherLogger.WithFields(logrus.Fields{
			"required": node.RequiredLevel,
			"actual":   level,
		}).Debug("Gather failed: skill level too low.")
		return failResult(
			fmt.Sprintf("Нужен %d уровень навыка, чтобы добыть: %s.", node.RequiredLevel, node.Name),
			"INFO", state.Tick)
	}

	// 3. Проверка инструмента (по категории экипированного оружия)
	toolPower := bareHandsToolPower
	weapon := state.Weapon()
	if node.Tool != domain.ToolNone {
		hasTool := weapon != nil && weapon.Tool == node.Tool
		if hasTool {
			toolPower = weapon.ToolPower
		} else if node.RequiredLevel > 1 {
			// Строгое требование: без инструмента узел недоступен
			gatherLogger.WithField("required_tool", node.Tool).Debug("Gather failed: missing tool.")
			return failResult(
				fmt.Sprintf("Для добычи нужен инструмент: %s.", toolName(node.Tool)),
				"INFO", state.Tick)
		}
		// Узлы 1 уровня позволяют работать руками с штрафной мощностью
	}

	// 4. Бросок на успех
	chance := float64(level+toolPower*5) / float64(node.Hardness+10)
	if chance > 0.95 {
		chance = 0.95
	}
	if rng.Float64() >= chance {
		// Промах: ноль опыта, без лута, без лога
		return GatherResult{NodeID: node.ID, Skill: node.Skill}
	}

	// 5. Лут из взвешенной таблицы (кумулятивный бросок)
	loot := rollDrop(lib, node, rng)

	gatherLogger.WithFields(logrus.Fields{
		"resolved_node": node.ID,
		"chance":        chance,
		"xp":            node.XP,
	}).Info("Gather succeeded.")

	res := GatherResult{
		Success: true,
		NodeID:  node.ID,
		Loot:    loot,
		XP:      node.XP,
		Skill:   node.Skill,
	}
	if loot != nil {
		res.Logs = append(res.Logs, domain.LogEntry{
			Text: fmt.Sprintf("Вы добываете: %s x%d.", loot.Name, loot.Count),
			Type: "GATHER",
			Tick: state.Tick,
		})
	}
	return res
}

// rollDrop выбирает строку таблицы лута: равномерный бросок по сумме
// весов, берется первая строка, чья кумулятивная сумма покрыла бросок.
func rollDrop(lib *content.Library, node *content.NodeDef, rng *rand.Rand) *domain.Item {
	if len(node.Drops) == 0 {
		return nil
	}

	total := 0.0
	for _, d := range node.Drops {
		total += d.Weight
	}

	roll := rng.Float64() * total
	cum := 0.0
	for _, d := range node.Drops {
		cum += d.Weight
		if roll <= cum {
			return lib.NewItem(d.ItemID, d.Count, "")
		}
	}
	// Плавающая точка могла не дотянуть до последней строки
	last := node.Drops[len(node.Drops)-1]
	return lib.NewItem(last.ItemID, last.Count, "")
}

func failResult(text, logType string, tick int) GatherResult {
	return GatherResult{
		Logs: []domain.LogEntry{{Text: text, Type: logType, Tick: tick}},
	}
}

func toolName(tool string) string {
	switch tool {
	case domain.ToolAxe:
		return "топор"
	case domain.ToolPickaxe:
		return "кирка"
	case domain.ToolRod:
		return "удочка"
	}
	return tool
}
