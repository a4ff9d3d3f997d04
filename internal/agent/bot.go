package agent

import (
	"encoding/json"
	"math/rand"
	"time"

	"wildroot-server/internal/engine"
	"wildroot-server/pkg/api"
	"wildroot-server/pkg/logger"
)

// Bot - безголовый агент, играющий вместо человека. Подключается к
// сервису так же, как обычный клиент: подписка в хабе, команды через
// ProcessCommand. Используется для нагрузочных прогонов и генерации
// длинных журналов намерений.
//
// Мозг нарочно примитивный: бить соседнего врага, иначе шагать.
type Bot struct {
	SessionID string
	Service   *engine.GameService
	Inbox     chan api.ServerResponse
	Rng       *rand.Rand

	// Delay - пауза между решениями, чтобы не крутить сервис вхолостую
	Delay time.Duration
}

func NewBot(sessionID string, service *engine.GameService, seed int64) *Bot {
	logger.Log.WithField("session_id", sessionID).Info("Creating headless agent")
	return &Bot{
		SessionID: sessionID,
		Service:   service,
		Inbox:     service.Hub.Register(sessionID),
		Rng:       rand.New(rand.NewSource(seed)),
		Delay:     100 * time.Millisecond,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.SessionID)

	b.Service.ProcessCommand(api.ClientCommand{Action: "INIT"})

	for event := range b.Inbox {
		time.Sleep(b.Delay)
		b.makeMove(event)
	}
	logger.Log.WithField("session_id", b.SessionID).Info("Agent shut down")
}

// makeMove принимает одно решение по свежему снимку мира
func (b *Bot) makeMove(state api.ServerResponse) {
	if state.Player == nil {
		return
	}
	if state.Player.IsDead {
		b.send("RESPAWN", nil)
		return
	}

	px, py := state.Player.Pos.X, state.Player.Pos.Y

	// Враг на соседней клетке - бьем
	for _, ent := range state.Entities {
		if ent.Type != "ENEMY" {
			continue
		}
		if manhattan(px, py, ent.Pos.X, ent.Pos.Y) == 1 {
			b.send("ATTACK", api.EntityPayload{TargetID: ent.ID})
			return
		}
	}

	// Иначе случайный шаг
	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	d := dirs[b.Rng.Intn(4)]
	b.send("MOVE", api.DirectionPayload{Dx: d[0], Dy: d[1]})
}

func (b *Bot) send(action string, payload interface{}) {
	cmd := api.ClientCommand{Action: action}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Warn("Bot failed to marshal payload")
			return
		}
		cmd.Payload = data
	}
	b.Service.ProcessCommand(cmd)
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
