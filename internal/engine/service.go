package engine

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"wildroot-server/internal/content"
	"wildroot-server/internal/domain"
	"wildroot-server/internal/infrastructure/storage"
	"wildroot-server/internal/network"
	"wildroot-server/internal/secrets"
	"wildroot-server/pkg/api"
	"wildroot-server/pkg/logger"
)

// GameService - владелец состояния партии. Все команды проходят через
// один канал и исполняются последовательно: один вход игрока - один
// полностью разрешенный тик, без частично примененных ходов.
type GameService struct {
	Eng   *Engine
	State *domain.GameState

	Hub      *network.Broadcaster
	Saves    *storage.SaveService
	Journal  *storage.IntentJournal
	Unlocked map[string]bool

	CommandChan chan api.ClientCommand
	stop        chan struct{}
}

// NewService собирает сервис: грузит сейв, если он есть, иначе
// начинает новую партию. Сид из сейва важнее сида из конфига: мир
// обязан регенерироваться тем же.
func NewService(cfg Config) *GameService {
	saves := storage.NewSaveService(cfg.SavePath)

	var eng *Engine
	var state *domain.GameState

	if saves.Exists() {
		loaded, seed, err := saves.Load()
		if err != nil {
			logger.Log.WithError(err).Warn("Save file is unusable, starting fresh.")
		} else {
			cfg.Seed = seed
			eng = New(cfg, content.MustLoad())
			state = loaded
		}
	}
	if state == nil {
		eng = New(cfg, content.MustLoad())
		state = eng.NewGame()
	}

	return &GameService{
		Eng:         eng,
		State:       state,
		Hub:         network.NewBroadcaster(),
		Saves:       saves,
		Journal:     storage.NewIntentJournal(cfg.Seed, time.Now().Unix()),
		Unlocked:    make(map[string]bool),
		CommandChan: make(chan api.ClientCommand, 100),
		stop:        make(chan struct{}),
	}
}

func (s *GameService) Start() {
	go s.run()
}

func (s *GameService) Stop() {
	close(s.stop)
}

// ProcessCommand ставит команду в очередь. Полная очередь роняет
// команду, а не блокирует отправителя.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) {
	select {
	case s.CommandChan <- cmd:
	default:
		logger.Log.Warn("Command queue full, dropping command.")
	}
}

func (s *GameService) run() {
	logger.Log.Info("Game loop started.")
	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		case <-s.stop:
			logger.Log.Info("Game loop stopped.")
			return
		}
	}
}

func (s *GameService) executeCommand(cmd api.ClientCommand) {
	cmdLogger := logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"action":    cmd.Action,
		"tick":      s.State.Tick,
	})

	var ev Events

	switch cmd.Action {
	case "INIT":
		// Триггер первой отрисовки, мир не тикает

	case "MOVE":
		var p api.DirectionPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			cmdLogger.WithError(err).Warn("Malformed MOVE payload.")
			return
		}
		if err := p.Validate(); err != nil {
			cmdLogger.WithError(err).Warn("Rejected MOVE.")
			return
		}
		s.Journal.Record(s.State.Tick, storage.IntentMove, p.Dx, p.Dy, "")
		s.State, ev = s.Eng.ResolveTurn(s.State, p.Dx, p.Dy)

	case "ATTACK":
		var p api.EntityPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			cmdLogger.WithError(err).Warn("Malformed ATTACK payload.")
			return
		}
		if err := p.Validate(); err != nil {
			cmdLogger.WithError(err).Warn("Rejected ATTACK.")
			return
		}
		s.Journal.Record(s.State.Tick, storage.IntentAttack, 0, 0, p.TargetID)
		s.State, ev = s.Eng.ResolveAttack(s.State, p.TargetID)

	case "USE":
		var p api.ItemPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			cmdLogger.WithError(err).Warn("Malformed USE payload.")
			return
		}
		if err := p.Validate(); err != nil {
			cmdLogger.WithError(err).Warn("Rejected USE.")
			return
		}
		s.Journal.Record(s.State.Tick, storage.IntentUse, 0, 0, p.ItemID)
		s.State = s.Eng.UseConsumable(s.State, p.ItemID)

	case "RESPAWN":
		s.Journal.Record(s.State.Tick, storage.IntentRespawn, 0, 0, "")
		s.State = s.Eng.Respawn(s.State)

	case "SAVE":
		if err := s.Saves.Save(s.State, s.Eng.Cfg.Seed); err != nil {
			cmdLogger.WithError(err).Error("Save failed.")
		}

	default:
		cmdLogger.Warn("Unknown action.")
		return
	}

	// Внешний проход по секретам: ядро о них не знает
	for _, c := range secrets.EvaluateAll(s.State, s.Unlocked) {
		s.State.AddLog("Секрет открыт: "+c.Name+"!", "SECRET")
		cmdLogger.WithField("secret", c.ID).Info("Secret unlocked.")
	}

	s.publishUpdate(ev)
}

// publishUpdate рассылает свежий снимок мира всем подписчикам
func (s *GameService) publishUpdate(ev Events) {
	s.Hub.Broadcast(s.BuildView(ev))
}

// Replay прогоняет журнал намерений поверх свежей партии с тем же
// сидом. Детерминизм движка гарантирует тот же итог.
func (s *GameService) Replay(journal *storage.IntentJournal) {
	logger.Log.WithFields(logrus.Fields{
		"seed":    journal.Seed,
		"intents": len(journal.Intents),
	}).Info("Replaying intent journal.")

	for _, in := range journal.Intents {
		switch in.Kind {
		case storage.IntentMove:
			s.State, _ = s.Eng.ResolveTurn(s.State, in.Dx, in.Dy)
		case storage.IntentAttack:
			s.State, _ = s.Eng.ResolveAttack(s.State, in.Target)
		case storage.IntentUse:
			s.State = s.Eng.UseConsumable(s.State, in.Target)
		case storage.IntentRespawn:
			s.State = s.Eng.Respawn(s.State)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"tick": s.State.Tick,
		"hp":   s.State.Stats.HP,
	}).Info("Replay finished.")
}
