package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wildroot-server/internal/agent"
	"wildroot-server/internal/engine"
	"wildroot-server/internal/infrastructure/storage"
	"wildroot-server/internal/server"
	"wildroot-server/internal/version"
	"wildroot-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var savePath string
	var journalPath string
	var withBot bool
	flag.Int64Var(&seed, "seed", 0, "Master world seed (0 for random)")
	flag.StringVar(&savePath, "save", "wildroot_save.json", "Path to save file (empty to disable saves)")
	flag.StringVar(&journalPath, "replay", "", "Path to .wrij intent journal to simulate")
	flag.BoolVar(&withBot, "bot", false, "Attach a headless agent that plays on its own")
	flag.Parse()

	logger.Log.Info("Starting Wildroot Server...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ: прогоняем журнал намерений и выходим
	if journalPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")

		journal, err := storage.LoadJournal(journalPath)
		if err != nil {
			logger.Log.Fatal("Failed to load journal:", err)
		}

		cfg := engine.NewConfig()
		cfg.Seed = journal.Seed
		cfg.SavePath = ""

		game := engine.NewService(cfg)
		game.Replay(journal)
		return
	}

	// Формируем конфиг
	cfg := engine.NewConfig()
	cfg.SavePath = savePath
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("WR_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	game := engine.NewService(cfg)
	game.Start()

	if withBot {
		bot := agent.NewBot("bot_local", game, cfg.Seed)
		go bot.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(game, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	game.Stop()
	// Сид берем из движка: при загрузке сейва он важнее флага
	if err := game.Saves.Save(game.State, game.Eng.Cfg.Seed); err != nil {
		logger.Log.WithError(err).Error("Final save failed.")
	}
	if savePath != "" {
		journalFile := savePath + "." + time.Now().UTC().Format("20060102T150405") + ".wrij"
		if err := game.Journal.Save(journalFile); err != nil {
			logger.Log.WithError(err).Warn("Journal save failed.")
		}
	}

	logger.Log.Info("Done.")
}
