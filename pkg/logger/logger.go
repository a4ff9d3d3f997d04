package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз при старте приложения (и в TestMain пакетов).
func Init() {
	Log = logrus.New()

	// Уровень логирования из переменной окружения (по умолчанию info).
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// Форматтер: "json" для продакшена, текст для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
