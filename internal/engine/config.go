package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно мира. Сид конкретной карты выводится из него
	// и ID карты, поэтому после перезагрузки мир генерируется тем же.
	Seed int64

	// SavePath - путь к файлу сейва ("" = сейвы выключены)
	SavePath string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
	}
}
