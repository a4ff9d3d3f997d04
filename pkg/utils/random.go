package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed детерминированно превращает строку (ID карты) в сид.
// Один и тот же ID всегда дает один и тот же сид - это основа
// воспроизводимой генерации мира после перезагрузки сейва.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	// fnv.Write по контракту не возвращает ошибку
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
