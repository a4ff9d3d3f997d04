package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wildroot-server/internal/domain"
	"wildroot-server/pkg/logger"
)

const SaveVersion = 1

// SaveFile - версионированный конверт сейва. Реестр карт не
// сохраняется: мир регенерируется из сида, оверлей и туман из
// GameState накладываются поверх.
type SaveFile struct {
	Version int               `json:"version"`
	SavedAt int64             `json:"savedAt"` // Unix seconds
	Seed    int64             `json:"seed"`
	State   *domain.GameState `json:"state"`
}

// SaveService пишет и читает сейвы игры
type SaveService struct {
	Path string
}

func NewSaveService(path string) *SaveService {
	return &SaveService{Path: path}
}

// Exists проверяет наличие файла сейва
func (s *SaveService) Exists() bool {
	if s.Path == "" {
		return false
	}
	_, err := os.Stat(s.Path)
	return err == nil
}

// Save атомарно записывает состояние: сначала во временный файл рядом,
// потом rename. Оборванная запись не портит прежний сейв.
func (s *SaveService) Save(state *domain.GameState, seed int64) error {
	if s.Path == "" {
		return nil
	}

	file := SaveFile{
		Version: SaveVersion,
		SavedAt: time.Now().Unix(),
		Seed:    seed,
		State:   state,
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}

	logger.Log.WithField("path", s.Path).Info("Game saved.")
	return nil
}

// Load читает и валидирует сейв
func (s *SaveService) Load() (*domain.GameState, int64, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, 0, err
	}

	var file SaveFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, 0, fmt.Errorf("corrupt save file: %w", err)
	}
	if file.Version != SaveVersion {
		return nil, 0, fmt.Errorf("unsupported save version: %d (expected %d)", file.Version, SaveVersion)
	}
	if file.State == nil {
		return nil, 0, fmt.Errorf("save file has no state")
	}

	// Старые сейвы могут не содержать части карт: вспомогательные
	// структуры состояния должны существовать всегда
	st := file.State
	if st.Counters == nil {
		st.Counters = make(map[string]int)
	}
	if st.Exploration == nil {
		st.Exploration = make(map[string][][]bool)
	}
	if st.WorldModified == nil {
		st.WorldModified = make(map[string]map[string]domain.TileType)
	}
	if st.Animations == nil {
		st.Animations = make(map[string]string)
	}

	logger.Log.WithField("path", filepath.Clean(s.Path)).Info("Game loaded.")
	return st, file.Seed, nil
}
