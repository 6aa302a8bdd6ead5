package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// JSONConfigRepository хранит рабочую конфигурацию в JSON-файле.
// Снимки отдаются копиями, чтобы правка конфигурации не задела
// уже идущий проход извлечения.
type JSONConfigRepository struct {
	path string
	mu   sync.RWMutex
	cfg  entity.Config
}

// NewJSONConfigRepository загружает конфигурацию из файла.
// Если файла нет, создаёт его с конфигурацией по умолчанию.
func NewJSONConfigRepository(path string) (*JSONConfigRepository, error) {
	r := &JSONConfigRepository{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		r.cfg = entity.DefaultConfig()
		if err := r.write(r.cfg); err != nil {
			return nil, err
		}
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := entity.DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.OCR = cfg.OCR.Normalized()
	r.cfg = cfg
	return r, nil
}

// Get возвращает независимый снимок текущей конфигурации.
func (r *JSONConfigRepository) Get(ctx context.Context) entity.Config {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Clone()
}

// Save сохраняет конфигурацию в файл и делает её текущей.
// Настройки OCR нормализуются один раз при сохранении.
func (r *JSONConfigRepository) Save(ctx context.Context, cfg entity.Config) error {
	_ = ctx
	cfg.OCR = cfg.OCR.Normalized()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write(cfg); err != nil {
		return err
	}
	r.cfg = cfg.Clone()
	return nil
}

func (r *JSONConfigRepository) write(cfg entity.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", r.path, err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.ConfigRepository = (*JSONConfigRepository)(nil)
