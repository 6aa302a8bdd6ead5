package port

import (
	"context"

	"thermocam/internal/domain/entity"
)

// ConfigRepository интерфейс хранилища рабочей конфигурации
type ConfigRepository interface {
	// Get возвращает независимый снимок текущей конфигурации
	Get(ctx context.Context) entity.Config

	// Save сохраняет конфигурацию и делает её текущей
	Save(ctx context.Context, cfg entity.Config) error
}
