package port

import (
	"context"

	"thermocam/internal/domain/entity"
)

// ReadingSink интерфейс приёмника валидных показаний
type ReadingSink interface {
	// Write записывает показания; вызывается только с валидными значениями
	Write(ctx context.Context, readings []entity.Reading) error

	// Connected сообщает доступность приёмника
	Connected() bool

	// Reconfigure применяет новые параметры подключения
	Reconfigure(cfg entity.InfluxConfig)
}
