package port

import (
	"context"

	"thermocam/internal/domain/entity"
)

// Extractor интерфейс извлечения показания температуры из зоны кадра
type Extractor interface {
	// Extract обрезает зону, прогоняет конвейер предобработки и OCR.
	// Возвращает entity.ErrOutOfBounds, если зона не помещается в кадр.
	Extract(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, error)

	// ExtractDebug то же самое, но дополнительно возвращает промежуточные
	// изображения каждой стадии. Использует тот же код конвейера.
	ExtractDebug(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, entity.DebugImages, error)
}
