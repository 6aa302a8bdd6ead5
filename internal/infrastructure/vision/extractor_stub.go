//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// Extractor заглушка извлекателя (без OpenCV).
type Extractor struct {
	ocr port.Recognizer
}

// NewExtractor создаёт извлекатель-заглушку (без OpenCV).
func NewExtractor(ocr port.Recognizer) *Extractor {
	return &Extractor{ocr: ocr}
}

// Extract возвращает ошибку, если сборка без тега gocv.
func (e *Extractor) Extract(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, error) {
	_ = ctx
	_ = frame
	_ = region
	_ = settings
	return entity.Reading{}, errors.New("gocv build tag is not enabled")
}

// ExtractDebug возвращает ошибку, если сборка без тега gocv.
func (e *Extractor) ExtractDebug(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, entity.DebugImages, error) {
	_ = ctx
	_ = frame
	_ = region
	_ = settings
	return entity.Reading{}, entity.DebugImages{}, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.Extractor = (*Extractor)(nil)
