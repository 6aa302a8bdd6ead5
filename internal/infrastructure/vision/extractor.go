//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"strings"

	"gocv.io/x/gocv"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// Tesseract видит только цифры и десятичную точку.
const charWhitelist = "0123456789."

// Extractor извлекает показания температуры из зон кадра через OCR.
type Extractor struct {
	ocr port.Recognizer
}

// NewExtractor создаёт извлекатель поверх OCR-движка.
func NewExtractor(ocr port.Recognizer) *Extractor {
	return &Extractor{ocr: ocr}
}

// Extract обрезает зону, прогоняет конвейер предобработки и OCR.
func (e *Extractor) Extract(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, error) {
	return e.extract(ctx, frame, region, settings, nil)
}

// ExtractDebug дополнительно возвращает снимки каждой стадии конвейера.
// Использует ровно тот же код, что и Extract, чтобы настройка оператором
// отражала боевое поведение.
func (e *Extractor) ExtractDebug(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (entity.Reading, entity.DebugImages, error) {
	var debug entity.DebugImages
	capture := func(stage string, img gocv.Mat) {
		buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
		if err != nil {
			return
		}
		data := make([]byte, len(buf.GetBytes()))
		copy(data, buf.GetBytes())
		buf.Close()
		switch stage {
		case stageOriginal:
			debug.Original = data
		case stageGray:
			debug.Gray = data
		case stageEnhanced:
			debug.Enhanced = data
		case stageBinary:
			debug.Binary = data
		}
	}
	reading, err := e.extract(ctx, frame, region, settings, capture)
	return reading, debug, err
}

func (e *Extractor) extract(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings, capture stageCapture) (entity.Reading, error) {
	s := settings.Normalized()

	if frame == nil || region.Width < 1 || region.Height < 1 || !region.Fits(frame.Width, frame.Height) {
		return entity.Reading{}, entity.ErrOutOfBounds
	}

	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	if err != nil {
		return entity.Reading{}, err
	}
	defer mat.Close()

	roi := mat.Region(image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height))
	defer roi.Close()
	emit(capture, stageOriginal, roi)

	binary := preprocess(roi, s, capture)
	defer binary.Close()

	encoded, err := gocv.IMEncode(gocv.PNGFileExt, binary)
	if err != nil {
		return entity.Reading{}, err
	}
	defer encoded.Close()

	raw, err := e.ocr.Recognize(ctx, encoded.GetBytes(), charWhitelist, s.PSMMode)
	if err != nil {
		return entity.Reading{}, err
	}
	raw = strings.TrimSpace(raw)

	value, ok := entity.ParseTemperature(raw)
	if !ok {
		return entity.NewInvalidReading(region, raw, entity.ReasonUnparsable), nil
	}
	return entity.NewReading(region, value, raw, s.Range), nil
}

// Проверка реализации интерфейса
var _ port.Extractor = (*Extractor)(nil)
