package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// defaultWorkers размер пула OCR-воркеров по умолчанию.
const defaultWorkers = 4

// ExtractionService параллельно извлекает показания из всех зон кадра.
// Не хранит состояние между вызовами, безопасен для повторных вызовов
// с разными настройками.
type ExtractionService struct {
	extractor port.Extractor
	workers   int
}

// DebugResult показание вместе со снимками стадий конвейера.
type DebugResult struct {
	Reading entity.Reading     `json:"reading"`
	Images  entity.DebugImages `json:"debug_images"`
}

// NewExtractionService создаёт координатор с заданным размером пула воркеров.
func NewExtractionService(extractor port.Extractor, workers int) *ExtractionService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ExtractionService{extractor: extractor, workers: workers}
}

// ExtractAll раздаёт зоны пулу воркеров и собирает показания.
// Результат всегда той же длины, что и список зон, и отсортирован по
// возрастанию sensor_id независимо от порядка завершения воркеров.
// Сбой одной зоны не влияет на остальные.
func (s *ExtractionService) ExtractAll(ctx context.Context, frame *entity.Frame, regions []entity.Region, settings entity.Settings) []entity.Reading {
	readings := make([]entity.Reading, len(regions))

	s.fanOut(len(regions), func(i int) {
		readings[i] = s.extractOne(ctx, frame, regions[i], settings)
	})

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].SensorID < readings[j].SensorID
	})
	return readings
}

// ExtractAllDebug то же, что ExtractAll, но со снимками стадий конвейера.
func (s *ExtractionService) ExtractAllDebug(ctx context.Context, frame *entity.Frame, regions []entity.Region, settings entity.Settings) []DebugResult {
	results := make([]DebugResult, len(regions))

	s.fanOut(len(regions), func(i int) {
		results[i] = s.extractOneDebug(ctx, frame, regions[i], settings)
	})

	sort.Slice(results, func(i, j int) bool {
		return results[i].Reading.SensorID < results[j].Reading.SensorID
	})
	return results
}

// fanOut выполняет задачи по индексам на ограниченном пуле воркеров.
func (s *ExtractionService) fanOut(n int, task func(i int)) {
	workers := s.workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				task(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// extractOne извлекает показание одной зоны, превращая любые сбои
// в невалидное показание с причиной.
func (s *ExtractionService) extractOne(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (reading entity.Reading) {
	defer func() {
		if p := recover(); p != nil {
			reading = entity.NewInvalidReading(region, "", fmt.Sprintf("Processing error: %v", p))
		}
	}()

	r, err := s.extractor.Extract(ctx, frame, region, settings)
	switch {
	case errors.Is(err, entity.ErrOutOfBounds):
		return entity.NewInvalidReading(region, "", entity.ReasonOutOfBounds)
	case err != nil:
		return entity.NewInvalidReading(region, "", fmt.Sprintf("Processing error: %v", err))
	default:
		return r
	}
}

func (s *ExtractionService) extractOneDebug(ctx context.Context, frame *entity.Frame, region entity.Region, settings entity.Settings) (result DebugResult) {
	defer func() {
		if p := recover(); p != nil {
			result.Reading = entity.NewInvalidReading(region, "", fmt.Sprintf("Processing error: %v", p))
		}
	}()

	r, images, err := s.extractor.ExtractDebug(ctx, frame, region, settings)
	switch {
	case errors.Is(err, entity.ErrOutOfBounds):
		return DebugResult{Reading: entity.NewInvalidReading(region, "", entity.ReasonOutOfBounds)}
	case err != nil:
		return DebugResult{Reading: entity.NewInvalidReading(region, "", fmt.Sprintf("Processing error: %v", err))}
	default:
		return DebugResult{Reading: r, Images: images}
	}
}
