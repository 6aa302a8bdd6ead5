package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

var (
	// ErrAlreadyRunning цикл опроса уже запущен.
	ErrAlreadyRunning = errors.New("processing is already running")
	// ErrNotRunning цикл опроса не запущен.
	ErrNotRunning = errors.New("processing is not running")
	// ErrNoFrame из потока ещё не декодировано ни одного кадра.
	ErrNoFrame = errors.New("no frame available")
)

// AcquisitionService управляет фоновым циклом: кадр -> извлечение -> запись.
// Состояния два: остановлен и запущен; повторный запуск и повторная
// остановка возвращают ошибку.
type AcquisitionService struct {
	camera     port.FrameSource
	extraction *ExtractionService
	sink       port.ReadingSink
	config     port.ConfigRepository
	notifier   port.Notifier // может быть nil

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	lastMu       sync.RWMutex
	lastReadings []entity.Reading
	lastTime     time.Time

	hadFrame bool
}

// NewAcquisitionService создаёт сервис цикла опроса.
func NewAcquisitionService(camera port.FrameSource, extraction *ExtractionService, sink port.ReadingSink, config port.ConfigRepository, notifier port.Notifier) *AcquisitionService {
	return &AcquisitionService{
		camera:     camera,
		extraction: extraction,
		sink:       sink,
		config:     config,
		notifier:   notifier,
	}
}

// Start запускает фоновый цикл опроса.
func (s *AcquisitionService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)

	return nil
}

// Stop останавливает цикл. Текущий проход извлечения дорабатывает до конца,
// ожидание интервала прерывается не позже чем через секунду.
func (s *AcquisitionService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	return nil
}

// Running сообщает, запущен ли цикл.
func (s *AcquisitionService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastReadings возвращает показания последнего прохода и его время.
func (s *AcquisitionService) LastReadings() ([]entity.Reading, time.Time) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	readings := make([]entity.Reading, len(s.lastReadings))
	copy(readings, s.lastReadings)
	return readings, s.lastTime
}

// CaptureNow выполняет немедленный проход извлечения вне расписания.
func (s *AcquisitionService) CaptureNow(ctx context.Context) ([]entity.Reading, error) {
	cfg := s.config.Get(ctx)
	frame := s.camera.Frame()
	if frame == nil {
		return nil, ErrNoFrame
	}
	readings := s.extraction.ExtractAll(ctx, frame, cfg.Regions, cfg.OCR)
	s.storeLast(readings)
	return readings, nil
}

// CaptureDebug выполняет немедленный проход со снимками стадий конвейера.
func (s *AcquisitionService) CaptureDebug(ctx context.Context) ([]DebugResult, error) {
	cfg := s.config.Get(ctx)
	frame := s.camera.Frame()
	if frame == nil {
		return nil, ErrNoFrame
	}
	results := s.extraction.ExtractAllDebug(ctx, frame, cfg.Regions, cfg.OCR)

	readings := make([]entity.Reading, len(results))
	for i, r := range results {
		readings[i] = r.Reading
	}
	s.storeLast(readings)
	return results, nil
}

// loop крутит проходы извлечения с настроенным интервалом.
// Флаг остановки проверяется каждую секунду ожидания.
func (s *AcquisitionService) loop(stop, done chan struct{}) {
	defer close(done)
	ctx := context.Background()

	for {
		s.runCycle(ctx)

		cfg := s.config.Get(ctx)
		minutes := cfg.IntervalMinutes
		if minutes <= 0 {
			minutes = 15
		}
		for i := 0; i < minutes*60; i++ {
			select {
			case <-stop:
				return
			case <-time.After(time.Second):
			}
		}
	}
}

// runCycle выполняет один проход: кадр, извлечение, запись валидных показаний.
func (s *AcquisitionService) runCycle(ctx context.Context) {
	cfg := s.config.Get(ctx)

	frame := s.camera.Frame()
	if frame == nil {
		// Кадра нет (например, идёт переподключение) — проход пропускается.
		if s.hadFrame {
			s.alert(ctx, "thermocam: video stream lost, waiting for reconnect")
		}
		s.hadFrame = false
		return
	}
	s.hadFrame = true

	readings := s.extraction.ExtractAll(ctx, frame, cfg.Regions, cfg.OCR)
	s.storeLast(readings)

	for _, r := range readings {
		if r.Valid {
			log.Printf("sensor %d: %.2f", r.SensorID, *r.Temperature)
		} else {
			log.Printf("sensor %d: skipped (%s)", r.SensorID, r.Reason)
		}
	}

	valid := entity.ValidOnly(readings)
	if len(valid) == 0 {
		return
	}
	if err := s.sink.Write(ctx, valid); err != nil {
		// Сбой записи не фатален для цикла.
		log.Printf("sink write error: %v", err)
		s.alert(ctx, "thermocam: failed to write readings: "+err.Error())
		return
	}
	log.Printf("wrote %d readings", len(valid))
}

func (s *AcquisitionService) storeLast(readings []entity.Reading) {
	s.lastMu.Lock()
	s.lastReadings = readings
	s.lastTime = time.Now()
	s.lastMu.Unlock()
}

// alert отправляет оповещение, если нотификатор настроен.
func (s *AcquisitionService) alert(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		log.Printf("notify error: %v", err)
	}
}
