package camera

import (
	"fmt"
	"sync"
	"time"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// device абстракция открытого видеопотока поверх конкретного декодера.
type device interface {
	// read декодирует очередной кадр; false означает сбой чтения
	read() (*entity.Frame, bool)
	// isOpened сообщает, открыт ли поток
	isOpened() bool
	// close освобождает поток
	close()
}

// opener открывает видеопоток по адресу.
type opener func(url string) (device, error)

// Service захватывает кадры из видеопотока в фоновом потоке и хранит
// последний декодированный кадр. При сбое чтения переоткрывает поток
// с паузой, пока не остановлен.
type Service struct {
	mu         sync.RWMutex
	url        string
	open       opener
	dev        device
	frame      *entity.Frame
	running    bool
	stop       chan struct{}
	done       chan struct{}
	retryDelay time.Duration
	joinWait   time.Duration
}

// NewService создаёт источник кадров для заданного адреса потока.
func NewService(url string) *Service {
	return newService(url, openDevice)
}

func newService(url string, open opener) *Service {
	return &Service{
		url:        url,
		open:       open,
		retryDelay: time.Second,
		joinWait:   2 * time.Second,
	}
}

// Start открывает поток и запускает фоновый захват.
// Ошибка открытия фатальна для вызова; сбои после старта лечатся переподключением.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	dev, err := s.open(s.url)
	if err != nil {
		return fmt.Errorf("cannot connect to stream %s: %w", s.url, err)
	}

	s.dev = dev
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.captureLoop(s.stop, s.done)

	return nil
}

// Stop останавливает фоновый захват и освобождает поток. Идемпотентен.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	// Ждём выход фонового потока, но не дольше joinWait.
	select {
	case <-done:
	case <-time.After(s.joinWait):
	}

	s.mu.Lock()
	if s.dev != nil {
		s.dev.close()
		s.dev = nil
	}
	s.mu.Unlock()
}

// Frame возвращает копию последнего кадра или nil, если кадров ещё не было.
// Никогда не блокируется на вводе-выводе потока.
func (s *Service) Frame() *entity.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.frame == nil {
		return nil
	}
	return s.frame.Clone()
}

// Connected сообщает, идёт ли захват и открыт ли поток.
func (s *Service) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running && s.dev != nil && s.dev.isOpened()
}

// Resolution возвращает размер последнего кадра.
func (s *Service) Resolution() (int, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.frame == nil {
		return 0, 0, false
	}
	return s.frame.Width, s.frame.Height, true
}

// SetURL меняет адрес потока; применяется при следующем Start.
func (s *Service) SetURL(url string) {
	s.mu.Lock()
	s.url = url
	s.mu.Unlock()
}

// captureLoop читает кадры, пока сервис не остановлен.
func (s *Service) captureLoop(stop, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		default:
		}

		s.mu.RLock()
		dev := s.dev
		s.mu.RUnlock()

		if dev == nil || !dev.isOpened() {
			if !s.reconnect(stop) {
				return
			}
			continue
		}

		frame, ok := dev.read()
		if !ok {
			if !s.reconnect(stop) {
				return
			}
			continue
		}

		s.mu.Lock()
		s.frame = frame
		s.mu.Unlock()
	}
}

// reconnect закрывает поток и пробует открыть его заново после паузы.
// Возвращает false, только когда сервис остановлен.
func (s *Service) reconnect(stop chan struct{}) bool {
	s.mu.Lock()
	if s.dev != nil {
		s.dev.close()
		s.dev = nil
	}
	url := s.url
	s.mu.Unlock()

	select {
	case <-stop:
		return false
	case <-time.After(s.retryDelay):
	}

	dev, err := s.open(url)
	if err != nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		dev.close()
		return false
	}
	s.dev = dev
	return true
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*Service)(nil)
