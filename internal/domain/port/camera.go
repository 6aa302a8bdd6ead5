package port

import "thermocam/internal/domain/entity"

// FrameSource интерфейс источника кадров видеопотока
type FrameSource interface {
	// Start открывает поток и запускает фоновый захват кадров
	Start() error

	// Stop останавливает фоновый захват и освобождает поток. Идемпотентен.
	Stop()

	// Frame возвращает копию последнего кадра или nil, если кадров ещё не было
	Frame() *entity.Frame

	// Connected сообщает, идёт ли захват и открыт ли поток
	Connected() bool

	// Resolution возвращает размер последнего кадра
	Resolution() (width, height int, ok bool)

	// SetURL меняет адрес потока; применяется при следующем Start
	SetURL(url string)
}
