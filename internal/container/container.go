package container

import (
	app "thermocam/internal/application"
	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// SinkFactory создаёт приёмник показаний по параметрам подключения.
// Используется для проверки соединения без смены рабочего приёмника.
type SinkFactory func(cfg entity.InfluxConfig, cameraID string) port.ReadingSink

// Container собирает сервисы приложения.
type Container struct {
	Config      port.ConfigRepository
	Camera      port.FrameSource
	Sink        port.ReadingSink
	NewSink     SinkFactory
	Extraction  *app.ExtractionService
	Acquisition *app.AcquisitionService
}

// New собирает сервисы поверх инфраструктурных реализаций.
// notifier может быть nil — оповещения тогда отключены.
func New(config port.ConfigRepository, camera port.FrameSource, extractor port.Extractor, sink port.ReadingSink, notifier port.Notifier, newSink SinkFactory) *Container {
	extraction := app.NewExtractionService(extractor, 0)
	acquisition := app.NewAcquisitionService(camera, extraction, sink, config, notifier)

	return &Container{
		Config:      config,
		Camera:      camera,
		Sink:        sink,
		NewSink:     newSink,
		Extraction:  extraction,
		Acquisition: acquisition,
	}
}
