package main

import (
	"context"
	"log"

	"thermocam/config"
	"thermocam/internal/api"
	"thermocam/internal/container"
	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
	"thermocam/internal/infrastructure/camera"
	"thermocam/internal/infrastructure/influx"
	"thermocam/internal/infrastructure/notify"
	"thermocam/internal/infrastructure/ocr"
	"thermocam/internal/infrastructure/storage"
	"thermocam/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Рабочая конфигурация: зоны, настройки OCR, InfluxDB.
	repo, err := storage.NewJSONConfigRepository(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	runtime := repo.Get(context.Background())

	// Источник кадров.
	cam := camera.NewService(runtime.StreamURL)

	// Извлечение показаний: конвейер предобработки + Tesseract.
	extractor := vision.NewExtractor(ocr.NewClient())

	// Приёмник показаний.
	sink := influx.NewSink(runtime.Influx, runtime.CameraID)
	newSink := func(influxCfg entity.InfluxConfig, cameraID string) port.ReadingSink {
		return influx.NewSink(influxCfg, cameraID)
	}

	// Оповещения в Telegram, если настроены.
	var notifier port.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Warning: Telegram notifier disabled: %v", err)
		} else {
			notifier = n
		}
	}

	// Собираем сервисы приложения.
	appContainer := container.New(repo, cam, extractor, sink, notifier, newSink)

	// Поток может быть недоступен на старте — захват поднимется через API.
	if runtime.StreamURL == "" {
		log.Println("Warning: stream_url is empty, camera is not started")
	} else if err := cam.Start(); err != nil {
		log.Printf("Warning: camera connection failed: %v", err)
	} else {
		log.Printf("Camera connected: %s", runtime.StreamURL)
	}

	server := api.NewServer(cfg.HTTPAddr, appContainer)
	if err := server.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
