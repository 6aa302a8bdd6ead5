package influx

import (
	"context"
	"fmt"
	"sync"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"

	"thermocam/internal/domain/entity"
	"thermocam/internal/domain/port"
)

// Sink пишет валидные показания в InfluxDB 1.x.
type Sink struct {
	mu       sync.Mutex
	cfg      entity.InfluxConfig
	cameraID string
	c        client.Client
}

// NewSink создаёт приёмник показаний для заданной базы.
func NewSink(cfg entity.InfluxConfig, cameraID string) *Sink {
	return &Sink{cfg: cfg, cameraID: cameraID}
}

// Write записывает показания одной партией с общей меткой времени.
func (s *Sink) Write(ctx context.Context, readings []entity.Reading) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.connect()
	if err != nil {
		return err
	}

	bp, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  s.cfg.Database,
		Precision: "s",
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, r := range readings {
		if !r.Valid || r.Temperature == nil {
			continue
		}
		pt, err := client.NewPoint(
			s.measurement(),
			map[string]string{
				"sensor_id": fmt.Sprintf("sensor_%d", r.SensorID),
				"camera_id": s.cameraID,
			},
			map[string]interface{}{"temperature": *r.Temperature},
			now,
		)
		if err != nil {
			return err
		}
		bp.AddPoint(pt)
	}

	if len(bp.Points()) == 0 {
		return nil
	}
	return c.Write(bp)
}

// Connected проверяет доступность базы.
func (s *Sink) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.connect()
	if err != nil {
		return false
	}
	_, _, err = c.Ping(2 * time.Second)
	return err == nil
}

// Reconfigure применяет новые параметры подключения; соединение
// переоткрывается при следующем обращении.
func (s *Sink) Reconfigure(cfg entity.InfluxConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	if s.c != nil {
		s.c.Close()
		s.c = nil
	}
}

// Close закрывает соединение с базой.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		s.c.Close()
		s.c = nil
	}
}

func (s *Sink) connect() (client.Client, error) {
	if s.c != nil {
		return s.c, nil
	}
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port),
		Username: s.cfg.Username,
		Password: s.cfg.Password,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to influxdb: %w", err)
	}
	s.c = c
	return c, nil
}

func (s *Sink) measurement() string {
	if s.cfg.Measurement == "" {
		return "anipills"
	}
	return s.cfg.Measurement
}

// Проверка реализации интерфейса
var _ port.ReadingSink = (*Sink)(nil)
