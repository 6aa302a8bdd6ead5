package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"thermocam/internal/container"
	"thermocam/internal/domain/entity"
)

// Server HTTP-интерфейс сервиса: статус, конфигурация, захват, видеопоток.
type Server struct {
	addr string
	c    *container.Container
}

// NewServer создаёт HTTP-сервер поверх собранных сервисов.
func NewServer(addr string, c *container.Container) *Server {
	return &Server{addr: addr, c: c}
}

// Run запускает HTTP-сервер и блокируется до его завершения.
func (s *Server) Run() error {
	log.Printf("HTTP server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler собирает маршруты сервера.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/rois", s.handleGetRegions)
	mux.HandleFunc("POST /api/rois", s.handleUpdateRegions)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleUpdateConfig)
	mux.HandleFunc("GET /api/ocr-settings", s.handleGetOCRSettings)
	mux.HandleFunc("POST /api/ocr-settings", s.handleUpdateOCRSettings)
	mux.HandleFunc("GET /api/influxdb", s.handleGetInflux)
	mux.HandleFunc("POST /api/influxdb", s.handleUpdateInflux)
	mux.HandleFunc("POST /api/influxdb/test", s.handleTestInflux)
	mux.HandleFunc("POST /api/start", s.handleStart)
	mux.HandleFunc("POST /api/stop", s.handleStop)
	mux.HandleFunc("POST /api/capture", s.handleCapture)
	mux.HandleFunc("POST /api/capture/debug", s.handleCaptureDebug)
	mux.HandleFunc("POST /api/camera/reconnect", s.handleCameraReconnect)
	mux.HandleFunc("GET /stream", s.handleStream)
	mux.HandleFunc("GET /stream/overlay", s.handleStreamOverlay)

	return mux
}

type statusResponse struct {
	CameraConnected   bool             `json:"camera_connected"`
	InfluxConnected   bool             `json:"influx_connected"`
	ProcessingRunning bool             `json:"processing_running"`
	LastReadings      []entity.Reading `json:"last_readings"`
	LastReadingTime   string           `json:"last_reading_time,omitempty"`
	IntervalMinutes   int              `json:"interval_minutes"`
	VideoResolution   string           `json:"video_resolution,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())
	readings, readingTime := s.c.Acquisition.LastReadings()

	resp := statusResponse{
		CameraConnected:   s.c.Camera.Connected(),
		InfluxConnected:   s.c.Sink.Connected(),
		ProcessingRunning: s.c.Acquisition.Running(),
		LastReadings:      readings,
		IntervalMinutes:   cfg.IntervalMinutes,
	}
	if !readingTime.IsZero() {
		resp.LastReadingTime = readingTime.Format("2006-01-02 15:04:05")
	}
	if width, height, ok := s.c.Camera.Resolution(); ok {
		resp.VideoResolution = fmt.Sprintf("%dx%d", width, height)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRegions(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())
	writeJSON(w, http.StatusOK, cfg.Regions)
}

func (s *Server) handleUpdateRegions(w http.ResponseWriter, r *http.Request) {
	var regions []entity.Region
	if err := json.NewDecoder(r.Body).Decode(&regions); err != nil {
		writeError(w, http.StatusBadRequest, "invalid ROI data")
		return
	}

	cfg := s.c.Config.Get(r.Context())
	cfg.Regions = regions
	if err := s.c.Config.Save(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "rois": regions})
}

type configResponse struct {
	StreamURL       string          `json:"stream_url"`
	CameraID        string          `json:"camera_id"`
	IntervalMinutes int             `json:"processing_interval_minutes"`
	Regions         []entity.Region `json:"rois"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())
	writeJSON(w, http.StatusOK, configResponse{
		StreamURL:       cfg.StreamURL,
		CameraID:        cfg.CameraID,
		IntervalMinutes: cfg.IntervalMinutes,
		Regions:         cfg.Regions,
	})
}

type configUpdate struct {
	StreamURL       *string `json:"stream_url"`
	CameraID        *string `json:"camera_id"`
	IntervalMinutes *int    `json:"processing_interval_minutes"`
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var update configUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config data")
		return
	}

	cfg := s.c.Config.Get(r.Context())
	restartCamera := false
	if update.StreamURL != nil && *update.StreamURL != cfg.StreamURL {
		cfg.StreamURL = *update.StreamURL
		restartCamera = true
	}
	if update.CameraID != nil {
		cfg.CameraID = *update.CameraID
	}
	if update.IntervalMinutes != nil && *update.IntervalMinutes > 0 {
		cfg.IntervalMinutes = *update.IntervalMinutes
	}

	if err := s.c.Config.Save(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if restartCamera {
		// Перезапускаем захват с новым адресом; ошибка не мешает сохранению.
		s.c.Camera.Stop()
		s.c.Camera.SetURL(cfg.StreamURL)
		if err := s.c.Camera.Start(); err != nil {
			log.Printf("camera restart failed: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleGetOCRSettings(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())
	writeJSON(w, http.StatusOK, cfg.OCR)
}

func (s *Server) handleUpdateOCRSettings(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())

	// Частичное обновление: незаполненные поля остаются прежними.
	settings := cfg.OCR
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid OCR settings")
		return
	}

	cfg.OCR = settings.Normalized()
	if err := s.c.Config.Save(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "applied_settings": cfg.OCR})
}

type influxResponse struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Database    string `json:"database"`
	Measurement string `json:"measurement"`
	Username    string `json:"username"`
}

func (s *Server) handleGetInflux(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())
	// Пароль наружу не отдаётся.
	writeJSON(w, http.StatusOK, influxResponse{
		Host:        cfg.Influx.Host,
		Port:        cfg.Influx.Port,
		Database:    cfg.Influx.Database,
		Measurement: cfg.Influx.Measurement,
		Username:    cfg.Influx.Username,
	})
}

func (s *Server) handleUpdateInflux(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())

	updated := cfg.Influx
	currentPassword := updated.Password
	updated.Password = ""
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeError(w, http.StatusBadRequest, "invalid influxdb settings")
		return
	}
	// Пароль меняется, только если передан явно.
	if updated.Password == "" {
		updated.Password = currentPassword
	}

	cfg.Influx = updated
	if err := s.c.Config.Save(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.c.Sink.Reconfigure(updated)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "connected": s.c.Sink.Connected()})
}

func (s *Server) handleTestInflux(w http.ResponseWriter, r *http.Request) {
	if s.c.NewSink == nil {
		writeError(w, http.StatusNotImplemented, "sink factory is not configured")
		return
	}

	cfg := s.c.Config.Get(r.Context())
	test := cfg.Influx

	// Пустое тело допустимо: проверяются текущие настройки.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid influxdb settings")
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &test); err != nil {
			writeError(w, http.StatusBadRequest, "invalid influxdb settings")
			return
		}
	}

	sink := s.c.NewSink(test, cfg.CameraID)
	connected := sink.Connected()
	message := "Connection failed"
	if connected {
		message = "Connection successful"
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": connected, "message": message})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.c.Acquisition.Start(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Processing started"})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.c.Acquisition.Stop(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Processing stopped"})
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	readings, err := s.c.Acquisition.CaptureNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"readings":  readings,
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) handleCaptureDebug(w http.ResponseWriter, r *http.Request) {
	results, err := s.c.Acquisition.CaptureDebug(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"readings":  results,
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) handleCameraReconnect(w http.ResponseWriter, r *http.Request) {
	cfg := s.c.Config.Get(r.Context())

	s.c.Camera.Stop()
	s.c.Camera.SetURL(cfg.StreamURL)
	if err := s.c.Camera.Start(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	// Даём потоку время декодировать первый кадр.
	resolution := ""
	for i := 0; i < 20; i++ {
		if width, height, ok := s.c.Camera.Resolution(); ok {
			resolution = fmt.Sprintf("%dx%d", width, height)
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Camera reconnected",
		"resolution": resolution,
	})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.serveMJPEG(w, r, func(frame *entity.Frame) ([]byte, error) {
		return frame.EncodeJPEG()
	})
}

func (s *Server) handleStreamOverlay(w http.ResponseWriter, r *http.Request) {
	s.serveMJPEG(w, r, func(frame *entity.Frame) ([]byte, error) {
		cfg := s.c.Config.Get(r.Context())
		return frame.EncodeJPEGWithOverlay(cfg.Regions)
	})
}

// serveMJPEG отдаёт кадры как multipart-поток, ~30 кадров в секунду.
func (s *Server) serveMJPEG(w http.ResponseWriter, r *http.Request, encode func(*entity.Frame) ([]byte, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming is not supported")
		return
	}
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		frame := s.c.Camera.Frame()
		if frame == nil {
			continue
		}
		jpeg, err := encode(frame)
		if err != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(jpeg)); err != nil {
			return
		}
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}
		flusher.Flush()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
