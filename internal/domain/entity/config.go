package entity

// InfluxConfig параметры подключения к InfluxDB.
type InfluxConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Database    string `json:"database"`
	Measurement string `json:"measurement"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
}

// Config рабочая конфигурация сервиса, сохраняется в JSON-файл.
type Config struct {
	StreamURL       string       `json:"stream_url"`
	CameraID        string       `json:"camera_id"`
	IntervalMinutes int          `json:"processing_interval_minutes"`
	Regions         []Region     `json:"rois"`
	OCR             Settings     `json:"ocr_settings"`
	Influx          InfluxConfig `json:"influxdb"`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		CameraID:        "cam_1",
		IntervalMinutes: 15,
		Regions:         []Region{},
		OCR:             DefaultSettings(),
		Influx: InfluxConfig{
			Host:        "localhost",
			Port:        8086,
			Database:    "thermocam",
			Measurement: "anipills",
		},
	}
}

// Clone возвращает независимую копию конфигурации.
func (c Config) Clone() Config {
	clone := c
	clone.Regions = make([]Region, len(c.Regions))
	copy(clone.Regions, c.Regions)
	return clone
}
