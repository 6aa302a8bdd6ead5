package entity

// ThresholdMode режим бинаризации изображения.
type ThresholdMode string

const (
	ThresholdSimple   ThresholdMode = "simple"   // фиксированный порог
	ThresholdOtsu     ThresholdMode = "otsu"     // автоматический порог по гистограмме
	ThresholdAdaptive ThresholdMode = "adaptive" // локальный порог по окну
)

// TemperatureRange допустимый диапазон температур.
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains проверяет, что значение лежит в диапазоне включительно.
func (t TemperatureRange) Contains(v float64) bool {
	return v >= t.Min && v <= t.Max
}

// Settings параметры предобработки и OCR для одного прохода извлечения.
type Settings struct {
	UseCLAHE        bool             `json:"use_clahe"`         // локальное выравнивание контраста
	ClipLimit       float64          `json:"clip_limit"`        // предел усиления CLAHE
	TileGridSize    int              `json:"tile_grid_size"`    // размер сетки CLAHE
	ThresholdMode   ThresholdMode    `json:"threshold_mode"`    // режим бинаризации
	ThresholdValue  int              `json:"threshold_value"`   // порог для режима simple, 0–255
	BlockSize       int              `json:"block_size"`        // размер окна адаптивного порога, нечётный
	CConstant       int              `json:"c_constant"`        // сдвиг адаптивного порога
	Invert          bool             `json:"invert"`            // инвертировать бинаризацию (тёмные цифры на светлом фоне)
	UseMorphology   bool             `json:"use_morphology"`    // морфологическое замыкание сегментов цифр
	MorphKernelSize int              `json:"morph_kernel_size"` // размер квадратного ядра замыкания
	ScaleFactor     float64          `json:"scale_factor"`      // коэффициент увеличения перед OCR
	BorderPadding   int              `json:"border_padding"`    // отступ по краям в пикселях
	PSMMode         int              `json:"psm_mode"`          // подсказка сегментации для Tesseract
	Range           TemperatureRange `json:"temperature_range"` // допустимый диапазон значений
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		UseCLAHE:        false,
		ClipLimit:       2.0,
		TileGridSize:    8,
		ThresholdMode:   ThresholdSimple,
		ThresholdValue:  200,
		BlockSize:       11,
		CConstant:       2,
		Invert:          true,
		UseMorphology:   false,
		MorphKernelSize: 2,
		ScaleFactor:     1.0,
		BorderPadding:   0,
		PSMMode:         7,
		Range:           TemperatureRange{Min: 5, Max: 37},
	}
}

// Normalized возвращает копию настроек, приведённую к допустимым значениям.
// Вызывается один раз перед проходом извлечения, а не на каждое чтение поля.
func (s Settings) Normalized() Settings {
	if s.ClipLimit <= 0 {
		s.ClipLimit = 2.0
	}
	if s.TileGridSize < 1 {
		s.TileGridSize = 1
	}
	switch s.ThresholdMode {
	case ThresholdSimple, ThresholdOtsu, ThresholdAdaptive:
	default:
		s.ThresholdMode = ThresholdSimple
	}
	if s.ThresholdValue < 0 {
		s.ThresholdValue = 0
	}
	if s.ThresholdValue > 255 {
		s.ThresholdValue = 255
	}
	if s.BlockSize < 3 {
		s.BlockSize = 3
	}
	// Окно адаптивного порога всегда нечётное.
	if s.BlockSize%2 == 0 {
		s.BlockSize++
	}
	if s.MorphKernelSize < 1 {
		s.MorphKernelSize = 1
	}
	if s.ScaleFactor <= 0 {
		s.ScaleFactor = 1.0
	}
	if s.BorderPadding < 0 {
		s.BorderPadding = 0
	}
	if s.PSMMode < 0 || s.PSMMode > 13 {
		s.PSMMode = 7
	}
	if s.Range.Min > s.Range.Max {
		s.Range.Min, s.Range.Max = s.Range.Max, s.Range.Min
	}
	return s
}
