package entity

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrOutOfBounds зона лежит за пределами кадра — ошибка конфигурации, не чтения.
var ErrOutOfBounds = errors.New("region out of frame bounds")

const (
	// ReasonOutOfBounds причина для зоны за пределами кадра.
	ReasonOutOfBounds = "Region out of frame bounds"
	// ReasonUnparsable причина для нераспознанного текста.
	ReasonUnparsable = "Could not parse temperature"
)

// Reading результат извлечения температуры для одной зоны и одного кадра.
// После возврата не изменяется.
type Reading struct {
	SensorID    int      `json:"sensor_id"`
	SensorName  string   `json:"sensor_name,omitempty"`
	Temperature *float64 `json:"temperature"` // nil, если значение не распознано
	RawText     string   `json:"raw_text"`
	Valid       bool     `json:"valid"`
	Reason      string   `json:"reason,omitempty"` // заполнено, когда Valid=false
}

// NewReading создаёт показание по распознанному значению с проверкой диапазона.
func NewReading(region Region, value float64, raw string, rng TemperatureRange) Reading {
	r := Reading{
		SensorID:    region.ID,
		SensorName:  region.Name,
		Temperature: &value,
		RawText:     raw,
	}
	if rng.Contains(value) {
		r.Valid = true
		return r
	}
	r.Reason = fmt.Sprintf("Out of range (%g-%g)", rng.Min, rng.Max)
	return r
}

// NewInvalidReading создаёт невалидное показание с человекочитаемой причиной.
func NewInvalidReading(region Region, raw, reason string) Reading {
	return Reading{
		SensorID:   region.ID,
		SensorName: region.Name,
		RawText:    raw,
		Reason:     reason,
	}
}

// ParseTemperature восстанавливает значение температуры из сырого текста OCR.
// Все нецифровые символы отбрасываются, последние две цифры считаются дробной
// частью: "2105" -> 21.05. OCR часто теряет десятичную точку на ЖК-дисплеях.
// Возвращает false, если цифр меньше трёх.
func ParseTemperature(raw string) (float64, bool) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	// Слишком длинная последовательность — мусор OCR, а не температура.
	if len(digits) < 3 || len(digits) > 9 {
		return 0, false
	}
	whole, err := strconv.Atoi(string(digits[:len(digits)-2]))
	if err != nil {
		return 0, false
	}
	frac, err := strconv.Atoi(string(digits[len(digits)-2:]))
	if err != nil {
		return 0, false
	}
	return float64(whole) + float64(frac)/100, true
}

// ValidOnly возвращает только валидные показания из списка.
func ValidOnly(readings []Reading) []Reading {
	valid := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if r.Valid {
			valid = append(valid, r)
		}
	}
	return valid
}
