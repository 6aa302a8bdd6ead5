package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemperature(t *testing.T) {
	value, ok := ParseTemperature("2105")
	require.True(t, ok)
	require.InDelta(t, 21.05, value, 0.001)

	value, ok = ParseTemperature("500")
	require.True(t, ok)
	require.InDelta(t, 5.00, value, 0.001)

	// Точка и мусор отбрасываются, остаются только цифры.
	value, ok = ParseTemperature(" 21.05\n")
	require.True(t, ok)
	require.InDelta(t, 21.05, value, 0.001)

	// Меньше трёх цифр — распознать нельзя.
	_, ok = ParseTemperature("37")
	require.False(t, ok)

	_, ok = ParseTemperature("")
	require.False(t, ok)

	_, ok = ParseTemperature("...")
	require.False(t, ok)

	// Слишком длинная последовательность считается мусором.
	_, ok = ParseTemperature("1234567890123")
	require.False(t, ok)
}

func TestNewReadingRangeBoundaries(t *testing.T) {
	region := Region{ID: 1, Name: "left"}
	rng := TemperatureRange{Min: 5, Max: 37}

	r := NewReading(region, 5.00, "500", rng)
	require.True(t, r.Valid)
	require.Empty(t, r.Reason)

	r = NewReading(region, 37.00, "3700", rng)
	require.True(t, r.Valid)

	r = NewReading(region, 4.99, "499", rng)
	require.False(t, r.Valid)
	require.Contains(t, r.Reason, "5-37")
	require.NotNil(t, r.Temperature)
	require.InDelta(t, 4.99, *r.Temperature, 0.001)

	r = NewReading(region, 37.01, "3701", rng)
	require.False(t, r.Valid)
	require.Contains(t, r.Reason, "5-37")

	require.Equal(t, 1, r.SensorID)
	require.Equal(t, "left", r.SensorName)
}

func TestNewInvalidReading(t *testing.T) {
	r := NewInvalidReading(Region{ID: 7}, "x", ReasonUnparsable)
	require.False(t, r.Valid)
	require.Equal(t, 7, r.SensorID)
	require.Equal(t, "x", r.RawText)
	require.Equal(t, ReasonUnparsable, r.Reason)
	require.Nil(t, r.Temperature)
}

func TestValidOnly(t *testing.T) {
	v := 21.0
	readings := []Reading{
		{SensorID: 1, Valid: true, Temperature: &v},
		{SensorID: 2, Valid: false, Reason: ReasonUnparsable},
		{SensorID: 3, Valid: true, Temperature: &v},
	}

	valid := ValidOnly(readings)
	require.Len(t, valid, 2)
	require.Equal(t, 1, valid[0].SensorID)
	require.Equal(t, 3, valid[1].SensorID)
}
