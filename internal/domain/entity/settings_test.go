package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.Equal(t, ThresholdSimple, s.ThresholdMode)
	require.Equal(t, 200, s.ThresholdValue)
	require.Equal(t, 11, s.BlockSize)
	require.Equal(t, 7, s.PSMMode)
	require.Equal(t, TemperatureRange{Min: 5, Max: 37}, s.Range)
	// Нормализация ничего не меняет в настройках по умолчанию.
	require.Equal(t, s, s.Normalized())
}

func TestNormalizedBlockSize(t *testing.T) {
	s := DefaultSettings()

	s.BlockSize = 10
	require.Equal(t, 11, s.Normalized().BlockSize)

	s.BlockSize = 11
	require.Equal(t, 11, s.Normalized().BlockSize)

	s.BlockSize = 0
	require.Equal(t, 3, s.Normalized().BlockSize)
}

func TestNormalizedClamps(t *testing.T) {
	s := DefaultSettings()
	s.ThresholdValue = 999
	s.TileGridSize = 0
	s.ClipLimit = -1
	s.MorphKernelSize = 0
	s.ScaleFactor = 0
	s.BorderPadding = -5
	s.PSMMode = 99
	s.ThresholdMode = "unknown"

	n := s.Normalized()
	require.Equal(t, 255, n.ThresholdValue)
	require.Equal(t, 1, n.TileGridSize)
	require.InDelta(t, 2.0, n.ClipLimit, 0.001)
	require.Equal(t, 1, n.MorphKernelSize)
	require.InDelta(t, 1.0, n.ScaleFactor, 0.001)
	require.Equal(t, 0, n.BorderPadding)
	require.Equal(t, 7, n.PSMMode)
	require.Equal(t, ThresholdSimple, n.ThresholdMode)
}

func TestNormalizedSwapsRange(t *testing.T) {
	s := DefaultSettings()
	s.Range = TemperatureRange{Min: 40, Max: 5}

	n := s.Normalized()
	require.Equal(t, TemperatureRange{Min: 5, Max: 40}, n.Range)
}

func TestTemperatureRangeContains(t *testing.T) {
	rng := TemperatureRange{Min: 5, Max: 37}
	require.True(t, rng.Contains(5))
	require.True(t, rng.Contains(37))
	require.False(t, rng.Contains(4.99))
	require.False(t, rng.Contains(37.01))
}
