package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionFits(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 30, Height: 40}
	require.True(t, r.Fits(40, 60))

	// Правый край за пределами кадра.
	require.False(t, r.Fits(39, 60))
	// Нижний край за пределами кадра.
	require.False(t, r.Fits(40, 59))

	require.False(t, Region{X: -1, Width: 5, Height: 5}.Fits(100, 100))
	require.False(t, Region{Y: -1, Width: 5, Height: 5}.Fits(100, 100))
}

func TestRegionLabel(t *testing.T) {
	require.Equal(t, "S3", Region{ID: 3}.Label())
	require.Equal(t, "kitchen", Region{ID: 3, Name: "kitchen"}.Label())
}
