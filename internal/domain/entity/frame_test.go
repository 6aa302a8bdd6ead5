package entity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrameValidation(t *testing.T) {
	_, err := NewFrame(0, 10, nil)
	require.Error(t, err)

	_, err = NewFrame(10, 10, make([]byte, 10))
	require.Error(t, err)

	data := make([]byte, 10*10*3)
	f, err := NewFrame(10, 10, data)
	require.NoError(t, err)
	require.Equal(t, 10, f.Width)
	require.Equal(t, 10, f.Height)

	// Конструктор копирует данные.
	data[0] = 42
	require.Equal(t, byte(0), f.Data[0])
}

func TestFrameClone(t *testing.T) {
	data := make([]byte, 4*2*3)
	f, err := NewFrame(4, 2, data)
	require.NoError(t, err)

	c := f.Clone()
	c.Data[0] = 99
	require.Equal(t, byte(0), f.Data[0])
}

func TestFrameToRGBASwapsChannels(t *testing.T) {
	// Один пиксель: B=255, G=10, R=20.
	f, err := NewFrame(1, 1, []byte{255, 10, 20})
	require.NoError(t, err)

	img := f.ToRGBA()
	require.Equal(t, byte(20), img.Pix[0])  // R
	require.Equal(t, byte(10), img.Pix[1])  // G
	require.Equal(t, byte(255), img.Pix[2]) // B
	require.Equal(t, byte(255), img.Pix[3]) // A
}

func TestFrameEncodeJPEG(t *testing.T) {
	f, err := NewFrame(16, 16, make([]byte, 16*16*3))
	require.NoError(t, err)

	jpg, err := f.EncodeJPEG()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(jpg, []byte{0xFF, 0xD8}))
}

func TestFrameEncodeJPEGWithOverlay(t *testing.T) {
	f, err := NewFrame(64, 64, make([]byte, 64*64*3))
	require.NoError(t, err)

	regions := []Region{
		{ID: 1, Name: "left", X: 8, Y: 16, Width: 20, Height: 20},
		// Зона частично за кадром не должна ронять отрисовку.
		{ID: 2, X: 56, Y: 56, Width: 20, Height: 20},
	}

	plain, err := f.EncodeJPEG()
	require.NoError(t, err)

	overlaid, err := f.EncodeJPEGWithOverlay(regions)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(overlaid, []byte{0xFF, 0xD8}))
	require.NotEqual(t, plain, overlaid)
}
