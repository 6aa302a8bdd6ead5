//go:build gocv
// +build gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"thermocam/internal/domain/entity"
)

// fakeRecognizer возвращает заранее заданный текст вместо Tesseract.
type fakeRecognizer struct {
	text string
	psm  int
}

func (r *fakeRecognizer) Recognize(_ context.Context, png []byte, _ string, psm int) (string, error) {
	r.psm = psm
	if len(png) == 0 {
		return "", nil
	}
	return r.text, nil
}

// gradientFrame кадр с диагональным градиентом, чтобы CLAHE и бинаризация
// давали нетривиальный результат.
func gradientFrame(t *testing.T, width, height int) *entity.Frame {
	t.Helper()
	data := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte((x*255/width + y*255/height) / 2)
			i := (y*width + x) * 3
			data[i], data[i+1], data[i+2] = v, v, v
		}
	}
	f, err := entity.NewFrame(width, height, data)
	require.NoError(t, err)
	return f
}

func fullPipelineSettings() entity.Settings {
	s := entity.DefaultSettings()
	s.UseCLAHE = true
	s.ThresholdMode = entity.ThresholdAdaptive
	s.UseMorphology = true
	s.MorphKernelSize = 2
	s.ScaleFactor = 2.0
	s.BorderPadding = 10
	return s
}

func TestPreprocessDeterministic(t *testing.T) {
	frame := gradientFrame(t, 40, 40)
	src, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	require.NoError(t, err)
	defer src.Close()

	s := fullPipelineSettings().Normalized()

	first := preprocess(src, s, nil)
	defer first.Close()
	second := preprocess(src, s, nil)
	defer second.Close()

	require.Equal(t, first.Rows(), second.Rows())
	require.Equal(t, first.Cols(), second.Cols())
	require.Equal(t, first.ToBytes(), second.ToBytes())
}

func TestExtractEvenBlockSizeMatchesOdd(t *testing.T) {
	frame := gradientFrame(t, 40, 40)
	region := entity.Region{ID: 1, X: 4, Y: 4, Width: 30, Height: 30}
	extractor := NewExtractor(&fakeRecognizer{text: "2105"})

	even := fullPipelineSettings()
	even.BlockSize = 10
	odd := fullPipelineSettings()
	odd.BlockSize = 11

	a, err := extractor.Extract(context.Background(), frame, region, even)
	require.NoError(t, err)
	b, err := extractor.Extract(context.Background(), frame, region, odd)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.True(t, a.Valid)
	require.InDelta(t, 21.05, *a.Temperature, 0.001)
}

func TestExtractOutOfBounds(t *testing.T) {
	frame := gradientFrame(t, 20, 20)
	extractor := NewExtractor(&fakeRecognizer{text: "2105"})

	cases := []entity.Region{
		{ID: 1, X: 10, Y: 10, Width: 20, Height: 5},
		{ID: 2, X: -1, Y: 0, Width: 5, Height: 5},
		{ID: 3, X: 0, Y: 0, Width: 0, Height: 5},
	}
	for _, region := range cases {
		_, err := extractor.Extract(context.Background(), frame, region, entity.DefaultSettings())
		require.ErrorIs(t, err, entity.ErrOutOfBounds)
	}

	_, err := extractor.Extract(context.Background(), nil, entity.Region{ID: 4, Width: 5, Height: 5}, entity.DefaultSettings())
	require.ErrorIs(t, err, entity.ErrOutOfBounds)
}

func TestExtractUnparsableText(t *testing.T) {
	frame := gradientFrame(t, 20, 20)
	extractor := NewExtractor(&fakeRecognizer{text: "??\n"})

	r, err := extractor.Extract(context.Background(), frame, entity.Region{ID: 1, Width: 10, Height: 10}, entity.DefaultSettings())
	require.NoError(t, err)
	require.False(t, r.Valid)
	require.Equal(t, entity.ReasonUnparsable, r.Reason)
	require.Equal(t, "??", r.RawText)
}

func TestExtractPassesPSMMode(t *testing.T) {
	frame := gradientFrame(t, 20, 20)
	ocr := &fakeRecognizer{text: "2105"}
	extractor := NewExtractor(ocr)

	s := entity.DefaultSettings()
	s.PSMMode = 8
	_, err := extractor.Extract(context.Background(), frame, entity.Region{ID: 1, Width: 10, Height: 10}, s)
	require.NoError(t, err)
	require.Equal(t, 8, ocr.psm)
}

func TestExtractDebugCapturesStages(t *testing.T) {
	frame := gradientFrame(t, 40, 40)
	extractor := NewExtractor(&fakeRecognizer{text: "2105"})
	region := entity.Region{ID: 1, X: 2, Y: 2, Width: 30, Height: 30}

	reading, images, err := extractor.ExtractDebug(context.Background(), frame, region, fullPipelineSettings())
	require.NoError(t, err)
	require.True(t, reading.Valid)
	require.NotEmpty(t, images.Original)
	require.NotEmpty(t, images.Gray)
	require.NotEmpty(t, images.Enhanced)
	require.NotEmpty(t, images.Binary)
}
