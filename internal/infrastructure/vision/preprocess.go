//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"thermocam/internal/domain/entity"
)

// Имена стадий конвейера для отладочного захвата.
const (
	stageOriginal = "original"
	stageGray     = "gray"
	stageEnhanced = "enhanced"
	stageBinary   = "binary"
)

// stageCapture получает промежуточное изображение стадии конвейера.
// В боевом проходе nil, в отладочном — кодирует снимки для оператора.
type stageCapture func(stage string, img gocv.Mat)

func emit(capture stageCapture, stage string, img gocv.Mat) {
	if capture != nil {
		capture(stage, img)
	}
}

// preprocess применяет конвейер предобработки к фрагменту кадра и возвращает
// бинарное изображение для OCR. Настройки должны быть нормализованы.
// Конвейер детерминирован: одинаковый вход даёт побайтово одинаковый выход.
// Вызывающий обязан закрыть возвращённый Mat.
func preprocess(src gocv.Mat, s entity.Settings, capture stageCapture) gocv.Mat {
	// 1. Оттенки серого.
	gray := gocv.NewMat()
	if src.Channels() == 1 {
		src.CopyTo(&gray)
	} else {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	}
	emit(capture, stageGray, gray)
	cur := gray

	// 2. Локальное выравнивание контраста при неровном освещении.
	if s.UseCLAHE {
		enhanced := gocv.NewMat()
		clahe := gocv.NewCLAHEWithParams(s.ClipLimit, image.Pt(s.TileGridSize, s.TileGridSize))
		clahe.Apply(cur, &enhanced)
		clahe.Close()
		cur.Close()
		cur = enhanced
	}
	emit(capture, stageEnhanced, cur)

	// 3. Бинаризация. При Invert цифры становятся белыми на чёрном фоне.
	thresholdType := gocv.ThresholdBinary
	if s.Invert {
		thresholdType = gocv.ThresholdBinaryInv
	}
	bin := gocv.NewMat()
	switch s.ThresholdMode {
	case entity.ThresholdOtsu:
		gocv.Threshold(cur, &bin, 0, 255, thresholdType|gocv.ThresholdOtsu)
	case entity.ThresholdAdaptive:
		gocv.AdaptiveThreshold(cur, &bin, 255, gocv.AdaptiveThresholdGaussian, thresholdType, s.BlockSize, float32(s.CConstant))
	default:
		gocv.Threshold(cur, &bin, float32(s.ThresholdValue), 255, thresholdType)
	}
	cur.Close()
	cur = bin

	// 4. Замыкание разрывов в сегментах семисегментных цифр.
	if s.UseMorphology {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(s.MorphKernelSize, s.MorphKernelSize))
		closed := gocv.NewMat()
		gocv.MorphologyEx(cur, &closed, gocv.MorphClose, kernel)
		kernel.Close()
		cur.Close()
		cur = closed
	}

	// 5. Увеличение до высоты символов, удобной Tesseract.
	if s.ScaleFactor != 1.0 {
		scaled := gocv.NewMat()
		gocv.Resize(cur, &scaled, image.Pt(0, 0), s.ScaleFactor, s.ScaleFactor, gocv.InterpolationCubic)
		cur.Close()
		cur = scaled
	}

	// 6. Отступ фоновым цветом, чтобы дать OCR поля вокруг символов.
	if s.BorderPadding > 0 {
		background := uint8(255)
		if s.Invert {
			background = 0
		}
		pad := s.BorderPadding
		padded := gocv.NewMat()
		gocv.CopyMakeBorder(cur, &padded, pad, pad, pad, pad, gocv.BorderConstant,
			color.RGBA{R: background, G: background, B: background, A: 255})
		cur.Close()
		cur = padded
	}

	emit(capture, stageBinary, cur)
	return cur
}
