package entity

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Frame декодированный кадр: строки подряд, три байта BGR на пиксель.
// Источник кадров отдаёт наружу только независимые копии.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// NewFrame создаёт кадр, копируя пиксельные данные.
func NewFrame(width, height int, data []byte) (*Frame, error) {
	if width <= 0 || height <= 0 || len(data) != width*height*3 {
		return nil, errors.New("invalid frame dimensions")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Frame{Width: width, Height: height, Data: buf}, nil
}

// Clone возвращает независимую копию кадра.
func (f *Frame) Clone() *Frame {
	buf := make([]byte, len(f.Data))
	copy(buf, f.Data)
	return &Frame{Width: f.Width, Height: f.Height, Data: buf}
}

// ToRGBA конвертирует кадр в стандартное изображение.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := y * f.Width * 3
		dst := img.PixOffset(0, y)
		for x := 0; x < f.Width; x++ {
			img.Pix[dst] = f.Data[src+2]   // R
			img.Pix[dst+1] = f.Data[src+1] // G
			img.Pix[dst+2] = f.Data[src]   // B
			img.Pix[dst+3] = 255
			src += 3
			dst += 4
		}
	}
	return img
}

// EncodeJPEG кодирует кадр в JPEG.
func (f *Frame) EncodeJPEG() ([]byte, error) {
	return encodeJPEG(f.ToRGBA())
}

// EncodeJPEGWithOverlay кодирует кадр в JPEG с рамками и подписями зон.
func (f *Frame) EncodeJPEGWithOverlay(regions []Region) ([]byte, error) {
	img := f.ToRGBA()
	green := color.RGBA{G: 255, A: 255}
	for _, region := range regions {
		drawRect(img, region, green, 2)
		drawLabel(img, region, green)
	}
	return encodeJPEG(img)
}

func encodeJPEG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawRect рисует рамку заданной толщины, обрезая её по границам кадра.
func drawRect(img *image.RGBA, r Region, c color.RGBA, thickness int) {
	outer := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(img.Bounds())
	if outer.Empty() {
		return
	}
	inner := outer.Inset(thickness)
	for y := outer.Min.Y; y < outer.Max.Y; y++ {
		for x := outer.Min.X; x < outer.Max.X; x++ {
			if !image.Pt(x, y).In(inner) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLabel подписывает зону над рамкой, длинные имена усекаются.
func drawLabel(img *image.RGBA, r Region, c color.RGBA) {
	label := r.Label()
	if len(label) > 12 {
		label = label[:9] + "..."
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.X, r.Y-5),
	}
	d.DrawString(label)
}
