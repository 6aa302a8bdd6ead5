//go:build gocv
// +build gocv

package camera

import (
	"errors"

	"gocv.io/x/gocv"

	"thermocam/internal/domain/entity"
)

// gocvDevice видеопоток поверх OpenCV VideoCapture.
type gocvDevice struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// openDevice открывает видеопоток через OpenCV.
func openDevice(url string) (device, error) {
	cap, err := gocv.OpenVideoCapture(url)
	if err != nil {
		return nil, err
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, errors.New("stream is not opened")
	}
	return &gocvDevice{cap: cap, mat: gocv.NewMat()}, nil
}

// read декодирует очередной кадр в BGR.
func (d *gocvDevice) read() (*entity.Frame, bool) {
	if !d.cap.Read(&d.mat) || d.mat.Empty() {
		return nil, false
	}

	mat := d.mat
	// Поток может отдавать одноканальные кадры, приводим к BGR.
	if mat.Channels() != 3 {
		converted := gocv.NewMat()
		gocv.CvtColor(d.mat, &converted, gocv.ColorGrayToBGR)
		defer converted.Close()
		mat = converted
	}

	frame, err := entity.NewFrame(mat.Cols(), mat.Rows(), mat.ToBytes())
	if err != nil {
		return nil, false
	}
	return frame, true
}

func (d *gocvDevice) isOpened() bool {
	return d.cap.IsOpened()
}

func (d *gocvDevice) close() {
	d.mat.Close()
	d.cap.Close()
}
