//go:build !gocv
// +build !gocv

package camera

import "errors"

// openDevice возвращает ошибку, если сборка без тега gocv.
func openDevice(url string) (device, error) {
	_ = url
	return nil, errors.New("gocv build tag is not enabled")
}
