//go:build !gocv
// +build !gocv

package ocr

import (
	"context"
	"errors"

	"thermocam/internal/domain/port"
)

// Client заглушка OCR-клиента (без Tesseract).
type Client struct{}

// NewClient создаёт OCR-клиент-заглушку (без Tesseract).
func NewClient() *Client {
	return &Client{}
}

// Recognize возвращает ошибку, если сборка без тега gocv.
func (c *Client) Recognize(ctx context.Context, png []byte, whitelist string, psm int) (string, error) {
	_ = ctx
	_ = png
	_ = whitelist
	_ = psm
	return "", errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.Recognizer = (*Client)(nil)
