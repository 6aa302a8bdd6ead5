//go:build gocv
// +build gocv

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"thermocam/internal/domain/port"
)

// Client обёртка над Tesseract через gosseract.
type Client struct{}

// NewClient создаёт OCR-клиент.
func NewClient() *Client {
	return &Client{}
}

// Recognize распознаёт текст на бинарном PNG-изображении.
// Клиент Tesseract не потокобезопасен, поэтому на каждый вызов создаётся свой —
// воркеры пула работают независимо друг от друга.
func (c *Client) Recognize(ctx context.Context, png []byte, whitelist string, psm int) (string, error) {
	_ = ctx

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetWhitelist(whitelist); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// Проверка реализации интерфейса
var _ port.Recognizer = (*Client)(nil)
