package port

import "context"

// Recognizer интерфейс OCR-движка
type Recognizer interface {
	// Recognize распознаёт текст на бинарном изображении в формате PNG.
	// whitelist ограничивает набор символов, psm задаёт режим сегментации.
	Recognize(ctx context.Context, png []byte, whitelist string, psm int) (string, error)
}
