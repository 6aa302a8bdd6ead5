package entity

// DebugImages промежуточные изображения стадий конвейера предобработки,
// закодированные в JPEG. В JSON попадают как base64 — для настройки оператором.
type DebugImages struct {
	Original []byte `json:"original,omitempty"` // исходный фрагмент зоны
	Gray     []byte `json:"gray,omitempty"`     // после перевода в оттенки серого
	Enhanced []byte `json:"enhanced,omitempty"` // после выравнивания контраста
	Binary   []byte `json:"binary,omitempty"`   // итоговое бинарное изображение
}
