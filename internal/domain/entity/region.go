package entity

import "fmt"

// Region описывает прямоугольную зону кадра с дисплеем одного датчика.
type Region struct {
	ID     int    `json:"id"`             // уникальный идентификатор датчика
	Name   string `json:"name,omitempty"` // отображаемое имя (необязательно)
	X      int    `json:"x"`              // координата X левого верхнего угла
	Y      int    `json:"y"`              // координата Y левого верхнего угла
	Width  int    `json:"width"`          // ширина зоны в пикселях
	Height int    `json:"height"`         // высота зоны в пикселях
}

// Label возвращает подпись зоны: имя, если задано, иначе S<id>.
func (r Region) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("S%d", r.ID)
}

// Fits проверяет, что зона целиком лежит внутри кадра заданного размера.
func (r Region) Fits(frameWidth, frameHeight int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X+r.Width <= frameWidth && r.Y+r.Height <= frameHeight
}
