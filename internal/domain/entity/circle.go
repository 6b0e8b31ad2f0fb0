package entity

// Circle представляет найденное отверстие: центр и радиус
// в пиксельных координатах своего региона.
type Circle struct {
	X      float64 // координата X центра в пикселях
	Y      float64 // координата Y центра в пикселях
	Radius float64 // радиус в пикселях
}

// DiameterPx возвращает диаметр отверстия в пикселях.
func (c Circle) DiameterPx() float64 {
	return 2 * c.Radius
}

// RadiusMm переводит радиус в миллиметры по масштабу мм/пиксель.
func (c Circle) RadiusMm(mmPerPx float64) float64 {
	return c.Radius * mmPerPx
}
