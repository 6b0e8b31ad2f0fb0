package entity

// RadiusGroup — группа отверстий примерно одинакового радиуса.
type RadiusGroup struct {
	RadiusMm float64 // радиус-представитель группы в миллиметрах
	Count    int     // число отверстий в группе
}

// RegionMeasurement хранит результат измерения одной зоны.
type RegionMeasurement struct {
	Name    string        // имя зоны для отчёта
	Region  Rect          // область зоны на снимке
	Circles []Circle      // сырые окружности в пикселях (для подсветки)
	RadiiMm []float64     // радиусы в миллиметрах, по убыванию
	Groups  []RadiusGroup // группы по убыванию радиуса-представителя
}

// MeasurementResult — итог обработки одного снимка.
type MeasurementResult struct {
	ScaleMmPerPx  float64             // масштаб мм/пиксель по эталонной области
	ScaleSpreadMm float64             // разброс диаметров эталона в мм
	Reference     RegionMeasurement   // эталонная область
	Zones         []RegionMeasurement // измеренные зоны
}

// TotalCircles возвращает общее число отверстий по всем зонам.
func (r *MeasurementResult) TotalCircles() int {
	total := 0
	for _, z := range r.Zones {
		total += len(z.Circles)
	}
	return total
}
