package app

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"pore-bot/internal/domain/entity"
)

// ErrCalibrationFailed означает, что масштаб снимка вычислить не удалось.
// Без масштаба измерение остальных зон этого снимка невозможно.
var ErrCalibrationFailed = errors.New("calibration failed")

// Calibration — масштаб одного снимка, вычисленный по эталонной области.
type Calibration struct {
	MmPerPx  float64 // миллиметров на пиксель, строго положительный
	SpreadMm float64 // стандартное отклонение диаметров эталона в мм
}

// CalibrateScale вычисляет масштаб мм/пиксель по отверстиям эталонной
// области. Все отверстия эталона считаются одного известного диаметра
// knownDiameterMm; масштаб — отношение известного диаметра к среднему
// диаметру в пикселях.
func CalibrateScale(circles []entity.Circle, knownDiameterMm float64) (Calibration, error) {
	if knownDiameterMm <= 0 {
		return Calibration{}, fmt.Errorf("%w: known diameter must be positive, got %v", ErrCalibrationFailed, knownDiameterMm)
	}
	if len(circles) == 0 {
		return Calibration{}, fmt.Errorf("%w: no circles detected in reference region", ErrCalibrationFailed)
	}

	diameters := make([]float64, len(circles))
	for i, c := range circles {
		diameters[i] = c.DiameterPx()
	}

	meanPx := stat.Mean(diameters, nil)
	if meanPx <= 0 || math.IsNaN(meanPx) || math.IsInf(meanPx, 0) {
		return Calibration{}, fmt.Errorf("%w: degenerate mean reference diameter %v px", ErrCalibrationFailed, meanPx)
	}

	scale := knownDiameterMm / meanPx
	if scale <= 0 || math.IsInf(scale, 0) {
		return Calibration{}, fmt.Errorf("%w: invalid scale %v mm/px", ErrCalibrationFailed, scale)
	}

	cal := Calibration{MmPerPx: scale}
	if len(diameters) > 1 {
		cal.SpreadMm = stat.StdDev(diameters, nil) * scale
	}
	return cal, nil
}
