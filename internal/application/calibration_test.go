package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pore-bot/internal/domain/entity"
)

func TestCalibrateScale(t *testing.T) {
	// 4 отверстия радиусом 5 пикселей, известный диаметр 10 мм → 1 мм/пиксель.
	circles := []entity.Circle{
		{X: 10, Y: 10, Radius: 5},
		{X: 30, Y: 10, Radius: 5},
		{X: 10, Y: 30, Radius: 5},
		{X: 30, Y: 30, Radius: 5},
	}

	cal, err := CalibrateScale(circles, 10.0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, cal.MmPerPx, 1e-9)
	require.InDelta(t, 0.0, cal.SpreadMm, 1e-9)
}

func TestCalibrateScale_LinearInKnownDiameter(t *testing.T) {
	circles := []entity.Circle{
		{Radius: 4},
		{Radius: 6},
	}

	cal1, err := CalibrateScale(circles, 5.0)
	require.NoError(t, err)

	cal2, err := CalibrateScale(circles, 10.0)
	require.NoError(t, err)

	require.InDelta(t, 2*cal1.MmPerPx, cal2.MmPerPx, 1e-9)
}

func TestCalibrateScale_EmptyCircles(t *testing.T) {
	cal, err := CalibrateScale(nil, 10.0)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCalibrationFailed)
	require.Zero(t, cal.MmPerPx)
}

func TestCalibrateScale_ZeroMeanDiameter(t *testing.T) {
	circles := []entity.Circle{{Radius: 0}, {Radius: 0}}

	_, err := CalibrateScale(circles, 10.0)
	require.ErrorIs(t, err, ErrCalibrationFailed)
}

func TestCalibrateScale_InvalidKnownDiameter(t *testing.T) {
	circles := []entity.Circle{{Radius: 5}}

	_, err := CalibrateScale(circles, 0)
	require.ErrorIs(t, err, ErrCalibrationFailed)

	_, err = CalibrateScale(circles, -1)
	require.ErrorIs(t, err, ErrCalibrationFailed)
}

func TestCalibrateScale_Spread(t *testing.T) {
	// Разные диаметры эталона дают ненулевой разброс.
	circles := []entity.Circle{{Radius: 4}, {Radius: 6}}

	cal, err := CalibrateScale(circles, 10.0)
	require.NoError(t, err)
	require.Greater(t, cal.SpreadMm, 0.0)
}
