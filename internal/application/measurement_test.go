package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pore-bot/internal/domain/entity"
	"pore-bot/internal/infrastructure/storage"
)

// fakeDetector возвращает заранее заданные окружности для каждой области.
type fakeDetector struct {
	circles map[entity.Rect][]entity.Circle
	err     error
}

func (f *fakeDetector) DetectCircles(ctx context.Context, imageData []byte, region entity.Rect, opts entity.DetectionOptions) ([]entity.Circle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.circles[region], nil
}

func (f *fakeDetector) HighlightResult(imageData []byte, result *entity.MeasurementResult) ([]byte, error) {
	return []byte("highlighted"), nil
}

func newMeasurementService(det *fakeDetector) *MeasurementService {
	users := NewUserService(storage.NewMemoryUserRepository())
	return NewMeasurementService(users, det, 10.0, 1.0)
}

func testLayout() entity.RegionLayout {
	return entity.RegionLayout{
		Reference: entity.Rect{X: 0, Y: 0, Width: 100, Height: 100},
		Zones: []entity.MeasureZone{
			{Name: "зона 1", Rect: entity.Rect{X: 100, Y: 0, Width: 100, Height: 100}},
			{Name: "зона 2", Rect: entity.Rect{X: 200, Y: 0, Width: 100, Height: 100}},
		},
	}
}

func TestMeasurementService_ProcessPhoto(t *testing.T) {
	layout := testLayout()
	det := &fakeDetector{circles: map[entity.Rect][]entity.Circle{
		// Эталон: 4 отверстия радиусом 5 px, известный диаметр 10 мм → 1 мм/px.
		layout.Reference: {
			{X: 20, Y: 20, Radius: 5},
			{X: 60, Y: 20, Radius: 5},
			{X: 20, Y: 60, Radius: 5},
			{X: 60, Y: 60, Radius: 5},
		},
		// Зона 1: радиусы 5, 5 и 2.5 px → 5.0, 5.0, 2.5 мм.
		layout.Zones[0].Rect: {
			{X: 30, Y: 30, Radius: 5},
			{X: 70, Y: 30, Radius: 5},
			{X: 50, Y: 70, Radius: 2.5},
		},
		// Зона 2: отверстий нет.
	}}

	out, err := newMeasurementService(det).ProcessPhoto(context.Background(), []byte("photo"), layout)
	require.NoError(t, err)
	require.InDelta(t, 1.0, out.Result.ScaleMmPerPx, 1e-9)

	// Допуск 1 px = 1 мм: {5.0 мм → 2, 2.5 мм → 1}.
	zone1 := out.Result.Zones[0]
	require.Equal(t, []float64{5.0, 5.0, 2.5}, zone1.RadiiMm)
	require.Len(t, zone1.Groups, 2)
	require.InDelta(t, 5.0, zone1.Groups[0].RadiusMm, 1e-9)
	require.Equal(t, 2, zone1.Groups[0].Count)
	require.InDelta(t, 2.5, zone1.Groups[1].RadiusMm, 1e-9)
	require.Equal(t, 1, zone1.Groups[1].Count)

	// Пустая зона — пустой список групп, не ошибка.
	zone2 := out.Result.Zones[1]
	require.Empty(t, zone2.Circles)
	require.Empty(t, zone2.Groups)

	require.Equal(t, []byte("highlighted"), out.Highlighted)
}

func TestMeasurementService_CalibrationFailureAborts(t *testing.T) {
	layout := testLayout()
	det := &fakeDetector{circles: map[entity.Rect][]entity.Circle{
		// В эталонной области ничего не найдено.
		layout.Zones[0].Rect: {{X: 10, Y: 10, Radius: 5}},
	}}

	out, err := newMeasurementService(det).ProcessPhoto(context.Background(), []byte("photo"), layout)
	require.ErrorIs(t, err, ErrCalibrationFailed)
	require.Nil(t, out)
}

func TestMeasurementService_InvalidRegion(t *testing.T) {
	layout := testLayout()
	layout.Zones[0].Rect.Width = 0

	det := &fakeDetector{}
	_, err := newMeasurementService(det).ProcessPhoto(context.Background(), []byte("photo"), layout)
	require.ErrorIs(t, err, entity.ErrInvalidRegion)
}

func TestMeasurementService_DetectorError(t *testing.T) {
	det := &fakeDetector{err: errors.New("decode failed")}

	_, err := newMeasurementService(det).ProcessPhoto(context.Background(), []byte("photo"), testLayout())
	require.Error(t, err)
}

func TestMeasurementService_NoDetector(t *testing.T) {
	svc := NewMeasurementService(NewUserService(storage.NewMemoryUserRepository()), nil, 10.0, 1.0)

	_, err := svc.ProcessPhoto(context.Background(), []byte("photo"), testLayout())
	require.Error(t, err)
}
