package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pore-bot/internal/domain/entity"
	"pore-bot/internal/domain/port"
)

type MeasurementService struct {
	users           *UserService
	detector        port.PoreDetector
	knownDiameterMm float64
	tolerancePx     float64
}

// MeasurementOutput содержит результат измерения и картинку с подсветкой.
type MeasurementOutput struct {
	Result      *entity.MeasurementResult
	Highlighted []byte
}

// NewMeasurementService создаёт сервис измерения отверстий лейки.
func NewMeasurementService(users *UserService, detector port.PoreDetector, knownDiameterMm, tolerancePx float64) *MeasurementService {
	return &MeasurementService{
		users:           users,
		detector:        detector,
		knownDiameterMm: knownDiameterMm,
		tolerancePx:     tolerancePx,
	}
}

// ProcessPhoto обрабатывает один снимок: калибрует масштаб по эталонной
// области, измеряет каждую зону и группирует радиусы. Ошибка калибровки
// прерывает обработку снимка целиком; пустой результат в отдельной зоне —
// нет. Зоны измеряются независимо друг от друга.
func (s *MeasurementService) ProcessPhoto(ctx context.Context, photo []byte, layout entity.RegionLayout) (*MeasurementOutput, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	refCircles, err := s.detector.DetectCircles(ctx, photo, layout.Reference, layout.ReferenceOptions)
	if err != nil {
		return nil, fmt.Errorf("reference region: %w", err)
	}

	cal, err := CalibrateScale(refCircles, s.knownDiameterMm)
	if err != nil {
		return nil, err
	}
	toleranceMm := s.tolerancePx * cal.MmPerPx

	result := &entity.MeasurementResult{
		ScaleMmPerPx:  cal.MmPerPx,
		ScaleSpreadMm: cal.SpreadMm,
		Reference: entity.RegionMeasurement{
			Name:    "эталон",
			Region:  layout.Reference,
			Circles: refCircles,
		},
	}

	for i, zone := range layout.Zones {
		m, err := s.measureZone(ctx, photo, zone, cal.MmPerPx, toleranceMm)
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i+1, err)
		}
		result.Zones = append(result.Zones, m)
	}

	// Подсветка вспомогательна: её ошибка не отменяет измерение.
	highlighted, _ := s.detector.HighlightResult(photo, result)

	return &MeasurementOutput{Result: result, Highlighted: highlighted}, nil
}

// measureZone измеряет одну зону: детекция, перевод в миллиметры,
// сортировка по убыванию, группировка.
func (s *MeasurementService) measureZone(ctx context.Context, photo []byte, zone entity.MeasureZone, mmPerPx, toleranceMm float64) (entity.RegionMeasurement, error) {
	circles, err := s.detector.DetectCircles(ctx, photo, zone.Rect, zone.Options)
	if err != nil {
		return entity.RegionMeasurement{}, err
	}

	radii := make([]float64, len(circles))
	for i, c := range circles {
		radii[i] = c.RadiusMm(mmPerPx)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(radii)))

	return entity.RegionMeasurement{
		Name:    zone.Name,
		Region:  zone.Rect,
		Circles: circles,
		RadiiMm: radii,
		Groups:  GroupRadii(radii, toleranceMm),
	}, nil
}
