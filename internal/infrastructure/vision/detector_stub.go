//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"pore-bot/internal/domain/entity"
)

type GoCVDetector struct {
	JPEGQuality int
}

// NewGoCVDetector создаёт детектор-заглушку (без OpenCV).
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{
		JPEGQuality: 90,
	}
}

// DetectCircles возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) DetectCircles(ctx context.Context, imageData []byte, region entity.Rect, opts entity.DetectionOptions) ([]entity.Circle, error) {
	_ = ctx
	_ = imageData
	_ = region
	_ = opts
	return nil, errors.New("gocv build tag is not enabled")
}

// HighlightResult возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) HighlightResult(imageData []byte, result *entity.MeasurementResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, errors.New("gocv build tag is not enabled")
}
