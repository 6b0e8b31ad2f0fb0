package port

import (
	"context"

	"pore-bot/internal/domain/entity"
)

// PoreDetector интерфейс детектора отверстий
type PoreDetector interface {
	// DetectCircles ищет круглые отверстия внутри области region на снимке.
	// Возвращает окружности в пиксельных координатах региона; пустой список —
	// нормальный результат (тело не найдено или отверстий нет).
	DetectCircles(ctx context.Context, imageData []byte, region entity.Rect, opts entity.DetectionOptions) ([]entity.Circle, error)

	// HighlightResult создаёт изображение с подсветкой найденных окружностей
	// и рамками областей.
	HighlightResult(imageData []byte, result *entity.MeasurementResult) ([]byte, error)
}
