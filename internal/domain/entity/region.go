package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRegion возвращается для региона с нулевой или отрицательной стороной.
var ErrInvalidRegion = errors.New("invalid region")

// Rect — прямоугольная область интереса на исходном фото.
type Rect struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Validate проверяет, что область имеет положительные размеры.
func (r Rect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidRegion, r.Width, r.Height)
	}
	return nil
}

// ParseRect разбирает область из строки вида "x,y,w,h".
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("%w: expected x,y,w,h, got %q", ErrInvalidRegion, s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q", ErrInvalidRegion, s)
		}
		vals[i] = v
	}

	rect := Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if err := rect.Validate(); err != nil {
		return Rect{}, err
	}
	return rect, nil
}

// ThresholdMode определяет способ бинаризации при поиске отверстий.
type ThresholdMode string

const (
	ThresholdAuto  ThresholdMode = "auto"  // автоматический порог (по Оцу)
	ThresholdFixed ThresholdMode = "fixed" // фиксированный порог яркости
)

// DetectionOptions — неизменяемые параметры одного вызова детектора.
// Передаются явно в каждый вызов, глобального состояния нет.
type DetectionOptions struct {
	Mode           ThresholdMode // способ бинаризации
	FixedThreshold float64       // порог яркости, используется только при ThresholdFixed
	MinRadiusPx    float64       // окружности меньшего радиуса отбрасываются
	OpenKernelSize int           // размер ядра морфологического открытия
	BlurKernelSize int           // размер ядра размытия по Гауссу
}

// DefaultDetectionOptions возвращает параметры по умолчанию:
// автоматический порог, открытие 3x3, размытие 5x5.
func DefaultDetectionOptions() DetectionOptions {
	return DetectionOptions{
		Mode:           ThresholdAuto,
		MinRadiusPx:    2.0,
		OpenKernelSize: 3,
		BlurKernelSize: 5,
	}
}

// WithDefaults заполняет нулевые поля значениями по умолчанию.
func (o DetectionOptions) WithDefaults() DetectionOptions {
	def := DefaultDetectionOptions()
	if o.Mode == "" {
		o.Mode = def.Mode
	}
	if o.MinRadiusPx <= 0 {
		o.MinRadiusPx = def.MinRadiusPx
	}
	if o.OpenKernelSize <= 0 {
		o.OpenKernelSize = def.OpenKernelSize
	}
	if o.BlurKernelSize <= 0 {
		o.BlurKernelSize = def.BlurKernelSize
	}
	return o
}

// MeasureZone — измеряемая зона: область и параметры детектора для неё.
type MeasureZone struct {
	Name    string
	Rect    Rect
	Options DetectionOptions
}

// RegionLayout — разметка одного снимка: эталонная область
// с известным диаметром отверстий и зоны измерения.
type RegionLayout struct {
	Reference        Rect
	ReferenceOptions DetectionOptions
	Zones            []MeasureZone
}

// Validate проверяет все области разметки.
func (l RegionLayout) Validate() error {
	if err := l.Reference.Validate(); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	for i, z := range l.Zones {
		if err := z.Rect.Validate(); err != nil {
			return fmt.Errorf("zone %d: %w", i+1, err)
		}
	}
	return nil
}
