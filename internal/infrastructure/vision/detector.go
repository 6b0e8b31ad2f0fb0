//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"gocv.io/x/gocv"

	"pore-bot/internal/domain/entity"
)

// GoCVDetector ищет круглые отверстия в тёмном корпусе лейки.
// Детекция двухпроходная: сначала инвертированная бинаризация выделяет
// корпус и даёт маску его внутренности, затем прямая бинаризация выделяет
// светлые пиксели, и пересечение с маской оставляет только отверстия.
type GoCVDetector struct {
	JPEGQuality int
}

// NewGoCVDetector создаёт детектор отверстий.
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{
		JPEGQuality: 90,
	}
}

// DetectCircles ищет отверстия внутри области region на снимке.
// Пустой список — нормальный результат: корпус не найден или отверстий нет.
func (d *GoCVDetector) DetectCircles(ctx context.Context, imageData []byte, region entity.Rect, opts entity.DetectionOptions) ([]entity.Circle, error) {
	_ = ctx
	opts = opts.WithDefaults()

	if err := region.Validate(); err != nil {
		return nil, err
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// Центры окружностей отсчитываются от начала области, поэтому
	// область, выходящая за кадр даже частично, отклоняется, а не
	// обрезается: обрезка сместила бы систему координат результата.
	roiRect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	if !roiRect.In(image.Rect(0, 0, mat.Cols(), mat.Rows())) {
		return nil, fmt.Errorf("%w: region extends outside the image", entity.ErrInvalidRegion)
	}

	roi := mat.Region(roiRect)
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	// Лёгкое размытие подавляет шум сенсора и артефакты сжатия.
	// Одно и то же размытие используется в обоих проходах.
	blurred := gocv.NewMat()
	defer blurred.Close()
	k := oddKernel(opts.BlurKernelSize)
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	bodyMask, found := extractBodyMask(blurred)
	if !found {
		// Корпус не найден — в этой области нечего измерять.
		return nil, nil
	}
	defer bodyMask.Close()

	// Второй проход с прямой полярностью: светлые пиксели — это фон
	// и сами отверстия. Пересечение с маской корпуса убирает фон.
	holes := gocv.NewMat()
	defer holes.Close()
	switch opts.Mode {
	case entity.ThresholdFixed:
		gocv.Threshold(blurred, &holes, float32(opts.FixedThreshold), 255, gocv.ThresholdBinary)
	default:
		gocv.Threshold(blurred, &holes, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	}

	gocv.BitwiseAnd(holes, bodyMask, &holes)

	// Открытие убирает одиночные шумовые пиксели, почти не съедая
	// настоящие отверстия.
	openKernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(opts.OpenKernelSize, opts.OpenKernelSize))
	defer openKernel.Close()
	gocv.MorphologyEx(holes, &holes, gocv.MorphOpen, openKernel)

	contours := gocv.FindContours(holes, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	circles := make([]entity.Circle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		cx, cy, radius := gocv.MinEnclosingCircle(contours.At(i))
		if float64(radius) < opts.MinRadiusPx {
			continue
		}
		circles = append(circles, entity.Circle{
			X:      float64(cx),
			Y:      float64(cy),
			Radius: float64(radius),
		})
	}

	return circles, nil
}

// extractBodyMask строит маску внутренности корпуса по размытому серому
// изображению. Инвертированный порог по Оцу делает тёмный корпус передним
// планом; из внешних контуров берётся наибольший по площади (при равенстве
// площадей — первый встреченный) и заливается целиком, так что отверстия
// оказываются внутри маски. Ложь — корпус не найден.
func extractBodyMask(blurred gocv.Mat) (gocv.Mat, bool) {
	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(blurred, &bin, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bestIdx := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if bestIdx < 0 || area > bestArea {
			bestIdx = i
			bestArea = area
		}
	}
	if bestIdx < 0 {
		return gocv.Mat{}, false
	}

	mask := gocv.NewMatWithSize(blurred.Rows(), blurred.Cols(), gocv.MatTypeCV8U)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gocv.DrawContours(&mask, contours, bestIdx, white, -1)

	return mask, true
}

// HighlightResult рисует найденные окружности и рамки областей и возвращает
// новую картинку в JPEG.
func (d *GoCVDetector) HighlightResult(imageData []byte, result *entity.MeasurementResult) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	// Эталонная область — синим.
	drawRegion(&mat, result.Reference, blue)

	// Зоны измерения — зелёным.
	for _, zone := range result.Zones {
		drawRegion(&mat, zone, green)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: d.JPEGQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// drawRegion рисует рамку области и окружности внутри неё.
// Окружности хранятся в координатах области, поэтому смещаются к её началу.
func drawRegion(mat *gocv.Mat, m entity.RegionMeasurement, c color.RGBA) {
	rect := image.Rect(m.Region.X, m.Region.Y, m.Region.X+m.Region.Width, m.Region.Y+m.Region.Height)
	gocv.Rectangle(mat, rect, c, 2)

	for _, circle := range m.Circles {
		center := image.Pt(m.Region.X+int(circle.X+0.5), m.Region.Y+int(circle.Y+0.5))
		gocv.Circle(mat, center, int(circle.Radius+0.5), c, 2)
	}
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// oddKernel возвращает ближайший нечётный размер ядра, не меньший заданного.
func oddKernel(k int) int {
	if k < 1 {
		return 1
	}
	if k%2 == 0 {
		return k + 1
	}
	return k
}
