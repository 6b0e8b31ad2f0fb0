package telegram

import (
	"errors"
	"fmt"
	"strings"

	"pore-bot/internal/domain/entity"
)

// ParseLayoutCaption разбирает разметку областей из подписи к фото.
// Формат: "ref:x,y,w,h zone:x,y,w,h [zone:x,y,w,h ...]".
func ParseLayoutCaption(caption string) (*entity.RegionLayout, error) {
	layout := &entity.RegionLayout{}
	hasRef := false

	for _, field := range strings.Fields(caption) {
		switch {
		case strings.HasPrefix(field, "ref:"):
			rect, err := entity.ParseRect(strings.TrimPrefix(field, "ref:"))
			if err != nil {
				return nil, err
			}
			layout.Reference = rect
			hasRef = true

		case strings.HasPrefix(field, "zone:"):
			rect, err := entity.ParseRect(strings.TrimPrefix(field, "zone:"))
			if err != nil {
				return nil, err
			}
			layout.Zones = append(layout.Zones, entity.MeasureZone{
				Name: fmt.Sprintf("зона %d", len(layout.Zones)+1),
				Rect: rect,
			})

		default:
			return nil, fmt.Errorf("unknown caption field %q", field)
		}
	}

	if !hasRef {
		return nil, errors.New("caption has no ref region")
	}
	if len(layout.Zones) == 0 {
		return nil, errors.New("caption has no zone regions")
	}
	return layout, nil
}

// FormatReport собирает текстовый отчёт по результату измерения.
func FormatReport(r *entity.MeasurementResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📏 Масштаб: %.4f мм/пиксель", r.ScaleMmPerPx)
	if r.ScaleSpreadMm > 0 {
		fmt.Fprintf(&sb, " (разброс эталона ±%.2f мм)", r.ScaleSpreadMm)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Эталон: отверстий — %d\n", len(r.Reference.Circles))
	fmt.Fprintf(&sb, "Всего отверстий в зонах: %d\n", r.TotalCircles())

	for _, z := range r.Zones {
		name := z.Name
		if name == "" {
			name = "зона"
		}
		sb.WriteString("\n")
		if len(z.Circles) == 0 {
			fmt.Fprintf(&sb, "%s: отверстия не найдены\n", name)
			continue
		}
		fmt.Fprintf(&sb, "%s — отверстий: %d\n", name, len(z.Circles))
		for _, g := range z.Groups {
			fmt.Fprintf(&sb, "• радиус %.2f мм — %d шт.\n", g.RadiusMm, g.Count)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
