package app

import (
	"math"
	"sort"

	"pore-bot/internal/domain/entity"
)

// GroupRadii группирует радиусы (в мм) по допуску toleranceMm жадным
// первым совпадением: радиус попадает в первую по порядку создания группу,
// от представителя которой он отличается не больше чем на допуск.
// Представитель группы фиксируется значением её первого элемента и
// не пересчитывается. Вход должен быть отсортирован по убыванию —
// тогда представителем становится наибольший радиус группы.
// Результат отсортирован по убыванию радиуса-представителя.
func GroupRadii(radiiMm []float64, toleranceMm float64) []entity.RadiusGroup {
	var groups []entity.RadiusGroup

	for _, r := range radiiMm {
		assigned := false
		for i := range groups {
			if math.Abs(r-groups[i].RadiusMm) <= toleranceMm {
				groups[i].Count++
				assigned = true
				break
			}
		}
		if !assigned {
			groups = append(groups, entity.RadiusGroup{RadiusMm: r, Count: 1})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].RadiusMm > groups[j].RadiusMm
	})

	return groups
}
