// Package search реализует конвейер фильтрации и сортировки каталога
// врачей: фасеты комбинируются по И, затем применяется текстовый поиск
// и устойчивая сортировка по выбранному ключу.
package search

import (
	"sort"
	"strconv"
	"strings"

	"healthconnect/internal/domain"
)

// Apply возвращает отфильтрованное и отсортированное подмножество
// doctors. Входной срез не изменяется; пустые или некорректные фасеты
// пропускают всех.
func Apply(doctors []domain.Doctor, c domain.SearchCriteria) []domain.Doctor {
	results := make([]domain.Doctor, 0, len(doctors))

	for _, doc := range doctors {
		if !matches(doc, c) {
			continue
		}
		results = append(results, doc)
	}

	if c.Query != "" {
		term := strings.ToLower(c.Query)
		filtered := results[:0]
		for _, doc := range results {
			if strings.Contains(strings.ToLower(doc.Name), term) ||
				strings.Contains(strings.ToLower(doc.Specialty), term) {
				filtered = append(filtered, doc)
			}
		}
		results = filtered
	}

	sortDoctors(results, c.Sort)

	return results
}

func matches(doc domain.Doctor, c domain.SearchCriteria) bool {
	if c.Specialty != "" &&
		!strings.Contains(strings.ToLower(doc.Specialty), strings.ToLower(c.Specialty)) {
		return false
	}

	if len(c.Languages) > 0 && !intersects(doc.Languages, c.Languages) {
		return false
	}

	if c.Gender != "" && c.Gender != domain.GenderFilterAny &&
		string(doc.Gender) != string(c.Gender) {
		return false
	}

	// "this_week" пока эквивалентен "any", сужает только "today".
	if c.Availability == domain.AvailabilityToday && !doc.AvailableToday {
		return false
	}

	if minRating, ok := parseRating(c.MinRating); ok && doc.Rating < minRating {
		return false
	}

	if c.MaxPrice > 0 &&
		(doc.ConsultationFee < c.MinPrice || doc.ConsultationFee > c.MaxPrice) {
		return false
	}

	if c.VerifiedOnly && !doc.Verified {
		return false
	}

	return true
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func parseRating(raw string) (float64, bool) {
	if raw == "" || raw == "any" {
		return 0, false
	}
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

func sortDoctors(doctors []domain.Doctor, key domain.SortKey) {
	switch key {
	case domain.SortRating:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].Rating > doctors[j].Rating
		})
	case domain.SortPriceLow:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].ConsultationFee < doctors[j].ConsultationFee
		})
	case domain.SortPriceHigh:
		sort.SliceStable(doctors, func(i, j int) bool {
			return doctors[i].ConsultationFee > doctors[j].ConsultationFee
		})
	default:
		// relevance: сперва проверенные, затем доступные сегодня,
		// затем по убыванию рейтинга
		sort.SliceStable(doctors, func(i, j int) bool {
			a, b := doctors[i], doctors[j]
			if a.Verified != b.Verified {
				return a.Verified
			}
			if a.AvailableToday != b.AvailableToday {
				return a.AvailableToday
			}
			return a.Rating > b.Rating
		})
	}
}
