package search

import (
	"net/url"
	"strconv"

	"healthconnect/internal/domain"
)

// ParseQuery восстанавливает критерии поиска из query-строки страницы
// каталога. Неизвестные и некорректные значения заменяются значениями
// по умолчанию.
func ParseQuery(values url.Values) domain.SearchCriteria {
	c := domain.DefaultSearchCriteria()

	c.Specialty = values.Get("specialty")
	c.Query = values.Get("query")

	if langs, ok := values["language"]; ok {
		c.Languages = append([]string(nil), langs...)
	}

	switch g := domain.GenderFilter(values.Get("gender")); g {
	case domain.GenderFilterMale, domain.GenderFilterFemale:
		c.Gender = g
	}

	switch a := domain.AvailabilityFilter(values.Get("availability")); a {
	case domain.AvailabilityToday, domain.AvailabilityThisWeek:
		c.Availability = a
	}

	if rating := values.Get("rating"); rating != "" {
		c.MinRating = rating
	}

	if min, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil && min >= 0 {
		c.MinPrice = min
	}
	if max, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil && max > 0 {
		c.MaxPrice = max
	}

	if types, ok := values["consultationType"]; ok {
		parsed := make([]domain.ConsultationType, 0, len(types))
		for _, t := range types {
			ct := domain.ConsultationType(t)
			if ct.IsValid() {
				parsed = append(parsed, ct)
			}
		}
		// пустой набор типов недопустим
		if len(parsed) > 0 {
			c.ConsultationTypes = parsed
		}
	}

	c.VerifiedOnly = values.Get("verified") == "true"

	if sortKey := domain.SortKey(values.Get("sort")); sortKey.IsValid() {
		c.Sort = sortKey
	}

	return c
}

// EncodeQuery сериализует критерии обратно в query-строку; значения по
// умолчанию опускаются, так что сброс фильтров очищает строку целиком.
func EncodeQuery(c domain.SearchCriteria) url.Values {
	values := url.Values{}
	defaults := domain.DefaultSearchCriteria()

	if c.Specialty != "" {
		values.Set("specialty", c.Specialty)
	}
	if c.Query != "" {
		values.Set("query", c.Query)
	}
	for _, lang := range c.Languages {
		values.Add("language", lang)
	}
	if c.Gender != "" && c.Gender != domain.GenderFilterAny {
		values.Set("gender", string(c.Gender))
	}
	if c.Availability != "" && c.Availability != domain.AvailabilityAny {
		values.Set("availability", string(c.Availability))
	}
	if c.MinRating != "" && c.MinRating != "any" {
		values.Set("rating", c.MinRating)
	}
	if c.MinPrice != defaults.MinPrice {
		values.Set("minPrice", strconv.FormatFloat(c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != defaults.MaxPrice {
		values.Set("maxPrice", strconv.FormatFloat(c.MaxPrice, 'f', -1, 64))
	}
	if !sameConsultationTypes(c.ConsultationTypes, defaults.ConsultationTypes) {
		for _, t := range c.ConsultationTypes {
			values.Add("consultationType", string(t))
		}
	}
	if c.VerifiedOnly {
		values.Set("verified", "true")
	}
	if c.Sort != "" && c.Sort != domain.SortRelevance {
		values.Set("sort", string(c.Sort))
	}

	return values
}

func sameConsultationTypes(a, b []domain.ConsultationType) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		found := false
		for _, o := range b {
			if t == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
