package domain

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortRelevance, SortRating, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

type GenderFilter string

const (
	GenderFilterAny    GenderFilter = "any"
	GenderFilterMale   GenderFilter = "male"
	GenderFilterFemale GenderFilter = "female"
)

type AvailabilityFilter string

const (
	AvailabilityAny   AvailabilityFilter = "any"
	AvailabilityToday AvailabilityFilter = "today"
	// AvailabilityThisWeek не имеет собственной семантики сужения и
	// эквивалентен AvailabilityAny, пока не уточнен интервал недели.
	AvailabilityThisWeek AvailabilityFilter = "this_week"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 150
)

// SearchCriteria объединяет фасеты поиска врачей. Отсутствующие или
// некорректные значения трактуются как "без ограничения".
type SearchCriteria struct {
	Specialty         string             `json:"specialty"`
	Languages         []string           `json:"languages"`
	Gender            GenderFilter       `json:"gender"`
	Availability      AvailabilityFilter `json:"availability"`
	MinRating         string             `json:"rating"`
	MinPrice          float64            `json:"min_price"`
	MaxPrice          float64            `json:"max_price"`
	ConsultationTypes []ConsultationType `json:"consultation_types"`
	VerifiedOnly      bool               `json:"verified_only"`
	Query             string             `json:"query"`
	Sort              SortKey            `json:"sort"`
}

func DefaultSearchCriteria() SearchCriteria {
	return SearchCriteria{
		Gender:            GenderFilterAny,
		Availability:      AvailabilityAny,
		MinRating:         "any",
		MinPrice:          DefaultMinPrice,
		MaxPrice:          DefaultMaxPrice,
		ConsultationTypes: []ConsultationType{ConsultationVideo, ConsultationInPerson},
		Sort:              SortRelevance,
	}
}

// ToggleLanguage добавляет язык в фасет или убирает его.
func (c *SearchCriteria) ToggleLanguage(lang string) {
	for i, l := range c.Languages {
		if l == lang {
			c.Languages = append(c.Languages[:i], c.Languages[i+1:]...)
			return
		}
	}
	c.Languages = append(c.Languages, lang)
}

// ToggleConsultationType переключает тип консультации; последний
// оставшийся тип снять нельзя.
func (c *SearchCriteria) ToggleConsultationType(t ConsultationType) {
	for i, ct := range c.ConsultationTypes {
		if ct == t {
			if len(c.ConsultationTypes) > 1 {
				c.ConsultationTypes = append(c.ConsultationTypes[:i], c.ConsultationTypes[i+1:]...)
			}
			return
		}
	}
	c.ConsultationTypes = append(c.ConsultationTypes, t)
}

func (c *SearchCriteria) HasConsultationType(t ConsultationType) bool {
	for _, ct := range c.ConsultationTypes {
		if ct == t {
			return true
		}
	}
	return false
}
