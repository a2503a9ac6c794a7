package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthconnect/internal/domain"
)

func catalog() []domain.Doctor {
	return []domain.Doctor{
		{
			ID: 1, Name: "Dr. Anna de Vries", Specialty: "Cardiologist",
			Rating: 4.8, Languages: []string{"Dutch", "English"},
			Gender: domain.GenderFemale, AvailableToday: true,
			ConsultationFee: 80, Verified: true,
		},
		{
			ID: 2, Name: "Dr. Jan van der Berg", Specialty: "Dermatologist",
			Rating: 4.6, Languages: []string{"Dutch", "English", "German"},
			Gender: domain.GenderMale, AvailableToday: false,
			ConsultationFee: 95, Verified: true,
		},
		{
			ID: 3, Name: "Dr. Sophie Jansen", Specialty: "General Practitioner",
			Rating: 4.9, Languages: []string{"Dutch", "English", "French"},
			Gender: domain.GenderFemale, AvailableToday: true,
			ConsultationFee: 60, Verified: false,
		},
		{
			ID: 4, Name: "Dr. Thomas de Groot", Specialty: "Cardiologist",
			Rating: 4.2, Languages: []string{"Dutch"},
			Gender: domain.GenderMale, AvailableToday: false,
			ConsultationFee: 120, Verified: true,
		},
	}
}

func ids(doctors []domain.Doctor) []int64 {
	out := make([]int64, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.ID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *domain.SearchCriteria)
		expected []int64
	}{
		{
			name:     "без фильтров relevance: проверенные и доступные сегодня выше",
			mutate:   func(c *domain.SearchCriteria) {},
			expected: []int64{1, 2, 4, 3},
		},
		{
			name: "по специальности",
			mutate: func(c *domain.SearchCriteria) {
				c.Specialty = "Cardiologist"
			},
			expected: []int64{1, 4},
		},
		{
			name: "специальность без учета регистра",
			mutate: func(c *domain.SearchCriteria) {
				c.Specialty = "cardio"
			},
			expected: []int64{1, 4},
		},
		{
			name: "языки объединяются по ИЛИ",
			mutate: func(c *domain.SearchCriteria) {
				c.Languages = []string{"German", "French"}
			},
			expected: []int64{2, 3},
		},
		{
			name: "по полу",
			mutate: func(c *domain.SearchCriteria) {
				c.Gender = domain.GenderFilterFemale
			},
			expected: []int64{1, 3},
		},
		{
			name: "доступные сегодня",
			mutate: func(c *domain.SearchCriteria) {
				c.Availability = domain.AvailabilityToday
			},
			expected: []int64{1, 3},
		},
		{
			name: "this_week не сужает выборку",
			mutate: func(c *domain.SearchCriteria) {
				c.Availability = domain.AvailabilityThisWeek
			},
			expected: []int64{1, 2, 4, 3},
		},
		{
			name: "минимальный рейтинг",
			mutate: func(c *domain.SearchCriteria) {
				c.MinRating = "4.5"
			},
			expected: []int64{1, 2, 3},
		},
		{
			name: "некорректный рейтинг пропускает всех",
			mutate: func(c *domain.SearchCriteria) {
				c.MinRating = "oops"
			},
			expected: []int64{1, 2, 4, 3},
		},
		{
			name: "ценовой диапазон включает границы",
			mutate: func(c *domain.SearchCriteria) {
				c.MinPrice = 80
				c.MaxPrice = 95
			},
			expected: []int64{1, 2},
		},
		{
			name: "только проверенные",
			mutate: func(c *domain.SearchCriteria) {
				c.VerifiedOnly = true
			},
			expected: []int64{1, 2, 4},
		},
		{
			name: "комбинация фасетов по И",
			mutate: func(c *domain.SearchCriteria) {
				c.Gender = domain.GenderFilterFemale
				c.Availability = domain.AvailabilityToday
				c.VerifiedOnly = true
			},
			expected: []int64{1},
		},
		{
			name: "текстовый поиск по имени",
			mutate: func(c *domain.SearchCriteria) {
				c.Query = "jansen"
			},
			expected: []int64{3},
		},
		{
			name: "текстовый поиск по специальности",
			mutate: func(c *domain.SearchCriteria) {
				c.Query = "dermat"
			},
			expected: []int64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.DefaultSearchCriteria()
			tt.mutate(&c)

			got := Apply(catalog(), c)

			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		name     string
		sort     domain.SortKey
		expected []int64
	}{
		{"по рейтингу", domain.SortRating, []int64{3, 1, 2, 4}},
		{"по возрастанию цены", domain.SortPriceLow, []int64{3, 1, 2, 4}},
		{"по убыванию цены", domain.SortPriceHigh, []int64{4, 2, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.DefaultSearchCriteria()
			c.Sort = tt.sort

			got := Apply(catalog(), c)

			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	doctors := catalog()

	c := domain.DefaultSearchCriteria()
	c.Sort = domain.SortPriceHigh
	Apply(doctors, c)

	assert.Equal(t, ids(catalog()), ids(doctors))
}

func TestApplyEmptyCatalog(t *testing.T) {
	got := Apply(nil, domain.DefaultSearchCriteria())

	assert.Empty(t, got)
}
