package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"healthconnect/internal/domain"
)

func TestParseQueryDefaults(t *testing.T) {
	got := ParseQuery(url.Values{})

	assert.Equal(t, domain.DefaultSearchCriteria(), got)
}

func TestParseQuery(t *testing.T) {
	values := url.Values{}
	values.Set("specialty", "Cardiologist")
	values.Set("query", "anna")
	values.Add("language", "Dutch")
	values.Add("language", "English")
	values.Set("gender", "female")
	values.Set("availability", "today")
	values.Set("rating", "4.5")
	values.Set("minPrice", "20")
	values.Set("maxPrice", "100")
	values.Add("consultationType", "video")
	values.Set("verified", "true")
	values.Set("sort", "price_low")

	got := ParseQuery(values)

	assert.Equal(t, "Cardiologist", got.Specialty)
	assert.Equal(t, "anna", got.Query)
	assert.Equal(t, []string{"Dutch", "English"}, got.Languages)
	assert.Equal(t, domain.GenderFilterFemale, got.Gender)
	assert.Equal(t, domain.AvailabilityToday, got.Availability)
	assert.Equal(t, "4.5", got.MinRating)
	assert.Equal(t, 20.0, got.MinPrice)
	assert.Equal(t, 100.0, got.MaxPrice)
	assert.Equal(t, []domain.ConsultationType{domain.ConsultationVideo}, got.ConsultationTypes)
	assert.True(t, got.VerifiedOnly)
	assert.Equal(t, domain.SortPriceLow, got.Sort)
}

func TestParseQueryIgnoresInvalidValues(t *testing.T) {
	values := url.Values{}
	values.Set("gender", "unknown")
	values.Set("availability", "tomorrow")
	values.Set("sort", "fastest")
	values.Set("minPrice", "-5")
	values.Set("maxPrice", "abc")
	values.Add("consultationType", "telepathy")

	got := ParseQuery(values)
	defaults := domain.DefaultSearchCriteria()

	assert.Equal(t, defaults.Gender, got.Gender)
	assert.Equal(t, defaults.Availability, got.Availability)
	assert.Equal(t, defaults.Sort, got.Sort)
	assert.Equal(t, defaults.MinPrice, got.MinPrice)
	assert.Equal(t, defaults.MaxPrice, got.MaxPrice)
	// пустой набор типов заменяется набором по умолчанию
	assert.Equal(t, defaults.ConsultationTypes, got.ConsultationTypes)
}

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	got := EncodeQuery(domain.DefaultSearchCriteria())

	assert.Empty(t, got)
}

func TestQueryRoundTrip(t *testing.T) {
	c := domain.DefaultSearchCriteria()
	c.Specialty = "Dermatologist"
	c.Languages = []string{"German"}
	c.Gender = domain.GenderFilterMale
	c.Availability = domain.AvailabilityToday
	c.MinRating = "4"
	c.MaxPrice = 120
	c.ConsultationTypes = []domain.ConsultationType{domain.ConsultationInPerson}
	c.VerifiedOnly = true
	c.Query = "berg"
	c.Sort = domain.SortRating

	assert.Equal(t, c, ParseQuery(EncodeQuery(c)))
}

func TestToggleLanguage(t *testing.T) {
	c := domain.DefaultSearchCriteria()

	c.ToggleLanguage("Dutch")
	assert.Equal(t, []string{"Dutch"}, c.Languages)

	c.ToggleLanguage("English")
	assert.Equal(t, []string{"Dutch", "English"}, c.Languages)

	c.ToggleLanguage("Dutch")
	assert.Equal(t, []string{"English"}, c.Languages)
}

func TestToggleConsultationType(t *testing.T) {
	c := domain.DefaultSearchCriteria()

	c.ToggleConsultationType(domain.ConsultationVideo)
	assert.Equal(t, []domain.ConsultationType{domain.ConsultationInPerson}, c.ConsultationTypes)

	// последний оставшийся тип снять нельзя
	c.ToggleConsultationType(domain.ConsultationInPerson)
	assert.Equal(t, []domain.ConsultationType{domain.ConsultationInPerson}, c.ConsultationTypes)

	c.ToggleConsultationType(domain.ConsultationVideo)
	assert.True(t, c.HasConsultationType(domain.ConsultationVideo))
	assert.True(t, c.HasConsultationType(domain.ConsultationInPerson))
}
