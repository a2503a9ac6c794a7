package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"patient@example.com", true},
		{"a.b+c@sub.domain.nl", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"обычный пароль", "password123", true},
		{"со спецсимволами", "p@ssw0rd!", true},
		{"короче шести символов", "12345", false},
		{"пустой", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePassword(tt.password))
		})
	}
}

func TestValidateTimeSlot(t *testing.T) {
	tests := []struct {
		slot  string
		valid bool
	}{
		{"09:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"09-00", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateTimeSlot(tt.slot))
		})
	}
}

func TestValidateWeekday(t *testing.T) {
	assert.True(t, ValidateWeekday("Monday"))
	assert.True(t, ValidateWeekday("Sunday"))
	assert.False(t, ValidateWeekday("monday"))
	assert.False(t, ValidateWeekday("Понедельник"))
	assert.False(t, ValidateWeekday(""))
}

func TestValidateNamePart(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Anna", true},
		{"de Vries", true},
		{"van der Berg", true},
		{"O'Connor", true},
		{"J.", true},
		{"A", false},
		{"Anna<script>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateNamePart(tt.name))
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString(`<script>alert(1)</script>`))
	assert.Equal(t, "Dr. Anna de Vries", SanitizeString("Dr. Anna de Vries"))
}
