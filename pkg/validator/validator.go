package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	timeSlotRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	passwordRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=[\]{};':"\\|,.<>/?]{6,}$`)
)

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	return passwordRegex.MatchString(password)
}

// ValidateTimeSlot проверяет слот вида "HH:MM" в 24-часовом формате.
func ValidateTimeSlot(slot string) bool {
	return timeSlotRegex.MatchString(slot)
}

// ValidateWeekday принимает английское название дня недели с заглавной
// буквы, как его отдает time.Weekday.String().
func ValidateWeekday(day string) bool {
	return weekdays[day]
}

func ValidateNamePart(name string) bool {
	if len(name) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' && r != '.' {
			return false
		}
	}

	return true
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
