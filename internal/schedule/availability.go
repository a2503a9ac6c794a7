// Package schedule отвечает за недельное расписание врача: разрешение
// слотов для конкретной даты и выбор доступных дат в календаре.
package schedule

import (
	"time"

	"healthconnect/internal/domain"
)

type AvailableDay struct {
	Name          string    `json:"name"`
	Date          time.Time `json:"date"`
	FormattedDate string    `json:"formatted_date"`
}

// ResolveSlots возвращает слоты врача для календарной даты: пустой
// список, если день недели не входит в availableDays, иначе
// сконфигурированный список слотов в исходном порядке.
func ResolveSlots(availableDays []string, slots domain.WeeklyAvailability, date time.Time) []string {
	day := date.Weekday().String()

	if !containsDay(availableDays, day) {
		return []string{}
	}

	daySlots, ok := slots[day]
	if !ok {
		return []string{}
	}

	return append([]string(nil), daySlots...)
}

// DateSelectable сообщает, можно ли выбрать дату в календаре записи:
// прошедшие даты и дни вне недельного расписания недоступны. Даты
// сравниваются по локальному календарному дню.
func DateSelectable(availableDays []string, date, now time.Time) bool {
	if startOfDay(date).Before(startOfDay(now)) {
		return false
	}
	return containsDay(availableDays, date.Weekday().String())
}

// UpcomingDays перечисляет приемные дни врача на horizon дней вперед,
// начиная с сегодняшнего.
func UpcomingDays(availableDays []string, now time.Time, horizon int) []AvailableDay {
	days := make([]AvailableDay, 0, horizon)

	for i := 0; i < horizon; i++ {
		date := startOfDay(now).AddDate(0, 0, i)
		name := date.Weekday().String()
		if !containsDay(availableDays, name) {
			continue
		}
		days = append(days, AvailableDay{
			Name:          name,
			Date:          date,
			FormattedDate: date.Format("2 Jan"),
		})
	}

	return days
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
