package model

import (
	"fmt"
	"strings"
)

// Weekday учебный день недели. Воскресенье — выходной, занятия к нему
// не привязываются.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"

	// AllDays псевдо-день: заявка раскладывается на 6 независимых
	// дневных операций, по одной копии занятия на каждый день
	AllDays Weekday = "All"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Weekdays возвращает учебные дни недели в календарном порядке
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

// Valid проверяет что это реальный учебный день (не AllDays)
func (d Weekday) Valid() bool {
	for _, wd := range weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// ParseWeekday разбирает день недели без учёта регистра, "all" даёт AllDays
func ParseWeekday(s string) (Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "all" {
		return AllDays, nil
	}

	for _, wd := range weekdays {
		if normalized == strings.ToLower(string(wd)) {
			return wd, nil
		}
	}

	return "", fmt.Errorf("unknown weekday %q", s)
}
