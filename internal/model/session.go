package model

import (
	"github.com/google/uuid"
)

// Grade класс-параллель, для которой читается занятие
type Grade string

var grades = []Grade{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// Grades возвращает список всех классов
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}

// Valid проверяет что класс входит в известный набор
func (g Grade) Valid() bool {
	for _, grade := range grades {
		if g == grade {
			return true
		}
	}
	return false
}

// ClassSession одно занятие в недельном расписании.
// Идентификатор стабилен при редактировании; при создании "на все дни"
// каждая дневная копия получает собственный идентификатор.
type ClassSession struct {
	ID            uuid.UUID `json:"id"`
	Subject       string    `json:"subject" validate:"required"`
	StartTime     TimeOfDay `json:"start_time" validate:"min=0,max=1439"`
	EndTime       TimeOfDay `json:"end_time" validate:"min=0,max=1439"`
	Room          string    `json:"room" validate:"required"`
	Instructor    string    `json:"instructor" validate:"required"`
	Grade         Grade     `json:"grade" validate:"required"`
	LectureNumber int       `json:"lecture_number,omitempty"` // порядковый номер для отображения, в проверке конфликтов не участвует
}
