package server

import (
	"github.com/schooldesk/timetable_bot/internal/model"
)

// SessionRequest тело POST/PUT запроса с полями занятия.
// Время передаётся строками "HH:MM".
type SessionRequest struct {
	Subject       string `json:"subject" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	Room          string `json:"room" validate:"required"`
	Instructor    string `json:"instructor" validate:"required"`
	Grade         string `json:"grade" validate:"required"`
	LectureNumber int    `json:"lecture_number"`
}

// ToSession переводит запрос в доменную модель
func (r SessionRequest) ToSession() (model.ClassSession, error) {
	start, err := model.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return model.ClassSession{}, err
	}

	end, err := model.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return model.ClassSession{}, err
	}

	return model.ClassSession{
		Subject:       r.Subject,
		StartTime:     start,
		EndTime:       end,
		Room:          r.Room,
		Instructor:    r.Instructor,
		Grade:         model.Grade(r.Grade),
		LectureNumber: r.LectureNumber,
	}, nil
}

// ConflictResponse тело ответа 409 с деталями конфликта
type ConflictResponse struct {
	Kind     model.ConflictKind `json:"kind"`
	Day      model.Weekday      `json:"day"`
	Existing model.ClassSession `json:"existing"`
	Message  string             `json:"message"`
}

// DayOutcomeResponse по-дневный результат создания "на все дни"
type DayOutcomeResponse struct {
	Day      model.Weekday       `json:"day"`
	Admitted bool                `json:"admitted"`
	Session  *model.ClassSession `json:"session,omitempty"`
	Conflict *ConflictResponse   `json:"conflict,omitempty"`
	Error    string              `json:"error,omitempty"`
}
