package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// parseDayParam разбирает :day из пути; allowAll разрешает псевдо-день all
func parseDayParam(c *fiber.Ctx, allowAll bool) (model.Weekday, error) {
	day, err := model.ParseWeekday(c.Params("day"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown weekday")
	}
	if day == model.AllDays && !allowAll {
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown weekday")
	}
	return day, nil
}

// GET /api/timetable
func (s *Server) GetWeek(c *fiber.Ctx) error {
	week, err := s.schedule.GetWeek(c.Context())
	if err != nil {
		s.logger.Error("Failed to load week schedule", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load schedule")
	}

	// Пустые дни отдаём пустыми списками, чтобы клиент видел все 6 дней
	out := make(map[model.Weekday][]model.ClassSession, len(model.Weekdays()))
	for _, day := range model.Weekdays() {
		sessions := week[day]
		if sessions == nil {
			sessions = []model.ClassSession{}
		}
		out[day] = sessions
	}

	return c.JSON(out)
}

// GET /api/timetable/:day
func (s *Server) GetDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c, false)
	if err != nil {
		return err
	}

	sessions, err := s.schedule.GetDay(c.Context(), day)
	if err != nil {
		s.logger.Error("Failed to load day schedule",
			zap.String("day", string(day)),
			zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load schedule")
	}

	if sessions == nil {
		sessions = []model.ClassSession{}
	}
	return c.JSON(sessions)
}

// POST /api/timetable/:day
// День all раскладывает заявку на все учебные дни и возвращает
// по-дневный отчёт без отката уже записанных дней.
func (s *Server) CreateSession(c *fiber.Ctx) error {
	day, err := parseDayParam(c, true)
	if err != nil {
		return err
	}

	candidate, err := s.parseSessionBody(c)
	if err != nil {
		return err
	}

	if day == model.AllDays {
		outcomes, err := s.schedule.CreateForAllDays(c.Context(), candidate)
		if err != nil {
			return s.mapServiceError(err)
		}

		return c.Status(fiber.StatusMultiStatus).JSON(toOutcomeResponses(outcomes))
	}

	session, err := s.schedule.Create(c.Context(), day, candidate)
	if err != nil {
		return s.mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// PUT /api/timetable/:day/:id
// Если занятия с этим id в целевом дне нет, оно добавляется туда —
// так переносится занятие на другой день.
func (s *Server) UpdateSession(c *fiber.Ctx) error {
	day, err := parseDayParam(c, false)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	updated, err := s.parseSessionBody(c)
	if err != nil {
		return err
	}

	session, err := s.schedule.Edit(c.Context(), day, id, updated)
	if err != nil {
		return s.mapServiceError(err)
	}

	return c.JSON(session)
}

// DELETE /api/timetable/:day/:id
// Удаление несуществующего id — успех без изменений.
func (s *Server) DeleteSession(c *fiber.Ctx) error {
	day, err := parseDayParam(c, false)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := s.schedule.Delete(c.Context(), day, id); err != nil {
		return s.mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parseSessionBody разбирает и валидирует тело запроса с занятием
func (s *Server) parseSessionBody(c *fiber.Ctx) (model.ClassSession, error) {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return model.ClassSession{}, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return model.ClassSession{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session, err := req.ToSession()
	if err != nil {
		return model.ClassSession{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return session, nil
}

// mapServiceError переводит доменные ошибки в HTTP статусы
func (s *Server) mapServiceError(err error) error {
	var conflict *model.ConflictError
	if errors.As(err, &conflict) {
		return fiber.NewError(fiber.StatusConflict, conflict.Error())
	}

	var validation *model.ValidationError
	if errors.As(err, &validation) {
		return fiber.NewError(fiber.StatusBadRequest, validation.Error())
	}

	s.logger.Error("Schedule operation failed", zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, "schedule operation failed")
}

// toOutcomeResponses переводит по-дневные результаты в тело ответа
func toOutcomeResponses(outcomes []model.DayOutcome) []DayOutcomeResponse {
	out := make([]DayOutcomeResponse, 0, len(outcomes))
	for _, outcome := range outcomes {
		resp := DayOutcomeResponse{
			Day:      outcome.Day,
			Admitted: outcome.Admitted(),
			Session:  outcome.Session,
		}
		if outcome.Conflict != nil {
			resp.Conflict = &ConflictResponse{
				Kind:     outcome.Conflict.Kind,
				Day:      outcome.Conflict.Day,
				Existing: outcome.Conflict.Existing,
				Message:  outcome.Conflict.Error(),
			}
		}
		if outcome.Err != nil {
			resp.Error = outcome.Err.Error()
		}
		out = append(out, resp)
	}
	return out
}
