// Package render рисует недельную сетку расписания в PNG.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 70
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minSlotHeight   = 10.0
	defaultMinHour  = 8
	defaultMaxHour  = 17
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 226, 228, 255}
	slotTextColor  = color.RGBA{20, 24, 28, 230}

	// Цвета занятий по классам, циклически
	gradePalette = []color.RGBA{
		{133, 193, 85, 220},
		{255, 182, 193, 230},
		{135, 186, 222, 220},
		{244, 203, 122, 230},
		{196, 163, 222, 220},
		{255, 160, 122, 220},
	}
)

// hourRange диапазон часов, который попадает в картинку
type hourRange struct {
	start int
	end   int
}

// weekHourRange подбирает диапазон часов под занятия недели
func weekHourRange(week map[model.Weekday][]model.ClassSession) hourRange {
	hr := hourRange{start: defaultMinHour, end: defaultMaxHour}

	for _, sessions := range week {
		for _, session := range sessions {
			if session.StartTime.Hour() < hr.start {
				hr.start = session.StartTime.Hour()
			}
			endHour := session.EndTime.Hour()
			if session.EndTime.Minute() > 0 {
				endHour++
			}
			if endHour > hr.end {
				hr.end = endHour
			}
		}
	}

	return hr
}

// gradeColor возвращает цвет занятия для класса
func gradeColor(grade model.Grade) color.RGBA {
	for i, g := range model.Grades() {
		if g == grade {
			return gradePalette[i%len(gradePalette)]
		}
	}
	return gradePalette[0]
}

// WeekImage рисует сетку день × время со всеми занятиями недели
func WeekImage(week map[model.Weekday][]model.ClassSession) ([]byte, error) {
	days := model.Weekdays()
	hours := weekHourRange(week)
	totalHours := hours.end - hours.start

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := float64(imageWidth-leftLabelsWidth) / float64(len(days))
	hourHeight := float64(imageHeight-headerHeight) / float64(totalHours)

	// Колонки дней
	for i, day := range days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth

		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, float64(imageHeight-headerHeight))
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(string(day), x+dayWidth/2, headerHeight/2, 0.5, 0.5)
	}

	// Горизонтальные линии часов и подписи слева
	for h := 0; h <= totalHours; h++ {
		y := headerHeight + float64(h)*hourHeight

		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		if h < totalHours {
			dc.SetColor(hourLabelColor)
			label := fmt.Sprintf("%02d:00", hours.start+h)
			dc.DrawStringAnchored(label, leftLabelsWidth/2, y+hourHeight/2, 0.5, 0.5)
		}
	}

	// Занятия
	for i, day := range days {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth + dayPaddingX

		for _, session := range week[day] {
			startOffset := float64(int(session.StartTime)-hours.start*60) / 60.0
			duration := float64(session.EndTime-session.StartTime) / 60.0

			y := headerHeight + startOffset*hourHeight
			height := duration * hourHeight
			if height < minSlotHeight {
				height = minSlotHeight
			}

			dc.SetColor(gradeColor(session.Grade))
			dc.DrawRoundedRectangle(x, y, dayWidth-2*dayPaddingX, height, 5)
			dc.Fill()

			dc.SetColor(slotTextColor)
			// basicfont покрывает только ASCII, поэтому в ячейке время и класс
			label := fmt.Sprintf("%s-%s (%s)", session.StartTime, session.EndTime, session.Grade)
			dc.DrawStringAnchored(label, x+(dayWidth-2*dayPaddingX)/2, y+height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode timetable image: %w", err)
	}

	return buf.Bytes(), nil
}
