package dto

import (
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

type AppointmentListDTO struct {
	ID           uint    `json:"id"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	EndTime      string  `json:"end_time"`
	DurationMin  int     `json:"duration"`
	Status       string  `json:"status"`
	ClientName   string  `json:"client_name"`
	ClientEmail  string  `json:"client_email"`
	ClientPhone  string  `json:"client_phone"`
	ServiceName  string  `json:"service_name"`
	Price        float64 `json:"price"`
	Notes        string  `json:"notes,omitempty"`
	CancelReason string  `json:"cancel_reason,omitempty"`
}

func ToAppointmentList(ap models.Appointment) AppointmentListDTO {
	end := ap.Time
	if t, err := time.Parse("15:04", ap.Time); err == nil {
		end = t.Add(time.Duration(ap.DurationMin) * time.Minute).Format("15:04")
	}

	return AppointmentListDTO{
		ID:           ap.ID,
		Date:         ap.Date,
		Time:         ap.Time,
		EndTime:      end,
		DurationMin:  ap.DurationMin,
		Status:       ap.Status,
		ClientName:   ap.ClientName,
		ClientEmail:  ap.ClientEmail,
		ClientPhone:  ap.ClientPhone,
		ServiceName:  ap.ServiceName,
		Price:        ap.Price,
		Notes:        ap.Notes,
		CancelReason: ap.CancelReason,
	}
}

func ToAppointmentLists(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ToAppointmentList(ap))
	}
	return out
}
