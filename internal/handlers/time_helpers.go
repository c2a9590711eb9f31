package handlers

import (
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

// --------------------------------------------------
// Datas no fuso fixo da plataforma
// --------------------------------------------------

// dias à frente invalidados no cache quando o horário de atendimento muda
const cacheHorizonDays = 90

// upcomingDates lista hoje e os próximos days-1 dias como "YYYY-MM-DD".
func upcomingDates(clock *timezone.Clock, days int) []string {
	today := clock.Today()
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, today.AddDate(0, 0, i).Format(timezone.DateLayout))
	}
	return out
}

// parseDate devolve a data à meia-noite no fuso da plataforma.
func parseDate(clock *timezone.Clock, dateStr string) (time.Time, error) {
	return clock.ParseDate(dateStr)
}
