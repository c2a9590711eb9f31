package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

// DayInvalidator descarta a disponibilidade em cache de vários dias.
type DayInvalidator interface {
	InvalidateDays(ctx context.Context, professionalID uint, dates []string)
}

type WorkingHoursHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	clock *timezone.Clock
	cache DayInvalidator
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(
	db *gorm.DB,
	repo domain.Repository,
	clock *timezone.Clock,
	cache DayInvalidator,
	dispatcher *audit.Dispatcher,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		db:    db,
		repo:  repo,
		clock: clock,
		cache: cache,
		audit: dispatcher,
	}
}

type WorkingPeriodConfig struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type WorkingDayConfig struct {
	Weekday     *int                  `json:"weekday" binding:"required,min=0,max=6"`
	IsAvailable bool                  `json:"is_available"`
	Periods     []WorkingPeriodConfig `json:"periods"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	hours, err := h.repo.GetWorkingHours(c.Request.Context(), professionalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui a semana inteira. Períodos inválidos são recusados aqui,
// antes de chegar ao cálculo de horários.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	toCreate, err := buildWorkingHours(professionalID, req.Days)
	if err != nil {
		httperr.Write(c, http.StatusBadRequest, domain.CodeInvalidWorkingHours, err.Error())
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("working_hours_id IN (?)",
				tx.Model(&models.WorkingHours{}).Select("id").Where("professional_id = ?", professionalID),
			).
			Delete(&models.WorkingPeriod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("professional_id = ?", professionalID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	h.cache.InvalidateDays(c.Request.Context(), professionalID, upcomingDates(h.clock, cacheHorizonDays))

	writeAudit(h.audit, professionalID, &userID, "working_hours_updated", "working_hours", nil, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildWorkingHours valida e converte o corpo da requisição.
func buildWorkingHours(professionalID uint, days []WorkingDayConfig) ([]models.WorkingHours, error) {
	seen := map[int]bool{}
	out := make([]models.WorkingHours, 0, len(days))

	for _, d := range days {
		weekday, err := domain.ParseWeekday(*d.Weekday)
		if err != nil {
			return nil, err
		}
		if seen[int(weekday)] {
			return nil, fmt.Errorf("dia %s repetido", weekday)
		}
		seen[int(weekday)] = true

		wh := models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        int(weekday),
			IsAvailable:    d.IsAvailable,
		}

		// dia indisponível não guarda períodos
		if d.IsAvailable {
			periods := make([]domain.Period, 0, len(d.Periods))
			for i, p := range d.Periods {
				start, err := domain.ParseTimeOfDay(p.Start)
				if err != nil {
					return nil, fmt.Errorf("%s: período %d com início inválido", weekday, i+1)
				}
				end, err := domain.ParseTimeOfDay(p.End)
				if err != nil {
					return nil, fmt.Errorf("%s: período %d com fim inválido", weekday, i+1)
				}
				periods = append(periods, domain.Period{Start: start, End: end})
				wh.Periods = append(wh.Periods, models.WorkingPeriod{
					Position:  i,
					StartTime: start.String(),
					EndTime:   end.String(),
				})
			}
			if err := domain.ValidatePeriods(periods); err != nil {
				return nil, fmt.Errorf("%s: períodos sobrepostos ou fora de ordem", weekday)
			}
		}

		out = append(out, wh)
	}
	return out, nil
}
