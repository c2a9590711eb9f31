package appointment

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// set when the professional books on the client's behalf
	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	clock    *timezone.Clock
	cache    AvailabilityCache
	audit    *audit.Dispatcher
	notifier Notifier
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
	step     int
}

func NewCreateAppointment(
	repo domain.Repository,
	clock *timezone.Clock,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
	notifier Notifier,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
	step int,
) *CreateAppointment {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CreateAppointment{
		repo:     repo,
		clock:    clock,
		cache:    cache,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		step:     step,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "appointment.create",
		trace.WithAttributes(
			attribute.Int("professional.id", int(in.ProfessionalID)),
			attribute.String("date", in.Date),
			attribute.String("time", in.Time),
		),
	)
	defer span.End()

	ap, err := uc.execute(ctx, in)
	if err != nil {
		code, ok := httperr.BusinessCode(err)
		if !ok {
			code = "error"
			span.RecordError(err)
		}
		span.SetAttributes(attribute.String("result", code))
		uc.metrics.ObserveBooking(code)
		return nil, err
	}

	uc.metrics.ObserveBooking("created")
	return ap, nil
}

func (uc *CreateAppointment) execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	email := validators.NormalizeEmail(in.ClientEmail)
	// só dígitos: o mesmo telefone em formatos diferentes é o mesmo cliente
	phone := validators.NormalizePhone(in.ClientPhone)
	name := strings.TrimSpace(in.ClientName)
	if name == "" || (email == "" && phone == "") {
		return nil, httperr.ErrBusiness(domain.CodeInvalidClient)
	}

	// --------------------------------------------------
	// 1️⃣ Profissional
	// --------------------------------------------------
	professional, err := uc.repo.GetProfessionalByID(ctx, in.ProfessionalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeProfessionalNotFound)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, professional.ID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDuration)
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora no fuso da plataforma
	// --------------------------------------------------
	start, err := uc.clock.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	now := uc.clock.Now()
	if start.Before(now) {
		return nil, httperr.ErrBusiness(domain.CodeSlotInPast)
	}

	date := start.Format(timezone.DateLayout)
	hm := start.Format(timezone.TimeLayout)

	// --------------------------------------------------
	// 4️⃣ Transação (lock por profissional)
	// --------------------------------------------------
	var ap *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockProfessional(ctx, professional.ID); err != nil {
			return err
		}

		client, err := upsertClient(ctx, tx, name, email, phone)
		if err != nil {
			return err
		}

		// bloqueio antes de qualquer escrita do agendamento
		if client.Status == models.ClientBlocked {
			return httperr.ErrBusiness(domain.CodeClientBlocked)
		}
		if email != "" {
			blocked, err := tx.IsClientBlocked(ctx, email)
			if err != nil {
				return err
			}
			if blocked {
				return httperr.ErrBusiness(domain.CodeClientBlocked)
			}
		}

		// revalida contra o banco, nunca contra o cache
		slots, err := daySlots(ctx, tx, professional.ID, calendarDay(start, uc.clock.Location()), svc.DurationMin, uc.step, now)
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			return httperr.ErrBusiness(domain.CodeOutsideWorkingHours)
		}
		if err != nil {
			return err
		}

		if err := checkSlot(slots, hm); err != nil {
			return err
		}

		ap = &models.Appointment{
			ProfessionalID: professional.ID,
			ClientID:       client.ID,
			ServiceID:      svc.ID,
			Date:           date,
			Time:           hm,
			DurationMin:    svc.DurationMin,
			Status:         string(domain.InitialStatus()),
			Price:          svc.Price,
			ServiceName:    svc.Name,
			ClientName:     client.Name,
			ClientEmail:    email,
			ClientPhone:    phone,
			Notes:          strings.TrimSpace(in.Notes),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsConstraintConflict(err) {
				return httperr.ErrBusiness(domain.CodeSlotUnavailable)
			}
			return err
		}

		if err := tx.LinkClientToProfessional(ctx, client.ID, professional.ID); err != nil {
			return err
		}
		return tx.RecordClientAppointment(ctx, client.ID, date)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Pós-commit: cache, auditoria, WhatsApp
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, professional.ID, date)

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professional.ID,
		UserID:         in.ActorUserID,
		Action:         "appointment_created",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"date":    ap.Date,
			"time":    ap.Time,
			"service": ap.ServiceName,
		},
	})

	uc.notifier.Notify(notify.KindConfirmation, ap.ClientPhone,
		templateData(ap.ClientName, ap.ServiceName, ap.Date, ap.Time))

	uc.logger.Info("appointment created",
		"appointment_id", ap.ID,
		"professional_id", ap.ProfessionalID,
		"date", ap.Date,
		"time", ap.Time,
	)

	return ap, nil
}

// checkSlot accepts only a start the engine would have emitted as available.
func checkSlot(slots []domain.TimeSlot, hm string) error {
	for _, s := range slots {
		if s.Start != hm {
			continue
		}
		if !s.Available {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}
		return nil
	}
	return httperr.ErrBusiness(domain.CodeOutsideWorkingHours)
}
