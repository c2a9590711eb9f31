package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

type CancelAppointment struct {
	repo     domain.Repository
	clock    *timezone.Clock
	cache    AvailabilityCache
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCancelAppointment(
	repo domain.Repository,
	clock *timezone.Clock,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CancelAppointment {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &CancelAppointment{
		repo:     repo,
		clock:    clock,
		cache:    cache,
		audit:    audit,
		notifier: notifier,
	}
}

type ProfessionalCancelInput struct {
	ProfessionalID uint
	UserID         uint
	AppointmentID  uint
	Reason         string
	CustomReason   string
}

// ByProfessional cancels with one of the notify reasons and tells the client why.
func (uc *CancelAppointment) ByProfessional(
	ctx context.Context,
	in ProfessionalCancelInput,
) (*models.Appointment, error) {

	if in.Reason == "" {
		in.Reason = notify.ReasonOther
	}
	if !notify.ValidReason(in.Reason) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidCancelReason)
	}

	professional, err := uc.repo.GetProfessionalByID(ctx, in.ProfessionalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeProfessionalNotFound)
		}
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, in.AppointmentID, in.ProfessionalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, err
	}

	reasonText := notify.ReasonText(in.Reason, strings.TrimSpace(in.CustomReason))
	if err := uc.cancel(ctx, ap, reasonText, &in.UserID); err != nil {
		return nil, err
	}

	data := templateData(ap.ClientName, ap.ServiceName, ap.Date, ap.Time)
	data.ProfessionalName = professional.Name
	data.Reason = reasonText
	uc.notifier.Notify(notify.KindProfessionalCancellation, ap.ClientPhone, data)

	return ap, nil
}

// ByClient requires the email or phone used when booking. A mismatch is
// reported as not found.
func (uc *CancelAppointment) ByClient(
	ctx context.Context,
	appointmentID uint,
	email string,
	phone string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, err
	}

	if !contactMatches(ap, validators.NormalizeEmail(email), validators.NormalizePhone(phone)) {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}

	if err := uc.cancel(ctx, ap, "cancelado pelo cliente", nil); err != nil {
		return nil, err
	}

	uc.notifier.Notify(notify.KindCancellation, ap.ClientPhone,
		templateData(ap.ClientName, ap.ServiceName, ap.Date, ap.Time))

	return ap, nil
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	reason string,
	userID *uint,
) error {

	if err := domain.Cancel(ap, uc.clock.Now(), reason); err != nil {
		return err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, ap.ProfessionalID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: ap.ProfessionalID,
		UserID:         userID,
		Action:         "appointment_cancelled",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]any{"reason": reason},
	})

	return nil
}

func contactMatches(ap *models.Appointment, email, phone string) bool {
	if email != "" && strings.EqualFold(ap.ClientEmail, email) {
		return true
	}
	stored := validators.NormalizePhone(ap.ClientPhone)
	return phone != "" && stored != "" && stored == validators.NormalizePhone(phone)
}
