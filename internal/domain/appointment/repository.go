package appointment

import (
	"context"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

// Repository is the data-access contract of the booking core.
// Lookups that match nothing return an error wrapping ErrNotFound.
type Repository interface {
	// -------- Professional --------
	GetProfessionalByID(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	GetProfessionalBySlug(
		ctx context.Context,
		slug string,
	) (*models.Professional, error)

	// LockProfessional takes a row lock held until the transaction ends.
	LockProfessional(
		ctx context.Context,
		id uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
	) ([]models.WorkingHours, error)

	// -------- Client --------
	FindClientByEmail(
		ctx context.Context,
		email string,
	) (*models.Client, error)

	FindClientByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	SaveClient(
		ctx context.Context,
		c *models.Client,
	) error

	IsClientBlocked(
		ctx context.Context,
		email string,
	) (bool, error)

	LinkClientToProfessional(
		ctx context.Context,
		clientID uint,
		professionalID uint,
	) error

	RecordClientAppointment(
		ctx context.Context,
		clientID uint,
		date string,
	) error

	// -------- Appointment (create / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (queries) --------

	// ListAppointments returns every status; callers filter cancelled rows.
	ListAppointments(
		ctx context.Context,
		professionalID uint,
		date string,
	) ([]models.Appointment, error)

	// ListAppointmentsBetween covers dates in [from, to).
	ListAppointmentsBetween(
		ctx context.Context,
		professionalID uint,
		from string,
		to string,
	) ([]models.Appointment, error)

	ListAppointmentsByStatus(
		ctx context.Context,
		professionalID uint,
		status Status,
	) ([]models.Appointment, error)

	ListAppointmentsByContact(
		ctx context.Context,
		email string,
		phone string,
	) ([]models.Appointment, error)

	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
