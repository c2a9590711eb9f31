package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessionalByID(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "professional")
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetProfessionalBySlug(
	ctx context.Context,
	slug string,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, notFound(err, "professional")
	}
	return &p, nil
}

func (r *AppointmentGormRepository) LockProfessional(
	ctx context.Context,
	id uint,
) error {

	var p models.Professional
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&p, id).Error; err != nil {
		return notFound(err, "professional")
	}
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", serviceID, professionalID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return &s, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
) ([]models.WorkingHours, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Preload("Periods", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByEmail(
	ctx context.Context,
	email string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		First(&c).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &c, nil
}

// Telefones chegam só com dígitos; a comparação também ignora a formatação
// de linhas gravadas antes disso.
const (
	phoneDigits       = `regexp_replace(phone, '[^0-9]', '', 'g')`
	clientPhoneDigits = `regexp_replace(client_phone, '[^0-9]', '', 'g')`
)

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where(phoneDigits+" = ?", phone).
		Order("id ASC").
		First(&c).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &c, nil
}

func (r *AppointmentGormRepository) SaveClient(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *AppointmentGormRepository) IsClientBlocked(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("email = ? AND status = ?", email, models.ClientBlocked).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) LinkClientToProfessional(
	ctx context.Context,
	clientID uint,
	professionalID uint,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ClientProfessional{
			ClientID:       clientID,
			ProfessionalID: professionalID,
		}).Error
}

func (r *AppointmentGormRepository) RecordClientAppointment(
	ctx context.Context,
	clientID uint,
	date string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		UpdateColumns(map[string]any{
			"total_appointments": gorm.Expr("total_appointments + ?", 1),
			"last_appointment":   date,
		}).Error
}

// --------------------------------------------------
// Appointment (create / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Appointment (queries)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Where("professional_id = ?", professionalID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	professionalID uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND date >= ? AND date < ?", professionalID, from, to).
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByStatus(
	ctx context.Context,
	professionalID uint,
	status domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND status = ?", professionalID, string(status)).
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByContact(
	ctx context.Context,
	email string,
	phone string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	switch {
	case email != "" && phone != "":
		q = q.Where("client_email = ? OR "+clientPhoneDigits+" = ?", email, phone)
	case email != "":
		q = q.Where("client_email = ?", email)
	case phone != "":
		q = q.Where(clientPhoneDigits+" = ?", phone)
	default:
		return []models.Appointment{}, nil
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
