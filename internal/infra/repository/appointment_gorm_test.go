package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
)

func newMockRepo(t *testing.T) (*AppointmentGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewAppointmentGormRepository(db), mock
}

func TestGetProfessionalBySlug(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "professionals" WHERE slug = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "status"}).
			AddRow(3, "Ana", "ana", "approved"))

	p, err := repo.GetProfessionalBySlug(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID)
	assert.True(t, p.IsPublic())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfessionalBySlug_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "professionals" WHERE slug = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetProfessionalBySlug(context.Background(), "nobody")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestIsClientBlocked(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "clients" WHERE email = $1 AND status = $2`)).
		WithArgs("ana@mail.com", "blocked").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	blocked, err := repo.IsClientBlocked(context.Background(), "ana@mail.com")
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppointments_FiltersByDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments" WHERE professional_id = $1 AND date = $2 ORDER BY date ASC, time ASC`)).
		WithArgs(1, "2026-10-19").
		WillReturnRows(sqlmock.NewRows([]string{"id", "professional_id", "date", "time", "duration_min", "status"}).
			AddRow(10, 1, "2026-10-19", "10:00", 60, "confirmed").
			AddRow(11, 1, "2026-10-19", "14:00", 30, "cancelled"))

	apps, err := repo.ListAppointments(context.Background(), 1, "2026-10-19")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, 60, apps[0].DurationMin)
	assert.Len(t, domain.BusyIntervals(apps), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.Transaction(context.Background(), func(tx domain.Repository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindClientByPhone_ComparesDigitsOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clients" WHERE regexp_replace(phone, '[^0-9]', '', 'g') = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "status"}).
			AddRow(5, "Ana", "(11) 99999-0000", "blocked"))

	c, err := repo.FindClientByPhone(context.Background(), "11999990000")
	require.NoError(t, err)
	assert.Equal(t, uint(5), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
