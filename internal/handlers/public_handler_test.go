package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubRepo implementa só o que o fluxo público usa; o resto do
// domain.Repository entra por embedding e entra em pânico se for chamado.
type stubRepo struct {
	domain.Repository

	mu           sync.Mutex
	professional models.Professional
	service      models.Service
	hours        []models.WorkingHours
	appointments []models.Appointment
	clients      []models.Client
}

func (s *stubRepo) GetProfessionalByID(_ context.Context, id uint) (*models.Professional, error) {
	if id != s.professional.ID {
		return nil, domain.ErrNotFound
	}
	p := s.professional
	return &p, nil
}

func (s *stubRepo) GetProfessionalBySlug(_ context.Context, slug string) (*models.Professional, error) {
	if slug != s.professional.Slug {
		return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
	}
	p := s.professional
	return &p, nil
}

func (s *stubRepo) LockProfessional(context.Context, uint) error { return nil }

func (s *stubRepo) GetService(_ context.Context, pid, sid uint) (*models.Service, error) {
	if pid != s.service.ProfessionalID || sid != s.service.ID {
		return nil, domain.ErrNotFound
	}
	svc := s.service
	return &svc, nil
}

func (s *stubRepo) GetWorkingHours(context.Context, uint) ([]models.WorkingHours, error) {
	return s.hours, nil
}

func (s *stubRepo) ListAppointments(_ context.Context, _ uint, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (s *stubRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	for i := range s.clients {
		if s.clients[i].Email == email {
			c := s.clients[i]
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) FindClientByPhone(context.Context, string) (*models.Client, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) SaveClient(_ context.Context, c *models.Client) error {
	if c.ID == 0 {
		c.ID = uint(len(s.clients) + 1)
		s.clients = append(s.clients, *c)
	}
	return nil
}

func (s *stubRepo) IsClientBlocked(_ context.Context, email string) (bool, error) {
	for _, c := range s.clients {
		if c.Email == email && c.Status == models.ClientBlocked {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) LinkClientToProfessional(context.Context, uint, uint) error { return nil }
func (s *stubRepo) RecordClientAppointment(context.Context, uint, string) error { return nil }

func (s *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap.ID = uint(len(s.appointments) + 1)
	s.appointments = append(s.appointments, *ap)
	return nil
}

func (s *stubRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(s)
}

// sexta, 16/10/2026 08:00 no fuso -03:00
func testClock() *timezone.Clock {
	return timezone.FixedClock(time.Date(2026, 10, 16, 8, 0, 0, 0, timezone.Location("-03:00")))
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		professional: models.Professional{ID: 1, Name: "Bia Souza", Slug: "bia", Status: models.ProfessionalApproved},
		service:      models.Service{ID: 10, ProfessionalID: 1, Name: "Corte", DurationMin: 60, Price: 80, Active: true},
		hours: []models.WorkingHours{{
			ProfessionalID: 1,
			Weekday:        int(domain.Monday),
			IsAvailable:    true,
			Periods: []models.WorkingPeriod{
				{Position: 0, StartTime: "09:00", EndTime: "12:00"},
			},
		}},
	}
}

func newPublicRouter(repo *stubRepo) *gin.Engine {
	clock := testClock()
	logger := logging.Discard()

	h := NewPublicHandler(
		nil,
		repo,
		clock,
		appointment.NewGetAvailability(repo, clock, nil, logger, nil, 30),
		appointment.NewCreateAppointment(repo, clock, nil, nil, nil, logger, nil, 30),
		appointment.NewListAppointments(repo, clock, nil, logger),
		appointment.NewCancelAppointment(repo, clock, nil, nil, nil),
	)

	r := gin.New()
	r.GET("/api/public/:slug", h.Profile)
	r.GET("/api/public/:slug/availability", h.Availability)
	r.POST("/api/public/:slug/appointments", h.CreateAppointment)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestPublicProfile(t *testing.T) {
	repo := newStubRepo()
	r := newPublicRouter(repo)

	w := doJSON(r, http.MethodGet, "/api/public/bia", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"bia"`)

	w = doJSON(r, http.MethodGet, "/api/public/ninguem", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "professional_not_found", errorCode(t, w))
}

func TestPublicProfile_PendingIsHidden(t *testing.T) {
	repo := newStubRepo()
	repo.professional.Status = models.ProfessionalPending
	r := newPublicRouter(repo)

	w := doJSON(r, http.MethodGet, "/api/public/bia", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicAvailability(t *testing.T) {
	repo := newStubRepo()
	repo.appointments = []models.Appointment{
		{ID: 1, ProfessionalID: 1, Date: "2026-10-19", Time: "10:00", DurationMin: 60, Status: "confirmed"},
	}
	r := newPublicRouter(repo)

	w := doJSON(r, http.MethodGet, "/api/public/bia/availability?date=2026-10-19&service_id=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Date  string            `json:"date"`
		Slots []domain.TimeSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "2026-10-19", body.Date)
	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "10:00", Available: true},
		{Start: "09:30", End: "10:30", Available: false},
		{Start: "10:00", End: "11:00", Available: false},
		{Start: "10:30", End: "11:30", Available: false},
		{Start: "11:00", End: "12:00", Available: true},
	}, body.Slots)
}

func TestPublicAvailability_BadParams(t *testing.T) {
	r := newPublicRouter(newStubRepo())

	tests := []struct {
		name string
		path string
		code string
	}{
		{name: "missing service", path: "/api/public/bia/availability?date=2026-10-19", code: "missing_params"},
		{name: "bad service id", path: "/api/public/bia/availability?date=2026-10-19&service_id=x", code: "invalid_service_id"},
		{name: "bad date", path: "/api/public/bia/availability?date=19/10/2026&service_id=10", code: "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}

	w := doJSON(r, http.MethodGet, "/api/public/bia/availability?date=2026-10-19&service_id=99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", errorCode(t, w))
}

func TestPublicCreateAppointment(t *testing.T) {
	repo := newStubRepo()
	r := newPublicRouter(repo)

	req := PublicCreateAppointmentRequest{
		ClientName:  "Ana",
		ClientEmail: "ana@mail.com",
		ClientPhone: "11987654321",
		ServiceID:   10,
		Date:        "2026-10-19",
		Time:        "09:00",
	}

	w := doJSON(r, http.MethodPost, "/api/public/bia/appointments", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, "confirmed", ap.Status)
	assert.Equal(t, "Corte", ap.ServiceName)

	// mesmo horário de novo
	w = doJSON(r, http.MethodPost, "/api/public/bia/appointments", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", errorCode(t, w))
}

func TestPublicCreateAppointment_ErrorMapping(t *testing.T) {
	base := PublicCreateAppointmentRequest{
		ClientName:  "Ana",
		ClientEmail: "ana@mail.com",
		ServiceID:   10,
		Date:        "2026-10-19",
		Time:        "09:00",
	}

	tests := []struct {
		name   string
		mutate func(r *stubRepo, req *PublicCreateAppointmentRequest)
		status int
		code   string
	}{
		{
			name: "blocked client",
			mutate: func(r *stubRepo, _ *PublicCreateAppointmentRequest) {
				r.clients = []models.Client{{ID: 1, Name: "Ana", Email: "ana@mail.com", Status: models.ClientBlocked}}
			},
			status: http.StatusForbidden,
			code:   "client_blocked",
		},
		{
			name:   "outside working hours",
			mutate: func(_ *stubRepo, req *PublicCreateAppointmentRequest) { req.Time = "13:00" },
			status: http.StatusBadRequest,
			code:   "outside_working_hours",
		},
		{
			name:   "in the past",
			mutate: func(_ *stubRepo, req *PublicCreateAppointmentRequest) { req.Date = "2026-10-12" },
			status: http.StatusBadRequest,
			code:   "slot_in_past",
		},
		{
			name:   "bad time",
			mutate: func(_ *stubRepo, req *PublicCreateAppointmentRequest) { req.Time = "9h" },
			status: http.StatusBadRequest,
			code:   "invalid_date_or_time",
		},
		{
			name:   "unknown service",
			mutate: func(_ *stubRepo, req *PublicCreateAppointmentRequest) { req.ServiceID = 99 },
			status: http.StatusNotFound,
			code:   "service_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			req := base
			tt.mutate(repo, &req)

			w := doJSON(newPublicRouter(repo), http.MethodPost, "/api/public/bia/appointments", req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.Empty(t, repo.appointments)
		})
	}
}

func TestPublicCreateAppointment_InvalidBody(t *testing.T) {
	w := doJSON(newPublicRouter(newStubRepo()), http.MethodPost, "/api/public/bia/appointments",
		map[string]any{"client_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
}
