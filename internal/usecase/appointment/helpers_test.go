package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

var errUniqueViolation = &pgconn.PgError{Code: "23505", Message: "duplicate key value"}

var brt = timezone.Location("-03:00")

// Friday 2026-10-16 08:00 local; 2026-10-19 is the following Monday.
var fridayMorning = time.Date(2026, 10, 16, 8, 0, 0, 0, brt)

const nextMonday = "2026-10-19"

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.TimeSlot
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.TimeSlot{}}
}

func (c *fakeCache) key(pid uint, date string, duration int) string {
	return fmt.Sprintf("%d|%s|%d", pid, date, duration)
}

func (c *fakeCache) Get(_ context.Context, pid uint, date string, duration int) ([]domain.TimeSlot, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[c.key(pid, date, duration)]
	return s, 0, ok
}

func (c *fakeCache) Set(_ context.Context, pid uint, date string, duration int, _ int64, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(pid, date, duration)] = slots
}

func (c *fakeCache) Invalidate(_ context.Context, pid uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, date)
	for k := range c.entries {
		delete(c.entries, k)
	}
}

type sentNotification struct {
	kind  notify.Kind
	phone string
	data  notify.TemplateData
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) Notify(kind notify.Kind, phone string, data notify.TemplateData) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{kind: kind, phone: phone, data: data})
}

func (n *fakeNotifier) all() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

// fixture: one approved professional, Monday 09-12 / 14-18, a 60 min service.
type fixture struct {
	repo           *fakeRepo
	clock          *timezone.Clock
	cache          *fakeCache
	notifier       *fakeNotifier
	professionalID uint
	serviceID      uint

	availability *GetAvailability
	create       *CreateAppointment
	cancel       *CancelAppointment
	complete     *CompleteAppointment
	sweep        *SweepCompleted
	list         *ListAppointments
	dashboard    *Dashboard
}

func newFixture(now time.Time) *fixture {
	repo := newFakeRepo()
	clock := timezone.FixedClock(now)
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	logger := logging.Discard()

	pid := repo.addProfessional(models.Professional{
		Name:   "Bia Souza",
		Slug:   "bia",
		Status: models.ProfessionalApproved,
	})
	repo.setHours(pid, []models.WorkingHours{
		{
			ProfessionalID: pid,
			Weekday:        int(domain.Monday),
			IsAvailable:    true,
			Periods: []models.WorkingPeriod{
				{Position: 0, StartTime: "09:00", EndTime: "12:00"},
				{Position: 1, StartTime: "14:00", EndTime: "18:00"},
			},
		},
		{ProfessionalID: pid, Weekday: int(domain.Sunday), IsAvailable: false},
	})
	sid := repo.addService(models.Service{
		ProfessionalID: pid,
		Name:           "Corte",
		DurationMin:    60,
		Price:          80,
		Active:         true,
	})

	sweep := NewSweepCompleted(repo, clock, logger, nil)

	return &fixture{
		repo:           repo,
		clock:          clock,
		cache:          cache,
		notifier:       notifier,
		professionalID: pid,
		serviceID:      sid,
		availability:   NewGetAvailability(repo, clock, cache, logger, nil, 30),
		create:         NewCreateAppointment(repo, clock, cache, nil, notifier, logger, nil, 30),
		cancel:         NewCancelAppointment(repo, clock, cache, nil, notifier),
		complete:       NewCompleteAppointment(repo, clock, nil),
		sweep:          sweep,
		list:           NewListAppointments(repo, clock, sweep, logger),
		dashboard:      NewDashboard(repo, clock, sweep, logger),
	}
}

func (f *fixture) booking(hm string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ProfessionalID: f.professionalID,
		ClientName:     "Ana",
		ClientEmail:    "Ana@Mail.com",
		ClientPhone:    "11999990000",
		ServiceID:      f.serviceID,
		Date:           nextMonday,
		Time:           hm,
	}
}

func (f *fixture) date(s string) time.Time {
	d, err := f.clock.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
