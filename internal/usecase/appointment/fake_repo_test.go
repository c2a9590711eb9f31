package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

type fakeData struct {
	professionals map[uint]models.Professional
	services      map[uint]models.Service
	hours         map[uint][]models.WorkingHours
	clients       map[uint]models.Client
	links         map[[2]uint]bool
	appointments  map[uint]models.Appointment
	nextID        uint
}

func (d *fakeData) clone() *fakeData {
	c := &fakeData{
		professionals: map[uint]models.Professional{},
		services:      map[uint]models.Service{},
		hours:         map[uint][]models.WorkingHours{},
		clients:       map[uint]models.Client{},
		links:         map[[2]uint]bool{},
		appointments:  map[uint]models.Appointment{},
		nextID:        d.nextID,
	}
	for k, v := range d.professionals {
		c.professionals[k] = v
	}
	for k, v := range d.services {
		c.services[k] = v
	}
	for k, v := range d.hours {
		c.hours[k] = append([]models.WorkingHours(nil), v...)
	}
	for k, v := range d.clients {
		c.clients[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	for k, v := range d.appointments {
		c.appointments[k] = v
	}
	return c
}

// fakeRepo keeps everything in memory. Transactions are serialized and
// roll back by restoring a snapshot.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *fakeData

	// uniqueIndex mimics the partial unique index on appointments
	uniqueIndex bool
	createErr   error
	updateErr   error
	// beforeCreate runs inside CreateAppointment, before the write
	beforeCreate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		uniqueIndex: true,
		data: &fakeData{
			professionals: map[uint]models.Professional{},
			services:      map[uint]models.Service{},
			hours:         map[uint][]models.WorkingHours{},
			clients:       map[uint]models.Client{},
			links:         map[[2]uint]bool{},
			appointments:  map[uint]models.Appointment{},
		},
	}
}

func (r *fakeRepo) id() uint {
	r.data.nextID++
	return r.data.nextID
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
}

// -------- seeding helpers --------

func (r *fakeRepo) addProfessional(p models.Professional) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.id()
	}
	r.data.professionals[p.ID] = p
	return p.ID
}

func (r *fakeRepo) addService(s models.Service) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.data.services[s.ID] = s
	return s.ID
}

func (r *fakeRepo) setHours(professionalID uint, rows []models.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.hours[professionalID] = rows
}

func (r *fakeRepo) addClient(c models.Client) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	r.data.clients[c.ID] = c
	return c.ID
}

func (r *fakeRepo) addAppointment(ap models.Appointment) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.id()
	r.data.appointments[ap.ID] = ap
	return ap.ID
}

func (r *fakeRepo) appointment(id uint) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.appointments[id]
}

func (r *fakeRepo) allAppointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.data.appointments))
	for _, ap := range r.data.appointments {
		out = append(out, ap)
	}
	sortAppointments(out)
	return out
}

func (r *fakeRepo) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.clients)
}

func (r *fakeRepo) client(id uint) models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.clients[id]
}

func sortAppointments(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Date != apps[j].Date {
			return apps[i].Date < apps[j].Date
		}
		return apps[i].Time < apps[j].Time
	})
}

// -------- domain.Repository --------

func (r *fakeRepo) GetProfessionalByID(_ context.Context, id uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data.professionals[id]
	if !ok {
		return nil, notFound("professional")
	}
	return &p, nil
}

func (r *fakeRepo) GetProfessionalBySlug(_ context.Context, slug string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.data.professionals {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("professional")
}

func (r *fakeRepo) LockProfessional(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data.professionals[id]; !ok {
		return notFound("professional")
	}
	return nil
}

func (r *fakeRepo) GetService(_ context.Context, professionalID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data.services[serviceID]
	if !ok || s.ProfessionalID != professionalID {
		return nil, notFound("service")
	}
	return &s, nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, professionalID uint) ([]models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WorkingHours(nil), r.data.hours[professionalID]...), nil
}

func (r *fakeRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := uint(1); id <= r.data.nextID; id++ {
		if c, ok := r.data.clients[id]; ok && c.Email == email {
			return &c, nil
		}
	}
	return nil, notFound("client")
}

func (r *fakeRepo) FindClientByPhone(_ context.Context, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := uint(1); id <= r.data.nextID; id++ {
		if c, ok := r.data.clients[id]; ok && validators.NormalizePhone(c.Phone) == phone {
			return &c, nil
		}
	}
	return nil, notFound("client")
}

func (r *fakeRepo) SaveClient(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.id()
	}
	r.data.clients[c.ID] = *c
	return nil
}

func (r *fakeRepo) IsClientBlocked(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.data.clients {
		if c.Email == email && c.Status == models.ClientBlocked {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) LinkClientToProfessional(_ context.Context, clientID, professionalID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.links[[2]uint{clientID, professionalID}] = true
	return nil
}

func (r *fakeRepo) RecordClientAppointment(_ context.Context, clientID uint, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data.clients[clientID]
	if !ok {
		return notFound("client")
	}
	c.TotalAppointments++
	c.LastAppointment = date
	r.data.clients[clientID] = c
	return nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if r.uniqueIndex {
		for _, other := range r.data.appointments {
			if other.ProfessionalID == ap.ProfessionalID &&
				other.Date == ap.Date &&
				other.Time == ap.Time &&
				other.Status != string(domain.StatusCancelled) {
				return errUniqueViolation
			}
		}
	}

	ap.ID = r.id()
	r.data.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.data.appointments[id]
	if !ok {
		return nil, notFound("appointment")
	}
	return &ap, nil
}

func (r *fakeRepo) GetAppointmentForProfessional(_ context.Context, id, professionalID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.data.appointments[id]
	if !ok || ap.ProfessionalID != professionalID {
		return nil, notFound("appointment")
	}
	return &ap, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.data.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.data.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out
}

func (r *fakeRepo) ListAppointments(_ context.Context, professionalID uint, date string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && (date == "" || ap.Date == date)
	}), nil
}

func (r *fakeRepo) ListAppointmentsBetween(_ context.Context, professionalID uint, from, to string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && ap.Date >= from && ap.Date < to
	}), nil
}

func (r *fakeRepo) ListAppointmentsByStatus(_ context.Context, professionalID uint, status domain.Status) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && ap.Status == string(status)
	}), nil
}

func (r *fakeRepo) ListAppointmentsByContact(_ context.Context, email, phone string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return (email != "" && ap.ClientEmail == email) || (phone != "" && validators.NormalizePhone(ap.ClientPhone) == phone)
	}), nil
}

func (r *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := r.data.clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.data = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
