// Package sharedtest provides in-memory repositories for use-case and handler tests.
package sharedtest

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store keeps every aggregate in maps guarded by one mutex.
// A non-nil Err is returned by every repository call.
type Store struct {
	mu            sync.Mutex
	txMu          sync.Mutex
	salons        map[uuid.UUID]*salon.Salon
	services      map[uuid.UUID]*catalog.Service
	professionals map[uuid.UUID]*professional.Professional
	customers     map[uuid.UUID]*customer.Customer
	appointments  map[uuid.UUID]*appointment.Appointment
	rules         map[uuid.UUID]*availability.Rule
	overrides     map[uuid.UUID]*availability.Override

	Err              error
	AppointmentSaves int
}

func NewStore() *Store {
	return &Store{
		salons:        map[uuid.UUID]*salon.Salon{},
		services:      map[uuid.UUID]*catalog.Service{},
		professionals: map[uuid.UUID]*professional.Professional{},
		customers:     map[uuid.UUID]*customer.Customer{},
		appointments:  map[uuid.UUID]*appointment.Appointment{},
		rules:         map[uuid.UUID]*availability.Rule{},
		overrides:     map[uuid.UUID]*availability.Override{},
	}
}

func (s *Store) Salons() shared.SalonRepository               { return salonRepo{s} }
func (s *Store) Services() shared.ServiceRepository           { return serviceRepo{s} }
func (s *Store) Professionals() shared.ProfessionalRepository { return professionalRepo{s} }
func (s *Store) Customers() shared.CustomerRepository         { return customerRepo{s} }
func (s *Store) Appointments() shared.AppointmentRepository   { return appointmentRepo{s} }
func (s *Store) Availability() shared.AvailabilityRepository  { return availabilityRepo{s} }
func (s *Store) UnitOfWork() shared.UnitOfWork                { return uow{s} }

// Appointment returns the stored snapshot, or nil.
func (s *Store) Appointment(id uuid.UUID) *appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id]
}

// uow serializes transactions and restores the written maps when fn fails.
type uow struct{ s *Store }

func (u uow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.s.txMu.Lock()
	defer u.s.txMu.Unlock()

	u.s.mu.Lock()
	appts := maps.Clone(u.s.appointments)
	custs := maps.Clone(u.s.customers)
	saves := u.s.AppointmentSaves
	u.s.mu.Unlock()

	if err := fn(ctx, u.s); err != nil {
		u.s.mu.Lock()
		u.s.appointments = appts
		u.s.customers = custs
		u.s.AppointmentSaves = saves
		u.s.mu.Unlock()
		return err
	}
	return nil
}

type salonRepo struct{ s *Store }

func (r salonRepo) FindByID(_ context.Context, id uuid.UUID) (*salon.Salon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.salons[id], r.s.Err
}

func (r salonRepo) Save(_ context.Context, sl *salon.Salon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.salons[sl.ID()] = sl
	return nil
}

type serviceRepo struct{ s *Store }

func (r serviceRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.services[id], r.s.Err
}

func (r serviceRepo) FindActiveBySalon(_ context.Context, salonID uuid.UUID) ([]*catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*catalog.Service
	for _, svc := range r.s.services {
		if svc.SalonID() == salonID && svc.IsActive() {
			out = append(out, svc)
		}
	}
	slices.SortFunc(out, func(a, b *catalog.Service) int { return strings.Compare(a.Name(), b.Name()) })
	return out, r.s.Err
}

func (r serviceRepo) Save(_ context.Context, svc *catalog.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.services[svc.ID()] = svc
	return nil
}

type professionalRepo struct{ s *Store }

func (r professionalRepo) FindByID(_ context.Context, id uuid.UUID) (*professional.Professional, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.professionals[id], r.s.Err
}

func (r professionalRepo) FindActiveBySalon(_ context.Context, salonID uuid.UUID) ([]*professional.Professional, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*professional.Professional
	for _, p := range r.s.professionals {
		if p.SalonID() == salonID && p.IsActive() {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *professional.Professional) int { return strings.Compare(a.Name(), b.Name()) })
	return out, r.s.Err
}

func (r professionalRepo) Save(_ context.Context, p *professional.Professional) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.professionals[p.ID()] = p
	return nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.customers[id], r.s.Err
}

func (r customerRepo) FindByPhone(_ context.Context, salonID uuid.UUID, phone vo.Phone) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.byPhone(salonID, phone), r.s.Err
}

func (r customerRepo) Upsert(_ context.Context, c *customer.Customer) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if existing := r.s.byPhone(c.SalonID(), c.Phone()); existing != nil {
		return existing, nil
	}
	r.s.customers[c.ID()] = c
	return c, nil
}

func (r customerRepo) Save(_ context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.customers[c.ID()] = c
	return nil
}

func (s *Store) byPhone(salonID uuid.UUID, phone vo.Phone) *customer.Customer {
	for _, c := range s.customers {
		if c.SalonID() == salonID && c.Phone().Equals(phone) {
			return c
		}
	}
	return nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.appointments[id], r.s.Err
}

func (r appointmentRepo) FindByProfessionalAndDate(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	return r.filter(func(a *appointment.Appointment) bool {
		return a.ProfessionalID() == professionalID && a.IsActive() &&
			a.Start().Before(to) && a.End().After(from)
	}, 0)
}

func (r appointmentRepo) FindConflicting(_ context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error) {
	return r.filter(func(a *appointment.Appointment) bool {
		if excludeID != nil && a.ID() == *excludeID {
			return false
		}
		return a.ProfessionalID() == professionalID && a.IsActive() &&
			a.Start().Before(end) && a.End().After(start)
	}, 0)
}

func (r appointmentRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*appointment.Appointment, error) {
	return r.filter(func(a *appointment.Appointment) bool {
		return a.CustomerID() == customerID
	}, 0)
}

func (r appointmentRepo) FindUpcoming(_ context.Context, salonID uuid.UUID, from time.Time, limit int) ([]*appointment.Appointment, error) {
	return r.filter(func(a *appointment.Appointment) bool {
		return a.SalonID() == salonID && a.IsActive() && !a.Start().Before(from)
	}, limit)
}

func (r appointmentRepo) FindUpcomingByPhone(_ context.Context, salonID uuid.UUID, phone vo.Phone, from time.Time, limit int) ([]*appointment.Appointment, error) {
	r.s.mu.Lock()
	c, err := r.s.byPhone(salonID, phone), r.s.Err
	r.s.mu.Unlock()
	if c == nil || err != nil {
		return nil, err
	}
	return r.filter(func(a *appointment.Appointment) bool {
		return a.CustomerID() == c.ID() && a.IsActive() && !a.Start().Before(from)
	}, limit)
}

func (r appointmentRepo) filter(keep func(*appointment.Appointment) bool, limit int) ([]*appointment.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []*appointment.Appointment
	for _, a := range r.s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b *appointment.Appointment) int { return a.Start().Compare(b.Start()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r appointmentRepo) Save(_ context.Context, a *appointment.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	// Provider columns belong to UpdateSyncState, as in the SQL repository.
	if stored, ok := r.s.appointments[a.ID()]; ok {
		a = a.WithSyncState(stored.CalendarEventID(), stored.SchedulerEventID(), stored.LastSyncError())
	}
	r.s.appointments[a.ID()] = a
	r.s.AppointmentSaves++
	return nil
}

func (r appointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	delete(r.s.appointments, id)
	return nil
}

func (r appointmentRepo) UpdateSyncState(_ context.Context, id uuid.UUID, calendarEventID, schedulerEventID, lastSyncError *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if a, ok := r.s.appointments[id]; ok {
		r.s.appointments[id] = a.WithSyncState(calendarEventID, schedulerEventID, lastSyncError)
	}
	return nil
}

type availabilityRepo struct{ s *Store }

func (r availabilityRepo) FindByProfessional(_ context.Context, professionalID uuid.UUID) ([]*availability.Rule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*availability.Rule
	for _, rule := range r.s.rules {
		if rule.ProfessionalID() == professionalID {
			out = append(out, rule)
		}
	}
	slices.SortFunc(out, func(a, b *availability.Rule) int {
		if a.Weekday() != b.Weekday() {
			return int(a.Weekday()) - int(b.Weekday())
		}
		return a.Start().Minutes() - b.Start().Minutes()
	})
	return out, r.s.Err
}

func (r availabilityRepo) FindByProfessionalAndDay(ctx context.Context, professionalID uuid.UUID, day time.Weekday) ([]*availability.Rule, error) {
	rules, err := r.FindByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(rules, func(rule *availability.Rule) bool { return rule.Weekday() != day }), nil
}

func (r availabilityRepo) FindOverrides(_ context.Context, salonID uuid.UUID, from, to time.Time) ([]*availability.Override, error) {
	return r.overridesWhere(func(o *availability.Override) bool { return o.SalonID() == salonID }, from, to)
}

func (r availabilityRepo) FindOverridesByProfessional(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*availability.Override, error) {
	return r.overridesWhere(func(o *availability.Override) bool {
		return o.ProfessionalID() != nil && *o.ProfessionalID() == professionalID
	}, from, to)
}

func (r availabilityRepo) FindOverrideByID(_ context.Context, id uuid.UUID) (*availability.Override, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.overrides[id], nil
}

func (r availabilityRepo) overridesWhere(keep func(*availability.Override) bool, from, to time.Time) ([]*availability.Override, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*availability.Override
	for _, o := range r.s.overrides {
		if keep(o) && o.Period().Start().Before(to) && o.Period().End().After(from) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b *availability.Override) int { return a.Period().Start().Compare(b.Period().Start()) })
	return out, r.s.Err
}

func (r availabilityRepo) GenerateSlots(ctx context.Context, professionalID uuid.UUID, date time.Time, loc *time.Location, granularity time.Duration) ([]vo.TimeSlot, error) {
	day := tz.Weekday(date, loc)
	rules, err := r.FindByProfessionalAndDay(ctx, professionalID, day)
	if err != nil || len(rules) == 0 {
		return nil, err
	}
	return availability.GenerateSlots(date, loc, availability.WindowsFromRules(rules, day), granularity, &professionalID), nil
}

func (r availabilityRepo) SaveRule(_ context.Context, rule *availability.Rule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.rules[rule.ID()] = rule
	return nil
}

func (r availabilityRepo) DeleteRule(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rules, id)
	return r.s.Err
}

func (r availabilityRepo) SaveOverride(_ context.Context, o *availability.Override) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.overrides[o.ID()] = o
	return nil
}

func (r availabilityRepo) DeleteOverride(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.overrides, id)
	return r.s.Err
}
