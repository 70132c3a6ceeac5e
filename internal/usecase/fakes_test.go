package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeTransactor runs the function directly. The repos below keep their own
// state, so no real transaction handle is needed.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*entity.Slot

	findErr        error
	createBatchErr error
	batchCalls     int
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*entity.Slot)}
}

func (r *fakeSlotRepo) add(slot *entity.Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *slot
	r.slots[slot.ID] = &copied
}

func (r *fakeSlotRepo) get(id uuid.UUID) *entity.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[id]; ok {
		copied := *s
		return &copied
	}
	return nil
}

func (r *fakeSlotRepo) Create(ctx context.Context, db *gorm.DB, slot *entity.Slot) error {
	r.add(slot)
	return nil
}

func (r *fakeSlotRepo) CreateBatch(ctx context.Context, db *gorm.DB, slots []entity.Slot) error {
	r.mu.Lock()
	r.batchCalls++
	err := r.createBatchErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range slots {
		r.add(&slots[i])
	}
	return nil
}

func (r *fakeSlotRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.get(id), nil
}

func (r *fakeSlotRepo) FindByIDForShare(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	return r.FindByID(ctx, db, id)
}

func (r *fakeSlotRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	return r.FindByID(ctx, db, id)
}

func (r *fakeSlotRepo) FindAvailableByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Slot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && entity.DateKey(s.Date) == entity.DateKey(date) && s.IsAvailable() {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Slot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[id]; ok {
		s.Status = status
	}
	return nil
}

// fakeBookingRepo enforces the same one-active-booking-per-slot rule the
// partial unique index enforces in Postgres, so races resolve the same way.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) add(b *entity.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.bookings[b.ID] = &copied
}

func (r *fakeBookingRepo) get(id uuid.UUID) *entity.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		copied := *b
		return &copied
	}
	return nil
}

func (r *fakeBookingRepo) Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, b := range r.bookings {
		if b.SlotID == booking.SlotID && b.IsActive() {
			return repository.ErrDuplicateActiveBooking
		}
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return r.get(id), nil
}

func (r *fakeBookingRepo) FindActiveBySlotID(ctx context.Context, db *gorm.DB, slotID uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Booking
	for _, b := range r.bookings {
		if b.PatientID == patientID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	b.Status = to
	return 1, nil
}

type fakeDoctorRepo struct {
	doctors []entity.Doctor
	findErr error
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.doctors = append(r.doctors, *doctor)
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for i := range r.doctors {
		if r.doctors[i].ID == id {
			copied := r.doctors[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	return r.doctors, nil
}

func (r *fakeDoctorRepo) FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var result []entity.Doctor
	for i := range r.doctors {
		if r.doctors[i].IsActive {
			result = append(result, r.doctors[i])
		}
	}
	return result, nil
}

type fakeExceptionRepo struct {
	exceptions []entity.AvailabilityException
	upsertErr  error
}

func (r *fakeExceptionRepo) Upsert(ctx context.Context, db *gorm.DB, exception *entity.AvailabilityException) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i := range r.exceptions {
		if r.exceptions[i].DoctorID == exception.DoctorID && entity.DateKey(r.exceptions[i].Date) == entity.DateKey(exception.Date) {
			r.exceptions[i] = *exception
			return nil
		}
	}
	r.exceptions = append(r.exceptions, *exception)
	return nil
}

func (r *fakeExceptionRepo) FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilityException, error) {
	var result []entity.AvailabilityException
	for i := range r.exceptions {
		e := r.exceptions[i]
		if e.DoctorID == doctorID && !e.Date.Before(from) && !e.Date.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

// fakeSlotCache records invalidations and can be primed with a listing.
type fakeSlotCache struct {
	mu           sync.Mutex
	primed       map[string][]entity.Slot
	invalidated  []string
	storedCalled int
}

func newFakeSlotCache() *fakeSlotCache {
	return &fakeSlotCache{primed: make(map[string][]entity.Slot)}
}

func (c *fakeSlotCache) cacheKey(doctorID uuid.UUID, date time.Time) string {
	return doctorID.String() + ":" + entity.DateKey(date)
}

func (c *fakeSlotCache) prime(doctorID uuid.UUID, date time.Time, slots []entity.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed[c.cacheKey(doctorID, date)] = slots
}

func (c *fakeSlotCache) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.primed[c.cacheKey(doctorID, date)]
	return slots, ok
}

func (c *fakeSlotCache) SetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, slots []entity.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storedCalled++
}

func (c *fakeSlotCache) Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, c.cacheKey(doctorID, date))
}

// fakeAuditService records entries so tests can assert the trail.
type auditEntry struct {
	action   string
	oldValue interface{}
	newValue interface{}
}

type fakeAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
	logErr  error
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, adminID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logErr != nil {
		return s.logErr
	}
	s.entries = append(s.entries, auditEntry{action: action, newValue: newValue})
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logErr != nil {
		return s.logErr
	}
	s.entries = append(s.entries, auditEntry{action: action, oldValue: oldValue, newValue: newValue})
	return nil
}

func (s *fakeAuditService) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.entries))
	for i, e := range s.entries {
		actions[i] = e.action
	}
	return actions
}

func (s *fakeAuditService) lastEntry() (auditEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return auditEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func mustSlot(t *testing.T, doctorID uuid.UUID, date time.Time, start, end string) *entity.Slot {
	t.Helper()
	slot, err := entity.NewSlot(doctorID, date, start, end)
	if err != nil {
		t.Fatalf("failed to build slot: %v", err)
	}
	return slot
}
