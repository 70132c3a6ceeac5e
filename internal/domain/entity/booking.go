package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusActive      BookingStatus = "active"
	BookingStatusCancelled   BookingStatus = "cancelled"
	BookingStatusInvalidated BookingStatus = "invalidated"
)

// Booking represents a patient's claim on a slot. SlotID is a weak reference:
// the booking looks the slot up but does not own it. At most one booking per
// slot may be active at any time; the partial unique index on
// (slot_id) WHERE status = 'active' is what enforces this under concurrency,
// not any in-process coordination.
type Booking struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SlotID    uuid.UUID     `gorm:"type:uuid;not null;index:uq_bookings_active_slot,unique,where:status = 'active'" json:"slot_id"`
	PatientID uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// NewBooking builds a booking in active status. Empty identifiers indicate a
// caller defect and abort construction.
func NewBooking(slotID, patientID uuid.UUID) (*Booking, error) {
	if slotID == uuid.Nil {
		return nil, errors.New("slot id is required")
	}
	if patientID == uuid.Nil {
		return nil, errors.New("patient id is required")
	}

	return &Booking{
		ID:        uuid.New(),
		SlotID:    slotID,
		PatientID: patientID,
		Status:    BookingStatusActive,
	}, nil
}

// IsActive checks if the booking currently holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// IsCancelled checks if the booking was cancelled by the patient
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsInvalidated checks if the booking was displaced by an admin block
func (b *Booking) IsInvalidated() bool {
	return b.Status == BookingStatusInvalidated
}

// Cancel moves an active booking to cancelled. Cancelled is terminal.
func (b *Booking) Cancel() {
	if b.Status == BookingStatusActive {
		b.Status = BookingStatusCancelled
	}
}

// Invalidate moves an active booking to invalidated. A booking that is already
// cancelled or invalidated never changes again.
func (b *Booking) Invalidate() {
	if b.Status == BookingStatusActive {
		b.Status = BookingStatusInvalidated
	}
}
