package repository

import (
	"context"
	"errors"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateActiveBooking is returned by Create when another active booking
// already holds the slot. Callers must be able to tell this lost race apart
// from any other storage failure.
var ErrDuplicateActiveBooking = errors.New("an active booking already exists for this slot")

type BookingRepository interface {
	// Create inserts the booking, failing with ErrDuplicateActiveBooking when
	// the active-per-slot unique index rejects it.
	Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindActiveBySlotID(ctx context.Context, db *gorm.DB, slotID uuid.UUID) (*entity.Booking, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error)
	// UpdateStatusFrom transitions the booking only if it is still in the
	// expected status. Returns affected rows: 0 means the transition lost a
	// race and nothing changed.
	UpdateStatusFrom(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
}
