package repository

import (
	"context"
	"time"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(ctx context.Context, db *gorm.DB, slot *entity.Slot) error
	// CreateBatch persists all slots or none of them.
	CreateBatch(ctx context.Context, db *gorm.DB, slots []entity.Slot) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	// FindByIDForShare reads the slot under a shared row lock. Used inside a
	// booking transaction so a concurrent block waits for the insert to land.
	FindByIDForShare(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	// FindByIDForUpdate reads the slot under an exclusive row lock. Used inside
	// a block transaction so it serializes against in-flight bookings.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	// FindAvailableByDoctorAndDate returns available slots with no active
	// booking; "taken" is derived from bookings, not stored on the slot.
	FindAvailableByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error)
	FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error
}
