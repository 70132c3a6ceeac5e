package repository

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-service/internal/domain/entity"
	domainRepo "clinic-scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(ctx context.Context, db *gorm.DB, slot *entity.Slot) error {
	return db.WithContext(ctx).Create(slot).Error
}

// CreateBatch relies on gorm wrapping the multi-row insert in a single
// transaction, so a doctor's staged slots land all-or-nothing.
func (r *slotRepository) CreateBatch(ctx context.Context, db *gorm.DB, slots []entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&slots).Error
}

func (r *slotRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	return r.findByID(ctx, db, id)
}

func (r *slotRepository) FindByIDForShare(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	return r.findByID(ctx, db.Clauses(clause.Locking{Strength: "SHARE"}), id)
}

func (r *slotRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	return r.findByID(ctx, db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *slotRepository) findByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindAvailableByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.WithContext(ctx).
		Joins("LEFT JOIN bookings ON bookings.slot_id = slots.id AND bookings.status = ?", entity.BookingStatusActive).
		Where("slots.doctor_id = ? AND slots.date = ? AND slots.status = ?", doctorID, date.Format(entity.DateLayout), entity.SlotStatusAvailable).
		Where("bookings.id IS NULL").
		Order("slots.start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error {
	return db.WithContext(ctx).Model(&entity.Slot{}).
		Where("id = ?", id).
		Update("status", status).Error
}
