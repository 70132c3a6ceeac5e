package repository

import (
	"context"
	"errors"

	"clinic-scheduling-service/internal/domain/entity"
	domainRepo "clinic-scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

// Create inserts the booking. The partial unique index on
// bookings(slot_id) WHERE status = 'active' rejects a second active booking
// atomically; the unique violation surfaces as ErrDuplicateActiveBooking so
// callers can treat the lost race as a conflict rather than a storage fault.
func (r *bookingRepository) Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	err := db.WithContext(ctx).Create(booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainRepo.ErrDuplicateActiveBooking
		}
		return err
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindActiveBySlotID(ctx context.Context, db *gorm.DB, slotID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, entity.BookingStatusActive).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusFrom transitions status only when the row still holds the
// expected value. Affected rows 0 means another writer got there first.
func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
