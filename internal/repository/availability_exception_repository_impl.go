package repository

import (
	"context"
	"time"

	"clinic-scheduling-service/internal/domain/entity"
	domainRepo "clinic-scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilityExceptionRepository struct{}

func NewAvailabilityExceptionRepository() domainRepo.AvailabilityExceptionRepository {
	return &availabilityExceptionRepository{}
}

func (r *availabilityExceptionRepository) Upsert(ctx context.Context, db *gorm.DB, exception *entity.AvailabilityException) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "start_time", "end_time", "reason", "updated_at"}),
		}).
		Create(exception).Error
}

func (r *availabilityExceptionRepository) FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilityException, error) {
	var exceptions []entity.AvailabilityException
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Order("date ASC").
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}
