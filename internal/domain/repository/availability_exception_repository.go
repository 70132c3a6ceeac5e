package repository

import (
	"context"
	"time"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityExceptionRepository interface {
	// Upsert inserts or overwrites the exception for (doctor_id, date).
	Upsert(ctx context.Context, db *gorm.DB, exception *entity.AvailabilityException) error
	FindInRange(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilityException, error)
}
