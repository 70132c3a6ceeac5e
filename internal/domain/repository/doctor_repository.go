package repository

import (
	"context"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	// FindAllActive backs the generator's get-all-active-configs lookup.
	FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
}
