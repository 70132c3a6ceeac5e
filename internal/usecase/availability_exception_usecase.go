package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-service/internal/converter"
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/domain/repository"
	"clinic-scheduling-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidExceptionType   = errors.New("unknown availability exception type")
	ErrInvalidExceptionWindow = errors.New("partial day block requires a valid time window")
)

type AvailabilityExceptionUsecase interface {
	UpsertException(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertAvailabilityExceptionRequest) (*dto.AvailabilityExceptionResponse, error)
	GetExceptions(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (*dto.AvailabilityExceptionListResponse, error)
}

type availabilityExceptionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	transactor    repository.Transactor
	exceptionRepo repository.AvailabilityExceptionRepository
	doctorRepo    repository.DoctorRepository
	auditService  service.AuditService
}

func NewAvailabilityExceptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	exceptionRepo repository.AvailabilityExceptionRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AvailabilityExceptionUsecase {
	return &availabilityExceptionUsecase{
		db:            db,
		log:           log,
		transactor:    transactor,
		exceptionRepo: exceptionRepo,
		doctorRepo:    doctorRepo,
		auditService:  auditService,
	}
}

// UpsertException records a doctor's deviation for one date. There is at most
// one exception per doctor per day; a second upsert overwrites the first.
func (u *availabilityExceptionUsecase) UpsertException(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertAvailabilityExceptionRequest) (*dto.AvailabilityExceptionResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	exception := &entity.AvailabilityException{
		DoctorID: doctorID,
		Date:     date,
		Type:     entity.AvailabilityExceptionType(req.Type),
		Reason:   req.Reason,
	}

	switch exception.Type {
	case entity.ExceptionFullDayBlock:
		// Full-day blocks carry no time window.
	case entity.ExceptionPartialDayBlock:
		start, err := entity.MinuteOfDay(req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := entity.MinuteOfDay(req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if end <= start {
			return nil, ErrInvalidExceptionWindow
		}
		exception.StartTime = &req.StartTime
		exception.EndTime = &req.EndTime
	default:
		return nil, ErrInvalidExceptionType
	}

	adminID := adminIDFromContext(ctx)
	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.exceptionRepo.Upsert(ctx, tx, exception); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, adminID, entity.AuditActionExceptionUpsert, "availability_exception", doctorID.String()+"/"+req.Date, exception)
	})
	if err != nil {
		u.log.Warnf("Failed to upsert availability exception for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.log.Infof("Availability exception recorded: doctor=%s, date=%s, type=%s", doctorID, req.Date, exception.Type)
	return converter.AvailabilityExceptionToResponse(exception), nil
}

func (u *availabilityExceptionUsecase) GetExceptions(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (*dto.AvailabilityExceptionListResponse, error) {
	exceptions, err := u.exceptionRepo.FindInRange(ctx, u.db, doctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find availability exceptions for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityExceptionListResponse{
		Exceptions: converter.AvailabilityExceptionsToResponses(exceptions),
		Total:      len(exceptions),
	}, nil
}
