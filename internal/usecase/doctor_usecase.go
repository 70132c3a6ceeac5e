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
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrInvalidScheduleHours = errors.New("daily end must be after daily start")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	start, err := entity.MinuteOfDay(req.DailyStartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := entity.MinuteOfDay(req.DailyEndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if end <= start {
		return nil, ErrInvalidScheduleHours
	}

	workingDays := make([]time.Weekday, len(req.WorkingDays))
	for i, day := range req.WorkingDays {
		workingDays[i] = time.Weekday(day)
	}

	doctor := &entity.Doctor{
		ID:                  uuid.New(),
		FullName:            req.FullName,
		Specialization:      req.Specialization,
		IsActive:            true,
		WorkingDays:         workingDays,
		DailyStartTime:      req.DailyStartTime,
		DailyEndTime:        req.DailyEndTime,
		RollingWindowDays:   req.RollingWindowDays,
		SlotDurationMinutes: req.SlotDurationMinutes,
	}

	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	adminID := adminIDFromContext(ctx)
	_ = u.auditService.LogCreate(ctx, u.db, adminID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), doctor)

	u.log.Infof("Doctor created: id=%s, name=%s", doctor.ID, doctor.FullName)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllActive(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}
