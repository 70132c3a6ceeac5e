package usecase

import (
	"context"
	"time"

	"clinic-scheduling-service/internal/converter"
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/domain/repository"
	"clinic-scheduling-service/internal/service"
	"clinic-scheduling-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.SlotListResponse, error)
	BlockSlot(ctx context.Context, slotID uuid.UUID) error
	UnblockSlot(ctx context.Context, slotID uuid.UUID) error
}

type slotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	transactor   repository.Transactor
	slotRepo     repository.SlotRepository
	bookingRepo  repository.BookingRepository
	slotCache    service.SlotCache
	auditService service.AuditService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	slotCache service.SlotCache,
	auditService service.AuditService,
) SlotUsecase {
	return &slotUsecase{
		db:           db,
		log:          log,
		transactor:   transactor,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

// GetAvailableSlots lists a doctor's bookable slots for a date: available
// status and no active booking. Served from the Redis cache when possible.
func (u *slotUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.SlotListResponse, error) {
	if slots, ok := u.slotCache.GetAvailableSlots(ctx, doctorID, date); ok {
		return &dto.SlotListResponse{
			Slots: converter.SlotsToResponses(slots),
			Total: len(slots),
		}, nil
	}

	slots, err := u.slotRepo.FindAvailableByDoctorAndDate(ctx, u.db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find available slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.slotCache.SetAvailableSlots(ctx, doctorID, date, slots)

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// BlockSlot marks the slot blocked and invalidates its active booking, if
// any, in one transaction. The exclusive row lock on the slot serializes the
// block against in-flight bookings: a booking that committed first is found
// and invalidated here, and a booking that arrives later sees the slot
// blocked and fails. A block is never defeated by a concurrent booking.
// Blocking an already blocked slot succeeds as a no-op.
func (u *slotUsecase) BlockSlot(ctx context.Context, slotID uuid.UUID) error {
	adminID := adminIDFromContext(ctx)
	var slot *entity.Slot
	var displaced *entity.Booking

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		slot, err = u.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		previousStatus := slot.Status
		slot.Block()
		if err := u.slotRepo.UpdateStatus(ctx, tx, slot.ID, slot.Status); err != nil {
			return err
		}

		active, err := u.bookingRepo.FindActiveBySlotID(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if active != nil {
			active.Invalidate()
			if _, err := u.bookingRepo.UpdateStatusFrom(ctx, tx, active.ID, entity.BookingStatusActive, entity.BookingStatusInvalidated); err != nil {
				return err
			}
			displaced = active
		}

		metadata := map[string]interface{}{"slot_id": slotID.String()}
		if displaced != nil {
			metadata["invalidated_booking_id"] = displaced.ID.String()
		}
		return u.auditService.LogUpdate(ctx, tx, adminID, entity.AuditActionSlotBlock, "slot", slotID.String(), previousStatus, metadata)
	})
	if err != nil {
		if err != ErrSlotNotFound {
			u.log.Warnf("Failed to block slot %s: %+v", slotID, err)
		}
		return err
	}

	u.invalidateSlotListing(slot.DoctorID, slot.Date)

	if displaced != nil {
		u.log.Infof("Slot blocked: id=%s, invalidated booking=%s", slotID, displaced.ID)
	} else {
		u.log.Infof("Slot blocked: id=%s", slotID)
	}
	return nil
}

// UnblockSlot reopens a blocked slot. Unblocking an available slot is a
// no-op success.
func (u *slotUsecase) UnblockSlot(ctx context.Context, slotID uuid.UUID) error {
	adminID := adminIDFromContext(ctx)
	var slot *entity.Slot

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		slot, err = u.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		previousStatus := slot.Status
		slot.Unblock()
		if err := u.slotRepo.UpdateStatus(ctx, tx, slot.ID, slot.Status); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, adminID, entity.AuditActionSlotUnblock, "slot", slotID.String(), previousStatus, slot.Status)
	})
	if err != nil {
		if err != ErrSlotNotFound {
			u.log.Warnf("Failed to unblock slot %s: %+v", slotID, err)
		}
		return err
	}

	u.invalidateSlotListing(slot.DoctorID, slot.Date)

	u.log.Infof("Slot unblocked: id=%s", slotID)
	return nil
}

func (u *slotUsecase) invalidateSlotListing(doctorID uuid.UUID, date time.Time) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotCache.Invalidate(cacheCtx, doctorID, date)
}

// adminIDFromContext resolves the acting administrator for the audit trail.
func adminIDFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := jwt.UserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
