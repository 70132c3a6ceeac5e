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
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotActive  = errors.New("only active bookings can be cancelled")
)

type BookingUsecase interface {
	BookSlot(ctx context.Context, slotID, patientID uuid.UUID) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
	GetPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	transactor  repository.Transactor
	bookingRepo repository.BookingRepository
	slotRepo    repository.SlotRepository
	slotCache   service.SlotCache
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	bookingRepo repository.BookingRepository,
	slotRepo repository.SlotRepository,
	slotCache service.SlotCache,
) BookingUsecase {
	return &bookingUsecase{
		db:          db,
		log:         log,
		transactor:  transactor,
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		slotCache:   slotCache,
	}
}

// BookSlot books a slot for a patient.
//
// Flow:
// 1. Read the slot under a shared row lock; a concurrent admin block waits
//    for this transaction, and this transaction waits for an in-flight block
// 2. Reject blocked or missing slots before touching the bookings table
// 3. Insert the active booking; the partial unique index on
//    bookings(slot_id) WHERE status = 'active' decides races between
//    concurrent bookings, and the loser gets ErrSlotAlreadyBooked
//
// A losing attempt is reported to the caller as a definitive failure, never
// retried internally: retrying would change which patient wins the slot
// without their consent.
func (u *bookingUsecase) BookSlot(ctx context.Context, slotID, patientID uuid.UUID) (*dto.BookingResponse, error) {
	var booking *entity.Booking
	var slot *entity.Slot

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		slot, err = u.slotRepo.FindByIDForShare(ctx, tx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if !slot.IsAvailable() {
			return ErrSlotUnavailable
		}

		b, err := entity.NewBooking(slotID, patientID)
		if err != nil {
			return err
		}

		if err := u.bookingRepo.Create(ctx, tx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicateActiveBooking) {
				return ErrSlotAlreadyBooked
			}
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotAlreadyBooked):
			// Expected outcomes under contention, not defects.
			u.log.Debugf("Booking rejected for slot %s: %v", slotID, err)
		default:
			u.log.Warnf("Failed to book slot %s: %+v", slotID, err)
		}
		return nil, err
	}

	u.invalidateSlotListing(slot.DoctorID, slot.Date)

	u.log.Infof("Booking created: id=%s, slot=%s, patient=%s", booking.ID, slotID, patientID)
	return converter.BookingToResponse(booking), nil
}

// CancelBooking cancels an active booking. The slot row is never written;
// availability is derived at read time from the absence of an active booking,
// so cancelling frees the slot for the next booking attempt on its own.
func (u *bookingUsecase) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := u.bookingRepo.FindByID(ctx, u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if !booking.IsActive() {
		return ErrBookingNotActive
	}

	affected, err := u.bookingRepo.UpdateStatusFrom(ctx, u.db, bookingID, entity.BookingStatusActive, entity.BookingStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return err
	}
	if affected == 0 {
		// Lost a race with a concurrent cancel or an admin block.
		return ErrBookingNotActive
	}

	if slot, err := u.slotRepo.FindByID(ctx, u.db, booking.SlotID); err == nil && slot != nil {
		u.invalidateSlotListing(slot.DoctorID, slot.Date)
	}

	u.log.Infof("Booking cancelled: id=%s, slot=%s", bookingID, booking.SlotID)
	return nil
}

// GetPatientBookings returns the patient's booking history, newest first.
func (u *bookingUsecase) GetPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// invalidateSlotListing is best effort and runs on its own deadline so a
// disconnecting client cannot skip it.
func (u *bookingUsecase) invalidateSlotListing(doctorID uuid.UUID, date time.Time) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotCache.Invalidate(cacheCtx, doctorID, date)
}
