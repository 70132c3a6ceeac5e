package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture() (*fakeSlotRepo, *fakeBookingRepo, *fakeSlotCache, BookingUsecase) {
	slotRepo := newFakeSlotRepo()
	bookingRepo := newFakeBookingRepo()
	slotCache := newFakeSlotCache()
	uc := NewBookingUsecase(nil, testLogger(), fakeTransactor{}, bookingRepo, slotRepo, slotCache)
	return slotRepo, bookingRepo, slotCache, uc
}

func TestBookSlotSuccess(t *testing.T) {
	slotRepo, bookingRepo, slotCache, uc := newBookingFixture()

	doctorID := uuid.New()
	patientID := uuid.New()
	slot := mustSlot(t, doctorID, time.Now().AddDate(0, 0, 1), "09:00", "09:30")
	slotRepo.add(slot)

	resp, err := uc.BookSlot(context.Background(), slot.ID, patientID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, slot.ID, resp.SlotID)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, string(entity.BookingStatusActive), resp.Status)

	stored := bookingRepo.get(resp.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive())

	// The listing cache for that doctor and date must be dropped.
	assert.Len(t, slotCache.invalidated, 1)
}

func TestBookSlotNotFound(t *testing.T) {
	_, _, _, uc := newBookingFixture()

	resp, err := uc.BookSlot(context.Background(), uuid.New(), uuid.New())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookSlotBlocked(t *testing.T) {
	slotRepo, _, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slot.Block()
	slotRepo.add(slot)

	resp, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookSlotAlreadyBooked(t *testing.T) {
	slotRepo, _, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slotRepo.add(slot)

	_, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	require.NoError(t, err)

	resp, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

// Exactly one of many concurrent attempts on the same slot may win. The fake
// booking repo rejects a second active booking the same way the database's
// partial unique index does.
func TestBookSlotConcurrentSingleWinner(t *testing.T) {
	slotRepo, _, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slotRepo.add(slot)

	const attempts = 20
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.BookSlot(context.Background(), slot.ID, uuid.New())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestBookSlotStorageErrorPropagates(t *testing.T) {
	slotRepo, bookingRepo, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slotRepo.add(slot)

	storageErr := errors.New("connection reset")
	bookingRepo.createErr = storageErr

	resp, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestCancelBookingSuccess(t *testing.T) {
	slotRepo, bookingRepo, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slotRepo.add(slot)

	booking, err := entity.NewBooking(slot.ID, uuid.New())
	require.NoError(t, err)
	bookingRepo.add(booking)

	require.NoError(t, uc.CancelBooking(context.Background(), booking.ID))

	stored := bookingRepo.get(booking.ID)
	assert.True(t, stored.IsCancelled())

	// Cancelling never writes the slot; it stays available.
	assert.Equal(t, entity.SlotStatusAvailable, slotRepo.get(slot.ID).Status)
}

func TestCancelBookingFreesSlotForRebooking(t *testing.T) {
	slotRepo, _, _, uc := newBookingFixture()

	slot := mustSlot(t, uuid.New(), time.Now(), "09:00", "09:30")
	slotRepo.add(slot)

	first, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, uc.CancelBooking(context.Background(), first.ID))

	second, err := uc.BookSlot(context.Background(), slot.ID, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCancelBookingNotFound(t *testing.T) {
	_, _, _, uc := newBookingFixture()
	assert.ErrorIs(t, uc.CancelBooking(context.Background(), uuid.New()), ErrBookingNotFound)
}

func TestCancelBookingNotActive(t *testing.T) {
	_, bookingRepo, _, uc := newBookingFixture()

	booking, err := entity.NewBooking(uuid.New(), uuid.New())
	require.NoError(t, err)
	booking.Cancel()
	bookingRepo.add(booking)

	assert.ErrorIs(t, uc.CancelBooking(context.Background(), booking.ID), ErrBookingNotActive)
}

func TestCancelInvalidatedBookingFails(t *testing.T) {
	_, bookingRepo, _, uc := newBookingFixture()

	booking, err := entity.NewBooking(uuid.New(), uuid.New())
	require.NoError(t, err)
	booking.Invalidate()
	bookingRepo.add(booking)

	assert.ErrorIs(t, uc.CancelBooking(context.Background(), booking.ID), ErrBookingNotActive)
}

func TestGetPatientBookings(t *testing.T) {
	_, bookingRepo, _, uc := newBookingFixture()

	patientID := uuid.New()
	for i := 0; i < 3; i++ {
		booking, err := entity.NewBooking(uuid.New(), patientID)
		require.NoError(t, err)
		bookingRepo.add(booking)
	}
	other, err := entity.NewBooking(uuid.New(), uuid.New())
	require.NoError(t, err)
	bookingRepo.add(other)

	resp, err := uc.GetPatientBookings(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Bookings, 3)
}
