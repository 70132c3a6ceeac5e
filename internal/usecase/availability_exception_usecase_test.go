package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExceptionFixture() (*fakeDoctorRepo, *fakeExceptionRepo, *fakeAuditService, AvailabilityExceptionUsecase) {
	doctorRepo := &fakeDoctorRepo{}
	exceptionRepo := &fakeExceptionRepo{}
	audit := &fakeAuditService{}
	uc := NewAvailabilityExceptionUsecase(nil, testLogger(), fakeTransactor{}, exceptionRepo, doctorRepo, audit)
	return doctorRepo, exceptionRepo, audit, uc
}

func seedDoctor(doctorRepo *fakeDoctorRepo) uuid.UUID {
	doctor := entity.Doctor{ID: uuid.New(), FullName: "Dr. Example", IsActive: true}
	doctorRepo.doctors = append(doctorRepo.doctors, doctor)
	return doctor.ID
}

func TestUpsertFullDayException(t *testing.T) {
	doctorRepo, exceptionRepo, audit, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	resp, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date:   "2026-09-10",
		Type:   "full_day_block",
		Reason: "conference",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10", resp.Date)
	assert.Equal(t, "full_day_block", resp.Type)
	assert.Nil(t, resp.StartTime)
	assert.Nil(t, resp.EndTime)

	require.Len(t, exceptionRepo.exceptions, 1)
	assert.Contains(t, audit.recorded(), entity.AuditActionExceptionUpsert)
}

func TestUpsertPartialDayException(t *testing.T) {
	doctorRepo, exceptionRepo, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	resp, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date:      "2026-09-10",
		Type:      "partial_day_block",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.StartTime)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, "10:00", *resp.StartTime)
	assert.Equal(t, "12:00", *resp.EndTime)
	require.Len(t, exceptionRepo.exceptions, 1)
}

func TestUpsertOverwritesSameDate(t *testing.T) {
	doctorRepo, exceptionRepo, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	_, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "partial_day_block", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	_, err = uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "full_day_block",
	})
	require.NoError(t, err)

	require.Len(t, exceptionRepo.exceptions, 1)
	assert.Equal(t, entity.ExceptionFullDayBlock, exceptionRepo.exceptions[0].Type)
}

func TestUpsertExceptionDoctorNotFound(t *testing.T) {
	_, _, _, uc := newExceptionFixture()

	_, err := uc.UpsertException(context.Background(), uuid.New(), &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "full_day_block",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpsertExceptionInvalidDate(t *testing.T) {
	doctorRepo, _, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	_, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "10/09/2026", Type: "full_day_block",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestUpsertExceptionInvalidWindow(t *testing.T) {
	doctorRepo, _, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	_, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "partial_day_block", StartTime: "12:00", EndTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidExceptionWindow)
}

func TestUpsertExceptionUnknownType(t *testing.T) {
	doctorRepo, _, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	_, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "half_day",
	})
	assert.ErrorIs(t, err, ErrInvalidExceptionType)
}

func TestUpsertExceptionAuditFailurePropagates(t *testing.T) {
	doctorRepo, _, audit, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)
	audit.logErr = errors.New("audit write failed")

	_, err := uc.UpsertException(context.Background(), doctorID, &dto.UpsertAvailabilityExceptionRequest{
		Date: "2026-09-10", Type: "full_day_block",
	})
	assert.ErrorIs(t, err, audit.logErr)
}

func TestGetExceptionsInRange(t *testing.T) {
	doctorRepo, exceptionRepo, _, uc := newExceptionFixture()
	doctorID := seedDoctor(doctorRepo)

	inRange := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC)
	exceptionRepo.exceptions = append(exceptionRepo.exceptions,
		entity.AvailabilityException{DoctorID: doctorID, Date: inRange, Type: entity.ExceptionFullDayBlock},
		entity.AvailabilityException{DoctorID: doctorID, Date: outOfRange, Type: entity.ExceptionFullDayBlock},
	)

	resp, err := uc.GetExceptions(context.Background(), doctorID, inRange.AddDate(0, 0, -1), inRange.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}
