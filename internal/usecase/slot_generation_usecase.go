package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SlotGenerationUsecase interface {
	// Execute generates future slots for every active doctor. One doctor's
	// failure is recorded and does not stop the others.
	Execute(ctx context.Context) error
}

type slotGenerationUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	doctorRepo    repository.DoctorRepository
	exceptionRepo repository.AvailabilityExceptionRepository
	slotRepo      repository.SlotRepository
}

func NewSlotGenerationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	exceptionRepo repository.AvailabilityExceptionRepository,
	slotRepo repository.SlotRepository,
) SlotGenerationUsecase {
	return &slotGenerationUsecase{
		db:            db,
		log:           log,
		doctorRepo:    doctorRepo,
		exceptionRepo: exceptionRepo,
		slotRepo:      slotRepo,
	}
}

// Execute expands each active doctor's weekly template into concrete slots
// for the rolling window. The run is idempotent: existing slots are never
// re-created or mutated, so it is safe to re-run and safe to run while
// booking traffic is in flight. Cancellation is honored between doctors,
// never mid-batch.
func (u *slotGenerationUsecase) Execute(ctx context.Context) error {
	doctors, err := u.doctorRepo.FindAllActive(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load doctor configurations: %+v", err)
		return err
	}

	today := truncateToDay(time.Now())
	var errs []error

	for i := range doctors {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		config := doctors[i].ScheduleConfig()
		if err := u.generateForDoctor(ctx, config, today); err != nil {
			u.log.Errorf("Slot generation failed for doctor %s: %+v", config.DoctorID, err)
			errs = append(errs, fmt.Errorf("doctor %s: %w", config.DoctorID, err))
		}
	}

	return errors.Join(errs...)
}

func (u *slotGenerationUsecase) generateForDoctor(ctx context.Context, config entity.ScheduleConfig, from time.Time) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid schedule config: %w", err)
	}

	// The window is inclusive of the last day.
	to := from.AddDate(0, 0, config.RollingWindowDays)

	exceptions, err := u.exceptionRepo.FindInRange(ctx, u.db, config.DoctorID, from, to)
	if err != nil {
		return err
	}

	existing, err := u.slotRepo.FindInRange(ctx, u.db, config.DoctorID, from, to)
	if err != nil {
		return err
	}
	existingKeys := make(map[string]struct{}, len(existing))
	for i := range existing {
		existingKeys[slotKey(existing[i].Date, existing[i].StartTime)] = struct{}{}
	}

	staged, err := planSlots(config, from, to, exceptions, existingKeys)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		u.log.Debugf("No new slots for doctor %s", config.DoctorID)
		return nil
	}

	if err := u.slotRepo.CreateBatch(ctx, u.db, staged); err != nil {
		return err
	}

	u.log.Infof("Generated %d slots for doctor %s", len(staged), config.DoctorID)
	return nil
}

// planSlots walks every date in [from, to] and stages the chunks that should
// exist but do not yet: non-working days are skipped whole, full-day blocks
// remove their date, partial-day blocks remove overlapping chunks, and keys
// already present are left untouched so a slot keeps whatever status it has.
func planSlots(
	config entity.ScheduleConfig,
	from, to time.Time,
	exceptions []entity.AvailabilityException,
	existingKeys map[string]struct{},
) ([]entity.Slot, error) {
	exceptionByDate := make(map[string]*entity.AvailabilityException, len(exceptions))
	for i := range exceptions {
		exceptionByDate[entity.DateKey(exceptions[i].Date)] = &exceptions[i]
	}

	dayStart, err := entity.MinuteOfDay(config.DailyStartTime)
	if err != nil {
		return nil, err
	}
	dayEnd, err := entity.MinuteOfDay(config.DailyEndTime)
	if err != nil {
		return nil, err
	}

	var staged []entity.Slot
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if !config.WorksOn(date.Weekday()) {
			continue
		}

		exception := exceptionByDate[entity.DateKey(date)]
		if exception != nil && exception.IsFullDay() {
			continue
		}

		for cur := dayStart; cur+config.SlotDurationMinutes <= dayEnd; cur += config.SlotDurationMinutes {
			start := entity.FormatMinuteOfDay(cur)
			end := entity.FormatMinuteOfDay(cur + config.SlotDurationMinutes)

			if exception != nil && exception.BlocksInterval(start, end) {
				continue
			}
			if _, exists := existingKeys[slotKey(date, start)]; exists {
				continue
			}

			slot, err := entity.NewSlot(config.DoctorID, date, start, end)
			if err != nil {
				return nil, err
			}
			staged = append(staged, *slot)
		}
	}

	return staged, nil
}

func slotKey(date time.Time, startTime string) string {
	return entity.DateKey(date) + " " + startTime
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
