package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScheduleConfig is a read-only snapshot of a doctor's recurring weekly
// template. The slot generator captures one snapshot per doctor per run and
// never writes it back.
type ScheduleConfig struct {
	DoctorID            uuid.UUID
	WorkingDays         []time.Weekday
	DailyStartTime      string
	DailyEndTime        string
	RollingWindowDays   int
	SlotDurationMinutes int
}

// WorksOn checks if the template includes the given weekday
func (c ScheduleConfig) WorksOn(day time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate reports configuration defects that make slot generation for this
// doctor impossible. A doctor with an empty working-day set is valid and
// simply generates nothing.
func (c ScheduleConfig) Validate() error {
	if c.DoctorID == uuid.Nil {
		return errors.New("doctor id is required")
	}
	if c.RollingWindowDays <= 0 {
		return errors.New("rolling window must be at least one day")
	}
	if c.SlotDurationMinutes <= 0 {
		return errors.New("slot duration must be positive")
	}

	start, err := MinuteOfDay(c.DailyStartTime)
	if err != nil {
		return err
	}
	end, err := MinuteOfDay(c.DailyEndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return errors.New("daily end must be after daily start")
	}

	return nil
}
