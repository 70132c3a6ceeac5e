package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityExceptionType distinguishes full-day leave from a blocked
// sub-interval of a working day.
type AvailabilityExceptionType string

const (
	ExceptionFullDayBlock    AvailabilityExceptionType = "full_day_block"
	ExceptionPartialDayBlock AvailabilityExceptionType = "partial_day_block"
)

// AvailabilityException is a doctor's deviation from their weekly template on
// one date. The composite key (doctor_id, date) allows at most one exception
// per doctor per day. StartTime and EndTime are set only for partial-day
// blocks.
type AvailabilityException struct {
	DoctorID  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	Date      time.Time                 `gorm:"type:date;primaryKey" json:"date"`
	Type      AvailabilityExceptionType `gorm:"type:varchar(30);not null" json:"type"`
	StartTime *string                   `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime   *string                   `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	Reason    string                    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilityException) TableName() string {
	return "availability_exceptions"
}

// IsFullDay checks if the exception removes the whole date from generation
func (e *AvailabilityException) IsFullDay() bool {
	return e.Type == ExceptionFullDayBlock
}

// BlocksInterval reports whether a partial-day block overlaps the half-open
// chunk [startTime, endTime). Touching intervals do not overlap.
func (e *AvailabilityException) BlocksInterval(startTime, endTime string) bool {
	if e.Type != ExceptionPartialDayBlock || e.StartTime == nil || e.EndTime == nil {
		return false
	}

	start, err := MinuteOfDay(startTime)
	if err != nil {
		return false
	}
	end, err := MinuteOfDay(endTime)
	if err != nil {
		return false
	}
	exStart, err := MinuteOfDay(*e.StartTime)
	if err != nil {
		return false
	}
	exEnd, err := MinuteOfDay(*e.EndTime)
	if err != nil {
		return false
	}

	return start < exEnd && end > exStart
}
