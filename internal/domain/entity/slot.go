package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the administrative status of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// Slot represents one bookable time window on a doctor's calendar.
// Whether a slot is taken is derived from the presence of an active booking,
// never stored on the slot itself. Doctor, date and times are immutable after
// creation; only Status changes.
type Slot struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_slots_doctor_date_start,priority:1" json:"doctor_id"`
	Date      time.Time  `gorm:"type:date;not null;uniqueIndex:uq_slots_doctor_date_start,priority:2" json:"date"`
	StartTime string     `gorm:"type:varchar(5);not null;uniqueIndex:uq_slots_doctor_date_start,priority:3" json:"start_time"`
	EndTime   string     `gorm:"type:varchar(5);not null" json:"end_time"`
	Status    SlotStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// NewSlot builds a slot in available status. A validation failure here means
// the caller constructed an impossible time window and is a caller defect,
// not a recoverable outcome.
func NewSlot(doctorID uuid.UUID, date time.Time, startTime, endTime string) (*Slot, error) {
	if doctorID == uuid.Nil {
		return nil, errors.New("doctor id is required")
	}
	start, err := MinuteOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := MinuteOfDay(endTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, errors.New("slot end must be after start")
	}

	return &Slot{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    SlotStatusAvailable,
	}, nil
}

// IsAvailable checks if the slot can accept bookings
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsBlocked checks if the slot was blocked by an administrator
func (s *Slot) IsBlocked() bool {
	return s.Status == SlotStatusBlocked
}

// Block marks the slot blocked. Blocking an already blocked slot is a no-op.
func (s *Slot) Block() {
	s.Status = SlotStatusBlocked
}

// Unblock reopens a blocked slot. Has no effect on an available slot.
func (s *Slot) Unblock() {
	if s.Status == SlotStatusBlocked {
		s.Status = SlotStatusAvailable
	}
}
