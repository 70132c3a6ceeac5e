package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is reference data: identity plus the recurring weekly template the
// slot generator expands. Inactive doctors keep their rows but are excluded
// from generation and public listings.
type Doctor struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FullName            string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization      string         `gorm:"type:varchar(100)" json:"specialization"`
	IsActive            bool           `gorm:"not null;default:true;index" json:"is_active"`
	WorkingDays         []time.Weekday `gorm:"serializer:json;type:jsonb;not null" json:"working_days"`
	DailyStartTime      string         `gorm:"type:varchar(5);not null" json:"daily_start_time"`
	DailyEndTime        string         `gorm:"type:varchar(5);not null" json:"daily_end_time"`
	RollingWindowDays   int            `gorm:"not null" json:"rolling_window_days"`
	SlotDurationMinutes int            `gorm:"not null" json:"slot_duration_minutes"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// ScheduleConfig returns a detached snapshot of the doctor's weekly template.
func (d *Doctor) ScheduleConfig() ScheduleConfig {
	days := make([]time.Weekday, len(d.WorkingDays))
	copy(days, d.WorkingDays)

	return ScheduleConfig{
		DoctorID:            d.ID,
		WorkingDays:         days,
		DailyStartTime:      d.DailyStartTime,
		DailyEndTime:        d.DailyEndTime,
		RollingWindowDays:   d.RollingWindowDays,
		SlotDurationMinutes: d.SlotDurationMinutes,
	}
}
