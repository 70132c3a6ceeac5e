package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	FullName            string `json:"full_name" validate:"required,max=255"`
	Specialization      string `json:"specialization" validate:"max=100"`
	WorkingDays         []int  `json:"working_days" validate:"required,min=1,dive,gte=0,lte=6"`
	DailyStartTime      string `json:"daily_start_time" validate:"required"`
	DailyEndTime        string `json:"daily_end_time" validate:"required"`
	RollingWindowDays   int    `json:"rolling_window_days" validate:"required,gte=1,lte=90"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"required,gte=5,lte=240"`
}

// Response DTOs

type DoctorResponse struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	Specialization      string    `json:"specialization"`
	IsActive            bool      `json:"is_active"`
	WorkingDays         []int     `json:"working_days"`
	DailyStartTime      string    `json:"daily_start_time"`
	DailyEndTime        string    `json:"daily_end_time"`
	RollingWindowDays   int       `json:"rolling_window_days"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	CreatedAt           time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
