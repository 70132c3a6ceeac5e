package dto

import "github.com/google/uuid"

// Request DTOs

type UpsertAvailabilityExceptionRequest struct {
	Date      string `json:"date" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=full_day_block partial_day_block"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time" validate:"omitempty"`
	Reason    string `json:"reason" validate:"max=255"`
}

// Response DTOs

type AvailabilityExceptionResponse struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type AvailabilityExceptionListResponse struct {
	Exceptions []AvailabilityExceptionResponse `json:"exceptions"`
	Total      int                             `json:"total"`
}
