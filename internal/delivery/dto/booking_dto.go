package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookSlotRequest struct {
	SlotID    uuid.UUID `json:"slot_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
}

// Response DTOs

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	SlotID    uuid.UUID `json:"slot_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
