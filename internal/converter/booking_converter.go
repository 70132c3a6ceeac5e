package converter

import (
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
)

func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:        booking.ID,
		SlotID:    booking.SlotID,
		PatientID: booking.PatientID,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}

func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *BookingToResponse(&bookings[i]))
	}
	return responses
}
