package converter

import (
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
)

func AvailabilityExceptionToResponse(exception *entity.AvailabilityException) *dto.AvailabilityExceptionResponse {
	return &dto.AvailabilityExceptionResponse{
		DoctorID:  exception.DoctorID,
		Date:      entity.DateKey(exception.Date),
		Type:      string(exception.Type),
		StartTime: exception.StartTime,
		EndTime:   exception.EndTime,
		Reason:    exception.Reason,
	}
}

func AvailabilityExceptionsToResponses(exceptions []entity.AvailabilityException) []dto.AvailabilityExceptionResponse {
	responses := make([]dto.AvailabilityExceptionResponse, 0, len(exceptions))
	for i := range exceptions {
		responses = append(responses, *AvailabilityExceptionToResponse(&exceptions[i]))
	}
	return responses
}
