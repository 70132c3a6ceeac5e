package converter

import (
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
)

func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:        slot.ID,
		DoctorID:  slot.DoctorID,
		Date:      entity.DateKey(slot.Date),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    string(slot.Status),
	}
}

func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		responses = append(responses, *SlotToResponse(&slots[i]))
	}
	return responses
}
