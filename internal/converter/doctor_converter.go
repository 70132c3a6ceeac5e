package converter

import (
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
)

func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	days := make([]int, 0, len(doctor.WorkingDays))
	for _, day := range doctor.WorkingDays {
		days = append(days, int(day))
	}

	return &dto.DoctorResponse{
		ID:                  doctor.ID,
		FullName:            doctor.FullName,
		Specialization:      doctor.Specialization,
		IsActive:            doctor.IsActive,
		WorkingDays:         days,
		DailyStartTime:      doctor.DailyStartTime,
		DailyEndTime:        doctor.DailyEndTime,
		RollingWindowDays:   doctor.RollingWindowDays,
		SlotDurationMinutes: doctor.SlotDurationMinutes,
		CreatedAt:           doctor.CreatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, *DoctorToResponse(&doctors[i]))
	}
	return responses
}
