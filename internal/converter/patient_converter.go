package converter

import (
	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:        patient.ID,
		FullName:  patient.FullName,
		Email:     patient.Email,
		IsActive:  patient.IsActive,
		CreatedAt: patient.CreatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
