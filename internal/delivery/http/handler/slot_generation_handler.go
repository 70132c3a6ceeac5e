package handler

import (
	"net/http"

	"clinic-scheduling-service/internal/usecase"
	"clinic-scheduling-service/pkg/response"
)

type SlotGenerationHandler struct {
	generationUsecase usecase.SlotGenerationUsecase
}

func NewSlotGenerationHandler(generationUsecase usecase.SlotGenerationUsecase) *SlotGenerationHandler {
	return &SlotGenerationHandler{
		generationUsecase: generationUsecase,
	}
}

// TriggerGeneration runs a slot generation pass on demand. The same pass
// runs periodically in the background; this endpoint exists so operators
// can regenerate immediately after changing a doctor's schedule.
func (h *SlotGenerationHandler) TriggerGeneration(w http.ResponseWriter, r *http.Request) {
	if err := h.generationUsecase.Execute(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Slot generation completed with errors", err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Slot generation completed successfully", nil)
}
