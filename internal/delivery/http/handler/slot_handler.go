package handler

import (
	"net/http"
	"time"

	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/usecase"
	"clinic-scheduling-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
	}
}

func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}
	date, err := time.Parse(entity.DateLayout, dateParam)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *SlotHandler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	err = h.slotUsecase.BlockSlot(r.Context(), slotID)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		default:
			response.InternalServerError(w, "Failed to block slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot blocked successfully", nil)
}

func (h *SlotHandler) UnblockSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	err = h.slotUsecase.UnblockSlot(r.Context(), slotID)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		default:
			response.InternalServerError(w, "Failed to unblock slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot unblocked successfully", nil)
}
