package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-scheduling-service/internal/delivery/dto"
	"clinic-scheduling-service/internal/domain/entity"
	"clinic-scheduling-service/internal/usecase"
	"clinic-scheduling-service/pkg/response"
	"clinic-scheduling-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	exceptionUsecase usecase.AvailabilityExceptionUsecase
	validator        *validator.CustomValidator
}

func NewAvailabilityHandler(exceptionUsecase usecase.AvailabilityExceptionUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		exceptionUsecase: exceptionUsecase,
		validator:        validator,
	}
}

func (h *AvailabilityHandler) UpsertException(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpsertAvailabilityExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exception, err := h.exceptionUsecase.UpsertException(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time, use HH:MM", nil)
		case usecase.ErrInvalidExceptionType:
			response.Error(w, http.StatusBadRequest, "Unknown exception type", nil)
		case usecase.ErrInvalidExceptionWindow:
			response.Error(w, http.StatusBadRequest, "Partial day block requires a valid time window", nil)
		default:
			response.InternalServerError(w, "Failed to save availability exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability exception saved successfully", exception)
}

func (h *AvailabilityHandler) GetExceptions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD", nil)
		return
	}

	exceptions, err := h.exceptionUsecase.GetExceptions(r.Context(), doctorID, from, to)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability exceptions")
		return
	}

	response.Success(w, http.StatusOK, "Availability exceptions retrieved successfully", exceptions)
}

// parseDateRange reads optional from/to query parameters, defaulting to the
// next 30 days.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 30)

	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse(entity.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse(entity.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
