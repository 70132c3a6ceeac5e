package http

import (
	"net/http"

	"clinic-scheduling-service/internal/delivery/http/handler"
	"clinic-scheduling-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	bookingHandler      *handler.BookingHandler
	slotHandler         *handler.SlotHandler
	generationHandler   *handler.SlotGenerationHandler
	availabilityHandler *handler.AvailabilityHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	slotHandler *handler.SlotHandler,
	generationHandler *handler.SlotGenerationHandler,
	availabilityHandler *handler.AvailabilityHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		bookingHandler:      bookingHandler,
		slotHandler:         slotHandler,
		generationHandler:   generationHandler,
		availabilityHandler: availabilityHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient-facing routes (authenticated)
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.HandleFunc("/doctors", r.doctorHandler.GetDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/{doctorId}/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)
	patient.HandleFunc("/bookings", r.bookingHandler.BookSlot).Methods(http.MethodPost)
	patient.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)
	patient.HandleFunc("/patients/{patientId}/bookings", r.bookingHandler.GetPatientBookings).Methods(http.MethodGet)

	// Admin routes (authenticated, admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Slot management
	admin.HandleFunc("/slots/{id}/block", r.slotHandler.BlockSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}/unblock", r.slotHandler.UnblockSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/generate", r.generationHandler.TriggerGeneration).Methods(http.MethodPost)

	// Availability exceptions
	admin.HandleFunc("/doctors/{doctorId}/availability-exceptions", r.availabilityHandler.UpsertException).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{doctorId}/availability-exceptions", r.availabilityHandler.GetExceptions).Methods(http.MethodGet)

	// Reference data management
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.GetPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
