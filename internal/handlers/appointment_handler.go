package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/httpresp"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/clinicdesk/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	listUC     *ucAppointment.ListMyAppointments
	nextSlotUC *ucAppointment.GetNextSlot
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListMyAppointments,
	nextSlotUC *ucAppointment.GetNextSlot,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		listUC:     listUC,
		nextSlotUC: nextSlotUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	email := c.MustGet(middleware.ContextEmail).(string)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientEmail: email,
		DoctorID:     req.DoctorID,
		Reason:       req.Reason,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":          "booked",
		"reference":    ap.Reference,
		"doctor_name":  ap.DoctorName,
		"patient_name": ap.PatientName,
		"date":         ap.Date,
		"time":         ap.Time,
		"queue_number": ap.QueueNumber,
	})
}

// writeBookingError translates the booking failure taxonomy. A slot
// search that exhausts its bound is a server-side anomaly, not a user
// input problem; same-day duplicates and lost slot races are conflicts
// the caller may retry.
func writeBookingError(c *gin.Context, err error) {
	if errors.Is(err, schedule.ErrNoFreeSlot) {
		httperr.Internal(c, "slot_search_exhausted", "No free slot could be found.")
		return
	}

	switch httperr.BusinessCode(err) {
	case "already_booked_that_day":
		httperr.Conflict(c, "already_booked_that_day", "You already have an appointment on this day.")
	case "slot_conflict":
		httperr.Conflict(c, "slot_conflict", "The slot was just taken, please retry.")
	case "doctor_not_found":
		httperr.BadRequest(c, "doctor_not_found", "Doctor not found.")
	case "patient_not_found":
		httperr.BadRequest(c, "patient_not_found", "Patient not found.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Could not book the appointment.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	email := c.MustGet(middleware.ContextEmail).(string)
	role := c.MustGet(middleware.ContextRole).(string)

	out, err := h.listUC.Execute(c.Request.Context(), email, role)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	email := c.MustGet(middleware.ContextEmail).(string)
	role := c.MustGet(middleware.ContextRole).(string)
	reference := c.Param("reference")

	ap, err := h.cancelUC.Execute(c.Request.Context(), reference, email, role)
	if err != nil {
		writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":       "appointment cancelled",
		"reference": ap.Reference,
		"status":    ap.Status,
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	email := c.MustGet(middleware.ContextEmail).(string)
	role := c.MustGet(middleware.ContextRole).(string)
	reference := c.Param("reference")

	ap, err := h.completeUC.Execute(c.Request.Context(), reference, email, role)
	if err != nil {
		writeStateChangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":       "appointment completed",
		"reference": ap.Reference,
		"status":    ap.Status,
	})
}

func writeStateChangeError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case "not_your_appointment":
		httperr.Forbidden(c, "not_your_appointment", "You can only act on your own appointments.")
	case "patients_cannot_complete":
		httperr.Forbidden(c, "patients_cannot_complete", "Patients cannot complete appointments.")
	case "already_completed", "already_cancelled", "cancelled_by_patient":
		httperr.BadRequest(c, httperr.BusinessCode(err), "Appointment is not pending.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
	}
}

// ======================================================
// NEXT SLOT (public preview)
// ======================================================

func (h *AppointmentHandler) NextSlot(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
		return
	}

	out, err := h.nextSlotUC.Execute(c.Request.Context(), doctorID)
	if err != nil {
		if errors.Is(err, schedule.ErrNoFreeSlot) {
			httperr.Internal(c, "slot_search_exhausted", "No free slot could be found.")
			return
		}
		if httperr.IsBusiness(err, "doctor_not_found") {
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
			return
		}
		httperr.Internal(c, "failed_to_find_slot", "Could not compute the next slot.")
		return
	}

	httpresp.OK(c, out)
}
