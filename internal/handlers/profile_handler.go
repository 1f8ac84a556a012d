package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Get returns the caller's own record, shaped by role.
func (h *ProfileHandler) Get(c *gin.Context) {
	email := c.MustGet(middleware.ContextEmail).(string)
	role := c.MustGet(middleware.ContextRole).(string)

	switch role {
	case "patient":
		var patient models.Patient
		if err := h.db.Where("email = ?", email).First(&patient).Error; err != nil {
			httperr.NotFound(c, "profile_not_found", "Profile not found.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":            patient.Name,
			"email":           patient.Email,
			"mobile_no":       patient.MobileNo,
			"medical_history": patient.MedicalHistory,
			"role":            patient.Role,
		})

	case "doctor":
		var doctor models.Doctor
		if err := h.db.Where("email = ?", email).First(&doctor).Error; err != nil {
			httperr.NotFound(c, "profile_not_found", "Profile not found.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":             doctor.Name,
			"email":            doctor.Email,
			"mobile_no":        doctor.MobileNo,
			"experience_years": doctor.ExperienceYears,
			"specialization":   doctor.Specialization,
			"role":             doctor.Role,
		})

	case "staff":
		var staff models.Staff
		if err := h.db.Where("email = ?", email).First(&staff).Error; err != nil {
			httperr.NotFound(c, "profile_not_found", "Profile not found.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":      staff.Name,
			"email":     staff.Email,
			"mobile_no": staff.MobileNo,
			"role":      staff.Role,
		})

	default:
		httperr.Unauthorized(c, "invalid_role", "Unknown role.")
	}
}
