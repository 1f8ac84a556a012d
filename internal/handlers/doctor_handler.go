package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/validators"
)

type DoctorHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewDoctorHandler(db *gorm.DB, cfg *config.Config) *DoctorHandler {
	return &DoctorHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterDoctorRequest struct {
	Name            string `json:"name" binding:"required"`
	ExperienceYears int    `json:"experience_years"`
	MobileNo        string `json:"mobile_no" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

// Register creates a doctor account. Route is staff-only.
func (h *DoctorHandler) Register(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not resolve.")
		return
	}

	var count int64
	h.db.Model(&models.Doctor{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register doctor.")
		return
	}

	doctor := models.Doctor{
		Name:            req.Name,
		ExperienceYears: req.ExperienceYears,
		MobileNo:        req.MobileNo,
		Specialization:  req.Specialization,
		Email:           email,
		PasswordHash:    string(hashed),
		Role:            "doctor",
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Could not register doctor.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":               doctor.ID,
			"name":             doctor.Name,
			"email":            doctor.Email,
			"mobile_no":        doctor.MobileNo,
			"specialization":   doctor.Specialization,
			"experience_years": doctor.ExperienceYears,
		},
	})
}

func (h *DoctorHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var doctor models.Doctor
	if err := h.db.Where("email = ?", email).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
		return
	}

	token, err := generateToken(h.config, email, "doctor")
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "bearer",
	})
}

// List is the public doctor directory.
func (h *DoctorHandler) List(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.db.Order("name ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	out := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, gin.H{
			"id":               d.ID,
			"name":             d.Name,
			"specialization":   d.Specialization,
			"experience_years": d.ExperienceYears,
			"mobile_no":        d.MobileNo,
			"email":            d.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(out),
		"doctors": out,
	})
}

// Delete removes a doctor. Route is staff-only.
func (h *DoctorHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var doctor models.Doctor
	if err := h.db.First(&doctor, id).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	if err := h.db.Delete(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Could not delete doctor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":       "doctor deleted",
		"doctor_id": doctor.ID,
	})
}
