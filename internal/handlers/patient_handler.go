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

type PatientHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewPatientHandler(db *gorm.DB, cfg *config.Config) *PatientHandler {
	return &PatientHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterPatientRequest struct {
	Name           string `json:"name" binding:"required"`
	MobileNo       string `json:"mobile_no" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	MedicalHistory string `json:"medical_history"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *PatientHandler) Register(c *gin.Context) {
	var req RegisterPatientRequest
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
	h.db.Model(&models.Patient{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register.")
		return
	}

	patient := models.Patient{
		Name:           req.Name,
		MobileNo:       req.MobileNo,
		Email:          email,
		PasswordHash:   string(hashed),
		MedicalHistory: req.MedicalHistory,
		Role:           "patient",
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Could not register.")
		return
	}

	token, err := generateToken(h.config, email, "patient")
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not register.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":              patient.ID,
			"name":            patient.Name,
			"email":           patient.Email,
			"mobile_no":       patient.MobileNo,
			"medical_history": patient.MedicalHistory,
		},
		"token":      token,
		"token_type": "bearer",
	})
}

func (h *PatientHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var patient models.Patient
	if err := h.db.Where("email = ?", email).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
		return
	}

	token, err := generateToken(h.config, email, "patient")
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "bearer",
	})
}
