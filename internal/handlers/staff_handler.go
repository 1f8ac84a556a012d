package handlers

import (
	"crypto/subtle"
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

type StaffHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewStaffHandler(db *gorm.DB, cfg *config.Config) *StaffHandler {
	return &StaffHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterStaffRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	MobileNo string `json:"mobile_no" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

// Register creates a staff account. The admin key in the path is the
// only gate; there is no bootstrap staff user otherwise.
func (h *StaffHandler) Register(c *gin.Context) {
	adminKey := c.Param("admin_key")
	if h.config.AdminKey == "" ||
		subtle.ConstantTimeCompare([]byte(adminKey), []byte(h.config.AdminKey)) != 1 {
		httperr.Forbidden(c, "invalid_admin_key", "Not allowed.")
		return
	}

	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsMobileValid(req.MobileNo) {
		httperr.BadRequest(c, "invalid_mobile", "Mobile number must be 10 digits.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Staff{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register staff.")
		return
	}

	staff := models.Staff{
		Name:         req.Name,
		MobileNo:     req.MobileNo,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "staff",
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Could not register staff.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        staff.ID,
			"name":      staff.Name,
			"email":     staff.Email,
			"mobile_no": staff.MobileNo,
		},
	})
}

func (h *StaffHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var staff models.Staff
	if err := h.db.Where("email = ?", email).First(&staff).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Incorrect email or password.")
		return
	}

	token, err := generateToken(h.config, email, "staff")
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "bearer",
	})
}
