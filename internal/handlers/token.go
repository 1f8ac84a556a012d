package handlers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinic-scheduler/internal/config"
)

func generateToken(cfg *config.Config, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
