package auth

import (
	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/utils/auth"
	"github.com/upsight-uz/portal-api/utils/middleware"
	"github.com/upsight-uz/portal-api/utils/validation"
)

// AuthHandler handles login, token refresh, logout and profile requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	blacklistService     *auth.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be
// nil when Redis is not configured; login then runs without lockouts.
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     auth.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}
