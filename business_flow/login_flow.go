// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/app/services"
	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/rcsuite/console/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginFlow handles customer authentication
type LoginFlow interface {
	GenerateCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshSession(ctx context.Context, req *dto.RefreshSessionRequest, metadata *ClientMetadata) (*dto.SessionDTO, error)
	Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) error
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	customerRepo    repository.CustomerRepository
	sessionRepo     repository.CustomerSessionRepository
	auditRepo       repository.AuditLogRepository
	tokenService    services.TokenService
	captchaService  services.CaptchaService
	db              *gorm.DB
	refreshTokenTTL time.Duration
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	customerRepo repository.CustomerRepository,
	sessionRepo repository.CustomerSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	captchaService services.CaptchaService,
	cfg *config.JWTConfig,
	db *gorm.DB,
) LoginFlow {
	return &LoginFlowImpl{
		customerRepo:    customerRepo,
		sessionRepo:     sessionRepo,
		auditRepo:       auditRepo,
		tokenService:    tokenService,
		captchaService:  captchaService,
		db:              db,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateCaptcha issues a new rotate-captcha challenge
func (f *LoginFlowImpl) GenerateCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error) {
	challenge, err := f.captchaService.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_GENERATION_FAILED", "Failed to generate captcha", err)
	}

	return &dto.CaptchaChallengeResponse{
		ChallengeID:       challenge.ID,
		MasterImageBase64: challenge.MasterImageBase64,
		ThumbImageBase64:  challenge.ThumbImageBase64,
	}, nil
}

// Login verifies the captcha and password, then issues a token pair
func (f *LoginFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if !f.captchaService.VerifyRotate(ctx, req.CaptchaChallengeID, req.CaptchaAngle) {
		_ = f.createAuditLog(ctx, nil, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed for %s: captcha verification failed", req.Email), false, nil, metadata)
		return nil, NewBusinessError("CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
	}

	customer, err := f.customerRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if customer == nil {
		_ = f.createAuditLog(ctx, nil, models.AuditActionLoginFailed,
			fmt.Sprintf("Login failed for %s: unknown email", req.Email), false, nil, metadata)
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}
	if !utils.IsTrue(customer.IsActive) {
		_ = f.createAuditLog(ctx, customer, models.AuditActionLoginFailed,
			"Login failed: account inactive", false, nil, metadata)
		return nil, NewBusinessError("CUSTOMER_INACTIVE", "Customer account is inactive", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		_ = f.createAuditLog(ctx, customer, models.AuditActionLoginFailed,
			"Login failed: incorrect password", false, nil, metadata)
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := f.tokenService.GenerateTokens(customer.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	session := &models.CustomerSession{
		CustomerID:   customer.ID,
		RefreshToken: refreshToken,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    utils.UTCNowAdd(f.refreshTokenTTL),
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			session.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			session.UserAgent = &metadata.UserAgent
		}
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.sessionRepo.Save(txCtx, session)
	})
	if err != nil {
		return nil, NewBusinessError("SESSION_CREATION_FAILED", "Failed to create session", err)
	}

	_ = f.createAuditLog(ctx, customer, models.AuditActionLoginSuccess, "Login successful", true, nil, metadata)
	_ = f.createAuditLog(ctx, customer, models.AuditActionSessionCreated,
		fmt.Sprintf("Session created: %d", session.ID), true, nil, metadata)

	return &dto.LoginResponse{
		Customer: ToCustomerDTO(*customer),
		Session:  ToSessionDTO(*session, accessToken),
	}, nil
}

// RefreshSession rotates the token pair bound to a refresh token
func (f *LoginFlowImpl) RefreshSession(ctx context.Context, req *dto.RefreshSessionRequest, metadata *ClientMetadata) (*dto.SessionDTO, error) {
	session, err := f.sessionRepo.ByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to lookup session", err)
	}
	if session == nil || !utils.IsTrue(session.IsActive) {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}
	if utils.IsExpired(session.ExpiresAt) {
		_ = f.createAuditLog(ctx, session.Customer, models.AuditActionSessionExpired,
			fmt.Sprintf("Session expired: %d", session.ID), false, nil, metadata)
		return nil, NewBusinessError("SESSION_EXPIRED", "Session has expired", ErrSessionExpired)
	}

	customer, err := f.customerRepo.ByID(ctx, session.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if customer == nil || !utils.IsTrue(customer.IsActive) {
		return nil, NewBusinessError("CUSTOMER_INACTIVE", "Customer account is inactive", ErrAccountInactive)
	}

	accessToken, refreshToken, err := f.tokenService.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	session.RefreshToken = refreshToken
	session.ExpiresAt = utils.UTCNowAdd(f.refreshTokenTTL)
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.sessionRepo.Save(txCtx, session)
	})
	if err != nil {
		return nil, NewBusinessError("SESSION_UPDATE_FAILED", "Failed to update session", err)
	}

	result := ToSessionDTO(*session, accessToken)
	return &result, nil
}

// Logout revokes the session and its refresh token
func (f *LoginFlowImpl) Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) error {
	session, err := f.sessionRepo.ByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to lookup session", err)
	}
	if session == nil || session.CustomerID != req.CustomerID {
		return NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}

	if err := f.sessionRepo.RevokeSession(ctx, session.ID); err != nil {
		return NewBusinessError("SESSION_REVOCATION_FAILED", "Failed to revoke session", err)
	}
	_ = f.tokenService.RevokeToken(req.RefreshToken)

	customer, _ := f.customerRepo.ByID(ctx, req.CustomerID)
	_ = f.createAuditLog(ctx, customer, models.AuditActionLogout, "Logout successful", true, nil, metadata)

	return nil
}

func (f *LoginFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var customerID *uint
	if customer != nil {
		customerID = &customer.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		CustomerID:   customerID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		audit.RequestID = &requestID
	}

	return f.auditRepo.Save(ctx, audit)
}
