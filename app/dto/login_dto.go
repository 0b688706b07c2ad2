package dto

// CustomerDTO represents a customer in authentication responses
type CustomerDTO struct {
	ID           uint   `json:"id"`
	UUID         string `json:"uuid"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	RCSAccountID string `json:"rcs_account_id"`
	IsActive     *bool  `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// SessionDTO represents the issued token pair
type SessionDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	CreatedAt    string `json:"created_at"`
}

// LoginRequest represents a password login attempt
type LoginRequest struct {
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required"`
	CaptchaChallengeID string  `json:"captcha_challenge_id" validate:"required"`
	CaptchaAngle       float64 `json:"captcha_angle" validate:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Customer CustomerDTO `json:"customer"`
	Session  SessionDTO  `json:"session"`
}

// RefreshSessionRequest exchanges a refresh token for a new pair
type RefreshSessionRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes the current session
type LogoutRequest struct {
	CustomerID   uint   `json:"-"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CaptchaChallengeResponse carries a generated captcha challenge
type CaptchaChallengeResponse struct {
	ChallengeID       string `json:"challenge_id"`
	MasterImageBase64 string `json:"master_image_base64"`
	ThumbImageBase64  string `json:"thumb_image_base64"`
}
