// Package businessflow contains the core business logic and use cases for the RCS console workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Customer-related errors
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session has expired")

	// Contact import errors
	ErrNoValidNumbers        = errors.New("no valid numbers found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrContactAccessDenied   = errors.New("contact access denied")
	ErrIncompleteNumber      = errors.New("number is incomplete")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrCapabilityCheckFailed = errors.New("capability check failed")

	// Template-related errors
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateAccessDenied  = errors.New("template access denied")
	ErrTemplateNameRequired  = errors.New("template name is required")
	ErrTemplateTextRequired  = errors.New("template text is required")
	ErrTemplateInvalidType   = errors.New("invalid template type")
	ErrSuggestionsRequired   = errors.New("at least one suggestion is required")
	ErrCardTitleRequired     = errors.New("card title is required")
	ErrCardMediaRequired     = errors.New("card media is required")
	ErrCarouselCardsRequired = errors.New("carousel requires between 2 and 10 cards")

	// Campaign-related errors
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrCampaignAccessDenied     = errors.New("campaign access denied")
	ErrCampaignNameRequired     = errors.New("campaign name is required")
	ErrCampaignUpdateNotAllowed = errors.New("campaign update not allowed")
	ErrCampaignNoRecipients     = errors.New("campaign has no recipients")
	ErrCampaignAlreadySent      = errors.New("campaign already sent")
	ErrScheduleTimeTooSoon      = errors.New("schedule time is too soon")

	// Wallet errors
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Media errors
	ErrMediaNotFound    = errors.New("media asset not found")
	ErrMediaTooLarge    = errors.New("media file is too large")
	ErrMediaInvalidType = errors.New("unsupported media type")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsNoValidNumbers(err error) bool {
	return errors.Is(err, ErrNoValidNumbers)
}

func IsContactNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound)
}

func IsContactAccessDenied(err error) bool {
	return errors.Is(err, ErrContactAccessDenied)
}

func IsIncompleteNumber(err error) bool {
	return errors.Is(err, ErrIncompleteNumber)
}

func IsUnsupportedFileType(err error) bool {
	return errors.Is(err, ErrUnsupportedFileType)
}

func IsCapabilityCheckFailed(err error) bool {
	return errors.Is(err, ErrCapabilityCheckFailed)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

func IsTemplateAccessDenied(err error) bool {
	return errors.Is(err, ErrTemplateAccessDenied)
}

func IsTemplateNameRequired(err error) bool {
	return errors.Is(err, ErrTemplateNameRequired)
}

func IsTemplateTextRequired(err error) bool {
	return errors.Is(err, ErrTemplateTextRequired)
}

func IsTemplateInvalidType(err error) bool {
	return errors.Is(err, ErrTemplateInvalidType)
}

func IsSuggestionsRequired(err error) bool {
	return errors.Is(err, ErrSuggestionsRequired)
}

func IsCardTitleRequired(err error) bool {
	return errors.Is(err, ErrCardTitleRequired)
}

func IsCardMediaRequired(err error) bool {
	return errors.Is(err, ErrCardMediaRequired)
}

func IsCarouselCardsRequired(err error) bool {
	return errors.Is(err, ErrCarouselCardsRequired)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignAccessDenied(err error) bool {
	return errors.Is(err, ErrCampaignAccessDenied)
}

func IsCampaignNameRequired(err error) bool {
	return errors.Is(err, ErrCampaignNameRequired)
}

func IsCampaignUpdateNotAllowed(err error) bool {
	return errors.Is(err, ErrCampaignUpdateNotAllowed)
}

func IsCampaignNoRecipients(err error) bool {
	return errors.Is(err, ErrCampaignNoRecipients)
}

func IsCampaignAlreadySent(err error) bool {
	return errors.Is(err, ErrCampaignAlreadySent)
}

func IsScheduleTimeTooSoon(err error) bool {
	return errors.Is(err, ErrScheduleTimeTooSoon)
}

func IsWalletNotFound(err error) bool {
	return errors.Is(err, ErrWalletNotFound)
}

func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

func IsMediaNotFound(err error) bool {
	return errors.Is(err, ErrMediaNotFound)
}

func IsMediaTooLarge(err error) bool {
	return errors.Is(err, ErrMediaTooLarge)
}

func IsMediaInvalidType(err error) bool {
	return errors.Is(err, ErrMediaInvalidType)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
