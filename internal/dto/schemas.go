package dto

import (
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/golang-jwt/jwt/v5"
)

var (
	Validate *validator.Validate
	Trans    ut.Translator
)

func InitValidator() {
	en := en.New()
	uni := ut.New(en, en)
	Trans, _ = uni.GetTranslator("en")

	Validate = validator.New()

	_ = enTranslations.RegisterDefaultTranslations(Validate, Trans)

	_ = Validate.RegisterValidation("trim", trimValue) // SIDE EFFECT: trims the value
	_ = Validate.RegisterValidation("notblank", validateNotBlank)
	registerNotBlankTranslation(Validate, Trans)
}

// Space Trimming, SIDE EFFECT!
func trimValue(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	trimed := strings.TrimSpace(value)
	fl.Field().SetString(trimed)

	return true
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func registerNotBlankTranslation(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation(
		"notblank",
		trans,
		func(ut ut.Translator) error {
			return ut.Add("notblank", "{0} must not be blank", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("notblank", fe.Field())
			return msg
		},
	)
}

// Auth

// Emails are stored exactly as sent, so they are neither trimmed nor lowercased.
type SignupRequest struct {
	Name       string  `json:"name" validate:"required,trim,min=1,max=100"`
	Email      string  `json:"email" validate:"required,email,max=254"`
	Password   string  `json:"password" validate:"required,notblank,max=256"`
	SkillLevel *string `json:"skillLevel" validate:"omitempty,max=50"`
	Batch      *string `json:"batch" validate:"omitempty,max=50"`
	Gender     *string `json:"gender" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,uuid"`
	NewPassword string `json:"newPassword" validate:"required,notblank,max=256"`
}

type ProfileOut struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	SkillLevel *string `json:"skillLevel"`
	Batch      *string `json:"batch"`
	Gender     *string `json:"gender"`
}

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        ProfileOut `json:"user"`
}

type ProfileResponse struct {
	ProfileOut
	CreatedAt       *time.Time `json:"createdAt"`
	Points          int        `json:"points"`
	Streak          int        `json:"streak"`
	TopicsCompleted int        `json:"topicsCompleted"`
	ProblemsSolved  int        `json:"problemsSolved"`
}

// Friends

type FriendRequestRequest struct {
	ToEmail string `json:"to_email" validate:"required,max=254"`
}

type FriendResponseRequest struct {
	FromEmail string `json:"from_email" validate:"required,max=254"`
}

type FriendsResponse struct {
	Friends []string `json:"friends"`
}

type OnlineFriendsResponse struct {
	Online []string `json:"online"`
}

type IncomingRequest struct {
	From      string    `json:"from"`
	CreatedAt time.Time `json:"created_at"`
}

type OutgoingRequest struct {
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

type IncomingRequestsResponse struct {
	Incoming []IncomingRequest `json:"incoming"`
}

type OutgoingRequestsResponse struct {
	Outgoing []OutgoingRequest `json:"outgoing"`
}

// Notifications

type MarkReadRequest struct {
	ID *string `json:"id"`
}

type NotificationOut struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationOut `json:"notifications"`
}

// Progress

type ProgressEntryOut struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

type ProgressResponse struct {
	Progress []ProgressEntryOut `json:"progress"`
}

// Common

type DetailResponse struct {
	Detail string `json:"detail"`
}

// Token

type UserJwtPayload struct {
	Type string `json:"type"` // must be "USER"
	jwt.RegisteredClaims
}
