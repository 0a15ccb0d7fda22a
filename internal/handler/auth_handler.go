package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

type AuthHandler struct {
	Users  *service.UserService
	Resets *service.PasswordResetService
}

// SignupHandler godoc
// @Summary Sign up
// @Description Register a new user and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Signup payload"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.SignupRequest](c)

	result, err := h.Users.Signup(c.Request.Context(), &body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result.AuthResponse())
}

// LoginHandler godoc
// @Summary Log in
// @Description Authenticate by email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.LoginRequest](c)

	result, err := h.Users.Login(c.Request.Context(), &body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result.AuthResponse())
}

// ResetPasswordHandler godoc
// @Summary Reset password
// @Description Redeem a one-time reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.ResetPasswordRequest](c)

	result, err := h.Resets.ResetPassword(c.Request.Context(), &body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result.AuthResponse())
}

// ProfileHandler godoc
// @Summary Current profile
// @Description Returns the authenticated user's profile and stats
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /auth/profile [get]
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Users.Profile(middleware.CurrentUser(c)))
}
