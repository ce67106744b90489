package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/session"
	ucProfile "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/profile"
)

type AuthHandler struct {
	sessions *session.Manager
	signUp   *ucProfile.SignUp
	signIn   *ucProfile.SignIn
}

func NewAuthHandler(
	sessions *session.Manager,
	signUp *ucProfile.SignUp,
	signIn *ucProfile.SignIn,
) *AuthHandler {
	return &AuthHandler{sessions: sessions, signUp: signUp, signIn: signIn}
}

// --------- Requests ---------

type SignUpRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.signUp.Execute(c.Request.Context(), ucProfile.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, p)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.signIn.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, p)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	tokens, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// SignOut runs behind Auth so the access token can be revoked too.
func (h *AuthHandler) SignOut(c *gin.Context) {
	var req SignOutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.sessions.Teardown(c.Request.Context(), req.RefreshToken, middleware.Claims(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) startSession(c *gin.Context, status int, p *models.Profile) {
	tokens, err := h.sessions.Initialize(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, gin.H{
		"user":    p,
		"session": tokens,
	})
}
