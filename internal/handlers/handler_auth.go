package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles sign-up, sign-in and session requests.
type authHandler struct {
	identity portssvc.IdentitySvcFacade
}

// registerAuthRoutes sets up the public auth routes on public and the
// session routes on protected. loginLimit guards the login endpoint.
func registerAuthRoutes(public, protected *gin.RouterGroup, identity portssvc.IdentitySvcFacade, loginLimit gin.HandlerFunc) {
	h := &authHandler{identity: identity}

	auth := public.Group("/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", loginLimit, h.login)
	}

	session := protected.Group("/auth")
	{
		session.POST("/logout", h.logout)
		session.GET("/me", h.me)
	}
}

// signUp godoc
// @Summary Register a new user
// @Description Creates a user from an email and a password of at least 6 characters.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignUpRequest true "Sign-up credentials"
// @Success 201 {object} dto.SignUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	userID, err := h.identity.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.SignUpResponse{UserID: userID})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to sign in")
		return
	}

	logger.Info("User logged in", slog.String("user_id", session.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{UserID: session.UserID, Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// logout godoc
// @Summary End the current session
// @Description Revokes the bearer token of the request.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, _ := middleware.GetSessionFromCtx(c.Request.Context())

	if err := h.identity.SignOut(c.Request.Context(), session); err != nil {
		respondError(c, logger, err, "Failed to sign out")
		return
	}
	c.Status(http.StatusNoContent)
}

// me godoc
// @Summary Current user
// @Description Returns the user of the active session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.CurrentUserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, _ := middleware.GetSessionFromCtx(c.Request.Context())

	userID, err := h.identity.CurrentUser(c.Request.Context(), session)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve current user")
		return
	}
	c.JSON(http.StatusOK, dto.CurrentUserResponse{UserID: userID})
}
