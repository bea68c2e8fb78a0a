package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

// SessionHandler serves login, logout and the session-bound self lookups.
type SessionHandler struct {
	auth  *auth.Authorizer
	users *user.Store
}

func NewSessionHandler(authorizer *auth.Authorizer, users *user.Store) *SessionHandler {
	return &SessionHandler{auth: authorizer, users: users}
}

func (h *SessionHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/session/login", h.login)
	r.GET("/session/logout", h.logout)
	r.GET("/session/refresh", h.refresh)
	r.GET("/session/getUsername", h.getUsername)
	r.GET("/session/getSelf", h.getSelf)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SessionHandler) login(c *gin.Context) {
	ctx := c.Request.Context()

	if _, sess := h.auth.Authenticate(ctx, c.Request); sess != nil {
		sendError(c, errs.InvalidInput("You are already logged in, log out to log in on another account"))
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		sendError(c, errs.InvalidInput("Unsuccessful login: empty username or password given"))
		return
	}

	if !h.users.CheckCredentials(ctx, req.Username, req.Password) {
		sendError(c, errs.InvalidInput("Unsuccessful login: Invalid username / password given for user: %s", req.Username))
		return
	}

	u, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		sendError(c, err)
		return
	}

	if _, err := h.auth.Login(ctx, c.Writer, u.ID); err != nil {
		sendError(c, err)
		return
	}

	logger.Info("successful login", map[string]any{"username": req.Username})
	c.String(http.StatusOK, fmt.Sprintf("successful login for user %s", req.Username))
}

func (h *SessionHandler) logout(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := h.auth.CurrentUser(ctx, c.Request)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.auth.Logout(ctx, c.Writer, c.Request); err != nil {
		sendError(c, err)
		return
	}

	logger.Info("logged out user", map[string]any{"username": u.Username})
	c.Status(http.StatusOK)
}

func (h *SessionHandler) refresh(c *gin.Context) {
	if _, err := h.auth.Refresh(c.Request.Context(), c.Writer, c.Request); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *SessionHandler) getUsername(c *gin.Context) {
	u, err := h.auth.CurrentUser(c.Request.Context(), c.Request)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": u.Username})
}

func (h *SessionHandler) getSelf(c *gin.Context) {
	u, err := h.auth.CurrentUser(c.Request.Context(), c.Request)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.FullView(u))
}
