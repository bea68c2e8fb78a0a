package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
)

// HomeHandler serves the landing route, which doubles as the session
// refresher for authenticated visitors, plus the health probe.
type HomeHandler struct {
	auth *auth.Authorizer
}

func NewHomeHandler(authorizer *auth.Authorizer) *HomeHandler {
	return &HomeHandler{auth: authorizer}
}

func (h *HomeHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/health", h.health)
	r.NoRoute(h.notFound)
}

func (h *HomeHandler) home(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := h.auth.CurrentUser(ctx, c.Request)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			c.String(http.StatusOK, "Hello and welcome to ByteBoard!")
			return
		}
		sendError(c, err)
		return
	}

	// Visiting home while logged in trades the session for a short-lived one.
	if _, err := h.auth.Refresh(ctx, c.Writer, c.Request); err != nil {
		sendError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Hello %s, welcome back to ByteBoard!", u.Username))
}

func (h *HomeHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HomeHandler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"errorMessage": "Invalid URL entered. Please try again"})
}
