package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

// UserHandler serves account registration, lookup, self-service edits and
// the admin-only account operations.
type UserHandler struct {
	auth  *auth.Authorizer
	users *user.Store
}

func NewUserHandler(authorizer *auth.Authorizer, users *user.Store) *UserHandler {
	return &UserHandler{auth: authorizer, users: users}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/users/register", h.register)
	r.POST("/users", h.createByAdmin)
	r.GET("/users", h.list)
	r.GET("/users/usernames/:username", h.getByUsername)
	r.GET("/users/ids/:userId", h.getByID)
	r.PUT("/users", h.updateSelf)
	r.DELETE("/users", h.deleteSelf)
	r.DELETE("/users/delete/:user", h.deleteByAdmin)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		sendError(c, errs.InvalidInput("The username, email, and/or password are not filled in correctly"))
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		sendError(c, err)
		return
	}

	logger.Info("registered user", map[string]any{"username": req.Username})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) createByAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errs.InvalidInput("Request body is not valid JSON"))
		return
	}

	created, err := h.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.FullView(created))
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.users.All(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}

	public := make([]map[string]any, 0, len(users))
	for i := range users {
		public = append(public, user.PublicView(&users[i]))
	}
	c.JSON(http.StatusOK, public)
}

func (h *UserHandler) getByUsername(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.viewFor(c, u))
}

func (h *UserHandler) getByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c.Param("userId"))
	if err != nil {
		sendError(c, err)
		return
	}

	u, err := h.users.GetByID(ctx, id)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.viewFor(c, u))
}

// viewFor picks the projection: the full record for admins and the
// subject themself, the public allow-list for everyone else.
func (h *UserHandler) viewFor(c *gin.Context, subject *user.User) map[string]any {
	ctx := c.Request.Context()

	requester, err := h.auth.CurrentUser(ctx, c.Request)
	if err == nil && (requester.Admin || auth.SameUser(requester, subject)) {
		return user.FullView(subject)
	}
	return user.PublicView(subject)
}

// credentialFields are the patch keys that require the requester to prove
// their current password before a self edit is applied.
var credentialFields = []string{"username", "email", "password"}

func (h *UserHandler) updateSelf(c *gin.Context) {
	ctx := c.Request.Context()

	requester, err := h.auth.CurrentUser(ctx, c.Request)
	if err != nil {
		sendError(c, err)
		return
	}

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	if touchesCredentials(patch) {
		if !h.users.CheckCredentials(ctx, requester.Username, stringField(patch, "currentPassword")) {
			sendError(c, errs.InvalidInput("Your password is incorrect"))
			return
		}
	}
	delete(patch, "currentPassword")

	updated, err := h.users.Update(ctx, requester.Username, patch, true)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.FullView(updated))
}

func touchesCredentials(patch map[string]any) bool {
	for _, field := range credentialFields {
		if v, ok := patch[field]; ok && v != nil {
			return true
		}
	}
	return false
}

func (h *UserHandler) deleteSelf(c *gin.Context) {
	ctx := c.Request.Context()

	requester, err := h.auth.CurrentUser(ctx, c.Request)
	if err != nil {
		sendError(c, err)
		return
	}

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	if !h.users.CheckCredentials(ctx, requester.Username, stringField(patch, "currentPassword")) {
		sendError(c, errs.InvalidInput("Your password is incorrect"))
		return
	}

	// The account is about to disappear; end its session first.
	if err := h.auth.Logout(ctx, c.Writer, c.Request); err != nil {
		sendError(c, err)
		return
	}

	deleted, err := h.users.Delete(ctx, requester.Username)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.PublicView(deleted))
}

func (h *UserHandler) deleteByAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	deleted, err := h.users.Delete(ctx, c.Param("user"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.PublicView(deleted))
}
