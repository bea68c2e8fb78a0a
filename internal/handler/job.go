package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/job"
	"github.com/jeffandersoncharriot/ByteBoard/internal/middleware"
)

// JobHandler serves the standalone job listings.
type JobHandler struct {
	auth *auth.Authorizer
	jobs *job.Store
}

func NewJobHandler(authorizer *auth.Authorizer, jobs *job.Store) *JobHandler {
	return &JobHandler{auth: authorizer, jobs: jobs}
}

func (h *JobHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/jobs", h.list)
	r.GET("/jobs/ids/:jobId", h.get)
	r.GET("/jobs/users/:userId", h.listByAuthor)

	guarded := r.Group("/jobs", middleware.RequireAuth(h.auth))
	guarded.POST("", h.create)
	guarded.PUT("", h.update)
	guarded.DELETE("", h.delete)
}

type createJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Pay         float64 `json:"pay"`
}

func (h *JobHandler) create(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" {
		sendError(c, errs.InvalidInput("Title or Description is empty"))
		return
	}

	created, err := h.jobs.Create(c.Request.Context(), req.Title, req.Description, req.Pay, currentUser.ID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *JobHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("jobId"))
	if err != nil {
		sendError(c, err)
		return
	}

	j, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) list(c *gin.Context) {
	jobs, err := h.jobs.All(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) listByAuthor(c *gin.Context) {
	authorID, err := parseID(c.Param("userId"))
	if err != nil {
		sendError(c, err)
		return
	}

	jobs, err := h.jobs.AllByAuthor(c.Request.Context(), authorID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) update(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	jobID, err := parseID(stringField(patch, "jobId"))
	if err != nil {
		sendError(c, err)
		return
	}

	j, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		sendError(c, err)
		return
	}

	if j.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	updated, err := h.jobs.Update(ctx, jobID, patch, true)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JobHandler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	jobID, err := parseID(stringField(patch, "jobId"))
	if err != nil {
		sendError(c, err)
		return
	}

	j, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		sendError(c, err)
		return
	}

	if j.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	deleted, err := h.jobs.Delete(ctx, jobID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
