package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/comment"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/middleware"
)

// CommentHandler serves the comment routes nested under /posts/comments.
type CommentHandler struct {
	auth     *auth.Authorizer
	comments *comment.Store
}

func NewCommentHandler(authorizer *auth.Authorizer, comments *comment.Store) *CommentHandler {
	return &CommentHandler{auth: authorizer, comments: comments}
}

func (h *CommentHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/posts/comments/ids/:commentId", h.get)
	r.GET("/posts/comments/posts/:postId", h.listForPost)
	r.GET("/posts/comments/users/:userId", h.listByAuthor)

	guarded := r.Group("/posts/comments", middleware.RequireAuth(h.auth))
	guarded.POST("", h.create)
	guarded.PUT("", h.update)
	guarded.PUT("/vote", h.vote)
	guarded.DELETE("", h.delete)
}

type createCommentRequest struct {
	Content string `json:"content"`
	PostID  string `json:"postId"`
}

func (h *CommentHandler) create(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		sendError(c, errs.InvalidInput("Content is empty"))
		return
	}

	postID, err := parseID(req.PostID)
	if err != nil {
		sendError(c, err)
		return
	}

	created, err := h.comments.Create(c.Request.Context(), req.Content, postID, currentUser.ID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *CommentHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("commentId"))
	if err != nil {
		sendError(c, err)
		return
	}

	cm, err := h.comments.Get(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *CommentHandler) listForPost(c *gin.Context) {
	postID, err := parseID(c.Param("postId"))
	if err != nil {
		sendError(c, err)
		return
	}

	comments, err := h.comments.AllForPost(c.Request.Context(), postID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) listByAuthor(c *gin.Context) {
	authorID, err := parseID(c.Param("userId"))
	if err != nil {
		sendError(c, err)
		return
	}

	comments, err := h.comments.AllByAuthor(c.Request.Context(), authorID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) update(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	commentID, err := parseID(stringField(patch, "commentId"))
	if err != nil {
		sendError(c, err)
		return
	}

	cm, err := h.comments.Get(ctx, commentID)
	if err != nil {
		sendError(c, err)
		return
	}

	if cm.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	updated, err := h.comments.Update(ctx, commentID, patch, true)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type commentVoteRequest struct {
	CommentID string `json:"commentId"`
	Vote      int    `json:"vote"`
}

func (h *CommentHandler) vote(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req commentVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errs.InvalidInput("Request body is not valid JSON"))
		return
	}

	commentID, err := parseID(req.CommentID)
	if err != nil {
		sendError(c, err)
		return
	}

	if err := h.comments.Vote(c.Request.Context(), commentID, currentUser.ID, req.Vote); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CommentHandler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	commentID, err := parseID(stringField(patch, "commentId"))
	if err != nil {
		sendError(c, err)
		return
	}

	cm, err := h.comments.Get(ctx, commentID)
	if err != nil {
		sendError(c, err)
		return
	}

	if cm.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	deleted, err := h.comments.Delete(ctx, commentID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
