package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/middleware"
	"github.com/jeffandersoncharriot/ByteBoard/internal/post"
)

// PostHandler serves the post CRUD, topic listings and voting.
type PostHandler struct {
	auth  *auth.Authorizer
	posts *post.Store
}

func NewPostHandler(authorizer *auth.Authorizer, posts *post.Store) *PostHandler {
	return &PostHandler{auth: authorizer, posts: posts}
}

func (h *PostHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/posts", h.list)
	r.GET("/posts/topics", h.listTopics)
	r.GET("/posts/jobs", h.listJobPosts)
	r.GET("/posts/ids/:postId", h.get)
	r.GET("/posts/users/:userId", h.listByAuthor)

	guarded := r.Group("/posts", middleware.RequireAuth(h.auth))
	guarded.POST("", h.create)
	guarded.PUT("", h.update)
	guarded.PUT("/vote", h.vote)
	guarded.DELETE("", h.delete)
}

type createPostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	TopicNames []string `json:"topicNames"`
}

func (h *PostHandler) create(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Content == "" {
		sendError(c, errs.InvalidInput("Title or Content is empty"))
		return
	}

	created, err := h.posts.Create(c.Request.Context(), req.Title, req.Content, req.TopicNames, currentUser.ID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *PostHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("postId"))
	if err != nil {
		sendError(c, err)
		return
	}

	p, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) list(c *gin.Context) {
	posts, err := h.posts.All(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) listTopics(c *gin.Context) {
	topics, err := h.posts.AllTopics(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *PostHandler) listJobPosts(c *gin.Context) {
	posts, err := h.posts.AllJobPosts(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) listByAuthor(c *gin.Context) {
	authorID, err := parseID(c.Param("userId"))
	if err != nil {
		sendError(c, err)
		return
	}

	posts, err := h.posts.AllByAuthor(c.Request.Context(), authorID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) update(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	postID, err := parseID(stringField(patch, "postId"))
	if err != nil {
		sendError(c, err)
		return
	}

	p, err := h.posts.Get(ctx, postID)
	if err != nil {
		sendError(c, err)
		return
	}

	// Only the author or an admin may edit.
	if p.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	updated, err := h.posts.Update(ctx, postID, patch, true)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type voteRequest struct {
	PostID string `json:"postId"`
	Vote   int    `json:"vote"`
}

func (h *PostHandler) vote(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errs.InvalidInput("Request body is not valid JSON"))
		return
	}

	postID, err := parseID(req.PostID)
	if err != nil {
		sendError(c, err)
		return
	}

	if err := h.posts.Vote(c.Request.Context(), postID, currentUser.ID, req.Vote); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *PostHandler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	currentUser := middleware.CurrentUser(c)

	patch, err := bindPatch(c)
	if err != nil {
		sendError(c, err)
		return
	}

	postID, err := parseID(stringField(patch, "postId"))
	if err != nil {
		sendError(c, err)
		return
	}

	p, err := h.posts.Get(ctx, postID)
	if err != nil {
		sendError(c, err)
		return
	}

	if p.AuthorID != currentUser.ID && !h.auth.IsAdmin(ctx, c.Request) {
		sendUnauthorized(c)
		return
	}

	deleted, err := h.posts.Delete(ctx, postID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
