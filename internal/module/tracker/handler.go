package tracker

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/module/problem"
	"github.com/problemhub/server/internal/module/team"
)

// Handler handles HTTP requests for bookmarks and read status.
type Handler struct {
	service *Service
}

// NewHandler creates a new tracker handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bookmark and read-status routes. All
// routes require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookmarks := r.Group("/bookmarks")
	{
		bookmarks.POST("", h.AddBookmark)
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.DELETE("/:problem_id", h.RemoveBookmark)
	}

	status := r.Group("/status")
	{
		status.POST("/toggle-read", h.ToggleRead)
		status.GET("/my-read", h.MyRead)
	}
}

// AddBookmark bookmarks a problem.
//
//	@Summary		Add bookmark
//	@Tags			Tracker
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		AddBookmarkRequest	true	"Bookmark"
//	@Success		201		{object}	Bookmark
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/bookmarks [post]
func (h *Handler) AddBookmark(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.AddBookmark(c.Request.Context(), userID, req.ProblemID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ListBookmarks lists the caller's bookmarks.
//
//	@Summary		List bookmarks
//	@Tags			Tracker
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Router			/bookmarks [get]
func (h *Handler) ListBookmarks(c *gin.Context) {
	userID := auth.GetUserID(c)

	bookmarks, err := h.service.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// RemoveBookmark removes a bookmark by problem ID.
//
//	@Summary		Remove bookmark
//	@Tags			Tracker
//	@Produce		json
//	@Security		BearerAuth
//	@Param			problem_id	path		string	true	"Problem ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/bookmarks/{problem_id} [delete]
func (h *Handler) RemoveBookmark(c *gin.Context) {
	userID := auth.GetUserID(c)
	problemID, ok := h.parseID(c, "problem_id")
	if !ok {
		return
	}

	if err := h.service.RemoveBookmark(c.Request.Context(), userID, problemID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
}

// ToggleRead flips the read mark on a problem.
//
//	@Summary		Toggle read status
//	@Tags			Tracker
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ToggleReadRequest	true	"Problem"
//	@Success		200		{object}	ToggleReadResponse
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/status/toggle-read [post]
func (h *Handler) ToggleRead(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req ToggleReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	read, err := h.service.ToggleRead(c.Request.Context(), userID, req.ProblemID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToggleReadResponse{ProblemID: req.ProblemID, Read: read})
}

// MyRead lists the IDs of problems the caller has marked read.
//
//	@Summary		List read problem IDs
//	@Tags			Tracker
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Router			/status/my-read [get]
func (h *Handler) MyRead(c *gin.Context) {
	userID := auth.GetUserID(c)

	ids, err := h.service.MyRead(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"problem_ids": ids})
}

func (h *Handler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps service errors to HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAlreadyBookmarked):
		c.JSON(http.StatusConflict, gin.H{"error": "problem already bookmarked"})
	case errors.Is(err, ErrBookmarkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
	case errors.Is(err, problem.ErrProblemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
	case errors.Is(err, team.ErrTeamMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "resource belongs to another team"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
