package submission

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/module/problem"
	"github.com/problemhub/server/internal/module/team"
	"github.com/problemhub/server/internal/utils/pagination"
)

// Handler handles HTTP requests for submissions and comments.
type Handler struct {
	service *Service
}

// NewHandler creates a new submission handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the submission and comment routes. All
// routes require authentication; adminOnly marks routes restricted to
// admins.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	subs := r.Group("/submissions")
	{
		subs.POST("", h.Create)
		subs.GET("/problem/:problem_id", h.ListByProblem)
		subs.PUT("/:id/reference", adminOnly, h.MarkReference)
	}

	comments := r.Group("/comments")
	{
		comments.POST("", h.CreateComment)
		comments.GET("/problem/:problem_id", h.ListComments)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

// Create records a submission.
//
//	@Summary		Create submission
//	@Tags			Submission
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateSubmissionRequest	true	"Submission"
//	@Success		201		{object}	Submission
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/submissions [post]
func (h *Handler) Create(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// ListByProblem lists a problem's submissions.
//
//	@Summary		List submissions for a problem
//	@Tags			Submission
//	@Produce		json
//	@Security		BearerAuth
//	@Param			problem_id	path		string	true	"Problem ID"
//	@Success		200			{object}	SubmissionListResponse
//	@Failure		403			{object}	map[string]string
//	@Router			/submissions/problem/{problem_id} [get]
func (h *Handler) ListByProblem(c *gin.Context) {
	userID := auth.GetUserID(c)
	problemID, ok := h.parseID(c, "problem_id")
	if !ok {
		return
	}

	p := pagination.New()
	if err := c.ShouldBindQuery(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subs, total, err := h.service.ListByProblem(c.Request.Context(), userID, problemID, p.Limit(), p.Offset())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmissionListResponse{
		Submissions: subs,
		PageInfo:    p.Info(total),
	})
}

// MarkReference flags a submission as the reference solution.
//
//	@Summary		Mark reference solution
//	@Description	Admin only. Unmarks any prior reference for the same problem.
//	@Tags			Submission
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Submission ID"
//	@Success		200	{object}	Submission
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/submissions/{id}/reference [put]
func (h *Handler) MarkReference(c *gin.Context) {
	adminID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	sub, err := h.service.MarkReference(c.Request.Context(), adminID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CreateComment posts a comment on a problem.
//
//	@Summary		Create comment
//	@Tags			Comment
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateCommentRequest	true	"Comment"
//	@Success		201		{object}	Comment
//	@Failure		403		{object}	map[string]string
//	@Router			/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments lists a problem's comments.
//
//	@Summary		List comments for a problem
//	@Tags			Comment
//	@Produce		json
//	@Security		BearerAuth
//	@Param			problem_id	path		string	true	"Problem ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		403			{object}	map[string]string
//	@Router			/comments/problem/{problem_id} [get]
func (h *Handler) ListComments(c *gin.Context) {
	userID := auth.GetUserID(c)
	problemID, ok := h.parseID(c, "problem_id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), userID, problemID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment deletes a comment.
//
//	@Summary		Delete comment
//	@Description	Only the comment owner or an admin.
//	@Tags			Comment
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Comment ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
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
	case errors.Is(err, ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
	case errors.Is(err, ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, ErrNotCommentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the comment owner or an admin can delete it"})
	case errors.Is(err, problem.ErrProblemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
	case errors.Is(err, team.ErrTeamMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "resource belongs to another team"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
