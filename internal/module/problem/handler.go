package problem

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/module/team"
	"github.com/problemhub/server/internal/utils/pagination"
)

// Handler handles HTTP requests for problems and problem sets.
type Handler struct {
	service *Service
}

// NewHandler creates a new problem handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the problem routes. All routes require
// authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	problems := r.Group("/problems")
	{
		problems.POST("", h.CreateProblem)
		problems.GET("", h.ListProblems)
		problems.GET("/:id", h.GetProblem)
		problems.PUT("/:id", h.UpdateProblem)
		problems.DELETE("/:id", h.DeleteProblem)
	}

	sets := r.Group("/problem-sets")
	{
		sets.POST("", h.CreateSet)
		sets.GET("", h.ListSets)
		sets.GET("/:id", h.GetSet)
		sets.PUT("/:id", h.UpdateSet)
		sets.DELETE("/:id", h.DeleteSet)
	}
}

// CreateProblem creates a problem in the caller's current team.
//
//	@Summary		Create problem
//	@Tags			Problem
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateProblemRequest	true	"Problem"
//	@Success		201		{object}	Problem
//	@Failure		400		{object}	map[string]string
//	@Router			/problems [post]
func (h *Handler) CreateProblem(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreateProblem(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListProblems lists the caller's current team's problems.
//
//	@Summary		List problems
//	@Tags			Problem
//	@Produce		json
//	@Security		BearerAuth
//	@Param			keyword		query		string	false	"Keyword filter"
//	@Param			difficulty	query		string	false	"Difficulty filter"
//	@Success		200			{object}	ProblemListResponse
//	@Router			/problems [get]
func (h *Handler) ListProblems(c *gin.Context) {
	userID := auth.GetUserID(c)

	req := ListProblemsRequest{}
	req.Page = pagination.DefaultPage
	req.PageSize = pagination.DefaultPageSize
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problems, total, err := h.service.ListProblems(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProblemListResponse{
		Problems: problems,
		PageInfo: req.Info(total),
	})
}

// GetProblem returns one problem.
//
//	@Summary		Get problem
//	@Tags			Problem
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Problem ID"
//	@Success		200	{object}	Problem
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/problems/{id} [get]
func (h *Handler) GetProblem(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetProblem(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProblem updates a problem.
//
//	@Summary		Update problem
//	@Tags			Problem
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Problem ID"
//	@Param			request	body		UpdateProblemRequest	true	"Update"
//	@Success		200		{object}	Problem
//	@Failure		403		{object}	map[string]string
//	@Router			/problems/{id} [put]
func (h *Handler) UpdateProblem(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateProblem(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProblem deletes a problem.
//
//	@Summary		Delete problem
//	@Tags			Problem
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Problem ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/problems/{id} [delete]
func (h *Handler) DeleteProblem(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProblem(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "problem deleted"})
}

// CreateSet creates a problem set.
//
//	@Summary		Create problem set
//	@Tags			ProblemSet
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateSetRequest	true	"Problem set"
//	@Success		201		{object}	ProblemSet
//	@Failure		400		{object}	map[string]string
//	@Router			/problem-sets [post]
func (h *Handler) CreateSet(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := h.service.CreateSet(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, set)
}

// ListSets lists the caller's current team's problem sets.
//
//	@Summary		List problem sets
//	@Tags			ProblemSet
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Router			/problem-sets [get]
func (h *Handler) ListSets(c *gin.Context) {
	userID := auth.GetUserID(c)

	p := pagination.New()
	if err := c.ShouldBindQuery(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sets, total, err := h.service.ListSets(c.Request.Context(), userID, p.Limit(), p.Offset())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problem_sets": sets,
		"page_info":    p.Info(total),
	})
}

// GetSet returns one problem set with its problems.
//
//	@Summary		Get problem set
//	@Tags			ProblemSet
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Problem set ID"
//	@Success		200	{object}	ProblemSet
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/problem-sets/{id} [get]
func (h *Handler) GetSet(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	set, err := h.service.GetSet(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// UpdateSet updates a problem set.
//
//	@Summary		Update problem set
//	@Tags			ProblemSet
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Problem set ID"
//	@Param			request	body		UpdateSetRequest	true	"Update"
//	@Success		200		{object}	ProblemSet
//	@Failure		403		{object}	map[string]string
//	@Router			/problem-sets/{id} [put]
func (h *Handler) UpdateSet(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := h.service.UpdateSet(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// DeleteSet deletes a problem set.
//
//	@Summary		Delete problem set
//	@Tags			ProblemSet
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Problem set ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/problem-sets/{id} [delete]
func (h *Handler) DeleteSet(c *gin.Context) {
	userID := auth.GetUserID(c)
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSet(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "problem set deleted"})
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
	case errors.Is(err, ErrProblemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
	case errors.Is(err, ErrProblemSetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "problem set not found"})
	case errors.Is(err, ErrNoTeamSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "join or create a team first"})
	case errors.Is(err, ErrInvalidDifficulty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid difficulty"})
	case errors.Is(err, team.ErrTeamMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "resource belongs to another team"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
