package team

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/problemhub/server/internal/module/auth"
)

// Handler handles HTTP requests for teams.
type Handler struct {
	service *Service
}

// NewHandler creates a new team handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the team routes. All routes require
// authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.SearchTeams)
		teams.GET("/my-team", h.MyTeam)
		teams.GET("/:id", h.GetTeam)
		teams.PUT("/:id", h.UpdateTeam)
		teams.DELETE("/:id", h.DeleteTeam)

		teams.POST("/:id/join", h.RequestJoin)
		teams.PUT("/:id/members/:user_id", h.RespondToRequest)
		teams.POST("/:id/switch", h.SwitchTeam)
	}
}

// CreateTeam handles team creation.
//
//	@Summary		Create team
//	@Description	Create a team and become its leader
//	@Tags			Team
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateTeamRequest	true	"Create team request"
//	@Success		201		{object}	TeamResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/teams [post]
func (h *Handler) CreateTeam(c *gin.Context) {
	userID := auth.GetUserID(c)

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), team.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SearchTeams handles team search.
//
//	@Summary		Search teams
//	@Description	List teams, optionally filtered by name
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Param			keyword		query		string	false	"Name filter (case-insensitive)"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	ListResponse
//	@Router			/teams [get]
func (h *Handler) SearchTeams(c *gin.Context) {
	req := SearchRequest{}
	req.Page = 1
	req.PageSize = 20
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teams, total, err := h.service.SearchTeams(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Teams:    teams,
		PageInfo: req.Info(total),
	})
}

// MyTeam returns the caller's current team.
//
//	@Summary		Get my team
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	TeamResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/teams/my-team [get]
func (h *Handler) MyTeam(c *gin.Context) {
	userID := auth.GetUserID(c)

	resp, err := h.service.MyTeam(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeam returns a team by ID.
//
//	@Summary		Get team
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Team ID"
//	@Success		200	{object}	TeamResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/teams/{id} [get]
func (h *Handler) GetTeam(c *gin.Context) {
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTeam updates a team. Leader only.
//
//	@Summary		Update team
//	@Tags			Team
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Team ID"
//	@Param			request	body		UpdateTeamRequest	true	"Update request"
//	@Success		200		{object}	TeamResponse
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/teams/{id} [put]
func (h *Handler) UpdateTeam(c *gin.Context) {
	userID := auth.GetUserID(c)
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.UpdateTeam(c.Request.Context(), userID, teamID, &req); err != nil {
		h.handleError(c, err)
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTeam deletes a team. Leader only.
//
//	@Summary		Delete team
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Team ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/teams/{id} [delete]
func (h *Handler) DeleteTeam(c *gin.Context) {
	userID := auth.GetUserID(c)
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// RequestJoin files a join request.
//
//	@Summary		Request to join a team
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Team ID"
//	@Success		201	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/teams/{id}/join [post]
func (h *Handler) RequestJoin(c *gin.Context) {
	userID := auth.GetUserID(c)
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RequestJoin(c.Request.Context(), userID, teamID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "join request sent"})
}

// RespondToRequest applies a leader's decision on a join request.
//
//	@Summary		Respond to a join request
//	@Tags			Team
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Team ID"
//	@Param			user_id	path		string			true	"Applicant user ID"
//	@Param			request	body		RespondRequest	true	"Decision"
//	@Success		200		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/teams/{id}/members/{user_id} [put]
func (h *Handler) RespondToRequest(c *gin.Context) {
	leaderID := auth.GetUserID(c)
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	applicantID, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accept := req.Status == "accepted"
	if err := h.service.RespondToRequest(c.Request.Context(), leaderID, teamID, applicantID, accept); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request " + req.Status})
}

// SwitchTeam makes the team the caller's current team.
//
//	@Summary		Switch current team
//	@Tags			Team
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Team ID"
//	@Success		200	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/teams/{id}/switch [post]
func (h *Handler) SwitchTeam(c *gin.Context) {
	userID := auth.GetUserID(c)
	teamID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.SwitchTeam(c.Request.Context(), userID, teamID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team switched"})
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
	case errors.Is(err, ErrTeamNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
	case errors.Is(err, ErrTeamNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "team name already taken"})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "already a member or pending request exists"})
	case errors.Is(err, ErrMembershipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "membership not found"})
	case errors.Is(err, ErrRequestNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "join request is not pending"})
	case errors.Is(err, ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "not an accepted member of this team"})
	case errors.Is(err, ErrNotLeader):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the team leader can do this"})
	case errors.Is(err, ErrNoCurrentTeam):
		c.JSON(http.StatusNotFound, gin.H{"error": "not in a team"})
	case errors.Is(err, ErrTeamMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "resource belongs to another team"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
