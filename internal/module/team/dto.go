package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/problemhub/server/internal/utils/pagination"
)

// CreateTeamRequest represents a request to create a team.
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateTeamRequest represents a request to update a team.
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// RespondRequest represents a leader's decision on a join request.
type RespondRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// SearchRequest represents team search query parameters.
type SearchRequest struct {
	Query string `form:"keyword"`
	pagination.Pagination
}

// MemberResponse represents a team member in API responses.
type MemberResponse struct {
	UserID    uuid.UUID    `json:"user_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Status    MemberStatus `json:"status"`
	Role      MemberRole   `json:"role"`
	JoinedAt  time.Time    `json:"joined_at"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	MemberCount int              `json:"member_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Members     []MemberResponse `json:"members,omitempty"`
}

// ToResponse converts a Team to TeamResponse.
func (t *Team) ToResponse(members []MemberWithUser) *TeamResponse {
	resp := &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	accepted := 0
	for _, m := range members {
		if m.Status == MemberStatusAccepted {
			accepted++
		}
		resp.Members = append(resp.Members, MemberResponse{
			UserID:    m.UserID,
			Name:      m.Name,
			Email:     m.Email,
			AvatarURL: m.AvatarURL,
			Status:    m.Status,
			Role:      m.Role,
			JoinedAt:  m.CreatedAt,
		})
	}
	resp.MemberCount = accepted

	return resp
}

// ListResponse represents a page of teams.
type ListResponse struct {
	Teams    []*TeamResponse     `json:"teams"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
