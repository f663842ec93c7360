package team

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus represents the state of a membership.
type MemberStatus string

const (
	// MemberStatusPending is a join request awaiting a leader decision.
	MemberStatusPending MemberStatus = "pending"
	// MemberStatusAccepted is full membership.
	MemberStatusAccepted MemberStatus = "accepted"
)

// IsValid checks if the status is a valid member status.
func (s MemberStatus) IsValid() bool {
	return s == MemberStatusPending || s == MemberStatusAccepted
}

// MemberRole represents a member's role within a team.
type MemberRole string

const (
	RoleLeader MemberRole = "leader"
	RoleMember MemberRole = "member"
)

// Team represents a collaboration team.
type Team struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations (not loaded by default)
	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// TeamMember is one membership row. The composite primary key makes a
// duplicate join request a constraint violation rather than a logic
// error, so two concurrent requests cannot both insert.
type TeamMember struct {
	TeamID    uuid.UUID    `json:"team_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:uuid;primaryKey"`
	Status    MemberStatus `json:"status" gorm:"not null;default:pending"`
	Role      MemberRole   `json:"role" gorm:"not null;default:member"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName returns the database table name.
func (TeamMember) TableName() string {
	return "team_members"
}

// IsAccepted returns true if the membership is full membership.
func (m *TeamMember) IsAccepted() bool {
	return m.Status == MemberStatusAccepted
}

// IsPending returns true if the membership is an open join request.
func (m *TeamMember) IsPending() bool {
	return m.Status == MemberStatusPending
}

// IsLeader returns true if the member leads the team. Only accepted
// members count.
func (m *TeamMember) IsLeader() bool {
	return m.Role == RoleLeader && m.IsAccepted()
}
