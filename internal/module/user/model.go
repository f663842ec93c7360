package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
//
// CurrentTeamID is the team whose data the user is currently working
// in. It is nil until the user creates or joins a team, and is cleared
// when that team is deleted.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"not null"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"column:avatar_url"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	IsAdmin      bool       `json:"is_admin" gorm:"column:is_admin;default:false"`

	CurrentTeamID *uuid.UUID `json:"current_team_id,omitempty" gorm:"type:uuid;column:current_team_id;index"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// HasTeam returns true if the user has an active team selected.
func (u *User) HasTeam() bool {
	return u.CurrentTeamID != nil && *u.CurrentTeamID != uuid.Nil
}
