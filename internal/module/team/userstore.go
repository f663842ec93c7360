package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRef is the team module's view of a user: just enough to read and
// maintain the current-team pointer.
type UserRef struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	CurrentTeamID *uuid.UUID `json:"current_team_id,omitempty" gorm:"type:uuid;column:current_team_id"`
}

// TableName returns the database table name.
func (UserRef) TableName() string {
	return "users"
}

// UserStore defines user lookups and current-team maintenance needed
// by the team module.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserRef, error)
	SetCurrentTeam(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) error
	ClearCurrentTeam(ctx context.Context, teamID uuid.UUID) error

	WithTx(tx *gorm.DB) UserStore
}

// userStore implements UserStore.
type userStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store for the team module.
func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

// WithTx returns a new store bound to the given transaction.
func (s *userStore) WithTx(tx *gorm.DB) UserStore {
	return &userStore{db: tx}
}

// GetUserByID retrieves a user by ID.
func (s *userStore) GetUserByID(ctx context.Context, id uuid.UUID) (*UserRef, error) {
	var u UserRef
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetCurrentTeam points a user at a team, or at nothing when teamID is
// nil.
func (s *userStore) SetCurrentTeam(ctx context.Context, userID uuid.UUID, teamID *uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&UserRef{}).
		Where("id = ?", userID).
		Update("current_team_id", teamID).Error
}

// ClearCurrentTeam clears the pointer for every user pointing at the
// team.
func (s *userStore) ClearCurrentTeam(ctx context.Context, teamID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&UserRef{}).
		Where("current_team_id = ?", teamID).
		Update("current_team_id", nil).Error
}
