package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for team data access.
type Repository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uuid.UUID) (*Team, error)
	SearchTeams(ctx context.Context, query string, limit, offset int) ([]*Team, int64, error)
	UpdateTeam(ctx context.Context, team *Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error

	// Member operations
	AddMember(ctx context.Context, member *TeamMember) error
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*TeamMember, error)
	ListMembersWithUsers(ctx context.Context, teamID uuid.UUID) ([]MemberWithUser, error)
	UpdateMemberStatus(ctx context.Context, teamID, userID uuid.UUID, status MemberStatus) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveAllMembers(ctx context.Context, teamID uuid.UUID) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// MemberWithUser represents a membership row joined with user details.
type MemberWithUser struct {
	TeamMember
	Email     string
	Name      string
	AvatarURL string
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new team repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a new repository bound to the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// CreateTeam creates a new team. The unique index on name surfaces as
// gorm.ErrDuplicatedKey.
func (r *repository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetTeamByID retrieves a team by ID.
func (r *repository) GetTeamByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	var team Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// SearchTeams lists teams whose name matches the query, newest first.
// The match is case-insensitive; an empty query lists everything.
func (r *repository) SearchTeams(ctx context.Context, query string, limit, offset int) ([]*Team, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&Team{})
	if query != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []*Team
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// UpdateTeam updates a team.
func (r *repository) UpdateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// DeleteTeam deletes a team row.
func (r *repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Team{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AddMember inserts a membership row. A duplicate (team_id, user_id)
// surfaces as gorm.ErrDuplicatedKey.
func (r *repository) AddMember(ctx context.Context, member *TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetMember retrieves a membership row in any status.
func (r *repository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*TeamMember, error) {
	var member TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListMembersWithUsers lists all membership rows with user details.
func (r *repository) ListMembersWithUsers(ctx context.Context, teamID uuid.UUID) ([]MemberWithUser, error) {
	var results []MemberWithUser
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("team_members.*, users.email, users.name, users.avatar_url").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.created_at ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateMemberStatus updates a membership's status.
func (r *repository) UpdateMemberStatus(ctx context.Context, teamID, userID uuid.UUID, status MemberStatus) error {
	result := r.db.WithContext(ctx).
		Model(&TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// RemoveMember deletes a membership row.
func (r *repository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// RemoveAllMembers deletes every membership row of a team.
func (r *repository) RemoveAllMembers(ctx context.Context, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&TeamMember{}).Error
}
