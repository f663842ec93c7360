package problem

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for problem data access.
type Repository interface {
	// Problem operations
	CreateProblem(ctx context.Context, p *Problem) error
	GetProblemByID(ctx context.Context, id uuid.UUID) (*Problem, error)
	ListProblems(ctx context.Context, teamID uuid.UUID, keyword, difficulty string, limit, offset int) ([]*Problem, int64, error)
	UpdateProblem(ctx context.Context, p *Problem) error
	DeleteProblem(ctx context.Context, id uuid.UUID) error

	// Problem set operations
	CreateSet(ctx context.Context, set *ProblemSet) error
	GetSetByID(ctx context.Context, id uuid.UUID) (*ProblemSet, error)
	ListSets(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*ProblemSet, int64, error)
	UpdateSet(ctx context.Context, set *ProblemSet) error
	ReplaceSetProblems(ctx context.Context, set *ProblemSet, problems []Problem) error
	DeleteSet(ctx context.Context, id uuid.UUID) error

	// ProblemsByIDs resolves problems within one team, for attaching to
	// sets.
	ProblemsByIDs(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) ([]Problem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new problem repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProblem(ctx context.Context, p *Problem) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetProblemByID(ctx context.Context, id uuid.UUID) (*Problem, error) {
	var p Problem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListProblems lists a team's problems, newest first. Keyword matches
// title or description, case-insensitive.
func (r *repository) ListProblems(ctx context.Context, teamID uuid.UUID, keyword, difficulty string, limit, offset int) ([]*Problem, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&Problem{}).Where("team_id = ?", teamID)
	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var problems []*Problem
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&problems).Error
	if err != nil {
		return nil, 0, err
	}
	return problems, total, nil
}

func (r *repository) UpdateProblem(ctx context.Context, p *Problem) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteProblem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Problem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProblemNotFound
	}
	return nil
}

func (r *repository) CreateSet(ctx context.Context, set *ProblemSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *repository) GetSetByID(ctx context.Context, id uuid.UUID) (*ProblemSet, error) {
	var set ProblemSet
	err := r.db.WithContext(ctx).
		Preload("Problems").
		Where("id = ?", id).
		First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemSetNotFound
		}
		return nil, err
	}
	return &set, nil
}

// ListSets lists a team's problem sets ordered by deadline, most
// recent first, undated sets last.
func (r *repository) ListSets(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*ProblemSet, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&ProblemSet{}).Where("team_id = ?", teamID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sets []*ProblemSet
	err := q.Preload("Problems").
		Order("deadline IS NULL, deadline DESC").
		Limit(limit).
		Offset(offset).
		Find(&sets).Error
	if err != nil {
		return nil, 0, err
	}
	return sets, total, nil
}

func (r *repository) UpdateSet(ctx context.Context, set *ProblemSet) error {
	return r.db.WithContext(ctx).Save(set).Error
}

// ReplaceSetProblems replaces the set's problem association.
func (r *repository) ReplaceSetProblems(ctx context.Context, set *ProblemSet, problems []Problem) error {
	return r.db.WithContext(ctx).Model(set).Association("Problems").Replace(problems)
}

func (r *repository) DeleteSet(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&ProblemSet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProblemSetNotFound
	}
	return nil
}

func (r *repository) ProblemsByIDs(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) ([]Problem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var problems []Problem
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id IN ?", teamID, ids).
		Find(&problems).Error
	if err != nil {
		return nil, err
	}
	return problems, nil
}
