package submission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for submission data access.
type Repository interface {
	// Submission operations
	Create(ctx context.Context, sub *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	ListByProblem(ctx context.Context, problemID uuid.UUID, limit, offset int) ([]*Submission, int64, error)
	UnmarkReferences(ctx context.Context, problemID uuid.UUID) error
	SetReference(ctx context.Context, id uuid.UUID, isReference bool) error

	// Comment operations
	CreateComment(ctx context.Context, comment *Comment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListCommentsByProblem(ctx context.Context, problemID uuid.UUID) ([]*Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new submission repository.
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

func (r *repository) Create(ctx context.Context, sub *Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var sub Submission
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListByProblem lists a problem's submissions, newest first.
func (r *repository) ListByProblem(ctx context.Context, problemID uuid.UUID, limit, offset int) ([]*Submission, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&Submission{}).Where("problem_id = ?", problemID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []*Submission
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// UnmarkReferences clears the reference flag on every submission of a
// problem.
func (r *repository) UnmarkReferences(ctx context.Context, problemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("problem_id = ? AND is_reference_solution = ?", problemID, true).
		Update("is_reference_solution", false).Error
}

func (r *repository) SetReference(ctx context.Context, id uuid.UUID, isReference bool) error {
	result := r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("is_reference_solution", isReference)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *repository) CreateComment(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) GetCommentByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var comment Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByProblem lists a problem's comments oldest first, as a
// discussion thread reads.
func (r *repository) ListCommentsByProblem(ctx context.Context, problemID uuid.UUID) ([]*Comment, error) {
	var comments []*Comment
	err := r.db.WithContext(ctx).
		Where("problem_id = ?", problemID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
