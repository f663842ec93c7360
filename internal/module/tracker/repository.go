package tracker

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for tracker data access.
type Repository interface {
	// Bookmark operations
	AddBookmark(ctx context.Context, b *Bookmark) error
	RemoveBookmark(ctx context.Context, userID, problemID uuid.UUID) error
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*Bookmark, error)

	// Read status operations
	GetReadStatus(ctx context.Context, userID, problemID uuid.UUID) (*ReadStatus, error)
	AddReadStatus(ctx context.Context, rs *ReadStatus) error
	RemoveReadStatus(ctx context.Context, userID, problemID uuid.UUID) error
	ListReadProblemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new tracker repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AddBookmark inserts a bookmark. A duplicate (user_id, problem_id)
// surfaces as gorm.ErrDuplicatedKey.
func (r *repository) AddBookmark(ctx context.Context, b *Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) RemoveBookmark(ctx context.Context, userID, problemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		Delete(&Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// ListBookmarks lists a user's bookmarks, newest first, with the
// problem resolved.
func (r *repository) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*Bookmark, error) {
	var bookmarks []*Bookmark
	err := r.db.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *repository) GetReadStatus(ctx context.Context, userID, problemID uuid.UUID) (*ReadStatus, error) {
	var rs ReadStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		First(&rs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // absence is not an error
		}
		return nil, err
	}
	return &rs, nil
}

func (r *repository) AddReadStatus(ctx context.Context, rs *ReadStatus) error {
	return r.db.WithContext(ctx).Create(rs).Error
}

func (r *repository) RemoveReadStatus(ctx context.Context, userID, problemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		Delete(&ReadStatus{}).Error
}

func (r *repository) ListReadProblemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ReadStatus{}).
		Where("user_id = ?", userID).
		Pluck("problem_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
