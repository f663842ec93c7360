package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/problemhub/server/internal/module/problem"
)

// ProblemVerifier checks that a problem exists and is visible in the
// caller's current team. Satisfied by the problem service.
type ProblemVerifier interface {
	VerifyAccess(ctx context.Context, userID, problemID uuid.UUID) (*problem.Problem, error)
}

// Service provides bookmark and read-status business logic. Rows here
// are personal, keyed by user, but adding one still requires the
// target problem to be visible in the caller's current team.
type Service struct {
	repo     Repository
	problems ProblemVerifier
	logger   *zap.Logger
}

// NewService creates a new tracker service.
func NewService(repo Repository, problems ProblemVerifier, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		problems: problems,
		logger:   logger,
	}
}

// AddBookmark bookmarks a problem for the user.
func (s *Service) AddBookmark(ctx context.Context, userID, problemID uuid.UUID) (*Bookmark, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, problemID); err != nil {
		return nil, err
	}

	b := &Bookmark{
		ID:        uuid.New(),
		UserID:    userID,
		ProblemID: problemID,
	}
	if err := s.repo.AddBookmark(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("add bookmark: %w", err)
	}
	return b, nil
}

// RemoveBookmark removes a bookmark.
func (s *Service) RemoveBookmark(ctx context.Context, userID, problemID uuid.UUID) error {
	return s.repo.RemoveBookmark(ctx, userID, problemID)
}

// ListBookmarks lists the user's bookmarks, newest first.
func (s *Service) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID)
}

// ToggleRead flips the read mark on a problem. Returns the new state:
// true when the problem is now read.
func (s *Service) ToggleRead(ctx context.Context, userID, problemID uuid.UUID) (bool, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, problemID); err != nil {
		return false, err
	}

	existing, err := s.repo.GetReadStatus(ctx, userID, problemID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.RemoveReadStatus(ctx, userID, problemID); err != nil {
			return false, fmt.Errorf("remove read status: %w", err)
		}
		return false, nil
	}

	rs := &ReadStatus{
		ID:        uuid.New(),
		UserID:    userID,
		ProblemID: problemID,
	}
	if err := s.repo.AddReadStatus(ctx, rs); err != nil {
		// A concurrent toggle may have inserted first; treat that as
		// already read.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("add read status: %w", err)
	}
	return true, nil
}

// MyRead returns the IDs of every problem the user has marked read.
func (s *Service) MyRead(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListReadProblemIDs(ctx, userID)
}
