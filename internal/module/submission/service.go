package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/module/problem"
)

// ProblemVerifier checks that a problem exists and is visible in the
// caller's current team. Satisfied by the problem service.
type ProblemVerifier interface {
	VerifyAccess(ctx context.Context, userID, problemID uuid.UUID) (*problem.Problem, error)
}

// Service provides submission and comment business logic.
type Service struct {
	repo     Repository
	problems ProblemVerifier
	admins   auth.AdminChecker
	logger   *zap.Logger
}

// NewService creates a new submission service.
func NewService(repo Repository, problems ProblemVerifier, admins auth.AdminChecker, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		problems: problems,
		admins:   admins,
		logger:   logger,
	}
}

// --- Submissions ---

// Create records a submission against a problem in the caller's
// current team.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateSubmissionRequest) (*Submission, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, req.ProblemID); err != nil {
		return nil, err
	}

	sub := &Submission{
		ID:                uuid.New(),
		ProblemID:         req.ProblemID,
		UserID:            userID,
		Approach:          req.Approach,
		ThoughtProcess:    req.ThoughtProcess,
		Pseudocode:        req.Pseudocode,
		Code:              req.Code,
		TimeComplexity:    req.TimeComplexity,
		SpaceComplexity:   req.SpaceComplexity,
		OptimizationNotes: req.OptimizationNotes,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.logger.Info("submission recorded",
		zap.String("submission_id", sub.ID.String()),
		zap.String("problem_id", req.ProblemID.String()),
		zap.String("user_id", userID.String()),
	)
	return sub, nil
}

// ListByProblem lists a problem's submissions, newest first.
func (s *Service) ListByProblem(ctx context.Context, userID, problemID uuid.UUID, limit, offset int) ([]*Submission, int64, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, problemID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByProblem(ctx, problemID, limit, offset)
}

// MarkReference flags a submission as the problem's reference
// solution. Any prior reference for the same problem is unflagged in
// the same transaction, so the problem never shows two.
func (s *Service) MarkReference(ctx context.Context, adminID, submissionID uuid.UUID) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.UnmarkReferences(ctx, sub.ProblemID); err != nil {
		return nil, fmt.Errorf("unmark references: %w", err)
	}
	if err := txRepo.SetReference(ctx, submissionID, true); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("reference solution marked",
		zap.String("submission_id", submissionID.String()),
		zap.String("problem_id", sub.ProblemID.String()),
		zap.String("admin_id", adminID.String()),
	)

	sub.IsReferenceSolution = true
	return sub, nil
}

// --- Comments ---

// CreateComment posts a comment on a problem in the caller's current
// team.
func (s *Service) CreateComment(ctx context.Context, userID uuid.UUID, req *CreateCommentRequest) (*Comment, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, req.ProblemID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.New(),
		ProblemID: req.ProblemID,
		UserID:    userID,
		Content:   req.Content,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListComments lists a problem's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, userID, problemID uuid.UUID) ([]*Comment, error) {
	if _, err := s.problems.VerifyAccess(ctx, userID, problemID); err != nil {
		return nil, err
	}
	return s.repo.ListCommentsByProblem(ctx, problemID)
}

// DeleteComment deletes a comment. Only the comment's author or an
// admin may delete it.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		isAdmin, err := s.admins.IsAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return ErrNotCommentOwner
		}
	}

	return s.repo.DeleteComment(ctx, commentID)
}
