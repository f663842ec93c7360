package problem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/problemhub/server/internal/module/team"
)

// Service provides problem and problem-set business logic. Every
// operation goes through the team gate: lists are filtered to the
// caller's current team and writes are checked against the resource's
// team.
type Service struct {
	repo   Repository
	gate   team.Gate
	logger *zap.Logger
}

// NewService creates a new problem service.
func NewService(repo Repository, gate team.Gate, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// --- Problems ---

// CreateProblem creates a problem in the caller's current team.
func (s *Service) CreateProblem(ctx context.Context, userID uuid.UUID, req *CreateProblemRequest) (*Problem, error) {
	teamID, err := s.gate.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, team.ErrNoCurrentTeam) {
			return nil, ErrNoTeamSelected
		}
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	source := req.Source
	if source == "" {
		source = SourceCustom
	}

	p := &Problem{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  difficulty,
		Tags:        req.Tags,
		Source:      source,
		URL:         req.URL,
		TeamID:      teamID,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateProblem(ctx, p); err != nil {
		return nil, fmt.Errorf("create problem: %w", err)
	}

	s.logger.Info("problem created",
		zap.String("problem_id", p.ID.String()),
		zap.String("team_id", teamID.String()),
	)
	return p, nil
}

// ListProblems lists the caller's current team's problems. A caller
// with no team sees an empty list, not an error.
func (s *Service) ListProblems(ctx context.Context, userID uuid.UUID, req *ListProblemsRequest) ([]*Problem, int64, error) {
	teamID, err := s.gate.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, team.ErrNoCurrentTeam) {
			return []*Problem{}, 0, nil
		}
		return nil, 0, err
	}

	return s.repo.ListProblems(ctx, teamID, req.Keyword, req.Difficulty, req.Limit(), req.Offset())
}

// GetProblem retrieves a problem, verifying it belongs to the caller's
// current team.
func (s *Service) GetProblem(ctx context.Context, userID, problemID uuid.UUID) (*Problem, error) {
	p, err := s.repo.GetProblemByID(ctx, problemID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeWrite(ctx, userID, p.TeamID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProblem updates a problem within the caller's current team.
func (s *Service) UpdateProblem(ctx context.Context, userID, problemID uuid.UUID, req *UpdateProblemRequest) (*Problem, error) {
	p, err := s.GetProblem(ctx, userID, problemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Difficulty != nil {
		if !req.Difficulty.IsValid() {
			return nil, ErrInvalidDifficulty
		}
		p.Difficulty = *req.Difficulty
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Source != nil {
		p.Source = *req.Source
	}
	if req.URL != nil {
		p.URL = *req.URL
	}

	if err := s.repo.UpdateProblem(ctx, p); err != nil {
		return nil, fmt.Errorf("update problem: %w", err)
	}
	return p, nil
}

// DeleteProblem deletes a problem within the caller's current team.
func (s *Service) DeleteProblem(ctx context.Context, userID, problemID uuid.UUID) error {
	if _, err := s.GetProblem(ctx, userID, problemID); err != nil {
		return err
	}
	return s.repo.DeleteProblem(ctx, problemID)
}

// VerifyAccess checks that a problem exists and is visible in the
// caller's current team. Other modules hang their problem-scoped
// operations on this.
func (s *Service) VerifyAccess(ctx context.Context, userID, problemID uuid.UUID) (*Problem, error) {
	return s.GetProblem(ctx, userID, problemID)
}

// --- Problem sets ---

// CreateSet creates a problem set in the caller's current team. Only
// problems of the same team can be attached; foreign IDs are dropped.
func (s *Service) CreateSet(ctx context.Context, userID uuid.UUID, req *CreateSetRequest) (*ProblemSet, error) {
	teamID, err := s.gate.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, team.ErrNoCurrentTeam) {
			return nil, ErrNoTeamSelected
		}
		return nil, err
	}

	problems, err := s.repo.ProblemsByIDs(ctx, teamID, req.ProblemIDs)
	if err != nil {
		return nil, err
	}

	set := &ProblemSet{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		TeamID:      teamID,
		CreatedBy:   userID,
		Problems:    problems,
	}

	if err := s.repo.CreateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("create problem set: %w", err)
	}

	s.logger.Info("problem set created",
		zap.String("set_id", set.ID.String()),
		zap.String("team_id", teamID.String()),
		zap.Int("problems", len(problems)),
	)
	return set, nil
}

// ListSets lists the caller's current team's problem sets.
func (s *Service) ListSets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ProblemSet, int64, error) {
	teamID, err := s.gate.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, team.ErrNoCurrentTeam) {
			return []*ProblemSet{}, 0, nil
		}
		return nil, 0, err
	}
	return s.repo.ListSets(ctx, teamID, limit, offset)
}

// GetSet retrieves a problem set within the caller's current team.
func (s *Service) GetSet(ctx context.Context, userID, setID uuid.UUID) (*ProblemSet, error) {
	set, err := s.repo.GetSetByID(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeWrite(ctx, userID, set.TeamID); err != nil {
		return nil, err
	}
	return set, nil
}

// UpdateSet updates a problem set within the caller's current team.
func (s *Service) UpdateSet(ctx context.Context, userID, setID uuid.UUID, req *UpdateSetRequest) (*ProblemSet, error) {
	set, err := s.GetSet(ctx, userID, setID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Description != nil {
		set.Description = *req.Description
	}
	if req.Deadline != nil {
		set.Deadline = req.Deadline
	}

	if err := s.repo.UpdateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("update problem set: %w", err)
	}

	if req.ProblemIDs != nil {
		problems, err := s.repo.ProblemsByIDs(ctx, set.TeamID, *req.ProblemIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSetProblems(ctx, set, problems); err != nil {
			return nil, fmt.Errorf("replace set problems: %w", err)
		}
	}

	return s.repo.GetSetByID(ctx, setID)
}

// DeleteSet deletes a problem set within the caller's current team.
func (s *Service) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	if _, err := s.GetSet(ctx, userID, setID); err != nil {
		return err
	}
	return s.repo.DeleteSet(ctx, setID)
}
