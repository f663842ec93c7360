package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/problemhub/server/internal/shared/metrics"
)

// Service provides team and membership business logic.
type Service struct {
	repo    Repository
	users   UserStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new team service. Metrics may be nil.
func NewService(repo Repository, users UserStore, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		metrics: m,
		logger:  logger,
	}
}

// CreateTeam creates a team, seats the creator as its accepted leader
// and makes the new team the creator's current team. All three writes
// happen in one transaction.
func (s *Service) CreateTeam(ctx context.Context, userID uuid.UUID, req *CreateTeamRequest) (*Team, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	txUsers := s.users.WithTx(tx)

	team := &Team{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if err := txRepo.CreateTeam(ctx, team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("create team: %w", err)
	}

	leader := &TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Status: MemberStatusAccepted,
		Role:   RoleLeader,
	}
	if err := txRepo.AddMember(ctx, leader); err != nil {
		return nil, fmt.Errorf("seat leader: %w", err)
	}

	if err := txUsers.SetCurrentTeam(ctx, userID, &team.ID); err != nil {
		return nil, fmt.Errorf("set current team: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.recordEvent("created")
	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("leader_id", userID.String()),
		zap.String("name", team.Name),
	)

	return team, nil
}

// SearchTeams lists teams matching the query, with their members.
func (s *Service) SearchTeams(ctx context.Context, req *SearchRequest) ([]*TeamResponse, int64, error) {
	teams, total, err := s.repo.SearchTeams(ctx, req.Query, req.Limit(), req.Offset())
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*TeamResponse, 0, len(teams))
	for _, t := range teams {
		members, err := s.repo.ListMembersWithUsers(ctx, t.ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, t.ToResponse(members))
	}
	return responses, total, nil
}

// GetTeam retrieves a team with its members.
func (s *Service) GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamResponse, error) {
	t, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembersWithUsers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return t.ToResponse(members), nil
}

// RequestJoin files a join request. The membership row is inserted as
// pending; any existing row for the pair, pending or accepted, makes
// this a conflict. The requester's current team does not change.
func (s *Service) RequestJoin(ctx context.Context, userID, teamID uuid.UUID) error {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return err
	}

	member := &TeamMember{
		TeamID: teamID,
		UserID: userID,
		Status: MemberStatusPending,
		Role:   RoleMember,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("add member: %w", err)
	}

	s.recordEvent("join_requested")
	s.logger.Info("join requested",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// RespondToRequest applies a leader's decision on a join request.
// Accepting promotes the pending row in place; the applicant's current
// team is left untouched until they switch to it themselves. Rejecting
// deletes the row outright, which reopens the door for a later
// request; rejecting an accepted member revokes the membership, and
// their current-team pointer is cleared with the row so a revoked
// member never keeps read access through a stale pointer.
func (s *Service) RespondToRequest(ctx context.Context, leaderID, teamID, applicantID uuid.UUID, accept bool) error {
	if err := s.requireLeader(ctx, leaderID, teamID); err != nil {
		return err
	}

	member, err := s.repo.GetMember(ctx, teamID, applicantID)
	if err != nil {
		return err
	}

	if !accept {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		txRepo := s.repo.WithTx(tx)
		txUsers := s.users.WithTx(tx)

		if err := txRepo.RemoveMember(ctx, teamID, applicantID); err != nil {
			return err
		}
		if member.IsAccepted() {
			u, err := txUsers.GetUserByID(ctx, applicantID)
			if err != nil {
				return err
			}
			if u.CurrentTeamID != nil && *u.CurrentTeamID == teamID {
				if err := txUsers.SetCurrentTeam(ctx, applicantID, nil); err != nil {
					return fmt.Errorf("clear current team: %w", err)
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			return err
		}

		s.recordEvent("rejected")
		s.logger.Info("join request rejected",
			zap.String("team_id", teamID.String()),
			zap.String("applicant_id", applicantID.String()),
		)
		return nil
	}

	if !member.IsPending() {
		return ErrRequestNotPending
	}
	if err := s.repo.UpdateMemberStatus(ctx, teamID, applicantID, MemberStatusAccepted); err != nil {
		return err
	}

	s.recordEvent("accepted")
	s.logger.Info("join request accepted",
		zap.String("team_id", teamID.String()),
		zap.String("applicant_id", applicantID.String()),
	)
	return nil
}

// SwitchTeam makes the team the user's current team. Only accepted
// members can switch; a pending request is not enough.
func (s *Service) SwitchTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return err
	}

	member, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotMember
		}
		return err
	}
	if !member.IsAccepted() {
		return ErrNotMember
	}

	if err := s.users.SetCurrentTeam(ctx, userID, &teamID); err != nil {
		return fmt.Errorf("set current team: %w", err)
	}

	s.recordEvent("switched")
	return nil
}

// MyTeam returns the user's current team with members.
func (s *Service) MyTeam(ctx context.Context, userID uuid.UUID) (*TeamResponse, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.CurrentTeamID == nil {
		return nil, ErrNoCurrentTeam
	}
	return s.GetTeam(ctx, *u.CurrentTeamID)
}

// UpdateTeam updates a team's name or description. Leader only.
func (s *Service) UpdateTeam(ctx context.Context, userID, teamID uuid.UUID, req *UpdateTeamRequest) (*Team, error) {
	if err := s.requireLeader(ctx, userID, teamID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}

	if err := s.repo.UpdateTeam(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// DeleteTeam deletes a team. Leader only. Current-team pointers are
// cleared before the team row goes away so no user is ever left
// pointing at a dead team, and the whole cascade is one transaction.
func (s *Service) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	if err := s.requireLeader(ctx, userID, teamID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	txUsers := s.users.WithTx(tx)

	if err := txUsers.ClearCurrentTeam(ctx, teamID); err != nil {
		return fmt.Errorf("clear current team: %w", err)
	}
	if err := txRepo.RemoveAllMembers(ctx, teamID); err != nil {
		return fmt.Errorf("remove members: %w", err)
	}
	if err := txRepo.DeleteTeam(ctx, teamID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.recordEvent("deleted")
	s.logger.Info("team deleted",
		zap.String("team_id", teamID.String()),
		zap.String("leader_id", userID.String()),
	)
	return nil
}

// IsLeader reports whether the user is the accepted leader of the
// team.
func (s *Service) IsLeader(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	member, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.IsLeader(), nil
}

func (s *Service) requireLeader(ctx context.Context, userID, teamID uuid.UUID) error {
	if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
		return err
	}
	isLeader, err := s.IsLeader(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !isLeader {
		return ErrNotLeader
	}
	return nil
}

func (s *Service) recordEvent(event string) {
	if s.metrics != nil {
		s.metrics.RecordTeamEvent(event)
	}
}
