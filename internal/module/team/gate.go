package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Gate is the authorization surface the content modules consume. They
// never read the current-team pointer themselves; every list is
// filtered by CurrentTeam and every write is checked by
// AuthorizeWrite, so team isolation lives in one place.
type Gate interface {
	// CurrentTeam returns the user's current team ID. It returns
	// ErrNoCurrentTeam when the user has no team selected; list
	// endpoints translate that into an empty result and create
	// endpoints into a bad request.
	CurrentTeam(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)

	// AuthorizeWrite checks that the user may touch a resource owned
	// by resourceTeamID: the user's current team must be that team and
	// the user must be an accepted member of it. Returns
	// ErrTeamMismatch otherwise.
	AuthorizeWrite(ctx context.Context, userID, resourceTeamID uuid.UUID) error
}

// CurrentTeam implements Gate.
func (s *Service) CurrentTeam(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if u.CurrentTeamID == nil || *u.CurrentTeamID == uuid.Nil {
		return uuid.Nil, ErrNoCurrentTeam
	}
	return *u.CurrentTeamID, nil
}

// AuthorizeWrite implements Gate.
func (s *Service) AuthorizeWrite(ctx context.Context, userID, resourceTeamID uuid.UUID) error {
	current, err := s.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoCurrentTeam) {
			s.recordDenial()
			return ErrTeamMismatch
		}
		return err
	}
	if current != resourceTeamID {
		s.recordDenial()
		return ErrTeamMismatch
	}

	member, err := s.repo.GetMember(ctx, resourceTeamID, userID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			s.recordDenial()
			return ErrTeamMismatch
		}
		return err
	}
	if !member.IsAccepted() {
		s.recordDenial()
		return ErrTeamMismatch
	}
	return nil
}

func (s *Service) recordDenial() {
	if s.metrics != nil {
		s.metrics.RecordScopeDenial()
	}
}
