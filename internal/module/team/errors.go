package team

import "errors"

// Team module errors.
var (
	// Team errors
	ErrTeamNotFound  = errors.New("team not found")
	ErrTeamNameTaken = errors.New("team name already taken")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Membership errors
	ErrAlreadyMember      = errors.New("membership or pending request already exists")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrRequestNotPending  = errors.New("join request is not pending")
	ErrNotMember          = errors.New("not an accepted member of this team")
	ErrNotLeader          = errors.New("only the team leader can do this")

	// Scoping errors
	ErrNoCurrentTeam = errors.New("no team selected")
	ErrTeamMismatch  = errors.New("resource belongs to another team")
)
