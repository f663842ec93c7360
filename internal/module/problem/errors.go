package problem

import "errors"

// Module errors.
var (
	ErrProblemNotFound    = errors.New("problem not found")
	ErrProblemSetNotFound = errors.New("problem set not found")
	ErrNoTeamSelected     = errors.New("join or create a team first")
	ErrInvalidDifficulty  = errors.New("invalid difficulty")
)
