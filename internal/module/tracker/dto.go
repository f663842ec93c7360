package tracker

import "github.com/google/uuid"

// AddBookmarkRequest represents a request to bookmark a problem.
type AddBookmarkRequest struct {
	ProblemID uuid.UUID `json:"problem_id" binding:"required"`
}

// ToggleReadRequest represents a request to flip a problem's read mark.
type ToggleReadRequest struct {
	ProblemID uuid.UUID `json:"problem_id" binding:"required"`
}

// ToggleReadResponse reports the read state after a toggle.
type ToggleReadResponse struct {
	ProblemID uuid.UUID `json:"problem_id"`
	Read      bool      `json:"read"`
}
