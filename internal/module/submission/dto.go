package submission

import (
	"github.com/google/uuid"

	"github.com/problemhub/server/internal/utils/pagination"
)

// CreateSubmissionRequest represents a request to record a submission.
type CreateSubmissionRequest struct {
	ProblemID         uuid.UUID `json:"problem_id" binding:"required"`
	Approach          string    `json:"approach" binding:"required"`
	ThoughtProcess    string    `json:"thought_process"`
	Pseudocode        string    `json:"pseudocode"`
	Code              string    `json:"code"`
	TimeComplexity    string    `json:"time_complexity"`
	SpaceComplexity   string    `json:"space_complexity"`
	OptimizationNotes string    `json:"optimization_notes"`
}

// SubmissionListResponse represents a page of submissions.
type SubmissionListResponse struct {
	Submissions []*Submission       `json:"submissions"`
	PageInfo    pagination.PageInfo `json:"page_info"`
}

// CreateCommentRequest represents a request to post a comment.
type CreateCommentRequest struct {
	ProblemID uuid.UUID `json:"problem_id" binding:"required"`
	Content   string    `json:"content" binding:"required,min=1,max=2000"`
}
