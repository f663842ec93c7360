package problem

import (
	"time"

	"github.com/google/uuid"

	"github.com/problemhub/server/internal/utils/pagination"
)

// CreateProblemRequest represents a request to create a problem.
type CreateProblemRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Tags        []string   `json:"tags"`
	Source      Source     `json:"source" binding:"omitempty,oneof=LeetCode Codeforces Custom"`
	URL         string     `json:"url" binding:"omitempty,url"`
}

// UpdateProblemRequest represents a request to update a problem.
type UpdateProblemRequest struct {
	Title       *string     `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string     `json:"description"`
	Difficulty  *Difficulty `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Tags        *[]string   `json:"tags"`
	Source      *Source     `json:"source" binding:"omitempty,oneof=LeetCode Codeforces Custom"`
	URL         *string     `json:"url" binding:"omitempty,url"`
}

// ListProblemsRequest represents problem list query parameters.
type ListProblemsRequest struct {
	Keyword    string `form:"keyword"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	pagination.Pagination
}

// ProblemListResponse represents a page of problems.
type ProblemListResponse struct {
	Problems []*Problem          `json:"problems"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// CreateSetRequest represents a request to create a problem set.
type CreateSetRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=200"`
	Description string      `json:"description"`
	Deadline    *time.Time  `json:"deadline"`
	ProblemIDs  []uuid.UUID `json:"problem_ids"`
}

// UpdateSetRequest represents a request to update a problem set.
type UpdateSetRequest struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string      `json:"description"`
	Deadline    *time.Time   `json:"deadline"`
	ProblemIDs  *[]uuid.UUID `json:"problem_ids"`
}
