package submission

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents one member's writeup of how they solved a
// problem. The team scope comes from the problem it belongs to.
type Submission struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProblemID uuid.UUID `json:"problem_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Approach          string `json:"approach"`
	ThoughtProcess    string `json:"thought_process"`
	Pseudocode        string `json:"pseudocode,omitempty"`
	Code              string `json:"code,omitempty"`
	TimeComplexity    string `json:"time_complexity,omitempty"`
	SpaceComplexity   string `json:"space_complexity,omitempty"`
	OptimizationNotes string `json:"optimization_notes,omitempty"`

	// At most one submission per problem carries this flag.
	IsReferenceSolution bool `json:"is_reference_solution" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Submission) TableName() string {
	return "submissions"
}

// Comment is one message in a problem's discussion thread.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProblemID uuid.UUID `json:"problem_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Comment) TableName() string {
	return "comments"
}
