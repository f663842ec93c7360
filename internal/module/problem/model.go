package problem

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty represents how hard a problem is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid checks if the difficulty is valid.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Source represents where a problem comes from.
type Source string

const (
	SourceLeetCode   Source = "LeetCode"
	SourceCodeforces Source = "Codeforces"
	SourceCustom     Source = "Custom"
)

// Problem represents a tracked problem. Every problem belongs to
// exactly one team.
type Problem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty" gorm:"not null;default:Medium"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	Source      Source     `json:"source" gorm:"not null;default:Custom"`
	URL         string     `json:"url,omitempty"`

	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations (not loaded by default)
	Sets []ProblemSet `json:"sets,omitempty" gorm:"many2many:problem_set_problems"`
}

// TableName returns the database table name.
func (Problem) TableName() string {
	return "problems"
}

// ProblemSet groups problems under a deadline, scoped to one team.
type ProblemSet struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Problems []Problem `json:"problems,omitempty" gorm:"many2many:problem_set_problems"`
}

// TableName returns the database table name.
func (ProblemSet) TableName() string {
	return "problem_sets"
}
