package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/problemhub/server/internal/module/problem"
)

// Bookmark pins a problem for one user. Personal, not team-scoped; the
// unique pair index makes a double bookmark a constraint violation.
type Bookmark struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_problem"`
	ProblemID uuid.UUID `json:"problem_id" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_problem"`
	CreatedAt time.Time `json:"created_at"`

	Problem *problem.Problem `json:"problem,omitempty" gorm:"foreignKey:ProblemID"`
}

// TableName returns the database table name.
func (Bookmark) TableName() string {
	return "bookmarks"
}

// ReadStatus records that one user has read one problem. Toggling off
// deletes the row rather than flipping a flag, so the table only holds
// read marks.
type ReadStatus struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_read_user_problem"`
	ProblemID uuid.UUID `json:"problem_id" gorm:"type:uuid;not null;uniqueIndex:idx_read_user_problem"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (ReadStatus) TableName() string {
	return "read_statuses"
}
