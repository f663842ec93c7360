package tracker

import "errors"

// Module errors.
var (
	ErrAlreadyBookmarked = errors.New("problem already bookmarked")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
)
