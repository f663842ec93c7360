package submission

import "errors"

// Module errors.
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotCommentOwner    = errors.New("only the comment owner or an admin can delete it")
)
