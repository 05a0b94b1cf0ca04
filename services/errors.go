package services

import "errors"

var (
	// ErrNotFound means the referenced identifier does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotOwner means the actor is authenticated but does not own
	// the target resource; maps to 403, not 401.
	ErrNotOwner = errors.New("you do not have permission to modify this resource")
)
