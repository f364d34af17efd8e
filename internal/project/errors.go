package project

import "errors"

var (
	ErrNotFound  = errors.New("project: not found")
	ErrSlugTaken = errors.New("project: slug already in use")
	ErrForbidden = errors.New("project: not owned by caller")
)
