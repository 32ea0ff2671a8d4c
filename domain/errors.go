package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidName    = errors.New("invalid file name")
	ErrEmptyComment   = errors.New("comment text and user name are required")
	ErrMissingProject = errors.New("project id is required")
)
