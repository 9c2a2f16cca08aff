package playlist

import "errors"

// Domain errors
var (
	ErrEmptyID        = errors.New("id cannot be empty")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNoStreamURL    = errors.New("at least one stream URL is required")
	ErrCategoryExists = errors.New("category id already exists")
	ErrChannelExists  = errors.New("channel id already exists")
	ErrNoDocument     = errors.New("no playlist document stored")
)

// Import boundary errors. Each missing or mistyped top-level field gets
// its own error so the operator knows exactly what to fix.
var (
	ErrNotAnObject       = errors.New("imported JSON must be an object")
	ErrMissingChannels   = errors.New(`imported JSON: "channels" field is missing or not a list`)
	ErrMissingCategories = errors.New(`imported JSON: "categories" field is missing or not a list`)
)
