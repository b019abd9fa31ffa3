package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidCriteria = errors.New("invalid filter criteria")
	ErrNoDataset       = errors.New("dataset not loaded")
)
