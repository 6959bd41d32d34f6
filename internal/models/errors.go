package models

import "errors"

// ErrInvalidRecord is returned when an expense, meal or period fails ingestion checks.
var ErrInvalidRecord = errors.New("invalid record")
