package domain

import "errors"

var (
	ErrAcceleratorNotFound = errors.New("accelerator not found")
	ErrFestivalNotFound    = errors.New("festival not found")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrInvalidInput        = errors.New("invalid input")
)
