package attendance

import "errors"

var (
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrInvalidShiftCategory = errors.New("invalid shift category")
)
