package overtime

import "errors"

var (
	// Calculation errors
	ErrInvalidTimeFormat        = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateFormat        = errors.New("invalid date format, use YYYY-MM-DD")
	ErrIncompleteSecondInterval = errors.New("second interval requires both start_time_2 and end_time_2")
	ErrUnknownBranchKey         = errors.New("unknown branch key")
	ErrOverlappingIntervals     = errors.New("worked intervals must not overlap")

	// Entry errors
	ErrEntryNotFound  = errors.New("overtime entry not found")
	ErrInvalidPeriod  = errors.New("invalid report period, month must be 1-12 and year YYYY")
	ErrInvalidEntryID = errors.New("invalid overtime entry id")
)
