package overtime

import "time"

// Options are the policy inputs of one calculation.
type Options struct {
	BranchName string
	// BranchKey, when set, bypasses name resolution and the split-shift heuristic.
	BranchKey   *BranchKey
	LunchWorked bool
	StartTime2  *string
	EndTime2    *string
}

// IntervalBreakdown is the result for one worked interval.
type IntervalBreakdown struct {
	Interval        WorkInterval
	DurationMinutes int
	RegularMinutes  int
	OvertimeMinutes int
}

// Breakdown explains how the overtime total of one date was reached.
type Breakdown struct {
	Date              time.Time
	Weekday           time.Weekday
	BranchKey         BranchKey
	Policy            *SchedulePolicy
	Intervals         []IntervalBreakdown
	LunchExtraMinutes int
	TotalMinutes      int
}

type EntryType string

const (
	EntryTypePaid     EntryType = "paid"      // paid out with the payroll
	EntryTypeHourBank EntryType = "hour_bank" // credited to the hour bank
)

var EntryTypeValues = []string{
	string(EntryTypePaid),
	string(EntryTypeHourBank),
}

// Entry is one recorded overtime day of an employee.
type Entry struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	ProjectID       *string
	ProjectName     string
	Date            time.Time
	StartTime       string
	EndTime         string
	StartTime2      *string
	EndTime2        *string
	LunchWorked     bool
	Type            EntryType
	Observation     *string
	OvertimeMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EntryFilter narrows entry listings. Zero values are ignored.
type EntryFilter struct {
	EmployeeID string
	ProjectID  string
	From       *time.Time
	To         *time.Time // exclusive
}

// SumFilter selects the entries whose overtime minutes are summed.
type SumFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time // exclusive
	Weekday    *time.Weekday
}

type AlertLevel string

const (
	AlertLevelWarning AlertLevel = "warning"
	AlertLevelError   AlertLevel = "error"
)

type LimitKind string

const (
	LimitKindWeekly   LimitKind = "weekly"
	LimitKindSaturday LimitKind = "saturday"
)

// LimitAlert is raised when an employee nears or exceeds an overtime limit.
type LimitAlert struct {
	Level         AlertLevel
	Kind          LimitKind
	Title         string
	Message       string
	ActualMinutes int
	LimitMinutes  int
}
