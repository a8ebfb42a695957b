package overtime

import "time"

// BranchKey identifies which weekly schedule policy a branch follows.
type BranchKey string

const (
	BranchKeyDefault    BranchKey = "default"
	BranchKeySplitShift BranchKey = "split_shift" // morning/afternoon shifts with a long lunch break
)

var BranchKeyValues = []string{
	string(BranchKeyDefault),
	string(BranchKeySplitShift),
}

// ParseBranchKey reports whether s names a known branch key.
func ParseBranchKey(s string) (BranchKey, bool) {
	switch BranchKey(s) {
	case BranchKeyDefault, BranchKeySplitShift:
		return BranchKey(s), true
	}
	return "", false
}

// Window is a regular-work interval during which work is not overtime.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// SchedulePolicy describes the regular work of one day.
type SchedulePolicy struct {
	Windows []Window
	// LunchExtraMinutes is credited when the employee worked through lunch. Zero disables it.
	LunchExtraMinutes int
}

// LunchAllowed reports whether a lunch-worked surcharge applies under this policy.
func (p *SchedulePolicy) LunchAllowed() bool {
	return p != nil && p.LunchExtraMinutes > 0
}

// WeeklyPolicy is indexed by time.Weekday. A nil day has no regular schedule.
type WeeklyPolicy [7]*SchedulePolicy

// PolicyBook maps branch keys to their weekly policies.
type PolicyBook map[BranchKey]WeeklyPolicy

// For returns the policy for key on weekday, falling back to the default branch.
func (b PolicyBook) For(key BranchKey, weekday time.Weekday) *SchedulePolicy {
	weekly, ok := b[key]
	if !ok {
		weekly = b[BranchKeyDefault]
	}
	return weekly[weekday]
}

func window(start, end string) Window {
	return Window{Start: MustClockTime(start), End: MustClockTime(end)}
}

var defaultWeekly = func() WeeklyPolicy {
	monThu := &SchedulePolicy{
		Windows:           []Window{window("07:00", "17:00")},
		LunchExtraMinutes: 60,
	}
	friday := &SchedulePolicy{
		Windows:           []Window{window("07:00", "16:00")},
		LunchExtraMinutes: 60,
	}
	return WeeklyPolicy{
		time.Monday:    monThu,
		time.Tuesday:   monThu,
		time.Wednesday: monThu,
		time.Thursday:  monThu,
		time.Friday:    friday,
	}
}()

var splitShiftWeekly = func() WeeklyPolicy {
	monThu := &SchedulePolicy{
		Windows:           []Window{window("07:00", "11:30"), window("13:00", "16:30")},
		LunchExtraMinutes: 90,
	}
	friday := &SchedulePolicy{
		Windows:           []Window{window("07:00", "12:00"), window("13:00", "16:00")},
		LunchExtraMinutes: 60,
	}
	saturday := &SchedulePolicy{
		Windows: []Window{window("07:00", "11:00")},
	}
	return WeeklyPolicy{
		time.Monday:    monThu,
		time.Tuesday:   monThu,
		time.Wednesday: monThu,
		time.Thursday:  monThu,
		time.Friday:    friday,
		time.Saturday:  saturday,
	}
}()

// DefaultPolicy returns the regular schedule of branches without a dedicated policy.
// Weekends have none.
func DefaultPolicy(weekday time.Weekday) *SchedulePolicy {
	return defaultWeekly[weekday]
}

// SplitShiftPolicy returns the regular schedule of split-shift branches. Sundays have none.
func SplitShiftPolicy(weekday time.Weekday) *SchedulePolicy {
	return splitShiftWeekly[weekday]
}

// DefaultPolicyBook returns the built-in policies for every known branch key.
func DefaultPolicyBook() PolicyBook {
	return PolicyBook{
		BranchKeyDefault:    defaultWeekly,
		BranchKeySplitShift: splitShiftWeekly,
	}
}
