package overtime

import (
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
)

// Calculator computes overtime minutes from worked intervals and branch schedule policies.
// It holds only immutable tables and is safe for concurrent use.
type Calculator struct {
	resolver *overtime.BranchResolver
	policies overtime.PolicyBook
}

func NewCalculator(resolver *overtime.BranchResolver, policies overtime.PolicyBook) *Calculator {
	if resolver == nil {
		resolver = overtime.NewBranchResolver(nil)
	}
	if policies == nil {
		policies = overtime.DefaultPolicyBook()
	}
	return &Calculator{
		resolver: resolver,
		policies: policies,
	}
}

// ComputeOvertimeMinutes returns the overtime minutes worked on date.
func (c *Calculator) ComputeOvertimeMinutes(date, startTime, endTime string, opts overtime.Options) (int, error) {
	b, err := c.Compute(date, startTime, endTime, opts)
	if err != nil {
		return 0, err
	}
	return b.TotalMinutes, nil
}

// Compute returns the full breakdown behind ComputeOvertimeMinutes.
func (c *Calculator) Compute(date, startTime, endTime string, opts overtime.Options) (overtime.Breakdown, error) {
	day, err := overtime.ParseWorkDate(date)
	if err != nil {
		return overtime.Breakdown{}, err
	}

	intervals, err := workedIntervals(startTime, endTime, opts)
	if err != nil {
		return overtime.Breakdown{}, err
	}

	key := c.branchKey(opts, len(intervals) > 1)
	weekday := day.Weekday()
	policy := c.policies.For(key, weekday)

	b := overtime.Breakdown{
		Date:      day,
		Weekday:   weekday,
		BranchKey: key,
		Policy:    policy,
		Intervals: make([]overtime.IntervalBreakdown, 0, len(intervals)),
	}

	for _, in := range intervals {
		ib := overtime.IntervalBreakdown{
			Interval:        in,
			DurationMinutes: in.Duration(),
		}
		if policy != nil {
			for _, w := range policy.Windows {
				ib.RegularMinutes += in.Overlap(w)
			}
		}
		ib.OvertimeMinutes = max(0, ib.DurationMinutes-ib.RegularMinutes)
		b.Intervals = append(b.Intervals, ib)
		b.TotalMinutes += ib.OvertimeMinutes
	}

	if opts.LunchWorked && policy.LunchAllowed() {
		b.LunchExtraMinutes = policy.LunchExtraMinutes
		b.TotalMinutes += policy.LunchExtraMinutes
	}

	return b, nil
}

// Policy returns the regular schedule that applies to a branch on date.
func (c *Calculator) Policy(date string, opts overtime.Options) (overtime.BranchKey, *overtime.SchedulePolicy, error) {
	day, err := overtime.ParseWorkDate(date)
	if err != nil {
		return "", nil, err
	}
	split := overtime.NonEmpty(opts.StartTime2) != nil && overtime.NonEmpty(opts.EndTime2) != nil
	key := c.branchKey(opts, split)
	return key, c.policies.For(key, day.Weekday()), nil
}

// ResolveBranch classifies a branch name without any interval context.
func (c *Calculator) ResolveBranch(name string) overtime.BranchKey {
	return c.resolver.Resolve(name)
}

// branchKey picks the explicit key, else the resolved name. An unrecognised branch that
// reports a second interval is treated as a split-shift branch.
func (c *Calculator) branchKey(opts overtime.Options, splitShift bool) overtime.BranchKey {
	if opts.BranchKey != nil {
		return *opts.BranchKey
	}
	key := c.resolver.Resolve(opts.BranchName)
	if key == overtime.BranchKeyDefault && splitShift {
		return overtime.BranchKeySplitShift
	}
	return key
}

func workedIntervals(startTime, endTime string, opts overtime.Options) ([]overtime.WorkInterval, error) {
	first, err := overtime.NewWorkInterval(startTime, endTime)
	if err != nil {
		return nil, err
	}
	intervals := []overtime.WorkInterval{first}

	start2, end2 := overtime.NonEmpty(opts.StartTime2), overtime.NonEmpty(opts.EndTime2)
	switch {
	case start2 == nil && end2 == nil:
		return intervals, nil
	case start2 == nil || end2 == nil:
		return nil, overtime.ErrIncompleteSecondInterval
	}

	second, err := overtime.NewWorkInterval(*start2, *end2)
	if err != nil {
		return nil, err
	}
	// A repeated first interval is not a split shift.
	if second == first {
		return intervals, nil
	}
	if second.Intersects(first) {
		return nil, overtime.ErrOverlappingIntervals
	}
	return append(intervals, second), nil
}
