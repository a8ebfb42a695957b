package overtime

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func keyPtr(k overtime.BranchKey) *overtime.BranchKey { return &k }

func newTestCalculator() *Calculator {
	resolver := overtime.NewBranchResolver([]overtime.BranchAlias{
		{Match: "São José", Key: overtime.BranchKeySplitShift},
	})
	return NewCalculator(resolver, overtime.DefaultPolicyBook())
}

// 2024-01-01 is a Monday.
func TestCalculator_ComputeOvertimeMinutes(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name       string
		date       string
		start, end string
		opts       overtime.Options
		want       int
	}{
		{
			name: "default monday before and after the window",
			date: "2024-01-01", start: "06:00", end: "18:00",
			want: 120,
		},
		{
			name: "default monday with worked lunch",
			date: "2024-01-01", start: "06:00", end: "18:00",
			opts: overtime.Options{LunchWorked: true},
			want: 180,
		},
		{
			name: "inside the regular window",
			date: "2024-01-03", start: "08:00", end: "16:00",
			want: 0,
		},
		{
			name: "overnight on a weekday",
			date: "2024-01-01", start: "22:00", end: "02:00",
			want: 240,
		},
		{
			name: "overnight on a saturday",
			date: "2024-01-06", start: "22:00", end: "02:00",
			want: 240,
		},
		{
			name: "midnight end",
			date: "2024-01-01", start: "18:00", end: "00:00",
			want: 360,
		},
		{
			name: "default friday ends at four",
			date: "2024-01-05", start: "07:00", end: "18:00",
			opts: overtime.Options{LunchWorked: true},
			want: 180,
		},
		{
			name: "default sunday is all overtime and never gets lunch",
			date: "2024-01-07", start: "08:00", end: "12:00",
			opts: overtime.Options{LunchWorked: true},
			want: 240,
		},
		{
			name: "split shift exact windows",
			date: "2024-01-02", start: "07:00", end: "11:30",
			opts: overtime.Options{
				BranchKey:  keyPtr(overtime.BranchKeySplitShift),
				StartTime2: strPtr("13:00"), EndTime2: strPtr("16:30"),
			},
			want: 0,
		},
		{
			name: "split shift exact windows with worked lunch",
			date: "2024-01-02", start: "07:00", end: "11:30",
			opts: overtime.Options{
				BranchKey:   keyPtr(overtime.BranchKeySplitShift),
				StartTime2:  strPtr("13:00"),
				EndTime2:    strPtr("16:30"),
				LunchWorked: true,
			},
			want: 90,
		},
		{
			name: "split shift resolved from the branch name",
			date: "2024-01-02", start: "06:00", end: "18:00",
			opts: overtime.Options{BranchName: "Filial Sao Jose", LunchWorked: true},
			want: 330,
		},
		{
			name: "split shift saturday has no lunch surcharge",
			date: "2024-01-06", start: "07:00", end: "12:00",
			opts: overtime.Options{BranchKey: keyPtr(overtime.BranchKeySplitShift), LunchWorked: true},
			want: 60,
		},
		{
			name: "split shift sunday sums both intervals",
			date: "2024-01-07", start: "08:00", end: "12:00",
			opts: overtime.Options{
				BranchKey:  keyPtr(overtime.BranchKeySplitShift),
				StartTime2: strPtr("13:00"), EndTime2: strPtr("15:00"),
			},
			want: 360,
		},
		{
			name: "default weekend sums both intervals",
			date: "2024-01-06", start: "08:00", end: "12:00",
			opts: overtime.Options{
				BranchKey:  keyPtr(overtime.BranchKeyDefault),
				StartTime2: strPtr("13:00"), EndTime2: strPtr("15:00"),
			},
			want: 360,
		},
		{
			name: "second interval on an unknown branch uses the split shift",
			date: "2024-01-02", start: "07:00", end: "12:00",
			opts: overtime.Options{StartTime2: strPtr("13:00"), EndTime2: strPtr("17:00")},
			want: 60,
		},
		{
			name: "explicit default key keeps the default windows",
			date: "2024-01-02", start: "07:00", end: "12:00",
			opts: overtime.Options{
				BranchKey:  keyPtr(overtime.BranchKeyDefault),
				StartTime2: strPtr("13:00"), EndTime2: strPtr("17:00"),
			},
			want: 0,
		},
		{
			name: "explicit default key sums a disjoint second interval",
			date: "2024-01-02", start: "07:00", end: "12:00",
			opts: overtime.Options{
				BranchKey:  keyPtr(overtime.BranchKeyDefault),
				StartTime2: strPtr("18:00"), EndTime2: strPtr("20:00"),
			},
			want: 120,
		},
		{
			name: "repeated first interval counts once on the default policy",
			date: "2024-01-02", start: "06:00", end: "18:00",
			opts: overtime.Options{StartTime2: strPtr("06:00"), EndTime2: strPtr(" 18:00 ")},
			want: 120,
		},
		{
			name: "explicit key wins over the branch name",
			date: "2024-01-01", start: "06:00", end: "18:00",
			opts: overtime.Options{BranchName: "São José", BranchKey: keyPtr(overtime.BranchKeyDefault)},
			want: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeOvertimeMinutes(tt.date, tt.start, tt.end, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestCalculator_Compute_Breakdown(t *testing.T) {
	calc := newTestCalculator()

	b, err := calc.Compute("2024-01-01", "06:00", "18:00", overtime.Options{LunchWorked: true})
	require.NoError(t, err)

	assert.Equal(t, time.Monday, b.Weekday)
	assert.Equal(t, overtime.BranchKeyDefault, b.BranchKey)
	require.Len(t, b.Intervals, 1)
	assert.Equal(t, 720, b.Intervals[0].DurationMinutes)
	assert.Equal(t, 600, b.Intervals[0].RegularMinutes)
	assert.Equal(t, 120, b.Intervals[0].OvertimeMinutes)
	assert.Equal(t, 60, b.LunchExtraMinutes)
	assert.Equal(t, 180, b.TotalMinutes)
}

func TestCalculator_Compute_Errors(t *testing.T) {
	calc := newTestCalculator()

	_, err := calc.Compute("2024/01/01", "06:00", "18:00", overtime.Options{})
	assert.ErrorIs(t, err, overtime.ErrInvalidDateFormat)

	_, err = calc.Compute("2024-01-01", "6am", "18:00", overtime.Options{})
	assert.ErrorIs(t, err, overtime.ErrInvalidTimeFormat)

	_, err = calc.Compute("2024-01-01", "06:00", "18:00", overtime.Options{StartTime2: strPtr("19:00")})
	assert.ErrorIs(t, err, overtime.ErrIncompleteSecondInterval)

	_, err = calc.Compute("2024-01-01", "06:00", "18:00", overtime.Options{StartTime2: strPtr("19:00"), EndTime2: strPtr("x")})
	assert.ErrorIs(t, err, overtime.ErrInvalidTimeFormat)

	_, err = calc.Compute("2024-01-02", "06:00", "12:00", overtime.Options{StartTime2: strPtr("11:00"), EndTime2: strPtr("18:00")})
	assert.ErrorIs(t, err, overtime.ErrOverlappingIntervals)

	_, err = calc.Compute("2024-01-02", "22:00", "03:00", overtime.Options{StartTime2: strPtr("23:00"), EndTime2: strPtr("01:00")})
	assert.ErrorIs(t, err, overtime.ErrOverlappingIntervals)
}

func TestCalculator_Compute_RepeatedIntervalIsNotSplitShift(t *testing.T) {
	calc := newTestCalculator()

	b, err := calc.Compute("2024-01-02", "06:00", "18:00", overtime.Options{StartTime2: strPtr("06:00"), EndTime2: strPtr("18:00")})
	require.NoError(t, err)
	assert.Equal(t, overtime.BranchKeyDefault, b.BranchKey)
	assert.Len(t, b.Intervals, 1)
	assert.Equal(t, 120, b.TotalMinutes)
}

func TestCalculator_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	opts := overtime.Options{BranchName: "São José", LunchWorked: true}

	first, err := calc.ComputeOvertimeMinutes("2024-01-02", "06:00", "18:00", opts)
	require.NoError(t, err)
	second, err := calc.ComputeOvertimeMinutes("2024-01-02", "06:00", "18:00", opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculator_Policy(t *testing.T) {
	calc := newTestCalculator()

	key, policy, err := calc.Policy("2024-01-07", overtime.Options{})
	require.NoError(t, err)
	assert.Equal(t, overtime.BranchKeyDefault, key)
	assert.Nil(t, policy)

	key, policy, err = calc.Policy("2024-01-02", overtime.Options{StartTime2: strPtr("13:00"), EndTime2: strPtr("17:00")})
	require.NoError(t, err)
	assert.Equal(t, overtime.BranchKeySplitShift, key)
	assert.Same(t, overtime.SplitShiftPolicy(time.Tuesday), policy)

	assert.Equal(t, overtime.BranchKeySplitShift, calc.ResolveBranch("SAO JOSE"))
}

func TestNewCalculator_Defaults(t *testing.T) {
	calc := NewCalculator(nil, nil)

	got, err := calc.ComputeOvertimeMinutes("2024-01-01", "06:00", "18:00", overtime.Options{BranchName: "Sao Jose"})
	require.NoError(t, err)
	assert.Equal(t, 120, got, "no aliases configured, so every branch uses the default schedule")
}
