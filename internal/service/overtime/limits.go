package overtime

import (
	"fmt"

	"github.com/cmlabs-hris/overtime-backend-go/internal/config"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
)

// LimitChecker compares accumulated overtime against the configured legal limits.
type LimitChecker struct {
	weeklyLimit   int
	saturdayLimit int
	warnAt        decimal.Decimal
}

func NewLimitChecker(cfg config.OvertimeLimits) *LimitChecker {
	sixty := decimal.NewFromInt(60)
	weekly := cfg.MaxWeeklyHours.Mul(sixty).IntPart()
	return &LimitChecker{
		weeklyLimit:   int(weekly),
		saturdayLimit: int(cfg.MaxSaturdayHours.Mul(sixty).IntPart()),
		warnAt:        decimal.NewFromInt(weekly).Mul(cfg.WarningRatio),
	}
}

// Check returns the alerts for an employee's week total and Saturday total of the month.
func (c *LimitChecker) Check(employeeName string, weekMinutes, saturdayMonthMinutes int) []overtime.LimitAlert {
	var alerts []overtime.LimitAlert

	if c.weeklyLimit > 0 {
		switch {
		case weekMinutes >= c.weeklyLimit:
			alerts = append(alerts, overtime.LimitAlert{
				Level:         overtime.AlertLevelError,
				Kind:          overtime.LimitKindWeekly,
				Title:         "Weekly overtime limit exceeded",
				Message:       fmt.Sprintf("%s exceeded the limit of %s of weekly overtime.", employeeName, overtime.FormatMinutesAsDuration(c.weeklyLimit)),
				ActualMinutes: weekMinutes,
				LimitMinutes:  c.weeklyLimit,
			})
		case decimal.NewFromInt(int64(weekMinutes)).GreaterThanOrEqual(c.warnAt):
			alerts = append(alerts, overtime.LimitAlert{
				Level:         overtime.AlertLevelWarning,
				Kind:          overtime.LimitKindWeekly,
				Title:         "Weekly overtime limit approaching",
				Message:       fmt.Sprintf("%s is close to the limit of %s of weekly overtime.", employeeName, overtime.FormatMinutesAsDuration(c.weeklyLimit)),
				ActualMinutes: weekMinutes,
				LimitMinutes:  c.weeklyLimit,
			})
		}
	}

	if c.saturdayLimit > 0 && saturdayMonthMinutes >= c.saturdayLimit {
		alerts = append(alerts, overtime.LimitAlert{
			Level:         overtime.AlertLevelError,
			Kind:          overtime.LimitKindSaturday,
			Title:         "Saturday overtime limit exceeded",
			Message:       fmt.Sprintf("%s exceeded the limit of %s of Saturday overtime this month.", employeeName, overtime.FormatMinutesAsDuration(c.saturdayLimit)),
			ActualMinutes: saturdayMonthMinutes,
			LimitMinutes:  c.saturdayLimit,
		})
	}

	return alerts
}
