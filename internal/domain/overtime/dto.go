package overtime

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION ==========

// CalculateRequest is the input of a stateless overtime calculation.
type CalculateRequest struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	StartTime2  *string `json:"start_time_2,omitempty"`
	EndTime2    *string `json:"end_time_2,omitempty"`
	BranchName  *string `json:"branch_name,omitempty"`
	BranchKey   *string `json:"branch_key,omitempty"`
	LunchWorked bool    `json:"lunch_worked"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateWorkDay(r.Date, r.StartTime, r.EndTime, r.StartTime2, r.EndTime2)...)

	if r.BranchKey != nil && !validator.IsEmpty(*r.BranchKey) {
		if _, ok := ParseBranchKey(*r.BranchKey); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "branch_key",
				Message: "branch_key must be one of: " + strings.Join(BranchKeyValues, ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Options converts the request into calculator options.
func (r *CalculateRequest) Options() Options {
	opts := Options{
		LunchWorked: r.LunchWorked,
		StartTime2:  NonEmpty(r.StartTime2),
		EndTime2:    NonEmpty(r.EndTime2),
	}
	if r.BranchName != nil {
		opts.BranchName = *r.BranchName
	}
	if r.BranchKey != nil {
		if key, ok := ParseBranchKey(*r.BranchKey); ok {
			opts.BranchKey = &key
		}
	}
	return opts
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type IntervalResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	DurationMinutes int    `json:"duration_minutes"`
	RegularMinutes  int    `json:"regular_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
}

// CalculateResponse explains a calculation result.
type CalculateResponse struct {
	Date              string             `json:"date"`
	DayOfWeek         string             `json:"day_of_week"`
	BranchKey         string             `json:"branch_key"`
	RegularWindows    []WindowResponse   `json:"regular_windows"`
	Intervals         []IntervalResponse `json:"intervals"`
	LunchExtraMinutes int                `json:"lunch_extra_minutes"`
	OvertimeMinutes   int                `json:"overtime_minutes"`
	OvertimeFormatted string             `json:"overtime_formatted"`
	OvertimeHours     decimal.Decimal    `json:"overtime_hours"`
}

// NewCalculateResponse renders a breakdown.
func NewCalculateResponse(b Breakdown) CalculateResponse {
	resp := CalculateResponse{
		Date:              b.Date.Format("2006-01-02"),
		DayOfWeek:         DayOfWeekName(b.Weekday),
		BranchKey:         string(b.BranchKey),
		RegularWindows:    []WindowResponse{},
		Intervals:         make([]IntervalResponse, 0, len(b.Intervals)),
		LunchExtraMinutes: b.LunchExtraMinutes,
		OvertimeMinutes:   b.TotalMinutes,
		OvertimeFormatted: FormatMinutesAsDuration(b.TotalMinutes),
		OvertimeHours:     MinutesToHours(b.TotalMinutes),
	}
	if b.Policy != nil {
		for _, w := range b.Policy.Windows {
			resp.RegularWindows = append(resp.RegularWindows, WindowResponse{Start: w.Start.String(), End: w.End.String()})
		}
	}
	for _, ib := range b.Intervals {
		resp.Intervals = append(resp.Intervals, IntervalResponse{
			Start:           ib.Interval.Start.String(),
			End:             ib.Interval.End.String(),
			CrossesMidnight: ib.Interval.End >= MinutesPerDay,
			DurationMinutes: ib.DurationMinutes,
			RegularMinutes:  ib.RegularMinutes,
			OvertimeMinutes: ib.OvertimeMinutes,
		})
	}
	return resp
}

// MinutesToHours converts minutes to decimal hours rounded to two places.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

// ========== ENTRIES ==========

// CreateEntryRequest records an overtime day for an employee.
type CreateEntryRequest struct {
	EmployeeID  string  `json:"employee_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectName string  `json:"project_name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	StartTime2  *string `json:"start_time_2,omitempty"`
	EndTime2    *string `json:"end_time_2,omitempty"`
	LunchWorked bool    `json:"lunch_worked"`
	Type        string  `json:"type"`
	Observation *string `json:"observation,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	// EmployeeID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	// ProjectID
	if r.ProjectID != nil && !validator.IsEmpty(*r.ProjectID) && !validator.IsValidUUID(*r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	// ProjectName
	if validator.IsEmpty(r.ProjectName) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_name",
			Message: "project_name is required",
		})
	}
	if len(r.ProjectName) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "project_name",
			Message: "project_name must not exceed 150 characters",
		})
	}

	errs = append(errs, validateWorkDay(r.Date, r.StartTime, r.EndTime, r.StartTime2, r.EndTime2)...)

	// Type
	if !validator.IsEmpty(r.Type) && !validator.IsInSlice(r.Type, EntryTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEntryRequest changes the provided fields of an entry.
// An empty start_time_2/end_time_2 clears the second interval.
type UpdateEntryRequest struct {
	ID          string  `json:"-"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectName *string `json:"project_name,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	StartTime2  *string `json:"start_time_2,omitempty"`
	EndTime2    *string `json:"end_time_2,omitempty"`
	LunchWorked *bool   `json:"lunch_worked,omitempty"`
	Type        *string `json:"type,omitempty"`
	Observation *string `json:"observation,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ProjectName != nil && validator.IsEmpty(*r.ProjectName) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_name",
			Message: "project_name must not be empty",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	for field, value := range map[string]*string{"start_time": r.StartTime, "end_time": r.EndTime} {
		if value != nil && !validator.IsValidClockTime(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM format",
			})
		}
	}
	for field, value := range map[string]*string{"start_time_2": r.StartTime2, "end_time_2": r.EndTime2} {
		if value != nil && !validator.IsEmpty(*value) && !validator.IsValidClockTime(*value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM format",
			})
		}
	}

	if r.Type != nil && !validator.IsInSlice(*r.Type, EntryTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	ProjectID         *string         `json:"project_id,omitempty"`
	ProjectName       string          `json:"project_name"`
	Date              string          `json:"date"`
	DayOfWeek         string          `json:"day_of_week"`
	StartTime         string          `json:"start_time"`
	EndTime           string          `json:"end_time"`
	StartTime2        *string         `json:"start_time_2,omitempty"`
	EndTime2          *string         `json:"end_time_2,omitempty"`
	LunchWorked       bool            `json:"lunch_worked"`
	Type              string          `json:"type"`
	Observation       *string         `json:"observation,omitempty"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	OvertimeFormatted string          `json:"overtime_formatted"`
	OvertimeHours     decimal.Decimal `json:"overtime_hours"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

// NewEntryResponse maps an entity to its response.
func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		EmployeeName:      e.EmployeeName,
		ProjectID:         e.ProjectID,
		ProjectName:       e.ProjectName,
		Date:              e.Date.Format("2006-01-02"),
		DayOfWeek:         DayOfWeekName(e.Date.Weekday()),
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		StartTime2:        e.StartTime2,
		EndTime2:          e.EndTime2,
		LunchWorked:       e.LunchWorked,
		Type:              string(e.Type),
		Observation:       e.Observation,
		OvertimeMinutes:   e.OvertimeMinutes,
		OvertimeFormatted: FormatMinutesAsDuration(e.OvertimeMinutes),
		OvertimeHours:     MinutesToHours(e.OvertimeMinutes),
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
}

type AlertResponse struct {
	Level         string `json:"level"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	ActualMinutes int    `json:"actual_minutes"`
	LimitMinutes  int    `json:"limit_minutes"`
}

// SaveEntryResponse is returned by create and update. Alerts lists the limits reached.
type SaveEntryResponse struct {
	Entry  EntryResponse   `json:"entry"`
	Alerts []AlertResponse `json:"alerts"`
}

func NewSaveEntryResponse(e Entry, alerts []LimitAlert) SaveEntryResponse {
	resp := SaveEntryResponse{
		Entry:  NewEntryResponse(e),
		Alerts: make([]AlertResponse, 0, len(alerts)),
	}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, AlertResponse{
			Level:         string(a.Level),
			Kind:          string(a.Kind),
			Title:         a.Title,
			Message:       a.Message,
			ActualMinutes: a.ActualMinutes,
			LimitMinutes:  a.LimitMinutes,
		})
	}
	return resp
}

// ListEntriesRequest filters entries. Month and year must be given together.
type ListEntriesRequest struct {
	EmployeeID string
	ProjectID  string
	Month      string
	Year       string
}

func (r *ListEntriesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.EmployeeID) && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if !validator.IsEmpty(r.ProjectID) && !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "project_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Month) != validator.IsEmpty(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month and year must be provided together"})
	} else if !validator.IsEmpty(r.Month) {
		if _, _, err := MonthPeriod(r.Month, r.Year); err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========== REPORTS ==========

// MonthlyReportRequest selects one employee or project for one month.
type MonthlyReportRequest struct {
	SubjectID string
	Month     string
	Year      string
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if _, _, err := MonthPeriod(r.Month, r.Year); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlyReportResponse struct {
	SubjectID      string          `json:"subject_id"`
	SubjectName    string          `json:"subject_name"`
	Month          string          `json:"month"` // Format: "YYYY-MM"
	Entries        []EntryResponse `json:"entries"`
	TotalMinutes   int             `json:"total_minutes"`
	TotalFormatted string          `json:"total_formatted"`
	TotalHours     decimal.Decimal `json:"total_hours"`
}

// NewMonthlyReportResponse sums the entries of a report. Entries must already be sorted by date.
func NewMonthlyReportResponse(subjectID, subjectName string, from time.Time, entries []Entry) MonthlyReportResponse {
	resp := MonthlyReportResponse{
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Month:       from.Format("2006-01"),
		Entries:     make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, NewEntryResponse(e))
		resp.TotalMinutes += e.OvertimeMinutes
	}
	resp.TotalFormatted = FormatMinutesAsDuration(resp.TotalMinutes)
	resp.TotalHours = MinutesToHours(resp.TotalMinutes)
	return resp
}

// MonthPeriod returns [first day of month, first day of next month).
func MonthPeriod(month, year string) (time.Time, time.Time, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if len(year) != 4 || !validator.IsNumeric(year) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	y, _ := strconv.Atoi(year)
	from := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// WeekPeriod returns the Monday-to-Monday week containing date.
func WeekPeriod(date time.Time) (time.Time, time.Time) {
	offset := (int(date.Weekday()) + 6) % 7
	from := time.Date(date.Year(), date.Month(), date.Day()-offset, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 7)
}

func validateWorkDay(date, start, end string, start2, end2 *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if !validator.IsValidClockTime(start) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if !validator.IsValidClockTime(end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}

	s2, e2 := NonEmpty(start2), NonEmpty(end2)
	if (s2 == nil) != (e2 == nil) {
		errs = append(errs, validator.ValidationError{Field: "end_time_2", Message: ErrIncompleteSecondInterval.Error()})
	}
	if s2 != nil && !validator.IsValidClockTime(*s2) {
		errs = append(errs, validator.ValidationError{Field: "start_time_2", Message: "start_time_2 must be in HH:MM format"})
	}
	if e2 != nil && !validator.IsValidClockTime(*e2) {
		errs = append(errs, validator.ValidationError{Field: "end_time_2", Message: "end_time_2 must be in HH:MM format"})
	}

	return errs
}

// NonEmpty returns nil for nil or blank strings and trims the rest.
func NonEmpty(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
