package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type OvertimeServiceImpl struct {
	tx               database.Transactor
	entryRepo        overtime.EntryRepository
	employeeRepo     employee.EmployeeRepository
	notificationRepo notification.Repository
	calculator       *Calculator
	limits           *LimitChecker
}

func NewOvertimeService(
	tx database.Transactor,
	entryRepo overtime.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	notificationRepo notification.Repository,
	calculator *Calculator,
	limits *LimitChecker,
) overtime.Service {
	return &OvertimeServiceImpl{
		tx:               tx,
		entryRepo:        entryRepo,
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
		calculator:       calculator,
		limits:           limits,
	}
}

// Calculate implements overtime.Service.
func (s *OvertimeServiceImpl) Calculate(ctx context.Context, req overtime.CalculateRequest) (overtime.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.CalculateResponse{}, err
	}

	b, err := s.calculator.Compute(req.Date, req.StartTime, req.EndTime, req.Options())
	if err != nil {
		return overtime.CalculateResponse{}, err
	}

	return overtime.NewCalculateResponse(b), nil
}

// CreateEntry implements overtime.Service.
func (s *OvertimeServiceImpl) CreateEntry(ctx context.Context, req overtime.CreateEntryRequest) (overtime.SaveEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.SaveEntryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return overtime.SaveEntryResponse{}, err
	}

	entryType := overtime.EntryTypePaid
	if !validator.IsEmpty(req.Type) {
		entryType = overtime.EntryType(req.Type)
	}

	entry := overtime.Entry{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		ProjectID:    overtime.NonEmpty(req.ProjectID),
		ProjectName:  strings.TrimSpace(req.ProjectName),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		StartTime2:   req.StartTime2,
		EndTime2:     req.EndTime2,
		LunchWorked:  req.LunchWorked,
		Type:         entryType,
		Observation:  overtime.NonEmpty(req.Observation),
	}
	if err := s.evaluate(&entry, req.Date, emp); err != nil {
		return overtime.SaveEntryResponse{}, err
	}

	var created overtime.Entry
	var alerts []overtime.LimitAlert
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.entryRepo.Create(ctx, entry)
		if err != nil {
			return err
		}
		alerts, err = s.checkLimits(ctx, created)
		return err
	})
	if err != nil {
		return overtime.SaveEntryResponse{}, err
	}

	slog.Info("Overtime entry created",
		"entry_id", created.ID,
		"employee_id", created.EmployeeID,
		"date", created.Date.Format("2006-01-02"),
		"overtime_minutes", created.OvertimeMinutes,
		"alerts", len(alerts),
	)

	return overtime.NewSaveEntryResponse(created, alerts), nil
}

// GetEntry implements overtime.Service.
func (s *OvertimeServiceImpl) GetEntry(ctx context.Context, id string) (overtime.EntryResponse, error) {
	if !validator.IsValidUUID(id) {
		return overtime.EntryResponse{}, overtime.ErrInvalidEntryID
	}

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.EntryResponse{}, err
	}

	return overtime.NewEntryResponse(entry), nil
}

// UpdateEntry implements overtime.Service.
func (s *OvertimeServiceImpl) UpdateEntry(ctx context.Context, req overtime.UpdateEntryRequest) (overtime.SaveEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.SaveEntryResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return overtime.SaveEntryResponse{}, overtime.ErrInvalidEntryID
	}

	var updated overtime.Entry
	var alerts []overtime.LimitAlert
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.entryRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(ctx, existing.EmployeeID)
		if err != nil {
			return err
		}

		date := existing.Date.Format("2006-01-02")
		if req.Date != nil {
			date = *req.Date
		}
		if req.ProjectID != nil {
			existing.ProjectID = overtime.NonEmpty(req.ProjectID)
		}
		if req.ProjectName != nil {
			existing.ProjectName = strings.TrimSpace(*req.ProjectName)
		}
		if req.StartTime != nil {
			existing.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			existing.EndTime = *req.EndTime
		}
		if req.StartTime2 != nil {
			existing.StartTime2 = req.StartTime2
		}
		if req.EndTime2 != nil {
			existing.EndTime2 = req.EndTime2
		}
		if req.LunchWorked != nil {
			existing.LunchWorked = *req.LunchWorked
		}
		if req.Type != nil {
			existing.Type = overtime.EntryType(*req.Type)
		}
		if req.Observation != nil {
			existing.Observation = overtime.NonEmpty(req.Observation)
		}

		if err := s.evaluate(&existing, date, emp); err != nil {
			return err
		}

		updated, err = s.entryRepo.Update(ctx, existing)
		if err != nil {
			return err
		}
		alerts, err = s.checkLimits(ctx, updated)
		return err
	})
	if err != nil {
		return overtime.SaveEntryResponse{}, err
	}

	return overtime.NewSaveEntryResponse(updated, alerts), nil
}

// DeleteEntry implements overtime.Service.
func (s *OvertimeServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return overtime.ErrInvalidEntryID
	}
	return s.entryRepo.Delete(ctx, id)
}

// ListEntries implements overtime.Service.
func (s *OvertimeServiceImpl) ListEntries(ctx context.Context, req overtime.ListEntriesRequest) ([]overtime.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := overtime.EntryFilter{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
	}
	if !validator.IsEmpty(req.Month) {
		from, to, err := overtime.MonthPeriod(req.Month, req.Year)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}

	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]overtime.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, overtime.NewEntryResponse(e))
	}
	return resp, nil
}

// EmployeeMonthlyReport implements overtime.Service.
func (s *OvertimeServiceImpl) EmployeeMonthlyReport(ctx context.Context, req overtime.MonthlyReportRequest) (overtime.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.MonthlyReportResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		return overtime.MonthlyReportResponse{}, err
	}

	from, to, _ := overtime.MonthPeriod(req.Month, req.Year)
	entries, err := s.entryRepo.List(ctx, overtime.EntryFilter{
		EmployeeID: emp.ID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return overtime.MonthlyReportResponse{}, err
	}

	return overtime.NewMonthlyReportResponse(emp.ID, emp.FullName, from, entries), nil
}

// ProjectMonthlyReport implements overtime.Service.
func (s *OvertimeServiceImpl) ProjectMonthlyReport(ctx context.Context, req overtime.MonthlyReportRequest) (overtime.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.MonthlyReportResponse{}, err
	}

	from, to, _ := overtime.MonthPeriod(req.Month, req.Year)
	entries, err := s.entryRepo.List(ctx, overtime.EntryFilter{
		ProjectID: req.SubjectID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		return overtime.MonthlyReportResponse{}, err
	}

	projectName := ""
	if len(entries) > 0 {
		projectName = entries[len(entries)-1].ProjectName
	}

	return overtime.NewMonthlyReportResponse(req.SubjectID, projectName, from, entries), nil
}

// evaluate canonicalises the entry times and recomputes its overtime minutes
// with the policy of the employee's branch.
func (s *OvertimeServiceImpl) evaluate(entry *overtime.Entry, date string, emp employee.Employee) error {
	day, err := overtime.ParseWorkDate(date)
	if err != nil {
		return err
	}
	entry.Date = day

	opts := overtime.Options{
		BranchName:  emp.BranchLabel(),
		LunchWorked: entry.LunchWorked,
		StartTime2:  overtime.NonEmpty(entry.StartTime2),
		EndTime2:    overtime.NonEmpty(entry.EndTime2),
	}

	b, err := s.calculator.Compute(date, entry.StartTime, entry.EndTime, opts)
	if err != nil {
		return err
	}

	first := b.Intervals[0].Interval
	entry.StartTime, entry.EndTime = first.Start.String(), first.End.String()
	entry.StartTime2, entry.EndTime2 = nil, nil
	if len(b.Intervals) > 1 {
		second := b.Intervals[1].Interval
		start2, end2 := second.Start.String(), second.End.String()
		entry.StartTime2, entry.EndTime2 = &start2, &end2
	}
	entry.OvertimeMinutes = b.TotalMinutes

	return nil
}

// checkLimits sums the employee's week, and the month's Saturdays when the entry is on a
// Saturday, then stores an alert notification for every limit reached.
func (s *OvertimeServiceImpl) checkLimits(ctx context.Context, entry overtime.Entry) ([]overtime.LimitAlert, error) {
	weekFrom, weekTo := overtime.WeekPeriod(entry.Date)
	weekMinutes, err := s.entryRepo.SumMinutes(ctx, overtime.SumFilter{
		EmployeeID: entry.EmployeeID,
		From:       weekFrom,
		To:         weekTo,
	})
	if err != nil {
		return nil, err
	}

	saturdayMinutes := 0
	if entry.Date.Weekday() == time.Saturday {
		monthFrom := time.Date(entry.Date.Year(), entry.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		saturday := time.Saturday
		saturdayMinutes, err = s.entryRepo.SumMinutes(ctx, overtime.SumFilter{
			EmployeeID: entry.EmployeeID,
			From:       monthFrom,
			To:         monthFrom.AddDate(0, 1, 0),
			Weekday:    &saturday,
		})
		if err != nil {
			return nil, err
		}
	}

	alerts := s.limits.Check(entry.EmployeeName, weekMinutes, saturdayMinutes)
	if len(alerts) == 0 {
		return nil, nil
	}

	notifications := make([]*notification.Notification, 0, len(alerts))
	for _, a := range alerts {
		employeeID, employeeName := entry.EmployeeID, entry.EmployeeName
		notifications = append(notifications, &notification.Notification{
			Type:         notification.NotificationType(a.Level),
			Title:        a.Title,
			Message:      a.Message,
			EmployeeID:   &employeeID,
			EmployeeName: &employeeName,
			Data: map[string]interface{}{
				"kind":           string(a.Kind),
				"entry_id":       entry.ID,
				"actual_minutes": a.ActualMinutes,
				"limit_minutes":  a.LimitMinutes,
			},
		})
		slog.Warn("Overtime limit reached",
			"employee_id", entry.EmployeeID,
			"kind", a.Kind,
			"level", a.Level,
			"actual_minutes", a.ActualMinutes,
			"limit_minutes", a.LimitMinutes,
		)
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return nil, fmt.Errorf("failed to store limit notifications: %w", err)
	}

	return alerts, nil
}
