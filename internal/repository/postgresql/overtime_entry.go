package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeEntryRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeEntryRepository(db *database.DB) overtime.EntryRepository {
	return &overtimeEntryRepositoryImpl{db: db}
}

const overtimeEntryColumns = `
	id, employee_id, employee_name, project_id, project_name, date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	to_char(start_time_2, 'HH24:MI'), to_char(end_time_2, 'HH24:MI'),
	lunch_worked, type, observation, overtime_minutes, created_at, updated_at
`

func scanOvertimeEntry(row pgx.Row) (overtime.Entry, error) {
	var e overtime.Entry
	var entryType string
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.EmployeeName,
		&e.ProjectID,
		&e.ProjectName,
		&e.Date,
		&e.StartTime,
		&e.EndTime,
		&e.StartTime2,
		&e.EndTime2,
		&e.LunchWorked,
		&entryType,
		&e.Observation,
		&e.OvertimeMinutes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Type = overtime.EntryType(entryType)
	return e, err
}

// Create implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) Create(ctx context.Context, e overtime.Entry) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_entries (
			id, employee_id, employee_name, project_id, project_name, date,
			start_time, end_time, start_time_2, end_time_2,
			lunch_worked, type, observation, overtime_minutes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::time, $8::time, $9::time, $10::time, $11, $12, $13, $14, NOW(), NOW())
		RETURNING ` + overtimeEntryColumns

	created, err := scanOvertimeEntry(q.QueryRow(ctx, query,
		e.ID,
		e.EmployeeID,
		e.EmployeeName,
		e.ProjectID,
		e.ProjectName,
		e.Date,
		e.StartTime,
		e.EndTime,
		e.StartTime2,
		e.EndTime2,
		e.LunchWorked,
		string(e.Type),
		e.Observation,
		e.OvertimeMinutes,
	))
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to create overtime entry: %w", err)
	}

	return created, nil
}

// GetByID implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeEntryColumns + ` FROM overtime_entries WHERE id = $1`

	e, err := scanOvertimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Entry{}, overtime.ErrEntryNotFound
		}
		return overtime.Entry{}, fmt.Errorf("failed to get overtime entry: %w", err)
	}

	return e, nil
}

// Update implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) Update(ctx context.Context, e overtime.Entry) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_entries SET
			project_id = $2,
			project_name = $3,
			date = $4,
			start_time = $5::time,
			end_time = $6::time,
			start_time_2 = $7::time,
			end_time_2 = $8::time,
			lunch_worked = $9,
			type = $10,
			observation = $11,
			overtime_minutes = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + overtimeEntryColumns

	updated, err := scanOvertimeEntry(q.QueryRow(ctx, query,
		e.ID,
		e.ProjectID,
		e.ProjectName,
		e.Date,
		e.StartTime,
		e.EndTime,
		e.StartTime2,
		e.EndTime2,
		e.LunchWorked,
		string(e.Type),
		e.Observation,
		e.OvertimeMinutes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Entry{}, overtime.ErrEntryNotFound
		}
		return overtime.Entry{}, fmt.Errorf("failed to update overtime entry: %w", err)
	}

	return updated, nil
}

// Delete implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtime_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete overtime entry: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return overtime.ErrEntryNotFound
	}

	return nil
}

// List implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) List(ctx context.Context, filter overtime.EntryFilter) ([]overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	// Build dynamic where clause
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argIdx))
		args = append(args, filter.ProjectID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date < $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	query := `SELECT ` + overtimeEntryColumns + ` FROM overtime_entries WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date ASC, start_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime entries: %w", err)
	}
	defer rows.Close()

	entries := []overtime.Entry{}
	for rows.Next() {
		e, err := scanOvertimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// SumMinutes implements overtime.EntryRepository.
func (r *overtimeEntryRepositoryImpl) SumMinutes(ctx context.Context, filter overtime.SumFilter) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_minutes), 0)
		FROM overtime_entries
		WHERE employee_id = $1 AND date >= $2 AND date < $3
	`
	args := []interface{}{filter.EmployeeID, filter.From, filter.To}

	if filter.Weekday != nil {
		query += ` AND EXTRACT(DOW FROM date) = $4`
		args = append(args, int(*filter.Weekday))
	}

	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum overtime minutes: %w", err)
	}

	return total, nil
}
