package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEmployeeRepository_BranchLabel(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b, err := postgresql.NewBranchRepository(db).Create(ctx, branch.Branch{Name: "Filial", City: "São José", State: "SC"})
	require.NoError(t, err)

	withBranch := insertEmployee(t, db, "Bruno Lima", &b.ID)
	without := insertEmployee(t, db, "Ana Souza", nil)

	repo := postgresql.NewEmployeeRepository(db)

	emp, err := repo.GetByID(ctx, withBranch)
	require.NoError(t, err)
	assert.Equal(t, "Filial São José", emp.BranchLabel())

	emp, err = repo.GetByID(ctx, without)
	require.NoError(t, err)
	assert.Empty(t, emp.BranchLabel())

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBranchRepository_Constraints(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewBranchRepository(db)

	b, err := repo.Create(ctx, branch.Branch{Name: "Matriz", City: "Joinville", State: "SC"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, branch.Branch{Name: "Matriz", City: "Blumenau", State: "SC"})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)

	insertEmployee(t, db, "Ana Souza", &b.ID)
	err = repo.Delete(ctx, b.ID)
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)
}

func TestOvertimeEntryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewOvertimeEntryRepository(db)
	empID := insertEmployee(t, db, "Ana Souza", nil)

	entry := overtime.Entry{
		ID:              uuid.Must(uuid.NewV7()).String(),
		EmployeeID:      empID,
		EmployeeName:    "Ana Souza",
		ProjectID:       strPtr("P-1"),
		ProjectName:     "Line 3 retrofit",
		Date:            date("2024-01-06"),
		StartTime:       "07:00",
		EndTime:         "12:00",
		StartTime2:      strPtr("22:00"),
		EndTime2:        strPtr("02:00"),
		Type:            overtime.EntryTypePaid,
		OvertimeMinutes: 540,
	}

	created, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, "07:00", created.StartTime)
	require.NotNil(t, created.EndTime2)
	assert.Equal(t, "02:00", *created.EndTime2)

	second := entry
	second.ID = uuid.Must(uuid.NewV7()).String()
	second.Date = date("2024-01-09")
	second.StartTime2, second.EndTime2 = nil, nil
	second.OvertimeMinutes = 60
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	saturday := time.Saturday
	sum, err := repo.SumMinutes(ctx, overtime.SumFilter{
		EmployeeID: empID,
		From:       date("2024-01-01"),
		To:         date("2024-02-01"),
		Weekday:    &saturday,
	})
	require.NoError(t, err)
	assert.Equal(t, 540, sum)

	sum, err = repo.SumMinutes(ctx, overtime.SumFilter{EmployeeID: empID, From: date("2024-01-01"), To: date("2024-02-01")})
	require.NoError(t, err)
	assert.Equal(t, 600, sum)

	from, to := date("2024-01-07"), date("2024-01-14")
	listed, err := repo.List(ctx, overtime.EntryFilter{ProjectID: "P-1", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)

	created.OvertimeMinutes = 300
	created.StartTime2, created.EndTime2 = nil, nil
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 300, updated.OvertimeMinutes)
	assert.Nil(t, updated.StartTime2)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, overtime.ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), overtime.ErrEntryNotFound)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewOvertimeEntryRepository(db)
	empID := insertEmployee(t, db, "Ana Souza", nil)
	boom := errors.New("boom")

	id := uuid.Must(uuid.NewV7()).String()
	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, overtime.Entry{
			ID: id, EmployeeID: empID, EmployeeName: "Ana Souza", ProjectName: "Inventory",
			Date: date("2024-01-06"), StartTime: "07:00", EndTime: "12:00", Type: overtime.EntryTypePaid,
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, overtime.ErrEntryNotFound)
}

func TestNotificationRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewNotificationRepository(db)
	empID := insertEmployee(t, db, "Ana Souza", nil)

	batch := []*notification.Notification{
		{Type: notification.TypeWarning, Title: "Weekly overtime close to limit", Message: "m", EmployeeID: &empID, Data: map[string]interface{}{"kind": "weekly"}},
		{Type: notification.TypeError, Title: "Saturday overtime limit exceeded", Message: "m", EmployeeID: &empID},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)

	count, err := repo.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkAsRead(ctx, batch[0].ID))
	assert.ErrorIs(t, repo.MarkAsRead(ctx, uuid.NewString()), notification.ErrNotificationNotFound)

	unread, total, err := repo.List(ctx, 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, batch[1].ID, unread[0].ID)

	all, _, err := repo.List(ctx, 1, 10, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	deleted, err := repo.DeleteReadBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	count, err = repo.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Create(ctx, &notification.Notification{Type: notification.TypeInfo, Title: "t", Message: "m"}))
	updated, err := repo.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	count, err = repo.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Delete(ctx, batch[1].ID))
	assert.ErrorIs(t, repo.Delete(ctx, batch[1].ID), notification.ErrNotificationNotFound)

	cleared, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	_, total, err = repo.List(ctx, 1, 10, false)
	require.NoError(t, err)
	assert.Zero(t, total)
}
