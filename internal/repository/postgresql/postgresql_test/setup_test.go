package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/overtime-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties the tables.
// The tests are skipped when no database is configured.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE notifications, overtime_entries, employees, branches CASCADE")
	require.NoError(t, err)

	return db
}

func insertEmployee(t *testing.T, db *database.DB, name string, branchID *string) string {
	t.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	_, err := db.Exec(context.Background(),
		`INSERT INTO employees (id, full_name, branch_id) VALUES ($1, $2, $3)`,
		id, name, branchID,
	)
	require.NoError(t, err)
	return id
}
