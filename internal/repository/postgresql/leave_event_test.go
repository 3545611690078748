package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB returns a single-connection pool so that temporary tables created
// by the test are visible to every repository query.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 1, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// seedLeaveTables creates temporary tables that shadow the HRIS schema for
// the lifetime of the connection.
func seedLeaveTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	statements := []string{
		`CREATE TEMP TABLE leave_types (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, code TEXT, color TEXT
		)`,
		`CREATE TEMP TABLE leave_requests (
			id TEXT PRIMARY KEY, employee_id TEXT NOT NULL, leave_type_id TEXT NOT NULL,
			start_date DATE NOT NULL, end_date DATE NOT NULL, status TEXT NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`INSERT INTO leave_types (id, name, code, color) VALUES
			('lt-paid', 'Congés payés', 'AB-300', NULL),
			('lt-sick', 'Sick leave', NULL, '#112233'),
			('lt-rtt', 'RTT', 'AB-310', 'not-a-color')`,
		`INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, status) VALUES
			('r1', 'emp-1', 'lt-paid', '2024-04-14', '2024-04-18', 'approved'),
			('r2', 'emp-1', 'lt-sick', '2024-12-30', '2025-01-02', 'waiting_approval'),
			('r3', 'emp-1', 'lt-rtt', '2024-05-21', '2024-05-21', 'rejected'),
			('r4', 'emp-2', 'lt-paid', '2024-06-01', '2024-06-05', 'approved'),
			('r5', 'emp-1', 'lt-rtt', '2023-03-01', '2023-03-01', 'approved'),
			('r6', 'emp-1', 'lt-rtt', '2024-02-09', '2024-02-09', 'approved')`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DROP TABLE IF EXISTS pg_temp.leave_requests, pg_temp.leave_types`)
	})
}

func TestLeaveEventRepository_FetchRecords(t *testing.T) {
	db := openTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seedLeaveTables(t, ctx, db)

	repo := postgresql.NewLeaveEventRepository(db, "emp-1")
	records, err := repo.FetchRecords(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "RTT", records[0].Title)
	assert.Equal(t, "2024-02-09", records[0].StartDate)
	assert.Equal(t, "RTT AB-310", records[0].CategoryName)
	assert.Empty(t, records[0].Color)

	assert.Equal(t, "Congés payés", records[1].Title)
	assert.Equal(t, "2024-04-14", records[1].StartDate)
	assert.Equal(t, "2024-04-18", records[1].EndDate)
	assert.Equal(t, "approved", records[1].Status)

	assert.Equal(t, "2024-12-30", records[2].StartDate)
	assert.Equal(t, "2025-01-02", records[2].EndDate)
	assert.Equal(t, "#112233", records[2].Color)
	assert.Equal(t, "waiting_approval", records[2].Status)

	next, err := repo.FetchRecords(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "Sick leave", next[0].Title)
}
