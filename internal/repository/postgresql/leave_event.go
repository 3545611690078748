package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/database"
)

type leaveEventRepositoryImpl struct {
	db         *database.DB
	employeeID string
}

// NewLeaveEventRepository reads one employee's leave requests from the HRIS
// schema as structured calendar records.
func NewLeaveEventRepository(db *database.DB, employeeID string) calendar.RecordSource {
	return &leaveEventRepositoryImpl{db: db, employeeID: employeeID}
}

// FetchRecords implements calendar.RecordSource.
func (r *leaveEventRepositoryImpl) FetchRecords(ctx context.Context, year int) ([]calendar.EventRecord, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	query := `
		SELECT lt.name, COALESCE(lt.code, ''), COALESCE(lt.color, ''),
			   lr.start_date, lr.end_date, lr.status::text
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		  AND lr.status IN ('approved', 'waiting_approval')
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
		ORDER BY lr.start_date, lr.submitted_at
	`

	rows, err := r.db.Query(ctx, query, r.employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query leave events: %w", err)
	}
	defer rows.Close()

	var records []calendar.EventRecord
	for rows.Next() {
		var (
			name, code, color, status string
			startDate, endDate        time.Time
		)
		if err := rows.Scan(&name, &code, &color, &startDate, &endDate, &status); err != nil {
			return nil, fmt.Errorf("scan leave event: %w", err)
		}

		categoryName := name
		if code != "" {
			categoryName = strings.TrimSpace(name + " " + code)
		}
		if color != "" && !calendar.RGBHexColor(color).Valid() {
			color = ""
		}

		records = append(records, calendar.EventRecord{
			Title:        name,
			StartDate:    caldate.FromTime(startDate).String(),
			EndDate:      caldate.FromTime(endDate).String(),
			CategoryName: categoryName,
			Color:        color,
			Status:       status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave events: %w", err)
	}

	return records, nil
}
