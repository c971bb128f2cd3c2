package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"go.uber.org/zap"
)

const listFacultyQuery = `
		SELECT id, name, specialization, specialization_label, position, email, sort_order
		FROM faculty_members
		ORDER BY sort_order ASC, name ASC
	`

// ListFaculty fetches the directory roster in display order
func (c *Client) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	start := time.Now()
	operation := "listFaculty"

	fail := func(err error, msg string) ([]models.FacultyMember, error) {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	rows, err := c.db.Query(ctx, listFacultyQuery)
	if err != nil {
		return fail(err, "failed to query faculty")
	}
	defer rows.Close()

	members := make([]models.FacultyMember, 0)
	for rows.Next() {
		var m models.FacultyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Specialization, &m.SpecializationLabel,
			&m.Position, &m.Email, &m.SortOrder); err != nil {
			return fail(err, "failed to scan faculty row")
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return fail(err, "error iterating faculty rows")
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration, zap.Int("count", len(members)))

	return members, nil
}
