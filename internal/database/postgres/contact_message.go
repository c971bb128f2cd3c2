package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const insertContactMessageQuery = `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

// InsertContactMessage stores a valid contact form submission.
// ID and CreatedAt are assigned when empty.
func (c *Client) InsertContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	start := time.Now()
	operation := "insertContactMessage"

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := c.db.Exec(ctx, insertContactMessageQuery,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.CreatedAt)

	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall(ctx, "postgres", operation, "success", duration,
		zap.String("message_id", msg.ID),
		zap.String("subject", msg.Subject))

	return nil
}
