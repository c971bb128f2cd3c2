package repository

import (
	"context"

	"github.com/csdept/deptsite-api/internal/database/postgres"
	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/logger"
	"go.uber.org/zap"
)

// PostgresFacultySource implements FacultySource using PostgreSQL
type PostgresFacultySource struct {
	client *postgres.Client
}

// NewPostgresFacultySource creates a new PostgreSQL faculty source
func NewPostgresFacultySource(client *postgres.Client) *PostgresFacultySource {
	return &PostgresFacultySource{client: client}
}

// ListFaculty fetches the roster from the faculty_members table
func (ds *PostgresFacultySource) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	return ds.client.ListFaculty(ctx)
}

// PostgresContactRecorder implements ContactMessageRecorder using PostgreSQL
type PostgresContactRecorder struct {
	client *postgres.Client
}

// NewPostgresContactRecorder creates a recorder backed by the contact_messages table
func NewPostgresContactRecorder(client *postgres.Client) *PostgresContactRecorder {
	return &PostgresContactRecorder{client: client}
}

// Record inserts the message
func (r *PostgresContactRecorder) Record(ctx context.Context, msg *models.ContactMessage) error {
	return r.client.InsertContactMessage(ctx, msg)
}

// LogContactRecorder only logs submissions. It is used when no database is
// configured, so a valid submission still succeeds without any outbound call.
type LogContactRecorder struct{}

// NewLogContactRecorder creates a log-only recorder
func NewLogContactRecorder() *LogContactRecorder {
	return &LogContactRecorder{}
}

// Record logs the submission metadata. The message body and contact details are not logged.
func (r *LogContactRecorder) Record(ctx context.Context, msg *models.ContactMessage) error {
	logger.Info("Contact form submission received",
		zap.String("subject", msg.Subject),
		zap.Int("message_length", len(msg.Message)),
		zap.Bool("has_phone", msg.Phone != ""))
	return nil
}

var (
	_ FacultySource          = (*PostgresFacultySource)(nil)
	_ ContactMessageRecorder = (*PostgresContactRecorder)(nil)
	_ ContactMessageRecorder = (*LogContactRecorder)(nil)
)
