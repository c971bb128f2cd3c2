package repository

import (
	"context"

	"github.com/csdept/deptsite-api/internal/models"
)

// FacultySource loads the faculty directory roster.
// Implementations exist for a YAML file, an S3 object and PostgreSQL.
type FacultySource interface {
	// ListFaculty returns all directory entries in display order
	ListFaculty(ctx context.Context) ([]models.FacultyMember, error)
}

// ContactMessageRecorder stores valid contact form submissions
type ContactMessageRecorder interface {
	// Record persists the message, assigning its ID
	Record(ctx context.Context, msg *models.ContactMessage) error
}

// ObjectGetter downloads an object by key
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}
