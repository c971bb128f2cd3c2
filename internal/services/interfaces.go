package services

import (
	"context"

	"github.com/csdept/deptsite-api/internal/models"
)

// RosterProvider returns the current faculty roster
type RosterProvider interface {
	Get() ([]models.FacultyMember, error)
	GetByID(id string) (*models.FacultyMember, error)
}

// DirectoryServiceInterface defines the interface for faculty directory operations
type DirectoryServiceInterface interface {
	Search(ctx context.Context, q models.FilterQuery) (*models.DirectoryResult, error)
	Get(ctx context.Context, id string) (*models.FacultyMember, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Roster(ctx context.Context) ([]models.FacultyMember, error)
}

// ContactServiceInterface defines the interface for contact form operations
type ContactServiceInterface interface {
	ValidateField(ctx context.Context, req *models.ValidateFieldRequest) (*models.ValidationResult, error)
	Submit(ctx context.Context, req *models.ContactFormRequest) (*models.ContactFormResponse, error)
	SubmitContact(ctx context.Context, msg *models.ContactMessage) error
}

// PageServiceInterface defines the interface for page helper operations
type PageServiceInterface interface {
	ActiveNav(path string) models.NavState
	StatFrames(target int) (*models.StatFrames, error)
}
