package handlers_test

import (
	"context"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDirectoryService implements DirectoryServiceInterface for testing
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) Search(ctx context.Context, q models.FilterQuery) (*models.DirectoryResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectoryResult), args.Error(1)
}

func (m *MockDirectoryService) Get(ctx context.Context, id string) (*models.FacultyMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FacultyMember), args.Error(1)
}

func (m *MockDirectoryService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockDirectoryService) Roster(ctx context.Context) ([]models.FacultyMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacultyMember), args.Error(1)
}

// MockContactService implements ContactServiceInterface for testing
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) ValidateField(ctx context.Context, req *models.ValidateFieldRequest) (*models.ValidationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationResult), args.Error(1)
}

func (m *MockContactService) Submit(ctx context.Context, req *models.ContactFormRequest) (*models.ContactFormResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactFormResponse), args.Error(1)
}

func (m *MockContactService) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
