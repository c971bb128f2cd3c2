package services_test

import (
	"context"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRosterProvider is a mock implementation of RosterProvider
type MockRosterProvider struct {
	mock.Mock
}

func (m *MockRosterProvider) Get() ([]models.FacultyMember, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacultyMember), args.Error(1)
}

func (m *MockRosterProvider) GetByID(id string) (*models.FacultyMember, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FacultyMember), args.Error(1)
}

// MockContactRecorder is a mock implementation of ContactMessageRecorder
type MockContactRecorder struct {
	mock.Mock
}

func (m *MockContactRecorder) Record(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
