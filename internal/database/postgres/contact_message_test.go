package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertContactMessage_AssignsIDAndTimestamp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	msg := &models.ContactMessage{
		Name:    "Jo Student",
		Email:   "jo@example.edu",
		Subject: "admissions",
		Message: "When is the application deadline?",
	}

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(pgxmock.AnyArg(), "Jo Student", "jo@example.edu", "", "admissions",
			"When is the application deadline?", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewClient(mock).InsertContactMessage(context.Background(), msg)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(msg.ID)
	assert.NoError(t, parseErr)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertContactMessage_KeepsProvidedValues(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &models.ContactMessage{
		ID:        "7a8f5a0e-2d7c-4b7e-9a55-4f0c8f0c1d11",
		Name:      "Jo Student",
		Email:     "jo@example.edu",
		Phone:     "+15551234567",
		Subject:   "general",
		Message:   "Hello there, department!",
		CreatedAt: created,
	}

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewClient(mock).InsertContactMessage(context.Background(), msg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertContactMessage_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbErr := errors.New("relation does not exist")
	mock.ExpectExec("INSERT INTO contact_messages").WillReturnError(dbErr)

	err = NewClient(mock).InsertContactMessage(context.Background(), &models.ContactMessage{Name: "x"})

	assert.ErrorIs(t, err, dbErr)
}
