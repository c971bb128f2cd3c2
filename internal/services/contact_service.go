package services

import (
	"context"
	"fmt"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/repository"
	"github.com/csdept/deptsite-api/internal/validation"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/csdept/deptsite-api/pkg/tracing"
	"go.uber.org/zap"
)

// ContactService validates and records contact form submissions.
// Nothing is sent anywhere: a valid submission is only recorded.
type ContactService struct {
	recorder repository.ContactMessageRecorder
}

// NewContactService creates a new contact service instance
func NewContactService(recorder repository.ContactMessageRecorder) *ContactService {
	return &ContactService{recorder: recorder}
}

// ValidateField returns live feedback for one field
func (s *ContactService) ValidateField(ctx context.Context, req *models.ValidateFieldRequest) (*models.ValidationResult, error) {
	res, err := validation.ValidateKnown(req.Field, req.Value)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		metrics.FieldValidationFailures.WithLabelValues(string(req.Field), string(res.Kind)).Inc()
	}
	return &res, nil
}

// Submit validates every field. An invalid form yields per-field feedback
// and no error; a valid one is recorded.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactFormRequest) (*models.ContactFormResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "contact.submit")
	defer span.End()

	values := req.Values()
	results, valid := validation.ValidateValues(values)

	fields := make(map[models.FieldID]models.FieldFeedback, len(results))
	for id, res := range results {
		if res.Valid {
			fields[id] = models.FieldFeedback{State: models.FieldSuccess}
			continue
		}
		metrics.FieldValidationFailures.WithLabelValues(string(id), string(res.Kind)).Inc()
		fields[id] = models.FieldFeedback{State: models.FieldError, Message: res.Message}
	}

	if !valid {
		metrics.ContactFormSubmissions.WithLabelValues("invalid").Inc()
		return &models.ContactFormResponse{Success: false, Fields: fields}, nil
	}

	msg := models.ContactMessageFromValues(validation.TrimValues(values))
	if err := s.SubmitContact(ctx, msg); err != nil {
		return nil, err
	}

	return &models.ContactFormResponse{Success: true, Fields: fields}, nil
}

// SubmitContact records an already validated message
func (s *ContactService) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	if err := s.recorder.Record(ctx, msg); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to record contact message", zap.Error(err))
		return fmt.Errorf("failed to record contact message: %w", err)
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact message recorded",
		zap.String("message_id", msg.ID),
		zap.String("subject", msg.Subject))
	return nil
}
