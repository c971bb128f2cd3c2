package services

import (
	"context"
	"strings"

	"github.com/csdept/deptsite-api/internal/directory"
	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/csdept/deptsite-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DirectoryService answers faculty directory queries from the roster cache
type DirectoryService struct {
	roster RosterProvider
}

// NewDirectoryService creates a new directory service instance
func NewDirectoryService(roster RosterProvider) *DirectoryService {
	return &DirectoryService{roster: roster}
}

// Search filters the roster by search text and category
func (s *DirectoryService) Search(ctx context.Context, q models.FilterQuery) (*models.DirectoryResult, error) {
	_, span := tracing.StartSpan(ctx, "directory.search")
	defer span.End()

	entries, err := s.roster.Get()
	if err != nil {
		logger.Warn("Directory search without roster", zap.Error(err))
		return nil, err
	}

	q.SearchText = strings.TrimSpace(q.SearchText)
	q.Category = q.EffectiveCategory()
	res := directory.Result(entries, q)

	resultLabel := "hits"
	if res.NoResults {
		resultLabel = "empty"
	}
	metrics.DirectorySearches.WithLabelValues(categoryLabel(entries, q.Category), resultLabel).Inc()
	span.SetAttributes(
		attribute.String("directory.category", q.Category),
		attribute.Int("directory.visible", res.Visible),
	)

	return &res, nil
}

// Get returns one faculty member by id
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.FacultyMember, error) {
	return s.roster.GetByID(strings.TrimSpace(id))
}

// Categories lists the distinct specializations present in the roster
func (s *DirectoryService) Categories(ctx context.Context) ([]models.Category, error) {
	entries, err := s.roster.Get()
	if err != nil {
		return nil, err
	}
	return directory.Categories(entries), nil
}

// Roster returns the current roster, for live sessions
func (s *DirectoryService) Roster(ctx context.Context) ([]models.FacultyMember, error) {
	return s.roster.Get()
}

// categoryLabel keeps the metric label set bounded to known categories
func categoryLabel(entries []models.FacultyMember, category string) string {
	if category == models.CategoryAll {
		return category
	}
	for i := range entries {
		if entries[i].Specialization == category {
			return category
		}
	}
	return "unknown"
}
