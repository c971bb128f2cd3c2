package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/csdept/deptsite-api/internal/models"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/slug"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// rosterDocument is the YAML layout of a roster file:
//
//	faculty:
//	  - name: Ada Lovelace
//	    specialization: ai
//	    specialization_label: Artificial Intelligence
//	    position: Professor
type rosterDocument struct {
	Faculty []models.FacultyMember `yaml:"faculty"`
}

// ParseRoster decodes and normalizes a YAML roster.
// Entries without an ID get one derived from the name; unknown keys are rejected.
// The result is ordered by sort_order, keeping file order for ties.
func ParseRoster(data []byte) ([]models.FacultyMember, error) {
	var doc rosterDocument

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.InvalidInputError("roster", err.Error())
	}

	seen := make(map[string]bool, len(doc.Faculty))
	members := make([]models.FacultyMember, 0, len(doc.Faculty))
	for i, m := range doc.Faculty {
		m.Name = strings.TrimSpace(m.Name)
		m.Specialization = strings.TrimSpace(m.Specialization)
		if m.Name == "" {
			return nil, apperrors.InvalidInputError("roster", fmt.Sprintf("entry %d has no name", i+1))
		}
		if m.Specialization == "" {
			return nil, apperrors.InvalidInputError("roster", fmt.Sprintf("%s has no specialization", m.Name))
		}
		if m.ID == "" {
			m.ID = slug.FacultyID(m.Name, i+1)
		}
		if seen[m.ID] {
			return nil, apperrors.InvalidInputError("roster", fmt.Sprintf("duplicate id %q", m.ID))
		}
		seen[m.ID] = true
		members = append(members, m)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].SortOrder < members[j].SortOrder
	})

	return members, nil
}

// FileRosterSource reads the roster from a YAML file on disk
type FileRosterSource struct {
	path string
}

// NewFileRosterSource creates a roster source for the given file
func NewFileRosterSource(path string) *FileRosterSource {
	return &FileRosterSource{path: path}
}

// ListFaculty reads and parses the roster file on every call
func (s *FileRosterSource) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundError("roster file " + s.path)
		}
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	members, err := ParseRoster(data)
	if err != nil {
		return nil, err
	}

	logger.Debug("Roster loaded from file",
		zap.String("path", s.path),
		zap.Int("count", len(members)))

	return members, nil
}

// S3RosterSource reads the roster from an object in a bucket
type S3RosterSource struct {
	objects ObjectGetter
	key     string
}

// NewS3RosterSource creates a roster source for the object stored under key
func NewS3RosterSource(objects ObjectGetter, key string) *S3RosterSource {
	return &S3RosterSource{objects: objects, key: key}
}

// ListFaculty downloads and parses the roster object
func (s *S3RosterSource) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	data, err := s.objects.GetObject(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return ParseRoster(data)
}

var (
	_ FacultySource = (*FileRosterSource)(nil)
	_ FacultySource = (*S3RosterSource)(nil)
)
