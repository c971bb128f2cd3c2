package directory

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleFaculty() []models.FacultyMember {
	return []models.FacultyMember{
		{ID: "1", Name: "Jane Doe", Specialization: "ai", SpecializationLabel: "Artificial Intelligence", Position: "Professor"},
		{ID: "2", Name: "Alan Smith", Specialization: "robotics", SpecializationLabel: "Robotics", Position: "Associate Professor"},
		{ID: "3", Name: "Grace Lee", Specialization: "systems", SpecializationLabel: "Distributed Systems", Position: "Lecturer"},
		{ID: "4", Name: "Ken Thompson", Specialization: "ai", SpecializationLabel: "Machine Learning", Position: "Assistant Professor"},
	}
}

func TestIsVisible(t *testing.T) {
	jane := &models.FacultyMember{Name: "Jane Doe", Specialization: "ai", Position: "Professor"}

	tests := []struct {
		name    string
		query   models.FilterQuery
		visible bool
	}{
		{"search by name any category", models.FilterQuery{SearchText: "jane", Category: "all"}, true},
		{"empty search matching category", models.FilterQuery{SearchText: "", Category: "ai"}, true},
		{"name match wrong category", models.FilterQuery{SearchText: "jane", Category: "robotics"}, false},
		{"case insensitive", models.FilterQuery{SearchText: "JANE", Category: "all"}, true},
		{"search by position", models.FilterQuery{SearchText: "profess", Category: "all"}, true},
		{"search by specialization key when no label", models.FilterQuery{SearchText: "ai", Category: "all"}, true},
		{"empty category means all", models.FilterQuery{SearchText: "doe"}, true},
		{"no match", models.FilterQuery{SearchText: "zzz", Category: "all"}, false},
		{"category is case sensitive", models.FilterQuery{Category: "AI"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, IsVisible(jane, tt.query))
		})
	}
}

func TestIsVisible_SearchesLabelNotKey(t *testing.T) {
	m := &models.FacultyMember{Name: "Ken", Specialization: "ai", SpecializationLabel: "Machine Learning", Position: "Lecturer"}

	assert.True(t, IsVisible(m, models.FilterQuery{SearchText: "machine", Category: "all"}))
	assert.True(t, IsVisible(m, models.FilterQuery{SearchText: "", Category: "ai"}))
	assert.False(t, IsVisible(m, models.FilterQuery{SearchText: "ai", Category: "all"}))
}

func TestApplyAndResult(t *testing.T) {
	entries := sampleFaculty()

	set := Apply(entries, models.FilterQuery{SearchText: "professor", Category: "all"})
	assert.Equal(t, models.VisibilitySet{true, true, false, true}, set)
	assert.Equal(t, 3, set.VisibleCount())

	res := Result(entries, models.FilterQuery{SearchText: "", Category: "ai"})
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Visible)
	assert.False(t, res.NoResults)
	assert.Equal(t, "Jane Doe", res.Entries[0].Name)
	assert.Equal(t, "Ken Thompson", res.Entries[1].Name)

	res = Result(entries, models.FilterQuery{SearchText: "nobody", Category: "all"})
	assert.True(t, res.NoResults)
	assert.Empty(t, res.Entries)
	assert.Len(t, res.Visibility, 4)
}

func TestHasAnyVisible_MatchesEmptiness(t *testing.T) {
	assert.False(t, HasAnyVisible(nil))
	assert.False(t, HasAnyVisible(models.VisibilitySet{}))
	assert.False(t, HasAnyVisible(models.VisibilitySet{false, false}))
	assert.True(t, HasAnyVisible(models.VisibilitySet{false, true}))

	rng := rand.New(rand.NewSource(42))
	words := []string{"a", "e", "jane", "pro", "x", "", "robot", "lee"}
	categories := []string{"all", "ai", "robotics", "systems", "none"}
	for i := 0; i < 200; i++ {
		n := rng.Intn(6)
		entries := make([]models.FacultyMember, n)
		for j := range entries {
			entries[j] = models.FacultyMember{
				Name:           fmt.Sprintf("%s %d", words[rng.Intn(len(words))], j),
				Specialization: categories[1+rng.Intn(len(categories)-1)],
				Position:       words[rng.Intn(len(words))],
			}
		}
		q := models.FilterQuery{
			SearchText: words[rng.Intn(len(words))],
			Category:   categories[rng.Intn(len(categories))],
		}
		set := Apply(entries, q)
		assert.Equal(t, set.VisibleCount() > 0, HasAnyVisible(set))
		assert.Equal(t, set.VisibleCount() == 0, Result(entries, q).NoResults)
	}
}

func TestCategories(t *testing.T) {
	cats := Categories(sampleFaculty())
	assert.Equal(t, []models.Category{
		{Key: "ai", Label: "Artificial Intelligence", Count: 2},
		{Key: "robotics", Label: "Robotics", Count: 1},
		{Key: "systems", Label: "Distributed Systems", Count: 1},
	}, cats)
}
