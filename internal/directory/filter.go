// Package directory filters the faculty directory by free-text search and
// specialization category.
package directory

import (
	"strings"

	"github.com/csdept/deptsite-api/internal/models"
)

// IsVisible reports whether entry matches q: the category is "all" or equal
// to the entry's specialization key, and the search text is a
// case-insensitive substring of the name, specialization or position.
func IsVisible(entry *models.FacultyMember, q models.FilterQuery) bool {
	category := q.EffectiveCategory()
	if category != models.CategoryAll && entry.Specialization != category {
		return false
	}

	term := strings.ToLower(q.SearchText)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Name), term) ||
		strings.Contains(strings.ToLower(entry.DisplaySpecialization()), term) ||
		strings.Contains(strings.ToLower(entry.Position), term)
}

// Apply computes the visibility set of entries under q
func Apply(entries []models.FacultyMember, q models.FilterQuery) models.VisibilitySet {
	set := make(models.VisibilitySet, len(entries))
	for i := range entries {
		set[i] = IsVisible(&entries[i], q)
	}
	return set
}

// HasAnyVisible reports whether at least one entry is visible
func HasAnyVisible(set models.VisibilitySet) bool {
	for _, visible := range set {
		if visible {
			return true
		}
	}
	return false
}

// Result builds the directory view for q
func Result(entries []models.FacultyMember, q models.FilterQuery) models.DirectoryResult {
	set := Apply(entries, q)
	visible := make([]models.FacultyMember, 0, len(entries))
	for i, ok := range set {
		if ok {
			visible = append(visible, entries[i])
		}
	}
	return models.DirectoryResult{
		Query:      q,
		Visibility: set,
		Entries:    visible,
		Total:      len(entries),
		Visible:    len(visible),
		NoResults:  !HasAnyVisible(set),
	}
}

// Categories returns the distinct specialization keys of entries in first-seen order
func Categories(entries []models.FacultyMember) []models.Category {
	index := make(map[string]int)
	categories := make([]models.Category, 0)
	for i := range entries {
		key := entries[i].Specialization
		if key == "" {
			continue
		}
		if pos, ok := index[key]; ok {
			categories[pos].Count++
			continue
		}
		index[key] = len(categories)
		categories = append(categories, models.Category{
			Key:   key,
			Label: entries[i].DisplaySpecialization(),
			Count: 1,
		})
	}
	return categories
}
