package models

// CategoryAll matches every specialization in a directory query
const CategoryAll = "all"

// FacultyMember is one directory entry. Specialization is the category key
// matched by the filter select; SpecializationLabel is the displayed text.
type FacultyMember struct {
	ID                  string `json:"id" yaml:"id"`
	Name                string `json:"name" yaml:"name"`
	Specialization      string `json:"specialization" yaml:"specialization"`
	SpecializationLabel string `json:"specializationLabel" yaml:"specialization_label"`
	Position            string `json:"position" yaml:"position"`
	Email               string `json:"email,omitempty" yaml:"email"`
	SortOrder           int    `json:"sortOrder" yaml:"sort_order"`
}

// DisplaySpecialization returns the label, falling back to the category key
func (m *FacultyMember) DisplaySpecialization() string {
	if m.SpecializationLabel != "" {
		return m.SpecializationLabel
	}
	return m.Specialization
}

// FilterQuery is the current directory search and category filter
type FilterQuery struct {
	SearchText string `json:"searchText" form:"q" binding:"max=200"`
	Category   string `json:"category" form:"category" binding:"max=64"`
}

// EffectiveCategory returns the category, treating empty as "all"
func (q FilterQuery) EffectiveCategory() string {
	if q.Category == "" {
		return CategoryAll
	}
	return q.Category
}

// VisibilitySet holds one visibility flag per directory entry, in entry order
type VisibilitySet []bool

// VisibleCount returns the number of visible entries
func (v VisibilitySet) VisibleCount() int {
	n := 0
	for _, visible := range v {
		if visible {
			n++
		}
	}
	return n
}

// DirectoryResult is the derived view of the directory for a query
type DirectoryResult struct {
	Query      FilterQuery     `json:"query"`
	Visibility VisibilitySet   `json:"visibility"`
	Entries    []FacultyMember `json:"entries"`
	Total      int             `json:"total"`
	Visible    int             `json:"visible"`
	NoResults  bool            `json:"noResults"`
	// Version counts recomputes in a live view; zero for one-off queries
	Version uint64 `json:"version,omitempty"`
}

// Category is a distinct specialization key with its display label
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
