package services

import (
	"math"
	"strings"

	"github.com/csdept/deptsite-api/internal/models"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
)

const (
	// DefaultPage is the page served for a directory path
	DefaultPage = "index.html"

	// statSteps is the number of increments a counter animates through
	statSteps = 100

	// statFrameIntervalMs is the delay between counter frames
	statFrameIntervalMs = 20

	maxStatTarget = 1_000_000_000
)

// PageService computes the small page behaviors: navigation highlighting
// and statistics counter frames
type PageService struct {
	navPages []string
}

// NewPageService creates a page service for the given navigation links
func NewPageService(navPages []string) *PageService {
	pages := make([]string, len(navPages))
	copy(pages, navPages)
	return &PageService{navPages: pages}
}

// CurrentPage returns the last path segment, or index.html for a directory path
func CurrentPage(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	page := path[strings.LastIndex(path, "/")+1:]
	if page == "" {
		return DefaultPage
	}
	return page
}

// ActiveNav marks the navigation link whose href equals the current page
func (s *PageService) ActiveNav(path string) models.NavState {
	current := CurrentPage(path)

	links := make([]models.NavLink, 0, len(s.navPages))
	for _, href := range s.navPages {
		links = append(links, models.NavLink{Href: href, Active: href == current})
	}

	return models.NavState{CurrentPage: current, Links: links}
}

// StatFrames returns the values a counter shows while animating from 0 to
// target: target/100 is added per frame, each frame shows the floor of the
// running total, and the last frame shows target exactly.
func (s *PageService) StatFrames(target int) (*models.StatFrames, error) {
	if target < 0 || target > maxStatTarget {
		return nil, apperrors.InvalidInputError("target", "must be between 0 and 1000000000")
	}

	increment := float64(target) / statSteps
	current := 0.0
	goal := float64(target)

	// Float accumulation can fall just short after 100 steps; the extra
	// frame that follows is part of the animation.
	frames := make([]int, 0, statSteps+1)
	for len(frames) <= statSteps*2 {
		current += increment
		if current >= goal {
			frames = append(frames, target)
			break
		}
		frames = append(frames, int(math.Floor(current)))
	}

	return &models.StatFrames{
		Target:     target,
		IntervalMs: statFrameIntervalMs,
		Frames:     frames,
	}, nil
}
