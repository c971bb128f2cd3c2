package directory

import (
	"testing"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() (*Controller, *clock.Fake, *[]models.DirectoryResult) {
	fc := clock.NewFake(time.Unix(0, 0))
	changes := &[]models.DirectoryResult{}
	c := NewController(sampleFaculty(), Options{
		Clock: fc,
		OnChange: func(r models.DirectoryResult) {
			*changes = append(*changes, r)
		},
	})
	return c, fc, changes
}

func TestController_InitialViewShowsAll(t *testing.T) {
	c, _, _ := newTestController()

	res := c.Result()
	assert.Equal(t, 4, res.Visible)
	assert.False(t, res.NoResults)
	assert.Equal(t, models.CategoryAll, c.Query().Category)
	assert.Equal(t, 0, c.Recomputes())
}

func TestController_SetQueryIsImmediate(t *testing.T) {
	c, _, changes := newTestController()

	res := c.SetQuery("jane", "robotics")
	assert.True(t, res.NoResults)
	assert.Equal(t, 1, c.Recomputes())
	require.Len(t, *changes, 1)

	res = c.SetQuery("jane", "all")
	assert.Equal(t, 1, res.Visible)
	assert.Equal(t, 2, c.Recomputes())
}

func TestController_RapidSearchRecomputesOnceWithLastValue(t *testing.T) {
	c, fc, changes := newTestController()

	for _, text := range []string{"g", "gr", "gra", "grac", "grace"} {
		c.SetSearchText(text)
		fc.Advance(100 * time.Millisecond)
	}

	assert.Equal(t, 0, c.Recomputes())
	assert.Equal(t, 4, c.Result().Visible)

	fc.Advance(200 * time.Millisecond)

	assert.Equal(t, 1, c.Recomputes())
	require.Len(t, *changes, 1)
	res := c.Result()
	assert.Equal(t, "grace", res.Query.SearchText)
	assert.Equal(t, 1, res.Visible)
	assert.Equal(t, "Grace Lee", res.Entries[0].Name)

	fc.Advance(time.Second)
	assert.Equal(t, 1, c.Recomputes())
}

func TestController_SearchFiresAfterQuietPeriodOnly(t *testing.T) {
	c, fc, _ := newTestController()

	c.SetSearchText("lee")
	fc.Advance(299 * time.Millisecond)
	assert.Equal(t, 0, c.Recomputes())

	fc.Advance(time.Millisecond)
	assert.Equal(t, 1, c.Recomputes())
}

func TestController_CategoryChangeAppliesPendingSearch(t *testing.T) {
	c, fc, _ := newTestController()

	c.SetSearchText("professor")
	res := c.SetCategory("ai")

	assert.Equal(t, 1, c.Recomputes())
	assert.Equal(t, "professor", res.Query.SearchText)
	assert.Equal(t, 2, res.Visible)

	// pending debounced search was folded into the category change
	fc.Advance(time.Second)
	assert.Equal(t, 1, c.Recomputes())
}

func TestController_SetQueryCancelsPendingSearch(t *testing.T) {
	c, fc, _ := newTestController()

	c.SetSearchText("grace")
	c.SetQuery("alan", "all")
	fc.Advance(time.Second)

	assert.Equal(t, 1, c.Recomputes())
	assert.Equal(t, "alan", c.Query().SearchText)
}

func TestController_CloseDropsPendingSearch(t *testing.T) {
	c, fc, _ := newTestController()

	c.SetSearchText("grace")
	c.Close()
	fc.Advance(time.Second)

	assert.Equal(t, 0, c.Recomputes())
	assert.Equal(t, 0, fc.Pending())
}

func TestController_EntriesAreCopied(t *testing.T) {
	entries := sampleFaculty()
	c := NewController(entries, Options{Clock: clock.NewFake(time.Unix(0, 0))})

	entries[0].Name = "Changed"
	res := c.SetQuery("jane", "all")
	assert.Equal(t, 1, res.Visible)
}

func TestController_ResultVersionCountsRecomputes(t *testing.T) {
	c, fc, changes := newTestController()
	assert.Equal(t, uint64(0), c.Result().Version)

	c.SetCategory("ai")
	c.SetSearchText("grace")
	fc.Advance(time.Second)

	require.Len(t, *changes, 2)
	assert.Equal(t, uint64(1), (*changes)[0].Version)
	assert.Equal(t, uint64(2), (*changes)[1].Version)
	assert.Equal(t, uint64(2), c.Result().Version)
}
