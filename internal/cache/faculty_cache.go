package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// FacultySource defines the interface for roster fetching.
// This allows switching between file, S3 and PostgreSQL implementations.
type FacultySource interface {
	ListFaculty(ctx context.Context) ([]models.FacultyMember, error)
}

const (
	facultyKeyPrefix = "faculty:id:"
	allFacultyKey    = "faculty:all"
	metadataKey      = "faculty:metadata"
	cacheCheckPeriod = 10 * time.Minute
	maxRetries       = 3
	initialRetryWait = 2 * time.Second
	cacheName        = "faculty"
)

// CacheMetadata stores cache-wide information
type CacheMetadata struct {
	LastRefreshTime time.Time
	FacultyCount    int
	Version         int64
}

// FacultyCache keeps the directory roster in memory and refreshes it from
// the source every TTL. Reads never hit the source.
type FacultyCache struct {
	cache      *gocache.Cache
	source     FacultySource
	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
	retryWait  time.Duration
}

// NewFacultyCache creates a new roster cache
func NewFacultyCache(source FacultySource, ttlSeconds int) *FacultyCache {
	return &FacultyCache{
		cache:     gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		source:    source,
		ttl:       time.Duration(ttlSeconds) * time.Second,
		retryWait: initialRetryWait,
	}
}

// Initialize performs the initial population (blocks until ready) and starts
// the periodic refresh, which stops when ctx is cancelled.
// Should be called during application startup before accepting requests.
func (fc *FacultyCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing faculty cache...")
	startTime := time.Now()

	if err := fc.refreshWithRetry(ctx); err != nil {
		logger.Error("Failed to initialize faculty cache", zap.Error(err))
		return err
	}

	fc.mu.Lock()
	fc.ready = true
	fc.mu.Unlock()

	logger.Info("Faculty cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	if fc.ttl > 0 {
		go fc.schedulePeriodicRefresh(ctx)
	}

	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (fc *FacultyCache) IsReady() bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.ready
}

// Get returns a copy of the roster in display order
func (fc *FacultyCache) Get() ([]models.FacultyMember, error) {
	if !fc.IsReady() {
		return nil, apperrors.UnavailableError("faculty cache not initialized")
	}

	data, found := fc.cache.Get(allFacultyKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("faculty_all").Inc()
		return []models.FacultyMember{}, nil
	}

	members, ok := data.([]models.FacultyMember)
	if !ok {
		logger.Error("Invalid cache data type for faculty list")
		return []models.FacultyMember{}, nil
	}

	metrics.CacheHits.WithLabelValues("faculty_all").Inc()

	out := make([]models.FacultyMember, len(members))
	copy(out, members)
	return out, nil
}

// GetByID retrieves a single entry
func (fc *FacultyCache) GetByID(id string) (*models.FacultyMember, error) {
	if !fc.IsReady() {
		return nil, apperrors.UnavailableError("faculty cache not initialized")
	}

	data, found := fc.cache.Get(facultyKeyPrefix + id)
	if !found {
		metrics.CacheMisses.WithLabelValues("faculty_by_id").Inc()
		return nil, apperrors.NotFoundError("faculty member " + id)
	}

	member, ok := data.(models.FacultyMember)
	if !ok {
		fc.cache.Delete(facultyKeyPrefix + id)
		return nil, apperrors.InternalError("invalid cache data")
	}

	metrics.CacheHits.WithLabelValues("faculty_by_id").Inc()
	return &member, nil
}

// Refresh reloads the roster from the source. Concurrent calls are collapsed:
// a refresh already in progress makes this a no-op.
func (fc *FacultyCache) Refresh(ctx context.Context) error {
	fc.mu.Lock()
	if fc.refreshing {
		fc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	fc.refreshing = true
	fc.mu.Unlock()

	defer func() {
		fc.mu.Lock()
		fc.refreshing = false
		fc.mu.Unlock()
	}()

	startTime := time.Now()

	members, err := fc.source.ListFaculty(ctx)
	if err != nil {
		logger.Error("Failed to fetch roster in background refresh", zap.Error(err))
		return err
	}

	fc.populateCache(members)

	logger.Info("Background refresh completed",
		zap.Int("count", len(members)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}

// schedulePeriodicRefresh runs background refresh at TTL intervals
func (fc *FacultyCache) schedulePeriodicRefresh(ctx context.Context) {
	ticker := time.NewTicker(fc.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fc.Refresh(ctx); err != nil {
				// Keep serving the previous roster; retry on next tick
				logger.Error("Scheduled cache refresh failed", zap.Error(err))
			}
		}
	}
}

// refreshWithRetry performs a refresh with exponential backoff retry logic
func (fc *FacultyCache) refreshWithRetry(ctx context.Context) error {
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			//nolint:gosec // G115: attempt bounded by maxRetries (3), max shift is 2, no overflow possible
			waitTime := fc.retryWait * time.Duration(1<<uint(attempt-1))
			logger.Info("Retrying cache refresh",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxRetries),
				zap.Duration("wait_time", waitTime))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}

		members, fetchErr := fc.source.ListFaculty(ctx)
		if fetchErr != nil {
			err = fetchErr
			logger.Error("Cache refresh attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		fc.populateCache(members)
		return nil
	}

	return fmt.Errorf("failed to refresh cache after %d attempts: %w", maxRetries, err)
}

// populateCache replaces the roster, dropping entries that disappeared
func (fc *FacultyCache) populateCache(members []models.FacultyMember) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if previous, found := fc.cache.Get(allFacultyKey); found {
		if old, ok := previous.([]models.FacultyMember); ok {
			for _, m := range old {
				fc.cache.Delete(facultyKeyPrefix + m.ID)
			}
		}
	}

	snapshot := make([]models.FacultyMember, len(members))
	copy(snapshot, members)

	for _, m := range snapshot {
		fc.cache.Set(facultyKeyPrefix+m.ID, m, gocache.NoExpiration)
	}
	fc.cache.Set(allFacultyKey, snapshot, gocache.NoExpiration)

	now := time.Now()
	fc.cache.Set(metadataKey, &CacheMetadata{
		LastRefreshTime: now,
		FacultyCount:    len(snapshot),
		Version:         now.UnixNano(),
	}, gocache.NoExpiration)

	metrics.CacheSize.WithLabelValues(cacheName).Set(float64(len(snapshot)))
	logger.Info("Cache populated successfully", zap.Int("count", len(snapshot)))
}

// GetMetadata returns cache metadata
func (fc *FacultyCache) GetMetadata() (*CacheMetadata, error) {
	data, found := fc.cache.Get(metadataKey)
	if !found {
		return nil, apperrors.NotFoundError("cache metadata")
	}

	metadata, ok := data.(*CacheMetadata)
	if !ok {
		return nil, apperrors.InternalError("invalid metadata type")
	}

	return metadata, nil
}
