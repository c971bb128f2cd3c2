// Package form holds the contact form state machine: per-field validity
// state, full and incremental validation, and the timed success view.
package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/validation"
	"github.com/csdept/deptsite-api/pkg/clock"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/csdept/deptsite-api/pkg/logger"
	"go.uber.org/zap"
)

// DefaultResetDelay is how long the success view stays up before the form
// is cleared and editable again
const DefaultResetDelay = 5000 * time.Millisecond

var (
	// ErrFormLocked is returned for edits or submits while a submission is
	// being recorded or the success view is shown
	ErrFormLocked = apperrors.ConflictError("contact form is locked")
)

// Submitter records a valid submission
type Submitter interface {
	SubmitContact(ctx context.Context, msg *models.ContactMessage) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, msg *models.ContactMessage) error

func (f SubmitterFunc) SubmitContact(ctx context.Context, msg *models.ContactMessage) error {
	return f(ctx, msg)
}

// Options configures a Controller
type Options struct {
	Clock      clock.Clock
	ResetDelay time.Duration
	Submitter  Submitter
	// OnReset is called, outside the controller lock, after the success
	// view times out and the form has been cleared
	OnReset func(models.FormSnapshot)
}

// Controller tracks the contact form. It is safe for concurrent use; the
// reset timer fires on its own goroutine with the real clock. Fields cannot
// be edited while a submission is being recorded.
type Controller struct {
	mu         sync.Mutex
	fields     map[models.FieldID]*models.Field
	state      models.SubmissionState
	submitting bool
	closed     bool
	version    uint64

	clock      clock.Clock
	resetDelay time.Duration
	resetTimer clock.Timer
	submitter  Submitter
	onReset    func(models.FormSnapshot)
}

// NewController creates a form with every field empty and neutral
func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}

	c := &Controller{
		fields:     make(map[models.FieldID]*models.Field, len(models.FieldOrder)),
		state:      models.SubmissionEditable,
		clock:      opts.Clock,
		resetDelay: opts.ResetDelay,
		submitter:  opts.Submitter,
		onReset:    opts.OnReset,
	}
	for _, id := range models.FieldOrder {
		c.fields[id] = &models.Field{ID: id, State: models.FieldNeutral}
	}
	return c
}

// SetValue commits a new value for a field (an input event). A field that is
// currently in error is re-validated so the error clears as soon as the
// value is corrected.
func (c *Controller) SetValue(id models.FieldID, value string) (models.Field, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.editableFieldLocked(id)
	if err != nil {
		return models.Field{}, err
	}

	f.Value = value
	if f.State == models.FieldError {
		c.applyLocked(f, validation.Validate(id, f.Value))
	}
	c.version++
	return *f, nil
}

// ValidateOne commits value and validates the field, for live feedback.
func (c *Controller) ValidateOne(id models.FieldID, value string) (models.ValidationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.editableFieldLocked(id)
	if err != nil {
		return models.ValidationResult{}, err
	}

	f.Value = value
	res := validation.Validate(id, f.Value)
	c.applyLocked(f, res)
	c.version++
	return res, nil
}

// Blur validates the field against its latest committed value
func (c *Controller) Blur(id models.FieldID) (models.ValidationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.editableFieldLocked(id)
	if err != nil {
		return models.ValidationResult{}, err
	}

	res := validation.Validate(id, f.Value)
	c.applyLocked(f, res)
	c.version++
	return res, nil
}

// ValidateAll validates every field in order and reports whether all passed.
// Failing fields carry their message; passing fields are marked success.
func (c *Controller) ValidateAll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateAllLocked()
}

// Submit validates the whole form. When valid, the submission is handed to
// the Submitter, the success view is shown, and the form resets after the
// reset delay. The bool is the validation outcome; the error reports a
// Submitter failure or a submit while locked, in which case the state does
// not change.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state != models.SubmissionEditable || c.submitting {
		c.mu.Unlock()
		logger.Debug("Contact form submit ignored while locked")
		return false, ErrFormLocked
	}

	if !c.validateAllLocked() {
		c.mu.Unlock()
		return false, nil
	}

	msg := models.ContactMessageFromValues(c.trimmedValuesLocked())
	c.submitting = true
	submitter := c.submitter
	c.mu.Unlock()

	var submitErr error
	if submitter != nil {
		submitErr = submitter.SubmitContact(ctx, msg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if submitErr != nil {
		logger.Error("Failed to record contact submission", zap.Error(submitErr))
		return true, fmt.Errorf("record submission: %w", submitErr)
	}
	if c.closed {
		return true, nil
	}

	c.state = models.SubmissionShowingSuccess
	c.version++
	c.resetTimer = c.clock.AfterFunc(c.resetDelay, c.reset)
	return true, nil
}

// Snapshot returns a copy of the current form state
func (c *Controller) Snapshot() models.FormSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the submission state
func (c *Controller) State() models.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops a pending reset. Used when the page owning the form goes away.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

// reset runs when the success view times out
func (c *Controller) reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	for _, id := range models.FieldOrder {
		f := c.fields[id]
		f.Value = ""
		f.State = models.FieldNeutral
		f.Message = ""
	}
	c.state = models.SubmissionEditable
	c.resetTimer = nil
	c.version++
	snapshot := c.snapshotLocked()
	onReset := c.onReset
	c.mu.Unlock()

	logger.Debug("Contact form reset after success view")
	if onReset != nil {
		onReset(snapshot)
	}
}

func (c *Controller) editableFieldLocked(id models.FieldID) (*models.Field, error) {
	f, ok := c.fields[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, validation.ErrUnknownField)
	}
	if c.state != models.SubmissionEditable || c.submitting {
		return nil, ErrFormLocked
	}
	return f, nil
}

func (c *Controller) validateAllLocked() bool {
	for _, id := range models.FieldOrder {
		f := c.fields[id]
		f.State = models.FieldNeutral
		f.Message = ""
	}

	allValid := true
	for _, id := range models.FieldOrder {
		f := c.fields[id]
		res := validation.Validate(id, f.Value)
		c.applyLocked(f, res)
		if !res.Valid {
			allValid = false
		}
	}
	c.version++
	return allValid
}

func (c *Controller) applyLocked(f *models.Field, res models.ValidationResult) {
	if res.Valid {
		f.State = models.FieldSuccess
		f.Message = ""
		return
	}
	f.State = models.FieldError
	f.Message = res.Message
}

func (c *Controller) trimmedValuesLocked() map[models.FieldID]string {
	values := make(map[models.FieldID]string, len(c.fields))
	for id, f := range c.fields {
		values[id] = f.Value
	}
	return validation.TrimValues(values)
}

func (c *Controller) snapshotLocked() models.FormSnapshot {
	fields := make([]models.Field, 0, len(models.FieldOrder))
	for _, id := range models.FieldOrder {
		fields = append(fields, *c.fields[id])
	}
	showingSuccess := c.state == models.SubmissionShowingSuccess
	return models.FormSnapshot{
		Fields:         fields,
		State:          c.state,
		FormVisible:    !showingSuccess,
		SuccessVisible: showingSuccess,
		Version:        c.version,
	}
}
