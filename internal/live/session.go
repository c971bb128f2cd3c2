// Package live runs one page's interactive state: a contact form and a
// faculty directory view driven by browser events, with every change pushed
// back to the page.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/csdept/deptsite-api/internal/directory"
	"github.com/csdept/deptsite-api/internal/form"
	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/clock"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Error texts sent to the page
const (
	ErrTextMalformed    = "malformed event"
	ErrTextInvalidEvent = "invalid event"
	ErrTextFieldMissing = "field is required for this event"
	ErrTextFormLocked   = "form is showing the success message"
	ErrTextSubmitFailed = "your message could not be sent, please try again"
)

// Sender delivers messages to the page
type Sender interface {
	Send(msg models.LiveMessage) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(msg models.LiveMessage) error

func (f SenderFunc) Send(msg models.LiveMessage) error {
	return f(msg)
}

// Options configures a Session
type Options struct {
	Clock      clock.Clock
	ResetDelay time.Duration
	Debounce   time.Duration
	Submitter  form.Submitter
	Validator  *validator.Validate
}

type handlerFunc func(ctx context.Context, ev *models.LiveEvent) error

// Session maps page events to the form and directory controllers. Events
// must be passed to Handle from a single goroutine, in arrival order; timer
// driven updates (debounced search, form reset) arrive on other goroutines
// and are serialized with event replies by the send lock. Form and directory
// states older than the last one sent are dropped.
type Session struct {
	id       string
	form     *form.Controller
	dir      *directory.Controller
	sender   Sender
	validate *validator.Validate
	handlers map[models.LiveEventType]handlerFunc

	sendMu      sync.Mutex
	closed      bool
	formVersion uint64
	dirVersion  uint64
}

// NewSession creates a session over the given roster
func NewSession(id string, roster []models.FacultyMember, sender Sender, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Validator == nil {
		opts.Validator = validator.New(validator.WithRequiredStructEnabled())
	}

	s := &Session{
		id:       id,
		sender:   sender,
		validate: opts.Validator,
	}

	s.form = form.NewController(form.Options{
		Clock:      opts.Clock,
		ResetDelay: opts.ResetDelay,
		Submitter:  opts.Submitter,
		OnReset: func(snapshot models.FormSnapshot) {
			s.pushForm(snapshot)
		},
	})
	s.dir = directory.NewController(roster, directory.Options{
		Clock:    opts.Clock,
		Debounce: opts.Debounce,
		OnChange: func(res models.DirectoryResult) {
			s.pushDirectory(res)
		},
	})

	s.handlers = map[models.LiveEventType]handlerFunc{
		models.LiveEventInput:    s.handleInput,
		models.LiveEventBlur:     s.handleBlur,
		models.LiveEventSubmit:   s.handleSubmit,
		models.LiveEventSearch:   s.handleSearch,
		models.LiveEventCategory: s.handleCategory,
		models.LiveEventQuery:    s.handleQuery,
		models.LiveEventPing:     s.handlePing,
	}

	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Start sends the session id and the initial form and directory state
func (s *Session) Start() error {
	if err := s.send(models.LiveMessage{Type: models.LiveMessageSession, SessionID: s.id}); err != nil {
		return err
	}
	if err := s.sendForm(s.form.Snapshot()); err != nil {
		return err
	}
	return s.sendDirectory(s.dir.Result())
}

// Handle decodes and dispatches one raw event. Bad events are answered with
// an error message; the returned error reports a failed send only.
func (s *Session) Handle(ctx context.Context, raw []byte) error {
	var ev models.LiveEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		metrics.LiveEvents.WithLabelValues("unknown", "malformed").Inc()
		return s.sendError(ErrTextMalformed)
	}
	return s.Dispatch(ctx, &ev)
}

// Dispatch runs the handler registered for the event type
func (s *Session) Dispatch(ctx context.Context, ev *models.LiveEvent) error {
	if err := s.validate.Struct(ev); err != nil {
		metrics.LiveEvents.WithLabelValues("unknown", "invalid").Inc()
		logger.Debug("Invalid live event", zap.String("session_id", s.id), zap.Error(err))
		return s.sendError(ErrTextInvalidEvent)
	}

	handler, ok := s.handlers[ev.Type]
	if !ok {
		metrics.LiveEvents.WithLabelValues("unknown", "invalid").Inc()
		return s.sendError(ErrTextInvalidEvent)
	}

	err := handler(ctx, ev)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LiveEvents.WithLabelValues(string(ev.Type), status).Inc()
	return err
}

// Close stops pending timers. No message is sent afterwards.
func (s *Session) Close() {
	s.form.Close()
	s.dir.Close()

	s.sendMu.Lock()
	s.closed = true
	s.sendMu.Unlock()
}

// Form exposes the form controller
func (s *Session) Form() *form.Controller {
	return s.form
}

// Directory exposes the directory controller
func (s *Session) Directory() *directory.Controller {
	return s.dir
}

func (s *Session) handleInput(ctx context.Context, ev *models.LiveEvent) error {
	if ev.Field == "" {
		return s.sendError(ErrTextFieldMissing)
	}
	if _, err := s.form.SetValue(ev.Field, ev.Value); err != nil {
		return s.formError(err)
	}
	s.pushForm(s.form.Snapshot())
	return nil
}

func (s *Session) handleBlur(ctx context.Context, ev *models.LiveEvent) error {
	if ev.Field == "" {
		return s.sendError(ErrTextFieldMissing)
	}
	if _, err := s.form.Blur(ev.Field); err != nil {
		return s.formError(err)
	}
	s.pushForm(s.form.Snapshot())
	return nil
}

func (s *Session) handleSubmit(ctx context.Context, ev *models.LiveEvent) error {
	valid, err := s.form.Submit(ctx)
	if err != nil {
		if errors.Is(err, form.ErrFormLocked) {
			return s.sendError(ErrTextFormLocked)
		}
		logger.Warn("Live submit failed", zap.String("session_id", s.id), zap.Error(err))
		if sendErr := s.sendError(ErrTextSubmitFailed); sendErr != nil {
			return sendErr
		}
		s.pushForm(s.form.Snapshot())
		return nil
	}

	if err := s.send(models.LiveMessage{Type: models.LiveMessageSubmitted, Valid: &valid}); err != nil {
		return err
	}
	s.pushForm(s.form.Snapshot())
	return nil
}

func (s *Session) handleSearch(ctx context.Context, ev *models.LiveEvent) error {
	s.dir.SetSearchText(ev.Search)
	return nil
}

func (s *Session) handleCategory(ctx context.Context, ev *models.LiveEvent) error {
	s.dir.SetCategory(ev.Category)
	return nil
}

func (s *Session) handleQuery(ctx context.Context, ev *models.LiveEvent) error {
	s.dir.SetQuery(ev.Search, ev.Category)
	return nil
}

func (s *Session) handlePing(ctx context.Context, ev *models.LiveEvent) error {
	return s.send(models.LiveMessage{Type: models.LiveMessagePong})
}

func (s *Session) formError(err error) error {
	if errors.Is(err, form.ErrFormLocked) {
		return s.sendError(ErrTextFormLocked)
	}
	return s.sendError(fmt.Sprintf("%s: %s", ErrTextInvalidEvent, err))
}

func (s *Session) pushForm(snapshot models.FormSnapshot) {
	if err := s.sendForm(snapshot); err != nil {
		logger.Debug("Failed to push form state", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Session) pushDirectory(res models.DirectoryResult) {
	if err := s.sendDirectory(res); err != nil {
		logger.Debug("Failed to push directory state", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Session) sendError(text string) error {
	return s.send(models.LiveMessage{Type: models.LiveMessageError, Error: text})
}

func (s *Session) send(msg models.LiveMessage) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return nil
	}
	return s.sender.Send(msg)
}

func (s *Session) sendForm(snapshot models.FormSnapshot) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return nil
	}
	if snapshot.Version < s.formVersion {
		logger.Debug("Dropped stale form state",
			zap.String("session_id", s.id),
			zap.Uint64("version", snapshot.Version),
			zap.Uint64("sent_version", s.formVersion))
		return nil
	}
	s.formVersion = snapshot.Version
	return s.sender.Send(models.LiveMessage{Type: models.LiveMessageForm, Form: &snapshot})
}

func (s *Session) sendDirectory(res models.DirectoryResult) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return nil
	}
	if res.Version < s.dirVersion {
		logger.Debug("Dropped stale directory state",
			zap.String("session_id", s.id),
			zap.Uint64("version", res.Version),
			zap.Uint64("sent_version", s.dirVersion))
		return nil
	}
	s.dirVersion = res.Version
	return s.sender.Send(models.LiveMessage{Type: models.LiveMessageDirectory, Directory: &res})
}
