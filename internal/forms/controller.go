package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meur/harborline/internal/models"
	"github.com/meur/harborline/internal/storage"
)

// DefaultResetDelay is how long the confirmation stays visible before the form clears.
const DefaultResetDelay = 3 * time.Second

var (
	// ErrUnknownField is returned when editing a field the form does not have.
	ErrUnknownField = errors.New("forms: unknown field")
	// ErrInFlight is returned when submitting while a submission is pending.
	ErrInFlight = errors.New("forms: submission already in progress")
	// ErrAlreadySubmitted is returned while the confirmation is shown.
	ErrAlreadySubmitted = errors.New("forms: form already submitted")
)

// ValidationError lists required fields that were left empty.
type ValidationError struct {
	Fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("forms: required fields missing [%s]", strings.Join(e.Fields, ", "))
}

// State is the lifecycle position of a form.
type State int

const (
	Idle State = iota
	Submitting
	Submitted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Status is a point-in-time copy of a form's state.
type Status struct {
	Form     string  `json:"form"`
	State    State   `json:"state"`
	Fields   []Field `json:"fields"`
	Values   Values  `json:"values"`
	Error    string  `json:"error,omitempty"`
	RecordID string  `json:"record_id,omitempty"`
}

// Form is the type-independent surface of a Controller.
type Form interface {
	Name() string
	Set(field, value string) error
	SetAll(values Values) error
	Submit(ctx context.Context) error
	Reset()
	Status() Status
}

// Option customises a Controller.
type Option func(*options)

type options struct {
	clock      Clock
	resetDelay time.Duration
	newID      func() string
	logger     *zap.Logger
}

// WithClock overrides the clock used for timestamps and the reset timer.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithResetDelay overrides how long a submitted form waits before clearing.
func WithResetDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.resetDelay = d
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:      SystemClock(),
		resetDelay: DefaultResetDelay,
		newID:      func() string { return uuid.NewString() },
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Controller drives one submission form: Idle -> Submitting -> Submitted -> Idle,
// with Submitting -> Failed when the store rejects the record.
type Controller[T models.Record] struct {
	def    Definition[T]
	client *storage.Client
	opts   options

	mu         sync.Mutex
	state      State
	values     Values
	seq        uint64
	lastErr    error
	last       T
	hasLast    bool
	resetTimer Timer
}

// NewController creates a controller for def writing through client
func NewController[T models.Record](def Definition[T], client *storage.Client, opts ...Option) *Controller[T] {
	o := newOptions(opts)
	o.logger = o.logger.Named("forms").With(zap.String("form", def.Name))
	return &Controller[T]{
		def:    def,
		client: client,
		opts:   o,
		values: emptyValues(def.Fields),
	}
}

// Name returns the form name.
func (c *Controller[T]) Name() string { return c.def.Name }

// Set updates one field value.
func (c *Controller[T]) Set(field, value string) error {
	return c.SetAll(Values{field: value})
}

// SetAll updates several field values at once. Nothing is applied if any field is unknown.
func (c *Controller[T]) SetAll(values Values) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitted {
		return ErrAlreadySubmitted
	}
	for name := range values {
		if _, ok := c.values[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	for name, value := range values {
		c.values[name] = value
	}
	return nil
}

// Submit validates the required fields, builds a record with a fresh id and the
// current time, and writes it to the store. It blocks until the store answers.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case Submitting:
		c.mu.Unlock()
		return ErrInFlight
	case Submitted:
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if missing := c.missingLocked(); len(missing) > 0 {
		c.mu.Unlock()
		return &ValidationError{Fields: missing}
	}

	rec := c.def.Build(c.opts.newID(), c.copyValuesLocked(), c.opts.clock.Now())
	c.seq++
	seq := c.seq
	c.state = Submitting
	c.lastErr = nil
	c.mu.Unlock()

	_, err := storage.CreateRecord(ctx, c.client, c.def.Collection, rec)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.opts.logger.Debug("ignoring result of abandoned submission", zap.String("record_id", rec.RecordID()))
		return err
	}
	if err != nil {
		c.state = Failed
		c.lastErr = err
		c.opts.logger.Warn("submission failed", zap.String("record_id", rec.RecordID()), zap.Error(err))
		return err
	}

	c.state = Submitted
	c.last = rec
	c.hasLast = true
	c.resetTimer = c.opts.clock.AfterFunc(c.opts.resetDelay, func() { c.expire(seq) })
	c.opts.logger.Info("submission stored", zap.String("record_id", rec.RecordID()))
	return nil
}

// expire returns a submitted form to Idle with cleared fields.
func (c *Controller[T]) expire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.state != Submitted {
		return
	}
	c.values = emptyValues(c.def.Fields)
	c.state = Idle
	c.resetTimer = nil
}

// Reset clears the form and returns it to Idle immediately. A pending store
// response or reset timer from an earlier submission is ignored afterwards.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.seq++
	c.values = emptyValues(c.def.Fields)
	c.state = Idle
	c.lastErr = nil
}

// State returns the current state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Values returns a copy of the current field values.
func (c *Controller[T]) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyValuesLocked()
}

// LastRecord returns the most recent successfully stored record.
func (c *Controller[T]) LastRecord() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// Status returns a snapshot suitable for rendering.
func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Status{
		Form:   c.def.Name,
		State:  c.state,
		Fields: c.def.Fields,
		Values: c.copyValuesLocked(),
	}
	if c.state == Failed && c.lastErr != nil {
		st.Error = "Submission failed. Please try again."
	}
	if c.state == Submitted && c.hasLast {
		st.RecordID = c.last.RecordID()
	}
	return st
}

func (c *Controller[T]) missingLocked() []string {
	var missing []string
	for _, f := range c.def.Fields {
		if f.Required && c.values[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func (c *Controller[T]) copyValuesLocked() Values {
	out := make(Values, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

func emptyValues(fields []Field) Values {
	values := make(Values, len(fields))
	for _, f := range fields {
		values[f.Name] = ""
	}
	return values
}
