package wizard

import (
	"fmt"
	"strings"
	"sync"

	"trial-screening/pkg/logging"
	"trial-screening/pkg/metrics"
	"trial-screening/pkg/models"
	"trial-screening/pkg/utils"
	"trial-screening/pkg/validation"
)

// Controller owns one user's pass through the wizard. Events are
// serialised so a repeated trigger cannot advance or notify twice.
type Controller struct {
	mu        sync.Mutex
	state     State
	reason    Reason
	screening *models.ScreeningRecord

	notifier Notifier
	logger   *logging.Logger
	metrics  *metrics.ScreeningMetrics
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.ScreeningMetrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// NewController starts a wizard in Step1Active
func NewController(notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		state:    Step1Active,
		notifier: notifier,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Outcome returns the current state together with its destination
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome()
}

// Screening returns a copy of the captured step 1 record, if any
func (c *Controller) Screening() (models.ScreeningRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screening == nil {
		return models.ScreeningRecord{}, false
	}
	return *c.screening, true
}

// OnFieldChanged validates a single value as the user types. It never
// changes state.
func (c *Controller) OnFieldChanged(field validation.Field, value string, r Reporter) validation.Verdict {
	v := validation.ValidateField(field, value)
	r.ReportVerdict(field, v)
	return v
}

// OnAdvanceRequested handles the move from step 1 to step 2
func (c *Controller) OnAdvanceRequested(in models.Step1Input, r Reporter) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Step1Active {
		return c.outcome(), fmt.Errorf("advance from %s: %w", c.state, ErrInvalidTransition)
	}

	errs := validation.FieldErrors{}
	c.check(r, errs, validation.FieldContact, validation.ValidateContact(in.Contact))
	c.check(r, errs, validation.FieldAge, validation.ValidateAge(in.Age))
	c.check(r, errs, validation.FieldDiagnosis, validation.ValidateDiagnosisSelected(in.Diagnosis))
	if err := errs.OrNil(); err != nil {
		return c.outcome(), err
	}

	age, _ := validation.ParseAge(in.Age)
	diagnosis := strings.TrimSpace(in.Diagnosis)
	if !EligibleStep1(age, diagnosis) {
		c.disqualify(ReasonStep1)
		return c.outcome(), nil
	}

	record := models.ScreeningRecord{
		Contact:   strings.TrimSpace(in.Contact),
		Age:       age,
		Diagnosis: diagnosis,
	}
	c.screening = &record

	c.notify("identify", func() error {
		return c.notifier.Identify(record.Contact, models.Traits{Age: record.Age, InitialDiagnosis: record.Diagnosis})
	})
	c.notify("track", func() error {
		return c.notifier.Track(EventStep1Completed, record)
	})

	c.transition(Step2Active, ReasonNone)
	c.logger.Info("screening step 1 completed", "contact_hash", utils.HashContact(record.Contact), "age", record.Age)
	return c.outcome(), nil
}

// OnSubmitRequested handles the final submission from step 2
func (c *Controller) OnSubmitRequested(in models.Step2Input, r Reporter) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Step2Active || c.screening == nil {
		return c.outcome(), fmt.Errorf("submit from %s: %w", c.state, ErrInvalidTransition)
	}

	app := models.NewApplicationRecord(in)
	errs := validation.FieldErrors{}
	verdicts := validation.ValidateStep2Selections(app.RecentChemo, app.CanTravel, app.DiagnosisStage)
	for _, f := range validation.Step2Fields {
		c.check(r, errs, f, verdicts[f])
	}
	if err := errs.OrNil(); err != nil {
		return c.outcome(), err
	}

	if !EligibleStep2(app) {
		c.disqualify(ReasonStep2)
		return c.outcome(), nil
	}

	final := models.Merge(*c.screening, app)
	c.notify("track", func() error {
		return c.notifier.Track(EventApplicationSubmitted, final)
	})

	c.screening = nil
	c.transition(Completed, ReasonNone)
	c.logger.Info("trial application submitted", "contact_hash", utils.HashContact(final.Contact), "stage", final.DiagnosisStage)
	return c.outcome(), nil
}

func (c *Controller) check(r Reporter, errs validation.FieldErrors, field validation.Field, v validation.Verdict) {
	r.ReportVerdict(field, v)
	if !v.Valid {
		errs.Add(field, v)
		c.metrics.ObserveValidationFailure(string(field), string(v.Kind))
	}
}

func (c *Controller) disqualify(reason Reason) {
	c.screening = nil
	c.transition(Disqualified, reason)
	c.logger.Info("screening disqualified", "reason", string(reason))
}

func (c *Controller) transition(to State, reason Reason) {
	c.metrics.ObserveTransition(string(c.state), string(to), string(reason))
	c.state = to
	c.reason = reason
}

// notify reports analytics failures without blocking the flow
func (c *Controller) notify(operation string, call func() error) {
	if c.notifier == nil {
		return
	}
	if err := call(); err != nil {
		c.metrics.ObserveNotifierError(operation)
		c.logger.Error("analytics call failed", "operation", operation, "error", err)
	}
}

func (c *Controller) outcome() Outcome {
	return Outcome{State: c.state, Reason: c.reason, Destination: destinationFor(c.state)}
}

// Reason returns why the flow was disqualified, if it was
func (c *Controller) Reason() Reason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}
