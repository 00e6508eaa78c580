// Package wizard drives the two step screening flow: it validates each
// step, applies the eligibility rules and decides where the user goes next.
// Presentation and analytics are reached only through the Reporter and
// Notifier capabilities.
package wizard

import (
	"errors"

	"trial-screening/pkg/models"
	"trial-screening/pkg/validation"
)

// ErrInvalidTransition is returned when an action arrives in a state that does not accept it
var ErrInvalidTransition = errors.New("action not allowed in current state")

const (
	EventStep1Completed       = "Trial Screening Step 1 Completed"
	EventApplicationSubmitted = "Trial Application Submitted"
)

// State is a node of the wizard
type State string

const (
	Step1Active  State = "step1"
	Step2Active  State = "step2"
	Disqualified State = "disqualified"
	Completed    State = "completed"
)

// Terminal reports whether the flow has ended
func (s State) Terminal() bool {
	return s == Disqualified || s == Completed
}

// Reason records which step disqualified the user
type Reason string

const (
	ReasonNone  Reason = ""
	ReasonStep1 Reason = "step1"
	ReasonStep2 Reason = "step2"
)

// Destination is where the host should take the user after an action
type Destination string

const (
	Stay             Destination = "stay"
	Step2            Destination = "step2"
	Disqualification Destination = "disqualification"
	Completion       Destination = "completion"
)

// Outcome describes the state after an action and where to go next
type Outcome struct {
	State       State
	Reason      Reason
	Destination Destination
}

// Reporter renders or clears a field verdict. Calls must be safe to
// repeat with the same verdict.
type Reporter interface {
	ReportVerdict(field validation.Field, verdict validation.Verdict)
}

// Notifier is the analytics collaborator
type Notifier interface {
	Identify(subjectKey string, traits models.Traits) error
	Track(event string, payload interface{}) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(field validation.Field, verdict validation.Verdict)

func (f ReporterFunc) ReportVerdict(field validation.Field, verdict validation.Verdict) {
	f(field, verdict)
}

// DiscardReporter ignores every verdict
var DiscardReporter Reporter = ReporterFunc(func(validation.Field, validation.Verdict) {})

func destinationFor(s State) Destination {
	switch s {
	case Step2Active:
		return Step2
	case Disqualified:
		return Disqualification
	case Completed:
		return Completion
	default:
		return Stay
	}
}
