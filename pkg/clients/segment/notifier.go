package segment

import (
	"errors"

	"trial-screening/pkg/logging"
	"trial-screening/pkg/models"
	"trial-screening/pkg/utils"
)

var (
	// ErrMissingEvent is returned when a track call has no event name
	ErrMissingEvent = errors.New("event name is required")

	// ErrMissingSubject is returned when identify is called without a subject key
	ErrMissingSubject = errors.New("subject key is required")
)

// Notifier sends one session's wizard events to Segment. Events before
// Identify carry only the anonymous id; later events carry both.
type Notifier struct {
	client      Client
	anonymousID string
	userID      string
}

// NewNotifier binds a client to a browser session
func NewNotifier(client Client, anonymousID string) *Notifier {
	return &Notifier{client: client, anonymousID: anonymousID}
}

func (n *Notifier) Identify(subjectKey string, traits models.Traits) error {
	if subjectKey == "" {
		return ErrMissingSubject
	}
	n.userID = subjectKey
	return n.client.Identify(IdentifyMessage{
		UserID:      subjectKey,
		AnonymousID: n.anonymousID,
		Traits:      traits,
	})
}

func (n *Notifier) Track(event string, payload interface{}) error {
	return n.client.Track(TrackMessage{
		UserID:      n.userID,
		AnonymousID: n.anonymousID,
		Event:       event,
		Properties:  payload,
	})
}

// LogNotifier writes wizard events to the log when no write key is configured
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Identify(subjectKey string, traits models.Traits) error {
	n.logger.Info("analytics identify", "subject_hash", utils.HashContact(subjectKey), "age", traits.Age, "initial_diagnosis", traits.InitialDiagnosis)
	return nil
}

func (n *LogNotifier) Track(event string, _ interface{}) error {
	n.logger.Info("analytics track", "event", event)
	return nil
}
