package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is Segment's HTTP tracking API
const DefaultEndpoint = "https://api.segment.io"

// Client defines the interface for interacting with the Segment tracking API
type Client interface {
	Identify(msg IdentifyMessage) error
	Track(msg TrackMessage) error
}

// IdentifyMessage ties a user to their traits
type IdentifyMessage struct {
	UserID      string      `json:"userId,omitempty"`
	AnonymousID string      `json:"anonymousId,omitempty"`
	Traits      interface{} `json:"traits,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// TrackMessage records one event
type TrackMessage struct {
	UserID      string      `json:"userId,omitempty"`
	AnonymousID string      `json:"anonymousId,omitempty"`
	Event       string      `json:"event"`
	Properties  interface{} `json:"properties,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

type clientImpl struct {
	writeKey   string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new Segment client. An empty endpoint uses DefaultEndpoint.
func NewClient(writeKey, endpoint string) Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &clientImpl{
		writeKey:   writeKey,
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *clientImpl) Identify(msg IdentifyMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return c.post("/v1/identify", msg)
}

func (c *clientImpl) Track(msg TrackMessage) error {
	if msg.Event == "" {
		return ErrMissingEvent
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return c.post("/v1/track", msg)
}

func (c *clientImpl) post(path string, msg interface{}) error {
	jsonPayload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	// Segment authenticates with the write key as the basic auth username
	req.SetBasicAuth(c.writeKey, "")
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling Segment %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error from Segment API (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
