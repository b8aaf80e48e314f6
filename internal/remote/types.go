package remote

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultTimeout  = 30 * time.Second
	RequestIDHeader = "X-Request-ID"
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	// RatePerSecond <= 0 disables client-side throttling.
	RatePerSecond float64
	Burst         int
}

// Envelope is the {success, message, ...} body of every response.
type Envelope struct {
	Success bool
	Message string
	// Raw is the whole response body.
	Raw []byte
}

// Field decodes the top-level field name of the body into v.
func (e Envelope) Field(name string, v any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Raw, &fields); err != nil {
		return fmt.Errorf("remote: decode envelope: %w", err)
	}
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("remote: envelope has no %q field", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("remote: decode %q: %w", name, err)
	}
	return nil
}

type envelopeHead struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}
