// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/ayaled/internal/logic"
	"github.com/sweeney/ayaled/internal/theme"
)

// Topic is the MQTT topic for LED write events.
const Topic = "ayaled/led/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "ayaled/system"

// TopicThemeSet is subscribed to for theme changes; the last level is the
// slot name.
const TopicThemeSet = "ayaled/theme/set/+"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an LED write event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// ThemeSetter receives theme commands. Implemented by *theme.Store.
type ThemeSetter interface {
	Set(slot string, c logic.Color) error
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "OFFLINE"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	LED LEDPayload `json:"led"`
}

// LEDPayload contains the LED write details.
type LEDPayload struct {
	Timestamp string  `json:"timestamp"`
	Color     string  `json:"color"`
	Target    string  `json:"target"`
	Scale     float64 `json:"scale"`
	Capacity  int     `json:"capacity"`
	Status    string  `json:"status"`
	Forced    bool    `json:"forced"`
}

// FormatPayload creates the JSON payload for an LED write event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		LED: LEDPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Color:     event.Color.String(),
			Target:    event.Target.String(),
			Scale:     event.Scale,
			Capacity:  event.Reading.Capacity,
			Status:    string(event.Reading.Status),
			Forced:    event.Forced,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (will message) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp,omitempty"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Event:  event.Event,
			Reason: event.Reason,
		},
	}
	if !event.Timestamp.IsZero() {
		payload.System.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(payload)
}

// ParseThemeCommand extracts the slot from topic and the color from payload.
// The payload is "r g b" or "r:g:b".
func ParseThemeCommand(topic string, payload []byte) (string, logic.Color, error) {
	i := strings.LastIndexByte(topic, '/')
	slot := topic[i+1:]
	if slot == "" {
		return "", logic.Color{}, fmt.Errorf("topic %q has no slot", topic)
	}

	fields := strings.FieldsFunc(strings.TrimSpace(string(payload)), func(r rune) bool {
		return r == ' ' || r == ':' || r == ','
	})
	if len(fields) != 3 {
		return "", logic.Color{}, fmt.Errorf("payload %q: want 3 channels", payload)
	}
	c, err := theme.ParseColor(fields[0], fields[1], fields[2])
	if err != nil {
		return "", logic.Color{}, err
	}
	return slot, c, nil
}
