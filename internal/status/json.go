package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Device        DeviceJSON  `json:"device"`
	Battery       BatteryJSON `json:"battery"`
	LED           LEDJSON     `json:"led"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Config        ConfigJSON  `json:"config"`
}

// DeviceJSON is the JSON representation of the detected hardware.
type DeviceJSON struct {
	Vendor  string `json:"vendor"`
	Board   string `json:"board"`
	Product string `json:"product"`
	Variant string `json:"variant"`
	Access  string `json:"access"`
}

// BatteryJSON is the JSON representation of the last battery reading.
type BatteryJSON struct {
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// LEDJSON is the JSON representation of LED output state.
type LEDJSON struct {
	Color     string  `json:"color"`
	Target    string  `json:"target"`
	Scale     float64 `json:"scale"`
	Writes    int     `json:"writes"`
	Resumes   int     `json:"resumes"`
	LastWrite string  `json:"last_write,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs   int64  `json:"poll_ms"`
	HTTPAddr string `json:"http_addr"`
	LineAddr string `json:"line_addr,omitempty"`
	Broker   string `json:"broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	battery := string(snap.Reading.Status)
	if battery == "" {
		battery = "UNKNOWN"
	}

	inner := StatusInner{
		Device: DeviceJSON{
			Vendor:  snap.Device.Vendor,
			Board:   snap.Device.Board,
			Product: snap.Device.Product,
			Variant: snap.Device.Variant,
			Access:  snap.Device.Access,
		},
		Battery: BatteryJSON{
			Capacity: snap.Reading.Capacity,
			Status:   battery,
		},
		LED: LEDJSON{
			Color:   snap.Color.String(),
			Target:  snap.Target.String(),
			Scale:   snap.Scale,
			Writes:  snap.Writes,
			Resumes: snap.Resumes,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:   snap.Config.PollMs,
			HTTPAddr: snap.Config.HTTPAddr,
			LineAddr: snap.Config.LineAddr,
			Broker:   snap.Config.Broker,
		},
	}
	if !snap.LastWrite.IsZero() {
		inner.LED.LastWrite = snap.LastWrite.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
