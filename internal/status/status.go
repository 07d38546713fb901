// Package status provides a thread-safe status tracker for the ayaled daemon.
// It is read by the HTTP handlers and by MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/ayaled/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs   int64
	HTTPAddr string
	LineAddr string
	Broker   string
}

// Device describes the detected hardware.
type Device struct {
	Vendor  string
	Board   string
	Product string
	Variant string
	Access  string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Device        Device
	Reading       logic.Reading
	Scale         float64
	Target        logic.Color // theme color before scaling
	Color         logic.Color // last color written to the LEDs
	Writes        int
	Resumes       int // forced rewrites of an unchanged color
	LastWrite     time.Time
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Scale:     1.0,
			Config:    cfg,
		},
	}
}

// SetDevice records the detected hardware.
func (t *Tracker) SetDevice(d Device) {
	t.mu.Lock()
	t.snap.Device = d
	t.mu.Unlock()
}

// Update records the latest tick. Called from runLoop on every tick.
func (t *Tracker) Update(r logic.Reading, scale float64, target logic.Color) {
	t.mu.Lock()
	t.snap.Reading = r
	t.snap.Scale = scale
	t.snap.Target = target
	t.mu.Unlock()
}

// RecordWrite records a hardware write of c at now. A forced write counts
// as a resume only when it repeats the color already shown.
func (t *Tracker) RecordWrite(c logic.Color, forced bool, now time.Time) {
	t.mu.Lock()
	if forced && t.snap.Writes > 0 && c == t.snap.Color {
		t.snap.Resumes++
	}
	t.snap.Color = c
	t.snap.Writes++
	t.snap.LastWrite = now
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
