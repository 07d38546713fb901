package logic

import (
	"math"
	"testing"
)

var testTheme = Theme{
	Charging:   Color{1, 1, 1},
	LowBattery: Color{2, 2, 2},
	Full:       Color{3, 3, 3},
	Normal:     Color{4, 4, 4},
}

func TestResolveLowBattery(t *testing.T) {
	for _, status := range []Status{StatusDischarging, StatusOther} {
		for capacity := 0; capacity <= LowBatteryMax; capacity++ {
			got := Resolve(testTheme, Reading{Capacity: capacity, Status: status})
			if got != testTheme.LowBattery {
				t.Errorf("capacity=%d status=%s: got %v, want low battery", capacity, status, got)
			}
		}
	}
}

func TestResolveFullRegardlessOfStatus(t *testing.T) {
	for _, status := range []Status{StatusCharging, StatusDischarging, StatusOther} {
		for capacity := FullMin; capacity <= 100; capacity++ {
			got := Resolve(testTheme, Reading{Capacity: capacity, Status: status})
			if got != testTheme.Full {
				t.Errorf("capacity=%d status=%s: got %v, want full", capacity, status, got)
			}
		}
	}
}

func TestResolveChargingOverridesLowBattery(t *testing.T) {
	for capacity := 0; capacity < FullMin; capacity++ {
		got := Resolve(testTheme, Reading{Capacity: capacity, Status: StatusCharging})
		if got != testTheme.Charging {
			t.Errorf("capacity=%d charging: got %v, want charging", capacity, got)
		}
	}
}

func TestResolveNormal(t *testing.T) {
	tests := []struct {
		capacity int
		status   Status
	}{
		{21, StatusDischarging},
		{50, StatusDischarging},
		{89, StatusOther},
		{101, StatusDischarging}, // out of range reads fall through to normal
		{-1, StatusOther},
	}
	for _, tt := range tests {
		got := Resolve(testTheme, Reading{Capacity: tt.capacity, Status: tt.status})
		if got != testTheme.Normal {
			t.Errorf("capacity=%d status=%s: got %v, want normal", tt.capacity, tt.status, got)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name  string
		in    Color
		ratio float64
		want  Color
	}{
		{"full", Color{255, 128, 7}, 1.0, Color{255, 128, 7}},
		{"half truncates", Color{255, 128, 7}, 0.5, Color{127, 64, 3}},
		{"zero", Color{255, 255, 255}, 0, Color{0, 0, 0}},
		{"overbright clamps", Color{200, 100, 50}, 2.5, Color{200, 100, 50}},
		{"negative clamps", Color{200, 100, 50}, -1, Color{0, 0, 0}},
		{"nan is full", Color{10, 20, 30}, math.NaN(), Color{10, 20, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scale(tt.in, tt.ratio); got != tt.want {
				t.Errorf("Scale(%v, %v): got %v, want %v", tt.in, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestScaleMonotonic(t *testing.T) {
	colors := []Color{{255, 255, 255}, {0, 255, 255}, {17, 99, 201}, {1, 2, 3}}
	for _, c := range colors {
		prev := Scale(c, 0)
		for step := 1; step <= 100; step++ {
			cur := Scale(c, float64(step)/100)
			if cur.R < prev.R || cur.G < prev.G || cur.B < prev.B {
				t.Fatalf("color %v: ratio %.2f gave %v, lower than previous %v", c, float64(step)/100, cur, prev)
			}
			prev = cur
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"Charging":     StatusCharging,
		"Discharging":  StatusDischarging,
		"Full":         StatusOther,
		"Not charging": StatusOther,
		"":             StatusOther,
	}
	for in, want := range tests {
		if got := ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()
	if th.Charging != (Color{0, 0, 255}) {
		t.Errorf("Charging: got %v", th.Charging)
	}
	if th.LowBattery != (Color{255, 0, 0}) {
		t.Errorf("LowBattery: got %v", th.LowBattery)
	}
	if th.Full != (Color{0, 255, 255}) {
		t.Errorf("Full: got %v", th.Full)
	}
	if th.Normal != (Color{0, 0, 0}) {
		t.Errorf("Normal: got %v", th.Normal)
	}
}

func TestColorString(t *testing.T) {
	if got := (Color{10, 20, 30}).String(); got != "10:20:30" {
		t.Errorf("String: got %q, want 10:20:30", got)
	}
}

func TestGateFirstWrite(t *testing.T) {
	g := NewGate()
	if !g.Should(Color{}, false) {
		t.Error("first color must be written even if black")
	}
}

func TestGateIdempotent(t *testing.T) {
	g := NewGate()
	c := Color{0, 0, 255}

	if !g.Should(c, false) {
		t.Fatal("expected first write")
	}
	if g.Should(c, false) {
		t.Error("same color twice should write once")
	}
	if g.Writes() != 1 {
		t.Errorf("Writes: got %d, want 1", g.Writes())
	}
}

func TestGateChange(t *testing.T) {
	g := NewGate()
	g.Should(Color{1, 2, 3}, false)

	if !g.Should(Color{1, 2, 4}, false) {
		t.Error("changed color should be written")
	}
	if g.Last() != (Color{1, 2, 4}) {
		t.Errorf("Last: got %v", g.Last())
	}
}

func TestGateForce(t *testing.T) {
	g := NewGate()
	c := Color{9, 9, 9}
	g.Should(c, false)

	if !g.Should(c, true) {
		t.Error("forced write of unchanged color should be written")
	}
	if g.Should(c, false) {
		t.Error("force must not carry over to the next call")
	}
	if g.Writes() != 2 {
		t.Errorf("Writes: got %d, want 2", g.Writes())
	}
}
