package power

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sweeney/ayaled/internal/logic"
)

func mkSupply(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for k, v := range files {
		if err := os.WriteFile(filepath.Join(dir, k), []byte(v), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindBattery(t *testing.T) {
	root := t.TempDir()
	mkSupply(t, root, "ACAD", map[string]string{"type": "Mains\n"})
	dir := mkSupply(t, root, "BAT0", map[string]string{"type": "Battery\n", "capacity": "57\n", "status": "Discharging\n"})

	b, err := FindBattery(root)
	if err != nil {
		t.Fatalf("FindBattery: %v", err)
	}
	if b.Dir() != dir {
		t.Errorf("Dir: got %q, want %q", b.Dir(), dir)
	}

	r, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r.Capacity != 57 || r.Status != logic.StatusDischarging {
		t.Errorf("Read: got %+v", r)
	}
}

func TestFindBatteryNone(t *testing.T) {
	root := t.TempDir()
	mkSupply(t, root, "ACAD", map[string]string{"type": "Mains"})
	mkSupply(t, root, "hid-1", map[string]string{})

	_, err := FindBattery(root)
	if !errors.Is(err, ErrNoBattery) {
		t.Errorf("expected ErrNoBattery, got %v", err)
	}
}

func TestFindBatteryMissingRoot(t *testing.T) {
	if _, err := FindBattery(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestBatteryReadDefaults(t *testing.T) {
	root := t.TempDir()
	mkSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "garbage", "status": "Charging"})
	b, err := FindBattery(root)
	if err != nil {
		t.Fatal(err)
	}

	r, err := b.Read()
	if err == nil {
		t.Error("expected parse error to be reported")
	}
	if r.Capacity != 0 {
		t.Errorf("Capacity: got %d, want 0 default", r.Capacity)
	}
	if r.Status != logic.StatusCharging {
		t.Errorf("Status: got %q, want Charging", r.Status)
	}
}

func TestBatteryReadMissingStatus(t *testing.T) {
	root := t.TempDir()
	mkSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "80"})
	b, _ := FindBattery(root)

	r, err := b.Read()
	if err == nil {
		t.Error("expected error for missing status")
	}
	if r.Capacity != 80 || r.Status != logic.StatusOther {
		t.Errorf("Read: got %+v, want capacity 80 and StatusOther", r)
	}
}

func TestBacklightRatio(t *testing.T) {
	root := t.TempDir()
	mkSupply(t, root, "amdgpu_bl0", map[string]string{"brightness": "64\n", "max_brightness": "256\n"})

	bl := FindBacklight(root)
	if bl == nil {
		t.Fatal("expected backlight")
	}
	if got := bl.Ratio(); got != 0.25 {
		t.Errorf("Ratio: got %v, want 0.25", got)
	}
}

func TestBacklightDefaults(t *testing.T) {
	if got := FindBacklight(filepath.Join(t.TempDir(), "none")).Ratio(); got != 1.0 {
		t.Errorf("missing root: got %v, want 1.0", got)
	}
	if FindBacklight(t.TempDir()) != nil {
		t.Error("empty root should give nil backlight")
	}

	root := t.TempDir()
	mkSupply(t, root, "bl", map[string]string{"brightness": "x", "max_brightness": "100"})
	if got := FindBacklight(root).Ratio(); got != 1.0 {
		t.Errorf("bad brightness: got %v, want 1.0", got)
	}

	root = t.TempDir()
	mkSupply(t, root, "bl", map[string]string{"brightness": "10", "max_brightness": "0"})
	if got := FindBacklight(root).Ratio(); got != 1.0 {
		t.Errorf("zero max: got %v, want 1.0", got)
	}
}

func TestFakeBattery(t *testing.T) {
	f := NewFakeBattery(
		logic.Reading{Capacity: 10, Status: logic.StatusDischarging},
		logic.Reading{Capacity: 11, Status: logic.StatusCharging},
	)
	r1, _ := f.Read()
	r2, _ := f.Read()
	r3, _ := f.Read()
	if r1.Capacity != 10 || r2.Capacity != 11 || r3.Capacity != 11 {
		t.Errorf("got %d, %d, %d; want 10, 11, 11", r1.Capacity, r2.Capacity, r3.Capacity)
	}

	f.ReadError = errors.New("boom")
	if _, err := f.Read(); err == nil {
		t.Error("expected ReadError")
	}
}
