package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/ayaled/internal/logic"
	"github.com/sweeney/ayaled/internal/status"
	"github.com/sweeney/ayaled/internal/theme"
)

func newTestServer(t *testing.T) (*httptest.Server, *theme.Store, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:   100,
		HTTPAddr: DefaultAddr,
	}
	tr := status.NewTracker(start, cfg)
	store := theme.NewStore(logic.DefaultTheme())
	srv := New(":0", store, tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, store, tr
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestSetThenGet(t *testing.T) {
	ts, store, _ := newTestServer(t)

	code, body := get(t, ts.URL+"/set/charging/10/20/30")
	if code != http.StatusNoContent {
		t.Fatalf("set: got %d, want 204", code)
	}
	if body != "" {
		t.Errorf("set body: got %q, want empty", body)
	}

	code, body = get(t, ts.URL+"/get/charging")
	if code != http.StatusOK {
		t.Fatalf("get: got %d, want 200", code)
	}
	if body != "10:20:30\n" {
		t.Errorf("get body: got %q, want %q", body, "10:20:30\n")
	}

	if c, _ := store.Get(theme.SlotCharging); c != (logic.Color{R: 10, G: 20, B: 30}) {
		t.Errorf("store: got %v", c)
	}
}

func TestGetDefaults(t *testing.T) {
	ts, _, _ := newTestServer(t)

	want := map[string]string{
		"charging": "0:0:255\n",
		"low_bat":  "255:0:0\n",
		"full":     "0:255:255\n",
		"normal":   "0:0:0\n",
	}
	for slot, body := range want {
		code, got := get(t, ts.URL+"/get/"+slot)
		if code != http.StatusOK {
			t.Errorf("get %s: status %d", slot, code)
		}
		if got != body {
			t.Errorf("get %s: got %q, want %q", slot, got, body)
		}
	}
}

func TestSetUnknownSlot(t *testing.T) {
	ts, store, _ := newTestServer(t)
	before := store.Theme()

	code, _ := get(t, ts.URL+"/set/rainbow/1/2/3")
	if code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", code)
	}
	if store.Theme() != before {
		t.Errorf("theme changed after rejected set: %+v", store.Theme())
	}
}

func TestSetBadChannel(t *testing.T) {
	ts, store, _ := newTestServer(t)
	before := store.Theme()

	for _, path := range []string{"/set/full/256/0/0", "/set/full/a/0/0", "/set/full/1/-2/0"} {
		code, _ := get(t, ts.URL+path)
		if code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", path, code)
		}
	}
	if store.Theme() != before {
		t.Errorf("theme changed after rejected set: %+v", store.Theme())
	}
}

func TestGetUnknownSlot(t *testing.T) {
	ts, _, _ := newTestServer(t)

	code, _ := get(t, ts.URL+"/get/lowBattery")
	if code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", code)
	}
}

func TestSetRejectsPost(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/set/full/1/2/3", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
}

func TestJSONEndpoint(t *testing.T) {
	ts, _, tr := newTestServer(t)
	tr.SetDevice(status.Device{Vendor: "AYANEO", Board: "AIR", Variant: "AIR", Access: "mmio"})
	tr.Update(logic.Reading{Capacity: 55, Status: logic.StatusDischarging}, 1, logic.Color{})
	tr.RecordWrite(logic.Color{R: 1, G: 2, B: 3}, false, time.Now())

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if sj.Status.Device.Access != "mmio" {
		t.Errorf("Device.Access: got %q, want mmio", sj.Status.Device.Access)
	}
	if sj.Status.Battery.Capacity != 55 {
		t.Errorf("Battery.Capacity: got %d, want 55", sj.Status.Battery.Capacity)
	}
	if sj.Status.LED.Color != "1:2:3" {
		t.Errorf("LED.Color: got %q, want 1:2:3", sj.Status.LED.Color)
	}
	if sj.Status.Config.PollMs != 100 {
		t.Errorf("Config.PollMs: got %d, want 100", sj.Status.Config.PollMs)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, store, _ := newTestServer(t)
	store.Set(theme.SlotFull, logic.Color{R: 7, G: 8, B: 9})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "7:8:9") {
		t.Error("theme slot missing from status page")
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _, _ := newTestServer(t)

	code, _ := get(t, ts.URL+"/index.html")
	if code != 200 {
		t.Errorf("status: got %d, want 200", code)
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _, _ := newTestServer(t)

	for _, path := range []string{"/nonexistent", "/set/full/1/2", "/get"} {
		code, _ := get(t, ts.URL+path)
		if code != 404 {
			t.Errorf("%s: got %d, want 404", path, code)
		}
	}
}
