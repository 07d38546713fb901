// Command ayaled drives the joystick ring LEDs of AYANEO handhelds from the
// battery state and exposes the color theme over HTTP, a line protocol and MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/ayaled/internal/dmi"
	"github.com/sweeney/ayaled/internal/ec"
	"github.com/sweeney/ayaled/internal/led"
	"github.com/sweeney/ayaled/internal/linecfg"
	"github.com/sweeney/ayaled/internal/logic"
	"github.com/sweeney/ayaled/internal/mqtt"
	"github.com/sweeney/ayaled/internal/power"
	"github.com/sweeney/ayaled/internal/resume"
	"github.com/sweeney/ayaled/internal/status"
	"github.com/sweeney/ayaled/internal/theme"
	"github.com/sweeney/ayaled/internal/web"
)

func main() {
	poll := flag.Duration("poll", 100*time.Millisecond, "Battery polling interval")
	httpAddr := flag.String("http", web.DefaultAddr, "HTTP config/status address (empty to disable)")
	lineAddr := flag.String("line", linecfg.DefaultAddr, "Line config address (empty to disable)")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print detected device and battery state and exit")

	flag.Parse()

	if err := run(*poll, *httpAddr, *lineAddr, *broker, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, httpAddr, lineAddr, broker string, printState bool) error {
	if os.Geteuid() != 0 {
		return errors.New("must be run as root")
	}

	// Identify the device before touching any hardware
	id := dmi.Read(dmi.DefaultRoot)
	ctrl, err := led.Select(id, led.Hardware{
		Ports:  ec.DevPorts{},
		Mapper: ec.DevMemMapper(ec.RAMBase, ec.RAMSize),
	})
	if err != nil {
		return fmt.Errorf("select led controller: %w", err)
	}
	defer ctrl.Close()

	battery, err := power.FindBattery(power.PowerSupplyRoot)
	if err != nil {
		return fmt.Errorf("find battery: %w", err)
	}
	backlight := power.FindBacklight(power.BacklightRoot)
	store := theme.NewStore(logic.DefaultTheme())

	// Print state mode
	if printState {
		writeState(os.Stdout, id, ctrl, battery, backlight, store.Theme())
		return nil
	}

	if err := ctrl.Init(); err != nil {
		return fmt.Errorf("init %s: %w", ctrl.Name(), err)
	}
	if !ctrl.SupportsColor() {
		log.Printf("%s LEDs do not support color, nothing to do", ctrl.Name())
		return nil
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:   poll.Milliseconds(),
		HTTPAddr: httpAddr,
		LineAddr: lineAddr,
		Broker:   broker,
	})
	tracker.SetDevice(status.Device{
		Vendor:  id.BoardVendor,
		Board:   id.BoardName,
		Product: id.ProductName,
		Variant: ctrl.Name(),
		Access:  ctrl.Access(),
	})

	// Initialize MQTT
	var publisher mqtt.Publisher = mqtt.NopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		rp, err := mqtt.NewRealPublisher(broker, store)
		if err != nil {
			log.Printf("mqtt disabled: %v", err)
		} else {
			publisher = rp
			mqttStatus = rp
		}
	}
	defer publisher.Close()

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	// Start HTTP config/status server
	if httpAddr != "" {
		srv := web.New(httpAddr, store, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http server listening on %s", httpAddr)
	}

	// Start line config server
	if lineAddr != "" {
		lsrv := linecfg.New(lineAddr, store)
		go func() {
			if err := lsrv.ListenAndServe(); err != nil {
				log.Printf("line server error: %v", err)
			}
		}()
		defer lsrv.Close()
		log.Printf("line server listening on %s", lineAddr)
	}

	resumed := &resume.Flag{}
	go func() {
		if err := resume.Run(resumed); err != nil {
			log.Printf("resume watcher stopped: %v", err)
		}
	}()

	log.Printf("started: device=%s access=%s poll=%v battery=%s", ctrl.Name(), ctrl.Access(), poll, battery.Dir())

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, battery, backlight, store, resumed, publisher, mqttStatus, tracker, time.Now, ticker.C, sigCh)
}

// colorSetter is the part of *led.Controller the loop needs.
type colorSetter interface {
	SetColor(c logic.Color)
}

func runLoop(leds colorSetter, battery power.BatteryReader, brightness power.BrightnessReader, store *theme.Store, resumed *resume.Flag, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	gate := logic.NewGate()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			return nil

		case <-tick:
			r, err := battery.Read()
			if err != nil {
				// Read already substituted defaults
				log.Printf("battery read error: %v", err)
			}

			target := logic.Resolve(store.Theme(), r)
			scale := brightness.Ratio()
			color := logic.Scale(target, scale)
			forced := resumed.Consume()

			if tracker != nil {
				tracker.Update(r, scale, target)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if !gate.Should(color, forced) {
				continue
			}

			leds.SetColor(color)
			t := now()
			if forced {
				log.Printf("resumed, rewriting %v", color)
			} else {
				log.Printf("color %v (battery %d%% %s, scale %.2f)", color, r.Capacity, r.Status, scale)
			}
			if tracker != nil {
				tracker.RecordWrite(color, forced, t)
			}

			event := logic.Event{
				Timestamp: t,
				Color:     color,
				Target:    target,
				Reading:   r,
				Scale:     scale,
				Forced:    forced,
			}
			if err := publisher.Publish(event); err != nil {
				log.Printf("publish error: %v", err)
			}
		}
	}
}

// stateReporter is the part of *led.Controller writeState needs.
type stateReporter interface {
	Name() string
	SupportsColor() bool
}

// writeState prints the detected device and the color the current battery
// state resolves to. It never writes to the EC.
func writeState(w io.Writer, id dmi.Identity, ctrl stateReporter, battery power.BatteryReader, brightness power.BrightnessReader, th logic.Theme) {
	r, err := battery.Read()
	if err != nil {
		fmt.Fprintf(w, "battery error: %v\n", err)
	}
	target := logic.Resolve(th, r)
	scale := brightness.Ratio()

	fmt.Fprintf(w, "Device: %s %s (%s)\n", id.BoardVendor, id.BoardName, id.ProductName)
	fmt.Fprintf(w, "Variant: %s, color: %v\n", ctrl.Name(), ctrl.SupportsColor())
	fmt.Fprintf(w, "Battery: %d%% %s\n", r.Capacity, r.Status)
	fmt.Fprintf(w, "Color: %v (theme %v, scale %.2f)\n", logic.Scale(target, scale), target, scale)
}
