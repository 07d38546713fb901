// Package led drives the joystick ring LEDs of AYANEO handhelds.
// Each supported hardware generation is a Model with a fixed entry in the
// variant table; Select picks the first entry whose probe matches the board.
package led

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/ayaled/internal/dmi"
	"github.com/sweeney/ayaled/internal/ec"
	"github.com/sweeney/ayaled/internal/logic"
)

// ErrUnsupported is returned by Select when no variant matches the board.
var ErrUnsupported = errors.New("device is not supported")

// Vendor is the board vendor string every variant matches on.
const Vendor = "AYANEO"

// Model is a supported hardware generation.
type Model int

const (
	ModelAir Model = iota + 1
	ModelAirPlus
)

// EC command switching the LEDs to host control.
const (
	cmdOverride   = 0x03
	paramOverride = 0x02
)

// variant is one row of the behavior table.
type variant struct {
	model  Model
	name   string
	probe  func(id dmi.Identity) bool
	access ec.Method // "" when the LEDs are not behind EC RAM
	layout ec.Layout
	color  bool
	// trailer runs after every subpixel command, if set.
	trailer func(c commander, js Joystick)
}

func boardIn(names ...string) func(dmi.Identity) bool {
	return func(id dmi.Identity) bool {
		if id.BoardVendor != Vendor {
			return false
		}
		for _, n := range names {
			if id.BoardName == n {
				return true
			}
		}
		return false
	}
}

func productIs(name string) func(dmi.Identity) bool {
	return func(id dmi.Identity) bool {
		return id.BoardVendor == Vendor && id.ProductName == name
	}
}

// variants is evaluated in order; the first match wins. Board names must
// match exactly; "AIR 1S" and other later boards share a prefix with
// supported ones and are not supported.
var variants = []variant{
	{
		model:  ModelAir,
		name:   "AIR",
		probe:  boardIn("AIR", "AIR Pro", "AYANEO 2", "GEEK"),
		access: ec.MethodMMIO,
		layout: ec.DefaultLayout,
		color:  true,
	},
	{
		model: ModelAirPlus,
		name:  "AIR Plus",
		probe: productIs("AIR Plus"),
		color: false,
	},
}

// Hardware holds the raw access paths a Controller may use.
type Hardware struct {
	Ports  ec.PortIO
	Mapper ec.Mapper

	Settle      time.Duration // strobe settle delay, default ec.DefaultSettle
	WaitTimeout time.Duration // EC handshake bound, default ec.DefaultWaitTimeout
	WaitPoll    time.Duration // EC handshake poll, default ec.DefaultWaitPoll
}

// Controller is the LED controller for the detected device.
type Controller struct {
	v       variant
	driver  *ec.Driver
	cmd     *ec.Commander
	pixels  *Pixels
	superio *superIO
}

// Select builds the Controller for the first variant matching id. It never
// touches hardware; Init does.
func Select(id dmi.Identity, hw Hardware) (*Controller, error) {
	for _, v := range variants {
		if !v.probe(id) {
			continue
		}
		c := &Controller{v: v}
		if v.access != "" {
			c.driver = ec.NewDriver(ec.Config{
				Preferred:   v.access,
				Ports:       hw.Ports,
				Mapper:      hw.Mapper,
				WaitTimeout: hw.WaitTimeout,
				WaitPoll:    hw.WaitPoll,
			})
			settle := hw.Settle
			if settle == 0 {
				settle = ec.DefaultSettle
			}
			c.cmd = ec.NewCommander(c.driver, v.layout, settle)
			c.pixels = NewPixels(c.cmd, v.trailer)
		} else {
			c.superio = &superIO{ports: hw.Ports}
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w (vendor=%q board=%q product=%q)", ErrUnsupported, id.BoardVendor, id.BoardName, id.ProductName)
}

// Model returns the selected hardware generation.
func (c *Controller) Model() Model {
	return c.v.model
}

// Name returns a human readable variant name.
func (c *Controller) Name() string {
	return c.v.name
}

// SupportsColor reports whether SetColor has any effect.
func (c *Controller) SupportsColor() bool {
	return c.v.color
}

// Access describes how the controller reaches the hardware.
func (c *Controller) Access() string {
	if c.driver != nil {
		return string(c.driver.Method())
	}
	return "superio"
}

// Init runs the variant's initialization sequence. EC-RAM variants switch
// the LEDs to host control; the AIR Plus configures its SuperIO pins.
func (c *Controller) Init() error {
	if c.superio != nil {
		if err := c.superio.init(); err != nil {
			return fmt.Errorf("init %s: %w", c.v.name, err)
		}
		return nil
	}
	c.cmd.Command(cmdOverride, paramOverride, 0x00)
	return nil
}

// SetColor writes c to every LED. It is a no-op on variants without color
// support.
func (c *Controller) SetColor(color logic.Color) {
	if !c.v.color || c.pixels == nil {
		log.Printf("led: %s does not support color, ignoring %v", c.v.name, color)
		return
	}
	c.pixels.SetAll(color)
}

// Close releases the EC mapping, if any.
func (c *Controller) Close() error {
	if c.driver != nil {
		return c.driver.Close()
	}
	return nil
}
