package led

import "github.com/sweeney/ayaled/internal/logic"

// Joystick selects one of the two LED rings.
type Joystick byte

const (
	JoystickLeft  Joystick = 1
	JoystickRight Joystick = 2
)

// Position is an LED within a ring.
type Position byte

const (
	PositionRight  Position = 1
	PositionBottom Position = 2
	PositionLeft   Position = 3
	PositionTop    Position = 4
)

// Joysticks and Positions list every addressable pixel in write order.
var (
	Joysticks = []Joystick{JoystickLeft, JoystickRight}
	Positions = []Position{PositionRight, PositionBottom, PositionLeft, PositionTop}
)

// commander issues EC commands. Implemented by *ec.Commander.
type commander interface {
	Command(cmd, p1, p2 byte)
}

// Pixels addresses individual subpixels through EC commands.
type Pixels struct {
	cmd commander
	// after runs once after every subpixel command, if set.
	after func(c commander, js Joystick)
}

// NewPixels creates a Pixels writer. after may be nil.
func NewPixels(cmd commander, after func(c commander, js Joystick)) *Pixels {
	return &Pixels{cmd: cmd, after: after}
}

// SetPixel writes one LED as three subpixel commands: red, green, blue.
func (p *Pixels) SetPixel(js Joystick, pos Position, c logic.Color) {
	base := byte(pos) * 3
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		p.cmd.Command(byte(js), base+byte(i), v)
		if p.after != nil {
			p.after(p.cmd, js)
		}
	}
}

// SetAll writes c to every LED, one at a time. The rings show a partial
// update while this runs.
func (p *Pixels) SetAll(c logic.Color) {
	for _, js := range Joysticks {
		for _, pos := range Positions {
			p.SetPixel(js, pos, c)
		}
	}
}
