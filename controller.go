package pcd8544

import (
	"log"

	"periph.io/x/conn/v3/gpio"
)

// Controller sequences a PCD8544 through reset, initialization and
// configuration, and writes display RAM.
//
// A Controller owns its Conn for the lifetime of the device and is not safe
// for concurrent use. Operations stop at the first failing write and return
// it; multi-step sequences are not transactional, and the recovery path after
// any error is Reset followed by Init.
type Controller struct {
	c Conn

	// fn mirrors the last function set instruction written to the chip.
	fn byte
}

// NewController returns a controller for the chip behind c. Call Reset and
// Init before use.
func NewController(c Conn) *Controller {
	return &Controller{
		c:  c,
		fn: setFunction,
	}
}

// Reset pulses the reset line: inactive, active, inactive, holding each level
// for 100µs. Init must be called afterwards.
func (c *Controller) Reset(sleep Sleeper) error {
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := c.c.Reset(level); err != nil {
			return err
		}
		sleep.sleep(resetPulse)
	}
	return nil
}

// Init powers the chip up with basic instructions and horizontal addressing,
// programs the default contrast, selects normal display mode and clears
// display RAM, leaving the cursor at the origin.
func (c *Controller) Init() error {
	return c.init(&DefaultConfig)
}

func (c *Controller) init(config *Config) error {
	if debug {
		log.Printf("pcd8544: init contrast=%#02x bias=%d temp=%d mode=%s",
			config.Contrast, config.Bias&0x07, config.TempCoeff&0x03, config.displayMode())
	}
	c.fn = setFunction
	if err := c.AddressingHorizontal(true); err != nil {
		return err
	}
	if err := c.contrast(config.Contrast, config.bias(), config.tempCoeff()); err != nil {
		return err
	}
	if err := c.SetDisplayMode(config.displayMode()); err != nil {
		return err
	}
	return c.Clear()
}

// setFunctionBit updates one bit of the function register and writes the
// whole register. The mirror only changes once the write succeeded.
func (c *Controller) setFunctionBit(bit byte, on bool) error {
	fn := c.fn &^ bit
	if on {
		fn |= bit
	}
	if err := c.cmd(fn); err != nil {
		return err
	}
	c.fn = fn
	return nil
}

// AddressingHorizontal selects horizontal (true) or vertical (false) auto
// increment of the display RAM address.
func (c *Controller) AddressingHorizontal(horizontal bool) error {
	return c.setFunctionBit(addressVert, !horizontal)
}

// Horizontal reports whether horizontal addressing is selected.
func (c *Controller) Horizontal() bool {
	return c.fn&addressVert == 0
}

// PowerDown puts the chip in (true) or out of (false) power down mode.
// Display RAM is retained while powered down.
func (c *Controller) PowerDown(down bool) error {
	return c.setFunctionBit(powerDown, down)
}

// contrast programs the temperature coefficient, bias and operating voltage.
// These are only reachable in the extended instruction set, the basic set is
// always restored before returning.
func (c *Controller) contrast(contrast, bias, temp byte) error {
	if err := c.cmd(c.fn | extendedInstr); err != nil {
		return err
	}
	if err := c.cmd(temp); err != nil {
		return err
	}
	if err := c.cmd(bias); err != nil {
		return err
	}
	// 0x00 = 3.00V, 0x3f = 6.84V, 0x7f = 10.68V
	if err := c.cmd(setVop | contrast&0x7f); err != nil {
		return err
	}
	return c.cmd(c.fn &^ extendedInstr)
}

// SetDisplayMode selects blank, all on, normal or inverse display.
func (c *Controller) SetDisplayMode(mode DisplayMode) error {
	return c.cmd(byte(mode))
}

// Position moves the display RAM cursor to column x (0~83) and bank y (0~5).
// Out of range values are truncated to the instruction's bit width.
func (c *Controller) Position(x, y uint8) error {
	if err := c.cmd(setColumnAddr | x&0x7f); err != nil {
		return err
	}
	return c.cmd(setBankAddr | y&0x07)
}

// Clear zeroes display RAM and moves the cursor to the origin.
func (c *Controller) Clear() error {
	var empty [BufSize]byte
	if err := c.Data(empty[:]); err != nil {
		return err
	}
	return c.Position(0, 0)
}

// Data writes raw bytes to display RAM at the cursor. Writes longer than
// display RAM wrap around.
func (c *Controller) Data(data []byte) error {
	return c.c.Data(data...)
}

// Write implements io.Writer on top of Data.
func (c *Controller) Write(p []byte) (int, error) {
	if err := c.Data(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Controller) cmd(command byte) error {
	return c.c.Command(command)
}
