package pcd8544

import (
	"fmt"
	"log"

	"github.com/BeatGlow/pcd8544/framebuffer"
)

// Dev is a PCD8544 display with a frame buffer.
//
// Drawing goes to the frame buffer; Refresh transmits it to the display.
type Dev struct {
	*framebuffer.FrameBuffer
	c      Conn
	ctrl   *Controller
	config Config
	halted bool
	closed bool
}

// New resets and initializes the display behind c. A nil config uses
// DefaultConfig.
func New(c Conn, config *Config) (*Dev, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	d := &Dev{
		FrameBuffer: framebuffer.New(),
		c:           c,
		ctrl:        NewController(c),
		config:      *config,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init() error {
	if err := d.ctrl.Reset(d.config.Sleep); err != nil {
		return err
	}
	if err := d.ctrl.init(&d.config); err != nil {
		return err
	}
	if debug {
		log.Printf("pcd8544: %s ready on %s", d, d.c)
	}
	return nil
}

func (d *Dev) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("PCD8544 LCD %dx%d", bounds.Dx(), bounds.Dy())
}

// Controller gives access to the low level protocol.
func (d *Dev) Controller() *Controller {
	return d.ctrl
}

// Refresh redraws the display from the frame buffer.
func (d *Dev) Refresh() error {
	if d.closed {
		return ErrClosed
	}
	if !d.ctrl.Horizontal() {
		if err := d.ctrl.AddressingHorizontal(true); err != nil {
			return err
		}
	}
	if err := d.ctrl.Position(0, 0); err != nil {
		return err
	}
	_, err := d.FrameBuffer.WriteTo(d.ctrl)
	return err
}

// Show toggles the display on or off. Off puts the chip in power down mode,
// display RAM is retained.
func (d *Dev) Show(show bool) error {
	if d.closed {
		return ErrClosed
	}
	if err := d.ctrl.PowerDown(!show); err != nil {
		return err
	}
	d.halted = !show
	return nil
}

// SetContrast adjusts the operating voltage, 0x00~0x7f.
func (d *Dev) SetContrast(level uint8) error {
	if d.closed {
		return ErrClosed
	}
	if err := d.ctrl.contrast(level, d.config.bias(), d.config.tempCoeff()); err != nil {
		return err
	}
	d.config.Contrast = level & 0x7f
	return nil
}

// Invert toggles between inverse and normal display mode.
func (d *Dev) Invert(invert bool) error {
	if d.closed {
		return ErrClosed
	}
	config := d.config
	config.Inverted = invert
	if err := d.ctrl.SetDisplayMode(config.displayMode()); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Close powers the display down and closes the connection.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if !d.halted {
		if err := d.ctrl.PowerDown(true); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

// Reset pulses the reset line and runs initialization again, restoring the
// configured contrast and display mode. The frame buffer is kept, call
// Refresh to redraw it.
func (d *Dev) Reset() error {
	if d.closed {
		return ErrClosed
	}
	if err := d.ctrl.Reset(d.config.Sleep); err != nil {
		return err
	}
	if err := d.ctrl.init(&d.config); err != nil {
		return err
	}
	d.halted = false
	return nil
}
