// Package pcd8544 drives the Philips PCD8544 84x48 monochrome LCD controller,
// as found on Nokia 5110 and 3310 display modules.
//
// The driver is split in two layers. A [Controller] sequences the chip through
// reset, initialization and configuration and transmits display RAM, using a
// [Conn] that frames commands and data on the wire. A [Dev] combines a
// Controller with a [framebuffer.FrameBuffer] into a drawing surface that can
// be refreshed in one call.
package pcd8544

import (
	"os"
	"time"

	"github.com/BeatGlow/pcd8544/framebuffer"
)

var debug bool

func init() {
	debug = os.Getenv("PCD8544_DEBUG") != ""
}

// Display geometry.
const (
	Width   = framebuffer.Width
	Height  = framebuffer.Height
	Banks   = framebuffer.Banks
	BufSize = framebuffer.Size
)

// Instructions, see the PCD8544 datasheet table 1.
const (
	// Function set 0010 0PVH, valid in both instruction sets.
	setFunction   = 0x20
	powerDown     = 0x04 // P
	addressVert   = 0x02 // V
	extendedInstr = 0x01 // H

	// Basic instruction set (H=0).
	setDisplayMode = 0x08 // 0000 1D0E
	setBankAddr    = 0x40 // 0100 0YYY, bank 0~5
	setColumnAddr  = 0x80 // 1XXX XXXX, column 0~83

	// Extended instruction set (H=1).
	setTempCoeff = 0x04 // 0000 01TT
	setBias      = 0x10 // 0001 0BBB
	setVop       = 0x80 // 1VVV VVVV
)

// resetPulse is held on every edge of the reset sequence. The chip needs a
// pulse longer than 100 ns and shorter than 100 ms.
const resetPulse = 100 * time.Microsecond

// Sleeper blocks for the given duration. A nil Sleeper uses [time.Sleep].
type Sleeper func(time.Duration)

func (s Sleeper) sleep(d time.Duration) {
	if s == nil {
		time.Sleep(d)
		return
	}
	s(d)
}

// DisplayMode selects how display RAM bits are shown.
type DisplayMode uint8

// Display modes.
const (
	DisplayBlank   DisplayMode = setDisplayMode | 0x00
	DisplayAllOn   DisplayMode = setDisplayMode | 0x01
	DisplayNormal  DisplayMode = setDisplayMode | 0x04
	DisplayInverse DisplayMode = setDisplayMode | 0x05
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayBlank:
		return "blank"
	case DisplayAllOn:
		return "all on"
	case DisplayNormal:
		return "normal"
	case DisplayInverse:
		return "inverse"
	default:
		return "invalid"
	}
}

// Config is the display configuration.
type Config struct {
	// Contrast is the operating voltage (Vop) setting, 0x00 (3.00 V) to 0x7f (10.68 V).
	Contrast uint8

	// Bias system, 0~7. 4 is the recommended 1:48 mux rate.
	Bias uint8

	// TempCoeff is the temperature coefficient, 0~3.
	TempCoeff uint8

	// Inverted selects inverse display mode.
	Inverted bool

	// Sleep is used for the reset pulse, nil uses time.Sleep.
	Sleep Sleeper
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Contrast:  0x3f,
	Bias:      4,
	TempCoeff: 2,
}

func (c *Config) bias() byte {
	return setBias | c.Bias&0x07
}

func (c *Config) tempCoeff() byte {
	return setTempCoeff | c.TempCoeff&0x03
}

func (c *Config) displayMode() DisplayMode {
	if c.Inverted {
		return DisplayInverse
	}
	return DisplayNormal
}
