package pcd8544

import (
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/pcd8544/conn"
)

// Bus writes bytes to the controller. Any periph.io conn.Conn satisfies it.
type Bus interface {
	Tx(w, r []byte) error
}

// Pin is a binary output. Any periph.io gpio.PinOut satisfies it.
type Pin interface {
	Out(gpio.Level) error
}

// Conn is the connection interface for communicating with hardware.
//
// Errors returned by Command, Data and Reset are *Error values tagged with
// the capability that failed.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends one instruction byte with DC low.
	Command(byte) error

	// Data sends display RAM bytes with DC high.
	Data(...byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	SpeedHz   uint32
	BatchSize uint
	Reset     gpio.PinOut
	DC        gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	SpeedHz:   4_000_000,
	BatchSize: 4096,
	Reset:     gpioreg.ByName("GPIO25"),
	DC:        gpioreg.ByName("GPIO24"),
}

// ValidSPISpeeds are the bus speeds accepted by OpenSPI. The PCD8544 clocks
// at most 4 Mbit/s.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
}

// MaxSPISpeed is the fastest serial clock the controller accepts.
const MaxSPISpeed = 4 * physic.MegaHertz

type spiConn struct {
	bus       Bus
	closer    io.Closer
	reset     Pin
	dc        Pin
	dcLevel   gpio.Level
	dcValid   bool
	batchSize uint
}

// NewConn frames commands and data over bus, using dc for the
// command/data-select line and rst for the reset line.
func NewConn(bus Bus, dc, rst Pin) Conn {
	c := &spiConn{
		bus:       bus,
		reset:     rst,
		dc:        dc,
		batchSize: DefaultSPIConfig.BatchSize,
	}
	if closer, ok := bus.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// OpenSPI opens a Linux spidev device.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if err := checkPins(config.DC, config.Reset); err != nil {
		return nil, err
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("pcd8544: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(conn.SPIMode0); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}
	if debug {
		log.Printf("pcd8544: opened %s", c)
	}

	return &spiConn{
		bus:       c,
		closer:    c,
		reset:     config.Reset,
		dc:        config.DC,
		batchSize: config.BatchSize,
	}, nil
}

// ConnectSPI connects to the controller over a periph.io SPI port.
func ConnectSPI(p spi.Port, dc, rst gpio.PinOut) (Conn, error) {
	if err := checkPins(dc, rst); err != nil {
		return nil, err
	}

	// Mode 0, MSB first, 8 bit words.
	c, err := p.Connect(MaxSPISpeed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("pcd8544: %w", err)
	}

	return NewConn(c, dc, rst), nil
}

func checkPins(dc, rst gpio.PinOut) error {
	if rst == nil || rst == gpio.INVALID {
		return ErrResetPin
	}
	if dc == nil || dc == gpio.INVALID {
		return ErrDCPin
	}
	return nil
}

func (c *spiConn) String() string {
	if s, ok := c.bus.(fmt.Stringer); ok {
		return fmt.Sprintf("SPI bus %s", s)
	}
	return "SPI bus"
}

func (c *spiConn) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return wrap(ResetPinError, c.reset.Out(level))
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcValid && c.dcLevel == level {
		return nil
	}
	if err := c.dc.Out(level); err != nil {
		c.dcValid = false
		return wrap(DCPinError, err)
	}
	c.dcLevel, c.dcValid = level, true
	return nil
}

func (c *spiConn) Command(cmnd byte) error {
	if err := c.updateDC(gpio.Low); err != nil {
		return err
	}
	return wrap(BusError, c.bus.Tx([]byte{cmnd}, nil))
}

func (c *spiConn) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := c.updateDC(gpio.High); err != nil {
		return err
	}
	return wrap(BusError, c.writeChunked(data))
}

func (c *spiConn) writeChunked(data []byte) error {
	size := int(c.batchSize)
	if size <= 0 || len(data) <= size {
		return c.bus.Tx(data, nil)
	}

	if debug {
		log.Printf("pcd8544: write %d bytes of data in %d chunks", len(data), (len(data)+size-1)/size)
	}
	for len(data) > 0 {
		n := min(len(data), size)
		if err := c.bus.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
