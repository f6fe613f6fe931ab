// Package conn implements raw Linux spidev access.
package conn

import (
	"fmt"
	"os"

	"github.com/BeatGlow/pcd8544/internal/ioctl"
)

const spiDevPath = "/dev/spidev"

// Definitions from <spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02
)

// SPIMode is the clock polarity and phase.
type SPIMode uint8

const (
	SPIMode0 SPIMode = (0 | 0)             //nolint:staticcheck
	SPIMode1 SPIMode = (0 | spiCPHA)       //nolint:staticcheck
	SPIMode2 SPIMode = (spiCPOL | 0)       //nolint:staticcheck
	SPIMode3 SPIMode = (spiCPOL | spiCPHA) //nolint:staticcheck
)

const (
	spiIOCMode        = 0x6b01
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// SPI is a spidev character device.
type SPI struct {
	f           *os.File
	fd          uintptr
	name        string
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds to the CS pin for that bus.
func OpenSPI(bus, device int) (*SPI, error) {
	name := fmt.Sprintf("%s%d.%d", spiDevPath, bus, device)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		f:    f,
		fd:   f.Fd(),
		name: name,
	}
	for _, q := range []struct {
		cmd uintptr
		ptr any
	}{
		{spiIOCMode, &c.mode},
		{spiIOCBitsPerWord, &c.bitsPerWord},
		{spiIOCMaxSpeedHz, &c.maxSpeedHz},
	} {
		if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, q.ptr, q.cmd), q.ptr); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("%s mode=%d bits per word=%d max speed=%dHz", c.name, c.mode, c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

func (c *SPI) SetMode(mode SPIMode) error {
	mode &= 0x0f

	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &mode, spiIOCMode), &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &test, spiIOCMode), &test); err != nil {
		return err
	}
	if test != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

func (c *SPI) SetMaxSpeed(v int) error {
	if v < 0 {
		return nil
	}

	u := uint32(v)
	if c.maxSpeedHz != u {
		if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &u, spiIOCMaxSpeedHz), &u); err != nil {
			return err
		}
		c.maxSpeedHz = u
	}

	return nil
}

func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}

// Tx writes w to the bus. The PCD8544 has no data out line, so reads are not
// supported.
func (c *SPI) Tx(w, r []byte) error {
	if len(r) != 0 {
		return fmt.Errorf("conn: SPI %s is write-only", c.name)
	}
	n, err := c.f.Write(w)
	if err != nil {
		return err
	}
	if n != len(w) {
		return fmt.Errorf("conn: SPI short write %d of %d bytes", n, len(w))
	}
	return nil
}
