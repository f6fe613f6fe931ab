package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/pcd8544"
	"github.com/BeatGlow/pcd8544/draw"
	"github.com/BeatGlow/pcd8544/pixel"
)

func main() {
	portFlag := flag.String("port", "", "periph SPI port name (default: use spidev bus/device)")
	spiBusFlag := flag.Int("spi-bus", pcd8544.DefaultSPIConfig.Bus, "spidev bus")
	spiDeviceFlag := flag.Int("spi-dev", pcd8544.DefaultSPIConfig.Device, "spidev device")
	speedFlag := flag.Uint("speed", uint(pcd8544.DefaultSPIConfig.SpeedHz), "spidev speed in Hz")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	blPinFlag := flag.String("bl", "", "Backlight GPIO pin")
	contrastFlag := flag.Uint("contrast", uint(pcd8544.DefaultConfig.Contrast), "Operating voltage (Vop) 0-127")
	biasFlag := flag.Uint("bias", uint(pcd8544.DefaultConfig.Bias), "Bias system 0-7")
	invertFlag := flag.Bool("invert", false, "Use inverse display mode")
	textFlag := flag.String("text", "periph", "Text to show")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	var (
		reset = gpioreg.ByName(*resetPinFlag)
		dc    = gpioreg.ByName(*dcPinFlag)
		c     pcd8544.Conn
		err   error
	)
	if *portFlag != "" {
		port, err := spireg.Open(*portFlag)
		if err != nil {
			fatal(err)
		}
		defer port.Close()
		c, err = pcd8544.ConnectSPI(port, dc, reset)
		if err != nil {
			fatal(err)
		}
	} else {
		if c, err = pcd8544.OpenSPI(&pcd8544.SPIConfig{
			Bus:     *spiBusFlag,
			Device:  *spiDeviceFlag,
			SpeedHz: uint32(*speedFlag),
			Reset:   reset,
			DC:      dc,
		}); err != nil {
			fatal(err)
		}
	}
	fmt.Printf("using connection: %s\n", c)

	if *blPinFlag != "" {
		bl := gpioreg.ByName(*blPinFlag)
		if bl == nil {
			fatal(fmt.Errorf("invalid backlight pin %q", *blPinFlag))
		}
		if err = bl.Out(gpio.High); err != nil {
			fatal(err)
		}
		defer bl.Out(gpio.Low)
	}

	output, err := pcd8544.New(c, &pcd8544.Config{
		Contrast:  uint8(*contrastFlag),
		Bias:      uint8(*biasFlag),
		TempCoeff: pcd8544.DefaultConfig.TempCoeff,
		Inverted:  *invertFlag,
	})
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer output.Close()
	fmt.Printf("using driver: %s\n", output)

	face, err := draw.DefaultFont(14)
	if err != nil {
		fatal(err)
	}

	var (
		offset int
		r      = output.Bounds()
		inner  = r.Inset(1)
		text   = image.Rect(2, 2, r.Max.X-2, 2+face.Height())
		ticker = time.NewTicker(100 * time.Millisecond)
		stop   = make(chan os.Signal, 1)
	)
	defer ticker.Stop()
	signal.Notify(stop, os.Interrupt)

	fmt.Println("hit control-c to stop...")
	for {
		// Box around the edge, animated pattern inside.
		draw.Rectangle(output, r, pixel.On)
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			for x := inner.Min.X; x < inner.Max.X; x++ {
				output.SetPixel(x, y, (x+y+offset)%4 == 0)
			}
		}

		draw.Box(output, text, pixel.Off)
		pos := image.Pt(r.Dx()/2-face.Width(*textFlag)/2, text.Min.Y+face.Ascent())
		if _, err = face.Draw(output, pos, *textFlag, pixel.On); err != nil {
			fatal(err)
		}
		draw.Text(output, image.Pt(3, r.Max.Y-4), fmt.Sprintf("%04d", offset), pixel.On)

		if err = output.Refresh(); err != nil {
			fatal(err)
		}

		offset++
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
