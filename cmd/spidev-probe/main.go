package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BeatGlow/pcd8544/conn"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	speedFlag := flag.Int("speed", 0, "Set maximum SPI speed in Hz (0 keeps the current speed)")
	flag.Parse()

	c, err := conn.OpenSPI(*busFlag, *deviceFlag)
	if err != nil {
		log.Fatalln("open failed: ", err)
	}
	defer c.Close()

	if *speedFlag > 0 {
		if err = c.SetMaxSpeed(*speedFlag); err != nil {
			log.Fatalln("set speed failed: ", err)
		}
	}
	fmt.Println("connected using", c)
}
