package ws0010_test

import (
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/ws0010"
	"periph.io/x/devices/v3/ws0010/glyph"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	dev, err := ws0010.NewSerial(
		gpioreg.ByName("GPIO11"), // SCK
		gpioreg.ByName("GPIO10"), // MOSI
		gpioreg.ByName("GPIO9"),  // MISO
		gpioreg.ByName("GPIO8"),  // CS
		nil)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	bell := glyph.FromPattern([8]byte{0x04, 0x0E, 0x0E, 0x0E, 0x1F, 0x00, 0x04, 0x00})
	if err := dev.CreateChar(0, bell.Pattern()); err != nil {
		log.Fatal(err)
	}
	_ = dev.SetCursor(0, 0)
	_, _ = dev.WriteString("Hello")
	_ = dev.SetCursor(0, 1)
	_ = dev.WriteByte(0)
}
