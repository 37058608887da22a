// Package ws0010 controls a character OLED display built on the Winstar
// WS0010 controller (for example the WEH001602 and "OLED-0010" 16x2 modules)
// through its 10-bit serial interface.
//
// The WS0010 accepts the HD44780 instruction set, so the driver offers the
// familiar character LCD operations: clear, home, cursor positioning, display
// and cursor control, scrolling, entry mode and custom glyphs. Dev also
// implements the display.TextDisplay interface from periph.io.
//
// # Serial Interface
//
// In serial mode every byte is preceded by two header bits (RS, then R/W),
// for 10 bits per byte. Hardware SPI controllers cannot produce that, so the
// serial10 subpackage bit-bangs the clock and data lines through GPIO.
// Commands repeat the header before every byte; data transfers send it
// once per chip-select frame.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V or 5V depending on the module
//	SCLK        → any GPIO (clock)
//	SDI         → any GPIO (data out)
//	SDO         → any GPIO or unconnected (data in, never read)
//	/CS         → any GPIO (chip select, active low)
//
// Solder the module's interface jumpers for serial mode.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/ws0010"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		dev, _ := ws0010.NewSerial(
//			gpioreg.ByName("GPIO11"),
//			gpioreg.ByName("GPIO10"),
//			nil,
//			gpioreg.ByName("GPIO8"),
//			nil) // 16x2 display
//		defer dev.Halt()
//
//		dev.WriteString("Hello")
//		dev.SetCursor(0, 1)
//		dev.WriteString("world")
//	}
//
// # Display State
//
// The controller cannot be read back over this interface. Dev remembers the
// last display control (display, cursor, blink) and entry mode (direction,
// autoscroll) values it sent and resends the whole byte whenever one flag
// changes.
//
// # Custom Glyphs
//
// Eight 5x8 glyphs can be stored with CreateChar and printed as character
// codes 0-7. The glyph subpackage provides an image type to draw them with
// image/draw:
//
//	img := glyph.New()
//	draw.Draw(img, image.Rect(0, 0, 5, 1), image.NewUniform(glyph.On), image.Point{}, draw.Src)
//	dev.CreateChar(0, img.Pattern())
//	dev.Home()
//	dev.WriteByte(0)
//
// # Timing
//
// Begin waits 1ms before the function set instruction and Clear waits 6ms
// for the controller to blank its RAM. Set Opts.Delay to use a different
// sleep function. Other instructions complete well within the time it takes
// to clock the next frame out. On very fast GPIO, set Opts.Freq to cap the
// serial clock.
//
// # Limitations
//
// Only 1 and 2 row geometries are supported, with the second row at DDRAM
// address 0x40. The 4-bit parallel mode cannot be used over the serial bus
// and is rejected.
//
// # Datasheet
//
// https://www.winstar.com.tw/uploads/files/WS0010.pdf
package ws0010
