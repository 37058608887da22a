// Package serial10 bit-bangs the 10-bit serial interface used by WS0010
// class character OLED controllers.
//
// Each byte on the wire is preceded by a 2-bit header: the first bit selects
// command (0) or data (1), the second selects write (0) or read (1). Command
// transfers repeat the header before every byte. Data transfers send it once,
// before the first byte, and stream the remaining bytes without it.
//
// Hardware SPI peripherals work in multiples of 8 bits, so the clock and data
// lines are driven directly as GPIO outputs.
package serial10

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Kind is the first header bit of a transfer.
type Kind byte

const (
	Command Kind = 0
	Data    Kind = 1
)

func (k Kind) String() string {
	if k == Data {
		return "Data"
	}
	return "Command"
}

// Opts is the configuration for the bus.
type Opts struct {
	// Freq caps the bit clock. Zero toggles the lines as fast as the host
	// allows, which is fine for GPIO drivers that go through sysfs or a
	// character device but may violate the controller's minimum pulse width
	// on memory-mapped GPIO.
	Freq physic.Frequency
}

// Bus drives one chip-select line plus the shared clock and data lines.
//
// It is not safe for concurrent use; the pins must not be shared with
// another Bus.
type Bus struct {
	clk  gpio.PinOut
	mosi gpio.PinOut
	miso gpio.PinIn // configured but never read
	cs   gpio.PinOut

	half time.Duration // half of the bit period, zero means no wait
}

// New configures the pins and returns an idle Bus.
//
// miso may be nil. The chip is deselected (CS high) and the clock left high.
// opts can be nil to use defaults.
func New(clk, mosi gpio.PinOut, miso gpio.PinIn, cs gpio.PinOut, opts *Opts) (*Bus, error) {
	if clk == nil || mosi == nil || cs == nil {
		return nil, errors.New("serial10: clock, data-out and chip-select pins are required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.Freq < 0 {
		return nil, errors.New("serial10: negative clock frequency")
	}
	b := &Bus{clk: clk, mosi: mosi, miso: miso, cs: cs}
	if opts.Freq > 0 {
		b.half = opts.Freq.Period() / 2
	}

	if err := cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("serial10: failed to deselect %s: %w", cs, err)
	}
	if err := clk.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("serial10: failed to idle %s: %w", clk, err)
	}
	if err := mosi.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("serial10: failed to idle %s: %w", mosi, err)
	}
	if miso != nil {
		if err := miso.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("serial10: failed to configure %s: %w", miso, err)
		}
	}
	return b, nil
}

// Tx sends p as a single chip-select framed transfer.
//
// An empty p produces no bus activity at all.
func (b *Bus) Tx(k Kind, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.cs.Out(gpio.Low); err != nil {
		return fmt.Errorf("serial10: failed to select %s: %w", b.cs, err)
	}
	err := b.stream(k, p)
	if errCS := b.cs.Out(gpio.High); err == nil && errCS != nil {
		err = fmt.Errorf("serial10: failed to deselect %s: %w", b.cs, errCS)
	}
	return err
}

func (b *Bus) stream(k Kind, p []byte) error {
	for i, v := range p {
		if k == Command || i == 0 {
			if err := b.sendBit(k == Data); err != nil {
				return err
			}
			// Write.
			if err := b.sendBit(false); err != nil {
				return err
			}
		}
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if err := b.sendBit(v&mask != 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// sendBit clocks out one bit. The controller samples on the rising edge.
func (b *Bus) sendBit(bit bool) error {
	if err := b.clk.Out(gpio.Low); err != nil {
		return fmt.Errorf("serial10: %w", err)
	}
	if err := b.mosi.Out(gpio.Level(bit)); err != nil {
		return fmt.Errorf("serial10: %w", err)
	}
	spin(b.half)
	if err := b.clk.Out(gpio.High); err != nil {
		return fmt.Errorf("serial10: %w", err)
	}
	spin(b.half)
	return nil
}

// Halt deselects the chip.
func (b *Bus) Halt() error {
	return b.cs.Out(gpio.High)
}

func (b *Bus) String() string {
	miso := "<nil>"
	if b.miso != nil {
		miso = b.miso.String()
	}
	return fmt.Sprintf("serial10.Bus{clk: %s, mosi: %s, miso: %s, cs: %s}", b.clk, b.mosi, miso, b.cs)
}

// spin busy-waits for d. Pulse widths are far below the scheduler's sleep
// granularity.
func spin(d time.Duration) {
	if d <= 0 {
		return
	}
	for start := time.Now(); time.Since(start) < d; {
	}
}

var _ conn.Resource = &Bus{}
