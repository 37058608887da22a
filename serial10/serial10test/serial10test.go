// Package serial10test is meant to be used to test drivers over a fake
// 10-bit serial bus.
//
// Probe records the pin level changes a serial10.Bus produces and decodes
// them back into frames. Record captures transfers one level higher, at the
// Tx call.
package serial10test

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/devices/v3/ws0010/serial10"
)

// Event is one Out call on a recorded pin.
type Event struct {
	Pin string
	L   gpio.Level
}

// Pin is a gpiotest.Pin that reports every Out call to its Probe.
type Pin struct {
	gpiotest.Pin
	probe *Probe

	// Err, when set, is returned by Out and the level is left unchanged.
	Err error
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if p.Err != nil {
		return p.Err
	}
	p.probe.record(p.N, l)
	return p.Pin.Out(l)
}

// Probe owns the four lines of a bus and the ordered log of their changes.
type Probe struct {
	CLK  *Pin
	MOSI *Pin
	MISO *gpiotest.Pin
	CS   *Pin

	mu     sync.Mutex
	events []Event
}

// NewProbe returns a Probe with pins named CLK, MOSI, MISO and CS.
func NewProbe() *Probe {
	p := &Probe{MISO: &gpiotest.Pin{N: "MISO", Num: 2}}
	p.CLK = &Pin{Pin: gpiotest.Pin{N: "CLK", Num: 1}, probe: p}
	p.MOSI = &Pin{Pin: gpiotest.Pin{N: "MOSI", Num: 3}, probe: p}
	p.CS = &Pin{Pin: gpiotest.Pin{N: "CS", Num: 4}, probe: p}
	return p
}

func (p *Probe) record(name string, l gpio.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Event{Pin: name, L: l})
}

// Events returns a copy of the recorded log.
func (p *Probe) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Reset forgets everything recorded so far.
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// Frame is the sequence of bits sampled on rising clock edges while chip
// select was low, as a string of '0' and '1'.
type Frame struct {
	Bits string
}

// Frames decodes the log into chip-select framed bit strings. The decoder
// assumes CS starts high and the clock starts high, which is how
// serial10.New leaves them.
func (p *Probe) Frames() []Frame {
	var out []Frame
	var bits strings.Builder
	cs, clk, mosi := gpio.High, gpio.High, gpio.Low
	for _, e := range p.Events() {
		switch e.Pin {
		case p.CS.N:
			if cs == gpio.High && e.L == gpio.Low {
				bits.Reset()
			} else if cs == gpio.Low && e.L == gpio.High {
				out = append(out, Frame{Bits: bits.String()})
			}
			cs = e.L
		case p.CLK.N:
			if cs == gpio.Low && clk == gpio.Low && e.L == gpio.High {
				if mosi {
					bits.WriteByte('1')
				} else {
					bits.WriteByte('0')
				}
			}
			clk = e.L
		case p.MOSI.N:
			mosi = e.L
		}
	}
	return out
}

// Decode parses the frame back into the transfer that produced it.
func (f Frame) Decode() (IO, error) {
	b := f.Bits
	if len(b) < 10 {
		return IO{}, fmt.Errorf("serial10test: frame too short: %d bits", len(b))
	}
	if b[1] != '0' {
		return IO{}, errors.New("serial10test: read transfer")
	}
	io := IO{Kind: serial10.Command}
	if b[0] == '1' {
		io.Kind = serial10.Data
	}
	if io.Kind == serial10.Data {
		b = b[2:]
		if len(b)%8 != 0 {
			return IO{}, fmt.Errorf("serial10test: data frame has %d payload bits", len(b))
		}
		for ; len(b) > 0; b = b[8:] {
			io.W = append(io.W, parseByte(b[:8]))
		}
		return io, nil
	}
	if len(b)%10 != 0 {
		return IO{}, fmt.Errorf("serial10test: command frame has %d bits", len(b))
	}
	for ; len(b) > 0; b = b[10:] {
		if b[:2] != "00" {
			return IO{}, fmt.Errorf("serial10test: bad command header %q", b[:2])
		}
		io.W = append(io.W, parseByte(b[2:10]))
	}
	return io, nil
}

func parseByte(s string) byte {
	var v byte
	for i := 0; i < 8; i++ {
		v <<= 1
		if s[i] == '1' {
			v |= 1
		}
	}
	return v
}

// IO is one recorded transfer.
type IO struct {
	Kind serial10.Kind
	W    []byte
}

func (io IO) String() string {
	return fmt.Sprintf("%s % X", io.Kind, io.W)
}

// Record implements the Tx method of serial10.Bus and keeps every transfer.
// Empty transfers are dropped, as the real bus does not touch the pins for
// them.
type Record struct {
	sync.Mutex
	Ops []IO

	// Err, when set, is returned by Tx after the transfer is recorded.
	Err error
}

// Tx records p.
func (r *Record) Tx(k serial10.Kind, p []byte) error {
	r.Lock()
	defer r.Unlock()
	if len(p) == 0 {
		return nil
	}
	r.Ops = append(r.Ops, IO{Kind: k, W: append([]byte(nil), p...)})
	return r.Err
}

// Commands returns the bytes of every command transfer, flattened.
func (r *Record) Commands() []byte {
	r.Lock()
	defer r.Unlock()
	var out []byte
	for _, io := range r.Ops {
		if io.Kind == serial10.Command {
			out = append(out, io.W...)
		}
	}
	return out
}

// Reset forgets every recorded transfer.
func (r *Record) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Ops = nil
}
