package ws0010

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ws0010/serial10"
)

// Instructions.
const (
	cmdClear       byte = 0x01
	cmdHome        byte = 0x02
	cmdEntryMode   byte = 0x04
	cmdDisplayCtrl byte = 0x08
	cmdShift       byte = 0x10
	cmdFunctionSet byte = 0x28 // 2 lines, 5x8 font
	cmdSetCGRAM    byte = 0x40
	cmdSetDDRAM    byte = 0x80
)

// Entry mode flags.
const (
	entryLeft     byte = 0x02
	entryShiftInc byte = 0x01
)

// Display control flags.
const (
	ctrlDisplayOn byte = 0x04
	ctrlCursorOn  byte = 0x02
	ctrlBlinkOn   byte = 0x01
)

// Cursor/display shift flags.
const (
	shiftDisplay byte = 0x08
	moveRight    byte = 0x04
)

// Function set flags.
const (
	func8Bit byte = 0x10
)

const (
	rowOffset1 byte = 0x40
	colMask    byte = 0x3F

	delayPowerOn = 1000 * time.Microsecond
	delayClear   = 6000 * time.Microsecond
)

// Font selects one of the character generator ROM tables.
type Font byte

const (
	FontEnglishJapanese  Font = 0x00
	FontWesternEuropean1 Font = 0x01
	FontRussian          Font = 0x02
	FontWesternEuropean2 Font = 0x03
)

// Bus is the transfer primitive the controller needs. *serial10.Bus
// implements it.
type Bus interface {
	Tx(k serial10.Kind, p []byte) error
}

// Opts is the configuration for the display.
type Opts struct {
	// Display dimensions in characters.
	Cols int // default: 16, at most 64
	Rows int // default: 2, at most 2

	// FourBit requests the 4-bit parallel interface. It cannot be driven over
	// the serial bus and is rejected.
	FourBit bool

	// Font selects the CGROM table (default: FontEnglishJapanese).
	Font Font

	// Freq caps the serial bit clock; see serial10.Opts. Only used by
	// NewSerial.
	Freq physic.Frequency

	// Delay waits for at least the given duration. Defaults to time.Sleep.
	Delay func(time.Duration)
}

// Dev is the device handle for the display.
//
// Dev is not safe for concurrent use.
type Dev struct {
	b     Bus
	delay func(time.Duration)

	cols, rows int

	// Last values sent; the controller has no read-back.
	function byte
	control  byte
	entry    byte

	halted bool
}

// NewSerial configures the four GPIO lines as a serial10.Bus and returns an
// initialized display on it.
//
// miso may be nil. opts can be nil to use defaults (16x2 display).
func NewSerial(clk, mosi gpio.PinOut, miso gpio.PinIn, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	b, err := serial10.New(clk, mosi, miso, cs, &serial10.Opts{Freq: opts.Freq})
	if err != nil {
		return nil, err
	}
	return New(b, opts)
}

// New returns a display on b after running the power-on sequence.
//
// opts can be nil to use defaults (16x2 display).
func New(b Bus, opts *Opts) (*Dev, error) {
	if b == nil {
		return nil, errors.New("ws0010: nil bus")
	}
	if opts == nil {
		opts = &Opts{}
	}
	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = 16
	}
	if rows == 0 {
		rows = 2
	}
	if cols < 0 || cols > int(colMask)+1 {
		return nil, errors.New("ws0010: cols must be between 1 and 64")
	}
	if rows < 0 || rows > 2 {
		return nil, errors.New("ws0010: rows must be 1 or 2")
	}
	if opts.FourBit {
		return nil, errors.New("ws0010: 4-bit interface mode is not supported over the serial bus")
	}
	if opts.Font > FontWesternEuropean2 {
		return nil, fmt.Errorf("ws0010: invalid font table %d", opts.Font)
	}

	d := &Dev{
		b:        b,
		delay:    opts.Delay,
		cols:     cols,
		rows:     rows,
		function: func8Bit | byte(opts.Font),
	}
	if d.delay == nil {
		d.delay = time.Sleep
	}
	if err := d.Begin(); err != nil {
		return nil, err
	}
	return d, nil
}

// Begin runs the power-on sequence from the datasheet. It is called by New
// and may be called again to recover a halted or confused display.
//
// The order and delays are mandated by the controller.
func (d *Dev) Begin() error {
	d.halted = false

	d.delay(delayPowerOn)
	if err := d.Command(cmdFunctionSet | d.function); err != nil {
		return err
	}
	if err := d.Command(cmdDisplayCtrl); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	d.entry = entryLeft
	if err := d.sendEntry(); err != nil {
		return err
	}
	if err := d.Home(); err != nil {
		return err
	}
	d.control = ctrlDisplayOn
	return d.sendControl()
}

// Clear blanks the display and returns the cursor home.
func (d *Dev) Clear() error {
	if err := d.Command(cmdClear); err != nil {
		return err
	}
	d.delay(delayClear)
	return d.Home()
}

// Home moves the cursor to address 0 and undoes any display shift.
func (d *Dev) Home() error {
	return d.Command(cmdHome)
}

// SetCursor moves the cursor to the 0-based column and row.
//
// The column is masked to 6 bits even though DDRAM addresses are 7 bits
// wide, so columns past 63 wrap. New refuses geometries where this matters.
func (d *Dev) SetCursor(col, row int) error {
	if row < 0 || row >= d.rows {
		return fmt.Errorf("ws0010: row %d out of range [0, %d)", row, d.rows)
	}
	if col < 0 {
		return fmt.Errorf("ws0010: negative column %d", col)
	}
	addr := byte(col) & colMask
	if row == 1 {
		addr |= rowOffset1
	}
	return d.Command(cmdSetDDRAM | addr)
}

// Display turns the display on or off without touching its contents.
func (d *Dev) Display(on bool) error {
	return d.setControl(ctrlDisplayOn, on)
}

// ShowCursor shows or hides the underline cursor.
func (d *Dev) ShowCursor(on bool) error {
	return d.setControl(ctrlCursorOn, on)
}

// Blink turns the blinking block cursor on or off.
func (d *Dev) Blink(on bool) error {
	return d.setControl(ctrlBlinkOn, on)
}

// Cursor sets the cursor from display.CursorMode values. CursorOff clears
// both cursor styles; the others are additive.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	ctrl := d.control
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			ctrl &^= ctrlCursorOn | ctrlBlinkOn
		case display.CursorUnderline:
			ctrl |= ctrlCursorOn
		case display.CursorBlink, display.CursorBlock:
			ctrl |= ctrlBlinkOn
		default:
			return fmt.Errorf("ws0010: %w: cursor mode %d", display.ErrInvalidCommand, mode)
		}
	}
	d.control = ctrl
	return d.sendControl()
}

// ScrollLeft shifts the whole display one position left. The DDRAM contents
// and the cursor address are unchanged.
func (d *Dev) ScrollLeft() error {
	return d.Command(cmdShift | shiftDisplay)
}

// ScrollRight shifts the whole display one position right.
func (d *Dev) ScrollRight() error {
	return d.Command(cmdShift | shiftDisplay | moveRight)
}

// LeftToRight makes the cursor advance to the right after each character.
func (d *Dev) LeftToRight() error {
	return d.setEntry(entryLeft, true)
}

// RightToLeft makes the cursor advance to the left after each character.
func (d *Dev) RightToLeft() error {
	return d.setEntry(entryLeft, false)
}

// AutoScroll makes the display shift on every write so the cursor stays in
// place, right-justifying text from the cursor.
func (d *Dev) AutoScroll(enabled bool) error {
	return d.setEntry(entryShiftInc, enabled)
}

// CreateChar stores a 5x8 glyph in one of the 8 CGRAM slots. Character codes
// 0-7 then display it. Only the low 3 bits of slot are used.
//
// The cursor is left in CGRAM; call SetCursor or Home before writing text.
func (d *Dev) CreateChar(slot byte, pattern [8]byte) error {
	slot &= 0x07
	if err := d.Command(cmdSetCGRAM | slot<<3); err != nil {
		return err
	}
	return d.tx(serial10.Data, pattern[:])
}

// Command sends a raw instruction byte.
func (d *Dev) Command(c byte) error {
	return d.tx(serial10.Command, []byte{c})
}

// WriteByte writes a single character at the cursor.
func (d *Dev) WriteByte(c byte) error {
	return d.tx(serial10.Data, []byte{c})
}

// Write writes p at the cursor as one transfer. It implements io.Writer.
func (d *Dev) Write(p []byte) (int, error) {
	if err := d.tx(serial10.Data, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString writes text at the cursor.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Move moves the cursor one position forward or backward.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		return d.Command(cmdShift)
	case display.Forward:
		return d.Command(cmdShift | moveRight)
	default:
		return fmt.Errorf("ws0010: %w", display.ErrNotImplemented)
	}
}

// MoveTo moves the cursor to the 0-based row and column.
func (d *Dev) MoveTo(row, col int) error {
	if row < d.MinRow() || row >= d.rows || col < d.MinCol() || col >= d.cols {
		return fmt.Errorf("ws0010: MoveTo(%d, %d) value out of range", row, col)
	}
	return d.SetCursor(col, row)
}

// Rows returns the number of rows.
func (d *Dev) Rows() int {
	return d.rows
}

// Cols returns the number of columns.
func (d *Dev) Cols() int {
	return d.cols
}

// MinRow returns the first row index.
func (d *Dev) MinRow() int {
	return 0
}

// MinCol returns the first column index.
func (d *Dev) MinCol() int {
	return 0
}

// Halt turns the display off. After calling Halt every operation fails
// until Begin is called again.
func (d *Dev) Halt() error {
	err := d.Display(false)
	d.halted = true
	if r, ok := d.b.(conn.Resource); ok {
		if errHalt := r.Halt(); err == nil {
			err = errHalt
		}
	}
	return err
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ws0010.Dev{%dx%d}", d.cols, d.rows)
}

func (d *Dev) setControl(flag byte, on bool) error {
	if on {
		d.control |= flag
	} else {
		d.control &^= flag
	}
	return d.sendControl()
}

func (d *Dev) sendControl() error {
	return d.Command(cmdDisplayCtrl | d.control)
}

func (d *Dev) setEntry(flag byte, on bool) error {
	if on {
		d.entry |= flag
	} else {
		d.entry &^= flag
	}
	return d.sendEntry()
}

func (d *Dev) sendEntry() error {
	return d.Command(cmdEntryMode | d.entry)
}

func (d *Dev) tx(k serial10.Kind, p []byte) error {
	if d.halted {
		return errors.New("ws0010: halted")
	}
	if err := d.b.Tx(k, p); err != nil {
		return fmt.Errorf("ws0010: %w", err)
	}
	return nil
}

var _ display.TextDisplay = &Dev{}
var _ conn.Resource = &Dev{}
