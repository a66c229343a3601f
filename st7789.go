// Package st7789 controls a ST7789 TFT LCD controller via SPI.
//
// Only the panel assemblies listed by Panel are supported, since the offset
// of each visible area inside the controller RAM is a calibration constant
// of the assembly.
package st7789

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/rgb565"
)

var (
	// ErrUnsupportedPanel is returned when a panel size and shape matches
	// none of the known assemblies.
	ErrUnsupportedPanel = errors.New("st7789: unsupported panel geometry")
	// ErrTransport wraps every SPI or GPIO failure. The driver does not
	// retry; the display state is unknown after it.
	ErrTransport = errors.New("st7789: transport fault")
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("st7789: halted")
	// ErrBufferSize is returned when a pixel stream or framebuffer does not
	// cover exactly one frame.
	ErrBufferSize = errors.New("st7789: invalid buffer size")
)

const (
	// DefaultSpeed is the SPI clock used when Opts.MaxSpeed is zero. The
	// write cycle of the ST7789 is 16ns.
	DefaultSpeed = 62500 * physic.KiloHertz
	// DefaultBacklightFrequency is the backlight PWM frequency used when
	// Opts.BacklightFreq is zero.
	DefaultBacklightFrequency = 2 * physic.KiloHertz
)

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Visible panel dimensions in pixels (default: 240x240)
	W int
	H int

	// Round selects the round 240x240 assembly.
	Round bool

	// Chip select pin, recommended. When set, the SPI port is opened
	// without hardware chip select and the driver holds this pin low from
	// the opcode to the last payload byte of each command. When nil the
	// port's own chip select is used, and it is released between the
	// opcode and the payload since DC has to change in between.
	CS gpio.PinOut

	// Optional backlight pin, driven with PWM. nil or gpio.INVALID means the
	// backlight is not controlled and SetBacklight is a no-op.
	BL            gpio.PinOut
	BacklightFreq physic.Frequency

	// Optional framebuffer owned by the caller. It must have bounds
	// (0,0)-(W,H). One is allocated when nil.
	Buffer *rgb565.Image

	// SPI clock (default: DefaultSpeed)
	MaxSpeed physic.Frequency

	// Clock used for the settle delays (default: real time).
	Clock clockwork.Clock
}

// Dev is the device handle for the ST7789 display.
type Dev struct {
	// Communication
	c         conn.Conn
	dc        gpio.PinOut
	cs        gpio.PinOut // nil when the port drives chip select
	maxTxSize int
	cmdBuf    [1]byte

	// Backlight
	bl     gpio.PinOut // nil when absent
	blFreq physic.Frequency

	clock clockwork.Clock

	// Display geometry
	panel   Panel
	rect    image.Rectangle
	window  Window
	madctl  MADCTL
	rotated bool

	// Framebuffer, not owned when passed through Opts.
	buffer *rgb565.Image

	halted bool
}

// NewSPI creates a new ST7789 device connected via SPI and runs the power-up
// sequence.
//
// The SPI port is configured in Mode0, 8-bit transfers. The dc (Data/Command)
// GPIO pin must be provided.
//
// opts can be nil to use defaults (square 240x240 panel).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 240, H: 240}
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7789: dc pin is required")
	}
	panel, err := ResolvePanel(opts.W, opts.H, opts.Round)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	buf := opts.Buffer
	if buf == nil {
		buf = rgb565.NewImage(rect)
	} else if buf.Rect != rect || buf.Stride != 2*opts.W || len(buf.Pix) < 2*opts.W*opts.H {
		return nil, fmt.Errorf("%w: buffer must cover %v with stride %d and %d bytes, got %v with stride %d and %d bytes", ErrBufferSize, rect, 2*opts.W, 2*opts.W*opts.H, buf.Rect, buf.Stride, len(buf.Pix))
	}

	cs := optionalPin(opts.CS)
	mode := spi.Mode0
	if cs != nil {
		mode |= spi.NoCS
	}
	speed := opts.MaxSpeed
	if speed == 0 {
		speed = DefaultSpeed
	}
	c, err := p.Connect(speed, mode, 8)
	if err != nil {
		return nil, fmt.Errorf("st7789: %w", err)
	}

	d := newDev(c, dc, cs, panel, buf, opts)
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func newDev(c conn.Conn, dc, cs gpio.PinOut, panel Panel, buf *rgb565.Image, opts *Opts) *Dev {
	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	blFreq := opts.BacklightFreq
	if blFreq == 0 {
		blFreq = DefaultBacklightFrequency
	}
	return &Dev{
		c:         c,
		dc:        dc,
		cs:        cs,
		maxTxSize: maxTxSize,
		bl:        optionalPin(opts.BL),
		blFreq:    blFreq,
		clock:     clock,
		panel:     panel,
		rect:      buf.Rect,
		buffer:    buf,
	}
}

func optionalPin(p gpio.PinOut) gpio.PinOut {
	if p == nil || p == gpio.INVALID {
		return nil
	}
	return p
}

// init brings the controller from reset to displaying.
func (d *Dev) init() error {
	// Keep the backlight dark until the first frame is in.
	if err := d.SetBacklight(0); err != nil {
		return err
	}
	if d.cs != nil {
		if err := d.cs.Out(gpio.High); err != nil {
			return fmt.Errorf("st7789: %w: CS: %w", ErrTransport, err)
		}
	}

	for _, c := range initSequence(d.panel) {
		if err := d.send(c); err != nil {
			return err
		}
	}

	if err := d.configure(false); err != nil {
		return err
	}

	if d.bl == nil {
		return nil
	}
	// Send the buffer to clear whatever the controller RAM held.
	if err := d.Update(); err != nil {
		return err
	}
	d.settle(firstFrameSettle)
	return d.SetBacklight(255)
}

// configure programs the address window and orientation for the panel.
func (d *Dev) configure(rotated bool) error {
	w, m, err := d.panel.Geometry(rotated)
	if err != nil {
		return err
	}
	for _, c := range geometrySequence(w, m) {
		if err := d.send(c); err != nil {
			return err
		}
	}
	d.window, d.madctl, d.rotated = w, m, rotated
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is always {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Buffer returns the framebuffer sent by Update.
func (d *Dev) Buffer() *rgb565.Image {
	return d.buffer
}

// Panel returns the panel assembly the device was configured for.
func (d *Dev) Panel() Panel {
	return d.panel
}

// AddressWindow returns the controller RAM window currently programmed.
func (d *Dev) AddressWindow() Window {
	return d.window
}

// Orientation returns the MADCTL value currently programmed.
func (d *Dev) Orientation() MADCTL {
	return d.madctl
}

// Rotated reports whether the display is rotated by 180°.
func (d *Dev) Rotated() bool {
	return d.rotated
}

// Update sends the whole framebuffer to the display.
//
// There is no tearing protection. When the tearing effect line is used, the
// caller must synchronize with it.
func (d *Dev) Update() error {
	if d.halted {
		return ErrHalted
	}
	return d.command(cmdRAMWR, d.buffer.Pix[:d.frameSize()])
}

// Write writes raw big-endian RGB565 pixel data to the display, bypassing
// the framebuffer. The data must be exactly W*H*2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != d.frameSize() {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d bytes", ErrBufferSize, d.frameSize(), len(pixels))
	}
	if err := d.command(cmdRAMWR, pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw implements display.Drawer.
//
// A full frame rgb565.Image is sent as is. Anything else is rendered into
// the framebuffer, which is then sent whole.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	if img, ok := src.(*rgb565.Image); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) && img.Stride == 2*d.rect.Dx() {
		// Exact size, full frame, native encoding: fast path!
		if len(img.Pix) < d.frameSize() {
			return fmt.Errorf("%w: expected %d bytes, got %d bytes", ErrBufferSize, d.frameSize(), len(img.Pix))
		}
		return d.command(cmdRAMWR, img.Pix[:d.frameSize()])
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	draw.Draw(d.buffer, r, src, sp, draw.Src)
	return d.Update()
}

// Flip rotates the display by 180°. Only the address window and MADCTL are
// reprogrammed; the framebuffer is not touched and is not resent.
func (d *Dev) Flip() error {
	return d.SetRotation(true)
}

// SetRotation selects the native orientation or the one rotated by 180°.
func (d *Dev) SetRotation(rotated bool) error {
	if d.halted {
		return ErrHalted
	}
	return d.configure(rotated)
}

// Invert toggles display inversion. The panels are driven inverted after
// initialization; Invert(false) shows the framebuffer colors complemented.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	op := byte(cmdINVOFF)
	if invert {
		op = cmdINVON
	}
	return d.command(op, nil)
}

// SetTearingEffect enables or disables the tearing effect output line.
func (d *Dev) SetTearingEffect(on bool) error {
	if d.halted {
		return ErrHalted
	}
	op := byte(cmdTEOFF)
	if on {
		op = cmdTEON
	}
	return d.command(op, nil)
}

// Halt turns the backlight and the display off.
//
// After calling Halt, the device refuses further operations.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.SetBacklight(0); err != nil {
		return err
	}
	d.halted = true
	return d.command(cmdDISPOFF, nil)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%s, %s, %s}", d.c, d.dc, d.panel)
}

func (d *Dev) frameSize() int {
	return 2 * d.rect.Dx() * d.rect.Dy()
}

var _ display.Drawer = &Dev{}
