package st7789

import (
	"encoding/binary"
	"fmt"
	"image"
	"strings"
)

// MADCTL is the memory data access control register value. It selects the
// address counter directions, axis swap and refresh orders of the
// controller.
type MADCTL byte

// MADCTL bits.
const (
	RowOrder   MADCTL = 1 << 7 // MY, row address order
	ColOrder   MADCTL = 1 << 6 // MX, column address order
	SwapXY     MADCTL = 1 << 5 // MV, row/column exchange
	ScanOrder  MADCTL = 1 << 4 // ML, vertical refresh order
	BGR        MADCTL = 1 << 3 // color channel order
	HorizOrder MADCTL = 1 << 2 // MH, horizontal refresh order
)

var madctlNames = []struct {
	bit  MADCTL
	name string
}{
	{RowOrder, "RowOrder"},
	{ColOrder, "ColOrder"},
	{SwapXY, "SwapXY"},
	{ScanOrder, "ScanOrder"},
	{BGR, "BGR"},
	{HorizOrder, "HorizOrder"},
}

func (m MADCTL) String() string {
	var parts []string
	for _, n := range madctlNames {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// Window is the rectangle of the controller's internal RAM that maps onto
// the visible panel. Bounds are inclusive.
type Window struct {
	ColStart, ColEnd uint16
	RowStart, RowEnd uint16
}

// CASET returns the column-address-set payload: start then end, each
// big-endian.
func (w Window) CASET() []byte {
	return pair(w.ColStart, w.ColEnd)
}

// RASET returns the row-address-set payload: start then end, each
// big-endian.
func (w Window) RASET() []byte {
	return pair(w.RowStart, w.RowEnd)
}

func (w Window) String() string {
	return fmt.Sprintf("cols %d..%d rows %d..%d", w.ColStart, w.ColEnd, w.RowStart, w.RowEnd)
}

func pair(start, end uint16) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint16(b[0:2], start)
	binary.BigEndian.PutUint16(b[2:4], end)
	return b
}

// Panel identifies one of the known panel assemblies. The controller RAM is
// 240x320; each assembly exposes a different part of it.
type Panel uint8

// Known panels.
const (
	PanelUnknown   Panel = iota
	PanelSquare240       // 240x240 square breakout
	PanelRound240        // 240x240 round breakout
	Panel240x135         // 1.14" 240x135 landscape
	Panel135x240         // 1.14" panel addressed in portrait
	Panel320x240         // 2.0" 320x240 landscape
	Panel240x320         // 2.0" panel addressed in portrait
)

// geometry holds the calibration of a panel for both orientations. Index 0
// is the native orientation, index 1 is rotated by 180°.
type geometry struct {
	name   string
	size   image.Point
	round  bool
	window [2]Window
	madctl [2]MADCTL
	gamma  gammaClass
}

// The offsets below are per-assembly calibration constants, they cannot be
// derived from the panel size.
var panels = [...]geometry{
	PanelUnknown: {name: "unknown"},
	PanelSquare240: {
		name:   "240x240",
		size:   image.Pt(240, 240),
		window: [2]Window{{0, 239, 0, 239}, {0, 239, 80, 319}},
		madctl: [2]MADCTL{HorizOrder, RowOrder | ColOrder | HorizOrder},
		gamma:  gamma240,
	},
	PanelRound240: {
		name:   "240x240 round",
		size:   image.Pt(240, 240),
		round:  true,
		window: [2]Window{{0, 239, 40, 279}, {0, 239, 40, 279}},
		madctl: [2]MADCTL{HorizOrder, RowOrder | ColOrder | HorizOrder},
		gamma:  gamma240,
	},
	Panel240x135: {
		name:   "240x135",
		size:   image.Pt(240, 135),
		window: [2]Window{{40, 279, 53, 187}, {40, 279, 53, 187}},
		madctl: [2]MADCTL{ColOrder | SwapXY | ScanOrder, RowOrder | SwapXY | ScanOrder},
	},
	Panel135x240: {
		name:   "135x240",
		size:   image.Pt(135, 240),
		window: [2]Window{{52, 186, 40, 279}, {52, 186, 40, 279}},
		madctl: [2]MADCTL{0, RowOrder | ColOrder},
	},
	Panel320x240: {
		name:   "320x240",
		size:   image.Pt(320, 240),
		window: [2]Window{{0, 319, 0, 239}, {0, 319, 0, 239}},
		madctl: [2]MADCTL{ColOrder | SwapXY | ScanOrder, RowOrder | SwapXY | ScanOrder},
		gamma:  gamma320,
	},
	Panel240x320: {
		name:   "240x320",
		size:   image.Pt(240, 320),
		window: [2]Window{{0, 239, 0, 319}, {0, 239, 0, 319}},
		madctl: [2]MADCTL{0, RowOrder | ColOrder},
		gamma:  gamma320,
	},
}

// ResolvePanel returns the panel matching the given visible size and shape.
//
// It returns ErrUnsupportedPanel when nothing matches. It never falls back
// to a nearby entry.
func ResolvePanel(w, h int, round bool) (Panel, error) {
	for i := range panels {
		p := Panel(i)
		g := &panels[p]
		if p != PanelUnknown && g.size == image.Pt(w, h) && g.round == round {
			return p, nil
		}
	}
	shape := ""
	if round {
		shape = " round"
	}
	return PanelUnknown, fmt.Errorf("%w: %dx%d%s", ErrUnsupportedPanel, w, h, shape)
}

func (p Panel) valid() bool {
	return p != PanelUnknown && int(p) < len(panels)
}

func (p Panel) String() string {
	if int(p) >= len(panels) {
		return fmt.Sprintf("Panel(%d)", p)
	}
	return panels[p].name
}

// Size returns the visible size of the panel in pixels.
func (p Panel) Size() image.Point {
	if !p.valid() {
		return image.Point{}
	}
	return panels[p].size
}

// Geometry returns the address window and MADCTL value to program for the
// given orientation. It is a pure function of its inputs.
func (p Panel) Geometry(rotated bool) (Window, MADCTL, error) {
	if !p.valid() {
		return Window{}, 0, fmt.Errorf("%w: %s", ErrUnsupportedPanel, p)
	}
	i := 0
	if rotated {
		i = 1
	}
	g := &panels[p]
	return g.window[i], g.madctl[i], nil
}
