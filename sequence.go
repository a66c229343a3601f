package st7789

import "time"

// Command registers.
const (
	cmdSWRESET  = 0x01 // Software reset
	cmdSLPOUT   = 0x11 // Sleep out
	cmdINVOFF   = 0x20 // Display inversion off
	cmdINVON    = 0x21 // Display inversion on
	cmdDISPOFF  = 0x28 // Display off
	cmdDISPON   = 0x29 // Display on
	cmdCASET    = 0x2A // Column address set
	cmdRASET    = 0x2B // Row address set
	cmdRAMWR    = 0x2C // Memory write
	cmdTEOFF    = 0x34 // Tearing effect line off
	cmdTEON     = 0x35 // Tearing effect line on
	cmdMADCTL   = 0x36 // Memory data access control
	cmdCOLMOD   = 0x3A // Interface pixel format
	cmdPORCTRL  = 0xB2 // Porch setting
	cmdGCTRL    = 0xB7 // Gate control
	cmdVCOMS    = 0xBB // VCOM setting
	cmdLCMCTRL  = 0xC0 // LCM control
	cmdVDVVRHEN = 0xC2 // VDV and VRH command enable
	cmdVRHS     = 0xC3 // VRH set
	cmdVDVS     = 0xC4 // VDV set
	cmdFRCTRL2  = 0xC6 // Frame rate control in normal mode
	cmdPWCTRL1  = 0xD0 // Power control 1
	cmdD6       = 0xD6 // Undocumented, required by the 320x240 assembly
	cmdGMCTRP1  = 0xE0 // Positive voltage gamma control
	cmdGMCTRN1  = 0xE1 // Negative voltage gamma control
)

// Settle times. These are the time the controller needs after the command
// before it behaves; they must not be shortened.
const (
	// resetSettle lets the internal regulators stabilize after SWRESET.
	resetSettle = 150 * time.Millisecond
	// displayOnSettle lets the panel leave sleep and enable its output.
	displayOnSettle = 100 * time.Millisecond
	// firstFrameSettle lets the first memory write land before the
	// backlight comes up.
	firstFrameSettle = 50 * time.Millisecond
)

// Command is a single controller command. Settle is the time to wait after
// the command completes.
type Command struct {
	Op     byte
	Data   []byte
	Settle time.Duration
}

type gammaClass uint8

const (
	gammaDefault gammaClass = iota
	gamma240
	gamma320
)

// initSequence returns the power-up sequence for p, from reset up to and
// including display on. It does not include the address window.
func initSequence(p Panel) []Command {
	cmds := []Command{
		{Op: cmdSWRESET, Settle: resetSettle},
		{Op: cmdTEON},
		{Op: cmdCOLMOD, Data: []byte{0x05}}, // 16 bits per pixel
		{Op: cmdPORCTRL, Data: []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}},
		{Op: cmdLCMCTRL, Data: []byte{0x2C}},
		{Op: cmdVDVVRHEN, Data: []byte{0x01}},
		{Op: cmdVRHS, Data: []byte{0x12}},
		{Op: cmdVDVS, Data: []byte{0x20}},
		{Op: cmdPWCTRL1, Data: []byte{0xA4, 0xA1}},
		{Op: cmdFRCTRL2, Data: []byte{0x0F}},
	}
	if p.valid() {
		cmds = append(cmds, gammaSequence(panels[p].gamma)...)
	}
	return append(cmds,
		Command{Op: cmdINVON},
		Command{Op: cmdSLPOUT},
		Command{Op: cmdDISPON, Settle: displayOnSettle},
	)
}

// gammaSequence returns the gate, VCOM and gamma curve registers tuned for
// a panel size class. Unknown classes keep the controller defaults.
func gammaSequence(c gammaClass) []Command {
	switch c {
	case gamma240:
		return []Command{
			{Op: cmdGCTRL, Data: []byte{0x14}},
			{Op: cmdVCOMS, Data: []byte{0x37}},
			{Op: cmdGMCTRP1, Data: []byte{0xD0, 0x04, 0x0D, 0x11, 0x13, 0x2B, 0x3F, 0x54, 0x4C, 0x18, 0x0D, 0x0B, 0x1F, 0x23}},
			{Op: cmdGMCTRN1, Data: []byte{0xD0, 0x04, 0x0C, 0x11, 0x13, 0x2C, 0x3F, 0x44, 0x51, 0x2F, 0x1F, 0x1F, 0x20, 0x23}},
		}
	case gamma320:
		return []Command{
			{Op: cmdGCTRL, Data: []byte{0x35}},
			{Op: cmdVCOMS, Data: []byte{0x1F}},
			{Op: cmdD6, Data: []byte{0xA1}},
			{Op: cmdGMCTRP1, Data: []byte{0xD0, 0x08, 0x11, 0x08, 0x0C, 0x15, 0x39, 0x33, 0x50, 0x36, 0x13, 0x14, 0x29, 0x2D}},
			{Op: cmdGMCTRN1, Data: []byte{0xD0, 0x08, 0x10, 0x08, 0x06, 0x06, 0x39, 0x44, 0x51, 0x0B, 0x16, 0x14, 0x2F, 0x31}},
		}
	}
	return nil
}

// geometrySequence returns the commands programming the address window and
// orientation.
func geometrySequence(w Window, m MADCTL) []Command {
	return []Command{
		{Op: cmdCASET, Data: w.CASET()},
		{Op: cmdRASET, Data: w.RASET()},
		{Op: cmdMADCTL, Data: []byte{byte(m)}},
	}
}
