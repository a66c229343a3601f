package st7789

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// command sends a command byte and its optional payload as one transaction:
// chip select stays asserted from the opcode to the last payload byte.
//
// The payload is sent verbatim; byte order is the caller's business.
func (d *Dev) command(op byte, data []byte) (err error) {
	if err := d.selectChip(gpio.Low); err != nil {
		return d.fault(op, err)
	}
	defer func() {
		if e := d.selectChip(gpio.High); e != nil && err == nil {
			err = d.fault(op, e)
		}
	}()

	if err := d.dc.Out(gpio.Low); err != nil {
		return d.fault(op, err)
	}
	d.cmdBuf[0] = op
	if err := d.c.Tx(d.cmdBuf[:], nil); err != nil {
		return d.fault(op, err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := d.dc.Out(gpio.High); err != nil {
		return d.fault(op, err)
	}
	for len(data) != 0 {
		chunk := data
		if len(chunk) > d.maxTxSize {
			chunk = chunk[:d.maxTxSize]
		}
		if err := d.c.Tx(chunk, nil); err != nil {
			return d.fault(op, err)
		}
		data = data[len(chunk):]
	}
	return nil
}

// send runs c and then waits for its settle time.
func (d *Dev) send(c Command) error {
	if err := d.command(c.Op, c.Data); err != nil {
		return err
	}
	d.settle(c.Settle)
	return nil
}

// settle blocks for t. It is used for controller recovery times which are
// hard requirements of the hardware.
func (d *Dev) settle(t time.Duration) {
	if t > 0 {
		d.clock.Sleep(t)
	}
}

func (d *Dev) selectChip(l gpio.Level) error {
	if d.cs == nil {
		return nil
	}
	return d.cs.Out(l)
}

func (d *Dev) fault(op byte, err error) error {
	return fmt.Errorf("st7789: %w: command 0x%02X: %w", ErrTransport, op, err)
}
