package st7789

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/gpio"
)

// backlightGamma approximates the perceived brightness response of the eye.
const backlightGamma = 2.8

var backlightCurve = func() (t [256]uint16) {
	for i := range t {
		t[i] = uint16(math.Round(math.MaxUint16 * math.Pow(float64(i)/255, backlightGamma)))
	}
	return t
}()

// BacklightDuty returns the 16-bit duty cycle for a linear brightness level:
// round(65535 * (level/255)^2.8).
func BacklightDuty(level uint8) uint16 {
	return backlightCurve[level]
}

// pwmDuty scales a 16-bit duty cycle to the gpio.Duty range.
func pwmDuty(v uint16) gpio.Duty {
	return gpio.Duty(int64(v) * int64(gpio.DutyMax) / math.MaxUint16)
}

// SetBacklight sets the backlight brightness, 0 being off and 255 full
// brightness. The level is gamma corrected.
//
// It is a no-op when no backlight pin was configured.
func (d *Dev) SetBacklight(level uint8) error {
	if d.bl == nil {
		return nil
	}
	if d.halted {
		return ErrHalted
	}
	if err := d.bl.PWM(pwmDuty(BacklightDuty(level)), d.blFreq); err != nil {
		return fmt.Errorf("st7789: %w: backlight: %w", ErrTransport, err)
	}
	return nil
}
