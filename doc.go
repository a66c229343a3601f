// Package st7789 controls a ST7789 TFT LCD controller via SPI.
//
// The ST7789 has 240×320 pixels of RAM and is sold on several panel
// assemblies, each exposing a different slice of that RAM. This driver
// implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit RGB565 color, sent big-endian
// - Panels: 240×240 square and round, 240×135, 135×240, 320×240, 240×320
// - 180° rotation by reprogramming the address window and MADCTL
// - PWM backlight with gamma-corrected brightness
// - Display inversion and tearing effect line control
//
// # Hardware Connection
//
// Connect the ST7789 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → GPIO passed as Opts.CS (recommended), or SPI Chip Select
//	BL          → Optional: PWM capable GPIO
//
// Only a CS pin passed as Opts.CS keeps chip select asserted for a whole
// command, opcode and payload together. The hardware chip select of the SPI
// port is released after every transfer, and DC has to change between the
// opcode and its payload, so without Opts.CS each command takes two
// transfers.
//
// The controller is reset in software, so a RST line can be tied high.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		"image/color"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7789"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		spiBus, _ := spireg.Open("")
//		defer spiBus.Close()
//
//		dev, _ := st7789.NewSPI(spiBus, gpioreg.ByName("GPIO9"), &st7789.Opts{
//			W:  240,
//			H:  240,
//			CS: gpioreg.ByName("GPIO7"),
//			BL: gpioreg.ByName("GPIO13"),
//		})
//		defer dev.Halt()
//
//		red := image.NewUniform(color.RGBA{R: 0xFF, A: 0xFF})
//		dev.Draw(dev.Bounds(), red, image.Point{})
//	}
//
// # Initialization
//
// NewSPI resolves the panel from Opts before touching the bus, so an
// unsupported size fails with ErrUnsupportedPanel and no traffic. It then
// resets the controller, programs the power, frame rate and gamma
// registers, leaves sleep, turns the display on and programs the address
// window. When a backlight pin is set, the backlight stays dark until the
// framebuffer has been sent once, then goes to full brightness.
//
// # Drawing
//
// The driver owns an RGB565 framebuffer, or uses the one given in
// Opts.Buffer. Update sends it whole, since the address window always
// covers the visible panel:
//
//	buf := dev.Buffer()
//	buf.Fill(rgb565.FromRGB888(0, 0, 0xFF))
//	dev.Update()
//
// Draw renders any image.Image into the framebuffer and sends it. A full
// frame *rgb565.Image is sent directly. Write sends a raw pixel stream of
// exactly W×H×2 bytes without touching the framebuffer.
//
// # Rotation
//
// Flip rotates the display by 180°. Only the address window and MADCTL
// change; the framebuffer is laid out the same way in both orientations,
// so the next Update shows it rotated.
//
// # Errors
//
// SPI and GPIO failures are wrapped with ErrTransport. The driver never
// retries, the state of the panel is unknown after a fault. Halt turns
// the backlight and display off; every later operation returns ErrHalted.
//
// # Datasheet
//
// https://www.rhydolabz.com/documents/33/ST7789.pdf
package st7789
