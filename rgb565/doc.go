// Package rgb565 provides the 16-bit RGB image format used by the ST7789
// display controller.
//
// The ST7789 is configured for 16 bits per pixel (COLMOD 0x05). Each pixel is
// a 5-6-5 packed RGB sample sent most significant byte first, so the pixel
// buffer of an Image is already in wire order and can be handed to the
// memory-write command unchanged, whatever the host byte order.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0        1
//	Colors: red      blue
//	Value:  0xF800   0x001F
//	Bytes:  F8 00    00 1F
//
// This package provides:
//
// - Color: a packed 5-6-5 sample
// - Model: a color model converting standard Go colors to Color
// - Image: an image.Image / draw.Image backed by wire-order bytes
//
// Example usage:
//
//	// Create a 240x135 image
//	img := rgb565.NewImage(image.Rect(0, 0, 240, 135))
//
//	// Set a pixel to pure green
//	img.SetRGB565(10, 20, rgb565.FromRGB888(0, 0xFF, 0))
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package rgb565
