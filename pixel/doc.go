// Package pixel implements the color model and image contract used by the PCD8544 drawing surface.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so any renderer targeting those can draw on the display.
package pixel
