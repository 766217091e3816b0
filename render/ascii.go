// Package render rasterizes a frame snapshot into an RGB pixel buffer and
// converts it to colored ASCII for terminal spectators.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/courtside/volley/game"
)

// RGBPixel is one cell of the raster.
type RGBPixel struct {
	R, G, B uint8
}

// ASCII characters for grayscale, from lighter to darker.
const asciiChars = " .,:;i1tfLCG08@"

const grayFactor = 255.0 / float64(len(asciiChars)-1)

var (
	midlineColor = RGBPixel{60, 60, 60}
	powerUpColor = RGBPixel{255, 215, 0}
)

// Rasterize draws a frame into a width x height pixel buffer, scaling from
// surface coordinates.
func Rasterize(fs game.FrameState, width, height int, surfaceW, surfaceH float64) [][]RGBPixel {
	pixels := make([][]RGBPixel, height)
	for y := range pixels {
		pixels[y] = make([]RGBPixel, width)
	}
	if surfaceW <= 0 || surfaceH <= 0 {
		return pixels
	}
	scaleX := float64(width) / surfaceW
	scaleY := float64(height) / surfaceH

	// Center line.
	for y := 0; y < height; y += 2 {
		pixels[y][width/2] = midlineColor
	}

	for _, p := range fs.Paddles {
		fillRect(pixels,
			int(p.X*scaleX), int(p.Y*scaleY),
			int(math.Ceil(p.Width*scaleX)), int(math.Ceil(p.Height*scaleY)),
			pixelColor(p.Color))
	}

	for _, pu := range fs.PowerUps {
		if pu.Active {
			fillCircle(pixels, pu.X*scaleX, pu.Y*scaleY, pu.Radius*scaleX, powerUpColor)
		}
	}

	fillCircle(pixels, fs.Ball.X*scaleX, fs.Ball.Y*scaleY, fs.Ball.Radius*scaleX, pixelColor(fs.Ball.Color))

	return pixels
}

func pixelColor(c [3]int) RGBPixel {
	return RGBPixel{uint8(c[0]), uint8(c[1]), uint8(c[2])}
}

func fillRect(pixels [][]RGBPixel, x, y, w, h int, color RGBPixel) {
	for row := y; row < y+h; row++ {
		if row < 0 || row >= len(pixels) {
			continue
		}
		for col := x; col < x+w; col++ {
			if col >= 0 && col < len(pixels[row]) {
				pixels[row][col] = color
			}
		}
	}
}

func fillCircle(pixels [][]RGBPixel, cx, cy, radius float64, color RGBPixel) {
	minY, maxY := int(cy-radius), int(cy+radius)
	minX, maxX := int(cx-radius), int(cx+radius)
	for row := minY; row <= maxY; row++ {
		if row < 0 || row >= len(pixels) {
			continue
		}
		for col := minX; col <= maxX; col++ {
			if col < 0 || col >= len(pixels[row]) {
				continue
			}
			dx := float64(col) - cx
			dy := float64(row) - cy
			if dx*dx+dy*dy <= radius*radius {
				pixels[row][col] = color
			}
		}
	}
}

func rgbToGray(pixel RGBPixel) uint8 {
	return uint8((float64(pixel.R) + float64(pixel.G) + float64(pixel.B)) / 3)
}

func grayToAscii(gray uint8) string {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return string(asciiChars[index])
}

func rgbToAnsi(pixel RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// ToASCII converts a pixel buffer to a colored ASCII string, one rune per
// pixel, with a scoreline header.
func ToASCII(fs game.FrameState, pixels [][]RGBPixel) string {
	var ascii strings.Builder
	ascii.WriteString(fmt.Sprintf("  %d : %d\n", fs.LeftScore, fs.RightScore))
	for _, row := range pixels {
		for _, pixel := range row {
			gray := rgbToGray(pixel)
			ascii.WriteString(rgbToAnsi(pixel) + grayToAscii(gray) + "\033[0m")
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}
