package main

import (
	"strings"

	tm "github.com/buger/goterm"

	"github.com/ariotta/chip8"
)

type screen struct {
	buf strings.Builder
}

func newScreen() *screen {
	tm.Clear()
	return &screen{}
}

func getPixel(fb *[chip8.FramebufferBytes]uint8, x, y int) uint8 {
	bit := uint(7 - (x % 8))
	return fb[x/8+y*chip8.GfxWidthBytes] & (1 << bit)
}

// draw repaints the whole framebuffer, two terminal cells per pixel. The
// terminal is in raw mode, so lines end with an explicit CR LF.
func (s *screen) draw(fb *[chip8.FramebufferBytes]uint8) {
	s.buf.Reset()
	for y := 0; y < chip8.GfxHeight; y++ {
		for x := 0; x < chip8.GfxWidth; x++ {
			if getPixel(fb, x, y) != 0 {
				s.buf.WriteString("██")
			} else {
				s.buf.WriteString("  ")
			}
		}
		s.buf.WriteString("\r\n")
	}

	tm.MoveCursor(1, 1)
	tm.Print(s.buf.String())
	tm.Flush()
}
