package chip8

const (
	GfxWidth      = 64
	GfxWidthBytes = GfxWidth / 8
	GfxHeight     = 32

	// FramebufferBytes is the size of the packed monochrome framebuffer.
	FramebufferBytes = GfxWidthBytes * GfxHeight
)

type Graphics struct {
	buffer [FramebufferBytes]uint8
	dirty  bool
}

func (g *Graphics) isDirty() bool {
	return g.dirty
}

func (g *Graphics) setDirty(dirty bool) {
	g.dirty = dirty
}

func (g *Graphics) clear() {
	for i := 0; i < len(g.buffer); i++ {
		g.buffer[i] = 0
	}
	g.dirty = true
}

func (g *Graphics) getPixel(x, y uint8) uint8 {
	bit := 7 - (x % 8) // bit 7 is the first pixel and so on
	return g.buffer[uint(x)/8+uint(y)*GfxWidthBytes] & (1 << bit)
}

// togglePixel XORs a single pixel and reports whether a set pixel was unset.
func (g *Graphics) togglePixel(x, y uint8) bool {
	bit := uint8(7 - (x % 8))
	offset := uint(x)/8 + uint(y)*GfxWidthBytes
	hit := g.buffer[offset]&(1<<bit) != 0
	g.buffer[offset] ^= 1 << bit
	return hit
}

// draw XORs an 8xh sprite at (x, y) and reports collision. The starting
// coordinate always wraps; pixels that run past the screen edge are either
// clipped or wrapped around depending on the clip flag.
func (g *Graphics) draw(mem *Memory, I uint16, x, y, h uint8, clip bool) bool {
	hit := false
	x %= GfxWidth
	y %= GfxHeight
	for r := uint8(0); r < h; r++ {
		row := mem[I+uint16(r)]
		py := y + r
		if py >= GfxHeight {
			if clip {
				break
			}
			py %= GfxHeight
		}
		for b := uint8(0); b < 8; b++ {
			if row&(0x80>>b) == 0 {
				continue
			}
			px := x + b
			if px >= GfxWidth {
				if clip {
					continue
				}
				px %= GfxWidth
			}
			if g.togglePixel(px, py) {
				hit = true
			}
		}
	}
	g.dirty = true
	return hit
}
