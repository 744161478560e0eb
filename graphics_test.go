package chip8

import "testing"

func TestDrawCollision(t *testing.T) {
	var mem Memory
	var gfx Graphics
	mem[0x300] = 0xFF

	if gfx.draw(&mem, 0x300, 0, 0, 1, true) {
		t.Error("first draw reported a collision on an empty screen")
	}
	if !gfx.draw(&mem, 0x300, 0, 0, 1, true) {
		t.Error("second draw over the same pixels reported no collision")
	}
	for x := uint8(0); x < 8; x++ {
		if gfx.getPixel(x, 0) != 0 {
			t.Errorf("pixel (%d,0) still set after XOR erase", x)
		}
	}
}

func TestDrawClipsAtEdge(t *testing.T) {
	var mem Memory
	var gfx Graphics
	mem[0x300] = 0xFF

	gfx.draw(&mem, 0x300, 60, 0, 1, true)
	for x := uint8(60); x < 64; x++ {
		if gfx.getPixel(x, 0) == 0 {
			t.Errorf("pixel (%d,0) not set", x)
		}
	}
	for x := uint8(0); x < 4; x++ {
		if gfx.getPixel(x, 0) != 0 {
			t.Errorf("pixel (%d,0) set despite clipping", x)
		}
	}
}

func TestDrawWrapsAtEdge(t *testing.T) {
	var mem Memory
	var gfx Graphics
	mem[0x300] = 0xFF

	gfx.draw(&mem, 0x300, 60, 0, 1, false)
	for x := uint8(0); x < 4; x++ {
		if gfx.getPixel(x, 0) == 0 {
			t.Errorf("pixel (%d,0) not wrapped around", x)
		}
	}
}

func TestDrawWrapsStartCoordinate(t *testing.T) {
	var mem Memory
	var gfx Graphics
	mem[0x300] = 0x80

	// x=64 folds back to column 0 even when clipping
	gfx.draw(&mem, 0x300, 64, 33, 1, true)
	if gfx.getPixel(0, 1) == 0 {
		t.Error("start coordinate did not wrap")
	}
}

func TestClearSetsDirty(t *testing.T) {
	var gfx Graphics
	gfx.setDirty(false)
	gfx.clear()
	if !gfx.isDirty() {
		t.Error("clear did not mark the framebuffer dirty")
	}
}
