package chip8

import "testing"

func BenchmarkCountLoop(b *testing.B) {
	benchmarkProgram(b, []byte{
		0x70, 0x01, // add V0, 1
		0x12, 0x00, // jp 0x200
	}, 10000)
}

func BenchmarkDrawLoop(b *testing.B) {
	benchmarkProgram(b, []byte{
		0xA0, 0x00, // ld I, 0x000
		0xD0, 0x15, // drw V0, V1, 5
		0x70, 0x03, // add V0, 3
		0x12, 0x02, // jp 0x202
	}, 10000)
}

func benchmarkProgram(b *testing.B, program []byte, cycles int) {
	sys, err := New(program, testCallbacks(), true, false)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for i := 0; i < cycles; i++ {
			sys.Step()
		}
	}
}
