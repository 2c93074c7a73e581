package main

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// romPayload builds the decompressed record stream for a test ROM.
type romPayload struct {
	buf bytes.Buffer
}

func (p *romPayload) writeByte(b byte) {
	p.buf.WriteByte(b)
}

func (p *romPayload) writeInt(v int) {
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], uint32(int32(v)))
	p.buf.Write(le[:])
}

func (p *romPayload) writeString(s string) {
	p.writeInt(len(s))
	p.buf.WriteString(s)
}

func (p *romPayload) writeSprite(enabled ...int) {
	var pixels [SPRITE_PIXELS]byte
	for _, idx := range enabled {
		pixels[idx] = 1
	}
	p.buf.Write(pixels[:])
}

// encodeROM packs a payload the way the game does: zlib, length +
// Fletcher-16 header, one bit per RGB subpixel, PNG.
func encodeROM(t *testing.T, payload []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("compress: %v", err)
	}
	zw.Close()

	var stream bytes.Buffer
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(compressed.Len()))
	binary.LittleEndian.PutUint32(header[4:8], uint32(fletcher16(compressed.Bytes())))
	stream.Write(header[:])
	stream.Write(compressed.Bytes())

	data := stream.Bytes()
	totalBits := len(data) * 8
	pixelsNeeded := (totalBits + ROM_BITS_PER_PIXEL - 1) / ROM_BITS_PER_PIXEL

	width := 64
	height := (pixelsNeeded + width - 1) / width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	bitAt := func(i int) uint8 {
		if i >= totalBits {
			return 0
		}
		return (data[i/8] >> (i % 8)) & 1
	}

	bit := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: bitAt(bit),
				G: bitAt(bit + 1),
				B: bitAt(bit + 2),
				A: 0xFF,
			})
			bit += ROM_BITS_PER_PIXEL
		}
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return out.Bytes()
}

func goldenPayload() []byte {
	var p romPayload
	p.writeInt(0)
	p.writeString("TEST30")
	p.writeString("GOLDEN IMAGE")
	p.writeInt(0)
	p.writeInt(0)
	p.writeInt(0)
	p.writeInt(2)

	// First exa: global mode, empty sprite, no trailing newline on the
	// script (the loader must append one).
	p.writeByte(0)
	p.writeString("AB")
	p.writeString("COPY 1 X\nNOOP")
	p.writeByte(0)
	p.writeByte(0)
	p.writeSprite()

	// Second exa: local mode, the four corners enabled.
	p.writeByte(0)
	p.writeString("CD")
	p.writeString("NOTE I AM A GOLDEN GOD\nHALT\n")
	p.writeByte(0)
	p.writeByte(1)
	p.writeSprite(0, 9, 90, 99)

	return p.buf.Bytes()
}

func TestLoadROM(t *testing.T) {
	rom := encodeROM(t, goldenPayload())

	vm, err := LoadROMReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	vm.SetShuffle(false)
	vm.Seed(1)

	if vm.Redshift.GameName != "GOLDEN IMAGE" {
		t.Fatalf("game name %q", vm.Redshift.GameName)
	}

	e1 := vm.GetExa("AB")
	e2 := vm.GetExa("CD")
	if e1 == nil || e2 == nil {
		t.Fatalf("expected both exas to spawn")
	}
	if e1.Host.Name != "core" || e2.Host.Name != "core" {
		t.Fatalf("exas should spawn into core")
	}
	if e1.Mode != MODE_GLOBAL {
		t.Fatalf("AB should be in global mode")
	}
	if e2.Mode != MODE_LOCAL {
		t.Fatalf("CD should be in local mode")
	}

	corners := SpriteFromShorthand(0, 1, 8, 1, 80, 1, 8, 1)
	if e2.Sprite != corners {
		t.Fatalf("CD sprite mismatch: %v", e2.Sprite.Pixels)
	}

	vm.RunCycle()
	if e1.registers.x.Value != 1 {
		t.Fatalf("AB should have run COPY 1 X")
	}
	if e2.Err == nil || e2.Err.Class != ERROR_FATAL {
		t.Fatalf("CD should have halted")
	}
}

func TestLoadROMChecksumMismatch(t *testing.T) {
	rom := encodeROM(t, goldenPayload())

	img, err := png.Decode(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Flip one payload bit (well past the 8-byte header).
	nrgba := image.NewNRGBA(img.Bounds())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			nrgba.Set(x, y, img.At(x, y))
		}
	}
	px := nrgba.NRGBAAt(40, 0)
	px.R ^= 1
	nrgba.SetNRGBA(40, 0, px)

	var corrupted bytes.Buffer
	if err := png.Encode(&corrupted, nrgba); err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := LoadROMReader(bytes.NewReader(corrupted.Bytes())); err == nil {
		t.Fatalf("corrupted ROM should fail the checksum")
	}
}

func TestLoadROMGarbage(t *testing.T) {
	if _, err := LoadROMReader(bytes.NewReader([]byte("not a png"))); err == nil {
		t.Fatalf("garbage input should fail")
	}
}

func TestFletcher16(t *testing.T) {
	// Classic reference values.
	if got := fletcher16([]byte("abcde")); got != 0xC8F0 {
		t.Fatalf("fletcher16(abcde) = %04x", got)
	}
	if got := fletcher16([]byte("abcdef")); got != 0x2057 {
		t.Fatalf("fletcher16(abcdef) = %04x", got)
	}
}
