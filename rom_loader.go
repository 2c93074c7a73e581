// rom_loader.go - Redshift ROM image loading

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2025 Zayn Otley
https://github.com/IntuitionAmiga/ExaEngine
License: GPLv3 or later
*/

/*
rom_loader.go - ROM Image Pipeline

A Redshift ROM is a PNG hiding a byte stream in the low bit of every RGB
subpixel (3 bits per pixel, scanline order, LSB first within each byte).
The stream starts with a little-endian u32 payload length and a u32
whose low 16 bits are the expected Fletcher-16 checksum of the payload;
the payload itself is zlib-compressed.

Decompressed, the payload is a little-endian record walk: header ints
and strings, the game name, the EXA count, then per EXA a name, script,
view-mode byte (ignored), bus-mode byte and 100 sprite booleans. Each
EXA spawns into the core host of a fresh Redshift VM.
*/

package main

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"strings"
)

// ------------------------------------------------------------------------------
// Stream Layout
// ------------------------------------------------------------------------------
const (
	ROM_HEADER_BYTES    = 8 // u32 length + u32 checksum
	ROM_BITS_PER_PIXEL  = 3 // one bit per RGB subpixel
	ROM_LOCAL_MODE_FLAG = 1
)

// LoadROM reads a ROM image from disk and returns the seeded VM.
func LoadROM(path string) (*VM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadROMReader(f)
}

// LoadROMReader decodes a ROM image from any reader.
func LoadROMReader(r io.Reader) (*VM, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("rom decode failed: %w", err)
	}

	payload, err := unpackROMStream(img)
	if err != nil {
		return nil, err
	}
	return buildROMVM(newROMReader(payload))
}

// unpackROMStream extracts, verifies and decompresses the hidden byte
// stream.
func unpackROMStream(img image.Image) ([]byte, error) {
	stream := subpixelBits(img)
	if len(stream) < ROM_HEADER_BYTES {
		return nil, fmt.Errorf("rom stream too short")
	}

	length := binary.LittleEndian.Uint32(stream[0:4])
	expected := uint16(binary.LittleEndian.Uint32(stream[4:8]))
	if int(length) > len(stream)-ROM_HEADER_BYTES {
		return nil, fmt.Errorf("rom payload length %d exceeds stream", length)
	}
	compressed := stream[ROM_HEADER_BYTES : ROM_HEADER_BYTES+int(length)]

	if got := fletcher16(compressed); got != expected {
		return nil, fmt.Errorf("rom checksum mismatch: got %04x, want %04x", got, expected)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("rom decompress failed: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("rom decompress failed: %w", err)
	}
	return payload, nil
}

// subpixelBits collects the low bit of every RGB subpixel in scanline
// order, LSB first within each output byte.
func subpixelBits(img image.Image) []byte {
	bounds := img.Bounds()
	var stream []byte
	var this byte
	pos := 0

	push := func(bit uint32) {
		if pos == 8 {
			stream = append(stream, this)
			this = 0
			pos = 0
		}
		if bit == 1 {
			this |= 1 << pos
		}
		pos++
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			push((r >> 8) & 1)
			push((g >> 8) & 1)
			push((b >> 8) & 1)
		}
	}
	if pos == 8 {
		stream = append(stream, this)
	}
	return stream
}

func fletcher16(data []byte) uint16 {
	var sum1, sum2 uint16
	for _, b := range data {
		sum1 = (sum1 + uint16(b)) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum2<<8 | sum1
}

// romReader walks the decompressed record stream with a sticky error.
type romReader struct {
	data []byte
	pos  int
	err  error
}

func newROMReader(data []byte) *romReader {
	return &romReader{data: data}
}

func (r *romReader) readByte() byte {
	if r.err != nil || r.pos >= len(r.data) {
		r.fail()
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *romReader) readBool() bool {
	return r.readByte() == 1
}

func (r *romReader) readInt() int {
	if r.err != nil || r.pos+4 > len(r.data) {
		r.fail()
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4
	return int(v)
}

func (r *romReader) readString() string {
	length := r.readInt()
	if r.err != nil || length < 0 || r.pos+length > len(r.data) {
		r.fail()
		return ""
	}
	s := string(r.data[r.pos : r.pos+length])
	r.pos += length
	return s
}

func (r *romReader) fail() {
	if r.err == nil {
		r.err = fmt.Errorf("rom record stream truncated at offset %d", r.pos)
	}
}

// buildROMVM spawns the decoded EXAs into a fresh Redshift VM.
func buildROMVM(rd *romReader) (*VM, error) {
	vm := NewRedshiftVM()

	rd.readInt()    // unused
	rd.readString() // level id, unused by the VM

	vm.Redshift.GameName = rd.readString()

	rd.readInt() // unused header fields
	rd.readInt()
	rd.readInt()

	exaCount := rd.readInt()
	if rd.err != nil {
		return nil, rd.err
	}

	core := vm.Hosts["core"]
	for i := 0; i < exaCount; i++ {
		rd.readByte() // unused
		name := rd.readString()
		script := rd.readString()
		if !strings.HasSuffix(script, "\n") {
			script += "\n"
		}

		rd.readByte() // view mode, unused
		busMode := rd.readByte()

		var pixels [SPRITE_PIXELS]bool
		for p := 0; p < SPRITE_PIXELS; p++ {
			pixels[p] = rd.readBool()
		}

		if rd.err != nil {
			return nil, rd.err
		}

		e, err := Spawn(vm, core, name, true, script)
		if err != nil {
			return nil, fmt.Errorf("rom exa %q: %w", name, err)
		}
		e.Sprite = SpriteFromPixels(pixels)
		if busMode == ROM_LOCAL_MODE_FLAG {
			e.Mode = MODE_LOCAL
		}
	}

	return vm, rd.err
}
