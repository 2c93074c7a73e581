// exa_sprite.go - 10x10 sprites and the builtin glyph table

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

package main

// ------------------------------------------------------------------------------
// Sprite Geometry
// ------------------------------------------------------------------------------
const (
	SPRITE_SIZE   = 10
	SPRITE_PIXELS = SPRITE_SIZE * SPRITE_SIZE
)

const BUILTIN_SPRITE_COUNT = 40

// Sprite is a 10x10 bit grid, row-major. It is a value type: REPL copies
// the parent's sprite by assignment.
type Sprite struct {
	Pixels [SPRITE_PIXELS]bool
}

func EmptySprite() Sprite {
	return Sprite{}
}

func SpriteFromPixels(pixels [SPRITE_PIXELS]bool) Sprite {
	return Sprite{Pixels: pixels}
}

// SpriteFromShorthand expands run-length shorthand: alternating counts of
// unset and set pixels, starting unset, summing to exactly 100.
func SpriteFromShorthand(shorthand ...int) Sprite {
	total := 0
	for _, n := range shorthand {
		total += n
	}
	if total != SPRITE_PIXELS {
		panic("invalid sprite shorthand, must sum to 100")
	}

	var s Sprite
	idx, value := 0, false
	for _, n := range shorthand {
		for i := 0; i < n; i++ {
			s.Pixels[idx] = value
			idx++
		}
		value = !value
	}
	return s
}

func (s *Sprite) Enable(x, y int) {
	s.Pixels[x+y*SPRITE_SIZE] = true
}

func (s *Sprite) Disable(x, y int) {
	s.Pixels[x+y*SPRITE_SIZE] = false
}

func (s *Sprite) Toggle(x, y int) {
	s.Pixels[x+y*SPRITE_SIZE] = !s.Pixels[x+y*SPRITE_SIZE]
}

// builtinSpriteShorthand holds the 40 builtin glyphs in run-length
// shorthand form: digits 0-9, letters A-Z, a heart, a crosshair and two
// frame pieces. Codes outside the table resolve to the empty sprite.
var builtinSpriteShorthand = [BUILTIN_SPRITE_COUNT][]int{
	0:  nil,
	1:  {24, 1, 8, 1, 1, 1, 6, 1, 3, 1, 5, 1, 3, 1, 4, 7, 3, 1, 5, 1, 3, 1, 5, 1, 12},
	2:  {21, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 6, 13},
	3:  {22, 5, 4, 1, 5, 1, 3, 1, 9, 1, 9, 1, 9, 1, 5, 1, 4, 5, 13},
	4:  {21, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 6, 13},
	5:  {21, 7, 3, 1, 9, 1, 9, 6, 4, 1, 9, 1, 9, 7, 12},
	6:  {21, 7, 3, 1, 9, 1, 9, 6, 4, 1, 9, 1, 9, 1, 18},
	7:  {22, 5, 4, 1, 5, 1, 3, 1, 9, 1, 3, 3, 3, 1, 5, 1, 3, 1, 5, 1, 4, 5, 13},
	8:  {21, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 7, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 12},
	9:  {23, 3, 8, 1, 9, 1, 9, 1, 9, 1, 9, 1, 8, 3, 14},
	10: {27, 1, 9, 1, 9, 1, 9, 1, 9, 1, 3, 1, 5, 1, 4, 5, 13},
	11: {21, 1, 4, 2, 3, 1, 2, 2, 5, 1, 1, 2, 6, 3, 7, 1, 1, 2, 6, 1, 2, 2, 5, 1, 4, 2, 12},
	12: {21, 1, 9, 1, 9, 1, 9, 1, 9, 1, 9, 1, 9, 7, 12},
	13: {21, 1, 5, 1, 3, 2, 3, 2, 3, 1, 1, 1, 1, 1, 1, 1, 3, 1, 2, 1, 2, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 12},
	14: {21, 1, 5, 1, 3, 2, 4, 1, 3, 1, 1, 1, 3, 1, 3, 1, 2, 1, 2, 1, 3, 1, 3, 1, 1, 1, 3, 1, 4, 2, 3, 1, 5, 1, 12},
	15: {22, 5, 4, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 4, 5, 13},
	16: {21, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 6, 4, 1, 9, 1, 9, 1, 18},
	17: {22, 5, 4, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 3, 1, 1, 1, 3, 1, 4, 2, 4, 6, 12},
	18: {21, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 6, 4, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 12},
	19: {22, 5, 4, 1, 5, 1, 3, 1, 10, 5, 10, 1, 3, 1, 5, 1, 4, 5, 13},
	20: {21, 7, 6, 1, 9, 1, 9, 1, 9, 1, 9, 1, 9, 1, 15},
	21: {21, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 4, 5, 13},
	22: {21, 1, 5, 1, 3, 1, 5, 1, 4, 1, 3, 1, 5, 1, 3, 1, 6, 1, 1, 1, 7, 1, 1, 1, 8, 1, 15},
	23: {21, 1, 5, 1, 3, 1, 5, 1, 3, 1, 5, 1, 4, 1, 1, 1, 1, 1, 5, 1, 1, 1, 1, 1, 6, 1, 1, 1, 7, 1, 1, 1, 14},
	24: {21, 1, 5, 1, 4, 1, 3, 1, 6, 1, 1, 1, 8, 1, 8, 1, 1, 1, 6, 1, 3, 1, 4, 1, 5, 1, 12},
	25: {21, 1, 5, 1, 4, 1, 3, 1, 6, 1, 1, 1, 8, 1, 9, 1, 9, 1, 9, 1, 15},
	26: {21, 7, 8, 1, 8, 1, 8, 1, 8, 1, 8, 1, 8, 7, 12},
	27: {22, 5, 4, 1, 4, 2, 3, 1, 3, 1, 1, 1, 3, 1, 2, 1, 2, 1, 3, 1, 1, 1, 3, 1, 3, 2, 4, 1, 4, 5, 13},
	28: {23, 2, 7, 1, 1, 1, 9, 1, 9, 1, 9, 1, 9, 1, 9, 1, 15},
	29: {22, 5, 4, 1, 5, 1, 9, 1, 4, 5, 4, 1, 9, 1, 9, 7, 12},
	30: {22, 5, 4, 1, 5, 1, 9, 1, 6, 3, 10, 1, 3, 1, 5, 1, 4, 5, 13},
	31: {26, 1, 8, 2, 7, 1, 1, 1, 6, 1, 2, 1, 5, 1, 3, 1, 4, 7, 8, 1, 13},
	32: {21, 7, 3, 1, 9, 1, 9, 6, 10, 1, 3, 1, 5, 1, 4, 5, 13},
	33: {22, 5, 4, 1, 5, 1, 3, 1, 9, 6, 4, 1, 5, 1, 3, 1, 5, 1, 4, 5, 13},
	34: {21, 7, 9, 1, 8, 1, 8, 1, 8, 1, 8, 1, 8, 1, 17},
	35: {22, 5, 4, 1, 5, 1, 3, 1, 5, 1, 4, 5, 4, 1, 5, 1, 3, 1, 5, 1, 4, 5, 13},
	36: {22, 5, 4, 1, 5, 1, 3, 1, 5, 1, 4, 6, 9, 1, 3, 1, 5, 1, 4, 5, 13},
	37: {83, 1, 16},
	38: {22, 5, 4, 1, 5, 1, 9, 1, 6, 3, 6, 1, 19, 1, 16},
	39: {23, 1, 9, 1, 9, 1, 9, 1, 9, 1, 19, 1, 16},
}

// BuiltinSprite returns glyph number code, or the empty sprite for codes
// outside the table.
func BuiltinSprite(code int) Sprite {
	if code < 0 || code >= BUILTIN_SPRITE_COUNT {
		return EmptySprite()
	}
	shorthand := builtinSpriteShorthand[code]
	if shorthand == nil {
		return EmptySprite()
	}
	return SpriteFromShorthand(shorthand...)
}
