package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an opaque RGB color written as "#rgb" or "#rrggbb" in config files.
type Color struct {
	R, G, B uint8
}

// Hex returns a Color from a 0xRRGGBB literal, the notation scene colors are usually quoted in.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ParseColor parses #RGB or #RRGGBB.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}
	hex := s[1:]
	var digits [6]uint8
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("color %q: bad hex digit %q", s, hex[i])
		}
		if i < len(digits) {
			digits[i] = d
		}
	}
	switch len(hex) {
	case 3:
		return Color{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17}, nil
	case 6:
		return Color{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
		}, nil
	}
	return Color{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Floats returns the color as normalized RGB, the form shader uniforms take.
func (c Color) Floats() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	return c.UnmarshalText([]byte(value.Value))
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
