package charts

import (
	"encoding/json"
	"fmt"
	"math"
)

// RGB is a 24-bit colour. It marshals to JSON as "#rrggbb".
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Hex() + `"`), nil
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

const (
	goldenAngle = 137.50776405003785
	baseHue     = 210.0
	saturation  = 0.65
	lightness   = 0.55
)

// ColorAt returns the palette colour for position i. Successive hues are one
// golden angle apart so neighbouring slices stay distinguishable.
func ColorAt(i int) RGB {
	if i < 0 {
		i = -i
	}
	hue := math.Mod(baseHue+float64(i)*goldenAngle, 360)
	return hslToRGB(hue, saturation, lightness)
}

// Palette returns the first n palette colours.
func Palette(n int) []RGB {
	if n <= 0 {
		return nil
	}
	out := make([]RGB, n)
	for i := range out {
		out[i] = ColorAt(i)
	}
	return out
}

func hslToRGB(h, s, l float64) RGB {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return RGB{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
