package rosette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// Color is a packed 0xRRGGBB color, the form the control panel hands over.
//
// Color marshals as "#rrggbb" text. UnmarshalText also accepts "0xrrggbb"
// and plain decimal integers, so TOML and YAML files may spell colors
// either way.
type Color uint32

// Common colors.
const (
	Black Color = 0x000000
	White Color = 0xFFFFFF
)

// RGB returns the 8-bit channels of c.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// ToRGBA converts c to an opaque gg color.
func (c Color) ToRGBA() gg.RGBA {
	r, g, b := c.RGB()
	return gg.RGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// String returns the "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor parses "#rrggbb", "0xrrggbb" or a decimal integer.
// Underscore digit separators are ignored.
func ParseColor(s string) (Color, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	if s == "" {
		return 0, &ParameterDomainError{Field: "color", Value: s, Reason: "empty color"}
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil || v > 0xFFFFFF {
		return 0, &ParameterDomainError{Field: "color", Value: s, Reason: "not a packed RGB value"}
	}
	return Color(v), nil
}
