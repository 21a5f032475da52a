package tw

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is one of the 16 console colors.
// Values follow the classic console attribute order so that a color fits in
// a nibble of a packed attribute.
type Color uint8

const (
	Black Color = iota
	DarkBlue
	DarkGreen
	DarkCyan
	DarkRed
	DarkMagenta
	DarkYellow
	Gray
	DarkGray
	Blue
	Green
	Cyan
	Red
	Magenta
	Yellow
	White
)

var colorNames = [...]string{
	"black", "darkblue", "darkgreen", "darkcyan",
	"darkred", "darkmagenta", "darkyellow", "gray",
	"darkgray", "blue", "green", "cyan",
	"red", "magenta", "yellow", "white",
}

// Reference RGB values used when mapping arbitrary hex colors onto the palette.
var colorRGB = [...]string{
	"#000000", "#000080", "#008000", "#008080",
	"#800000", "#800080", "#808000", "#c0c0c0",
	"#808080", "#0000ff", "#00ff00", "#00ffff",
	"#ff0000", "#ff00ff", "#ffff00", "#ffffff",
}

// String returns the palette name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Nearest returns the palette color closest to c in CIE-Lab space.
func Nearest(c colorful.Color) Color {
	best := Black
	bestDist := -1.0
	for i, hex := range colorRGB {
		ref, _ := colorful.Hex(hex)
		d := c.DistanceLab(ref)
		if bestDist < 0 || d < bestDist {
			best = Color(i)
			bestDist = d
		}
	}
	return best
}

// ParseHex maps a #rrggbb (or #rgb) string onto the nearest palette color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Nearest(c), nil
}

// PartialStyle represents a partial style that can be merged.
// Used in the class map for individual utility class definitions.
type PartialStyle struct {
	Foreground *Color
	Background *Color
}

// ThemeConfig holds the consumer's theme configuration.
// This is registered via SetConfig() at app startup.
type ThemeConfig struct {
	// Aliases adds extra color names ("accent", "muted") usable in
	// text-* and bg-* classes.
	Aliases map[string]Color
}

// registeredConfig holds the consumer's theme configuration.
// If nil, only the 16 palette names are known.
var registeredConfig *ThemeConfig

// classMap is rebuilt whenever the configuration changes.
var classMap = buildClassMap(nil)

// SetConfig registers the consumer's theme configuration.
// This should be called at app startup before any parsing occurs.
func SetConfig(config ThemeConfig) {
	registeredConfig = &config
	classMap = buildClassMap(config.Aliases)
}

// ResetConfig drops any registered configuration.
func ResetConfig() {
	registeredConfig = nil
	classMap = buildClassMap(nil)
}

// GetClassMap returns the class map for the current configuration.
func GetClassMap() map[string]PartialStyle {
	return classMap
}

// ColorByName resolves a palette name or a registered alias.
func ColorByName(name string) (Color, bool) {
	name = strings.ToLower(name)
	if registeredConfig != nil {
		if c, ok := registeredConfig.Aliases[name]; ok {
			return c, true
		}
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return Black, false
}

func buildClassMap(aliases map[string]Color) map[string]PartialStyle {
	m := make(map[string]PartialStyle, 2*(len(colorNames)+len(aliases)))
	add := func(name string, c Color) {
		fg, bg := c, c
		m["text-"+name] = PartialStyle{Foreground: &fg}
		m["bg-"+name] = PartialStyle{Background: &bg}
	}
	for i, n := range colorNames {
		add(n, Color(i))
	}
	for n, c := range aliases {
		add(strings.ToLower(n), c)
	}
	return m
}
