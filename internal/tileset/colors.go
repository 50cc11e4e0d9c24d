package tileset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a color id ("#RRGGBB" or "RRGGBB") to a tcell.Color.
func ParseHexColor(id string) (tcell.Color, error) {
	hex := strings.TrimPrefix(id, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("color id %q: want 6 hex digits", id)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("color id %q: %w", id, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

// Color converts a color id to a tcell.Color. Malformed ids fall back to the terminal default.
func Color(id string) tcell.Color {
	color, err := ParseHexColor(id)
	if err != nil {
		return tcell.ColorDefault
	}
	return color
}

// Style builds the cell style for a foreground/background color id pair.
func Style(fg, bg string) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(fg)).Background(Color(bg))
}
