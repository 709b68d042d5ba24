package schema

import (
	"fmt"
	"strings"
)

// LVGL v8 coordinate encoding. Special coordinates (percentages and
// LV_SIZE_CONTENT) carry the spec bit above the 13-bit pixel range.
const (
	CoordTypeShift = 13
	CoordTypeSpec  = 1 << CoordTypeShift
	CoordMax       = CoordTypeSpec - 1
	PctPosMax      = 1000
	sizeContent    = 2001
)

// Point is an integer x,y pair.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Size is either a pixel value, a percentage of the parent or the
// LV_SIZE_CONTENT marker. The encodings are mutually exclusive.
type Size struct {
	Pixels    int  `json:"pixels,omitempty"`
	Percent   int  `json:"percent,omitempty"`
	IsPercent bool `json:"isPercent,omitempty"`
	Content   bool `json:"content,omitempty"`
}

// Px builds a pixel Size.
func Px(v int) Size { return Size{Pixels: v} }

// Pct builds a percentage Size.
func Pct(v int) Size { return Size{Percent: v, IsPercent: true} }

// Coord returns the integer LVGL lv_coord_t encoding of the size.
func (s Size) Coord() int {
	switch {
	case s.Content:
		return CoordTypeSpec | sizeContent
	case s.IsPercent:
		if s.Percent < 0 {
			return CoordTypeSpec | (PctPosMax - s.Percent)
		}
		return CoordTypeSpec | s.Percent
	default:
		return s.Pixels
	}
}

// Expr renders the size as a C++ expression.
func (s Size) Expr() string {
	switch {
	case s.Content:
		return "LV_SIZE_CONTENT"
	case s.IsPercent:
		return fmt.Sprintf("lv_pct(%d)", s.Percent)
	default:
		return fmt.Sprintf("%d", s.Pixels)
	}
}

func (s Size) String() string {
	switch {
	case s.Content:
		return "content"
	case s.IsPercent:
		return fmt.Sprintf("%d%%", s.Percent)
	default:
		return fmt.Sprintf("%dpx", s.Pixels)
	}
}

// Color is a 24-bit RGB colour.
type Color struct {
	RGB uint32 `json:"rgb"`
}

// Expr renders the colour as a C++ expression.
func (c Color) Expr() string {
	return fmt.Sprintf("lv_color_hex(0x%06X)", c.RGB&0xFFFFFF)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", c.RGB&0xFFFFFF)
}

// Keyword is a normalized enum value such as LV_ALIGN_CENTER.
type Keyword string

// Expr renders the keyword as a C++ expression.
func (k Keyword) Expr() string { return string(k) }

// Short returns the keyword without its constant prefix, lower-cased.
func (k Keyword) Short(prefix string) string {
	return strings.ToLower(strings.TrimPrefix(string(k), prefix))
}
