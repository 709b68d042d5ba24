package schema

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPosition_ValidStrings(t *testing.T) {
	for _, tc := range []struct {
		x, y int
	}{{0, 0}, {10, 20}, {-5, 7}, {479, 319}, {1, -1}} {
		for _, format := range []string{"%d,%d", "%d, %d", " %d ,%d "} {
			raw := fmt.Sprintf(format, tc.x, tc.y)
			got, err := Position(raw)
			if err != nil {
				t.Fatalf("Position(%q): unexpected error %v", raw, err)
			}
			want := Point{X: tc.x, Y: tc.y}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Position(%q) mismatch (-want +got):\n%s", raw, diff)
			}
		}
	}
}

func TestPosition_List(t *testing.T) {
	got, err := Position([]any{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Point{X: 3, Y: 4}) {
		t.Fatalf("expected 3,4 got %v", got)
	}
}

func TestPosition_Malformed(t *testing.T) {
	for _, raw := range []any{"", "10", "10,", ",10", "a,b", "1,2,3", "1.5,2", "10;20", []any{1}, []any{1, "x"}, 12, true, nil} {
		if _, err := Position(raw); err == nil {
			t.Fatalf("Position(%#v): expected error", raw)
		} else if !strings.Contains(err.Error(), "position requires x,y integers") {
			t.Fatalf("Position(%#v): unexpected message %q", raw, err)
		}
	}
}

func TestPosition_OutOfRange(t *testing.T) {
	for _, raw := range []any{"99999999999999999999,1", "1,-99999999999999999999", "100000,0", "0,8192", []any{-8192, 0}, []any{0, float64(1e30)}} {
		if got, err := Position(raw); err == nil {
			t.Fatalf("Position(%#v): expected error, got %v", raw, got)
		}
	}
	for _, raw := range []any{"8191,-8191", []any{-8191, 8191}} {
		if _, err := Position(raw); err != nil {
			t.Fatalf("Position(%#v): unexpected error %v", raw, err)
		}
	}
}

func TestDimensions_OutOfRange(t *testing.T) {
	for _, raw := range []any{"50000x10", "10x8192", "99999999999999999999x1", []any{8192, 1}} {
		if got, err := Dimensions(raw); err == nil {
			t.Fatalf("Dimensions(%#v): expected error, got %v", raw, got)
		}
	}
	if _, err := Dimensions("8191x8191"); err != nil {
		t.Fatalf("upper bound: %v", err)
	}
}

func TestDimensions(t *testing.T) {
	got, err := Dimensions("120x40")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Point{X: 120, Y: 40}) {
		t.Fatalf("expected 120x40 got %v", got)
	}
	if _, err := Dimensions([]any{64, 64}); err != nil {
		t.Fatalf("list form: %v", err)
	}
	for _, raw := range []any{"0x10", "10x0", "abc", []any{1, 2, 3}, 5} {
		if _, err := Dimensions(raw); err == nil {
			t.Fatalf("Dimensions(%#v): expected error", raw)
		}
	}
}

func TestSizeValue_PercentEncoding(t *testing.T) {
	for p := -PctPosMax; p <= PctPosMax; p += 25 {
		raw := fmt.Sprintf("%d%%", p)
		got, err := SizeValue(raw)
		if err != nil {
			t.Fatalf("SizeValue(%q): %v", raw, err)
		}
		size := got.(Size)
		if !size.IsPercent || size.Percent != p {
			t.Fatalf("SizeValue(%q) = %+v", raw, size)
		}
		want := CoordTypeSpec | p
		if p < 0 {
			want = CoordTypeSpec | (PctPosMax - p)
		}
		if size.Coord() != want {
			t.Fatalf("Coord(%q) = %d, want %d", raw, size.Coord(), want)
		}
		if size.Coord()&CoordTypeSpec == 0 {
			t.Fatalf("Coord(%q) lost the spec bit", raw)
		}
	}
}

func TestSizeValue_PixelsAndContent(t *testing.T) {
	cases := map[string]struct {
		in   any
		want Size
		expr string
	}{
		"int":     {in: 42, want: Px(42), expr: "42"},
		"px":      {in: "42px", want: Px(42), expr: "42"},
		"numeric": {in: "17", want: Px(17), expr: "17"},
		"pct":     {in: "50%", want: Pct(50), expr: "lv_pct(50)"},
		"content": {in: "content", want: Size{Content: true}, expr: "LV_SIZE_CONTENT"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := SizeValue(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
			if expr := got.(Size).Expr(); expr != tc.expr {
				t.Fatalf("expr %q, want %q", expr, tc.expr)
			}
		})
	}
	for _, raw := range []any{"abc%", "1001%", "x px", 9000, true} {
		if _, err := SizeValue(raw); err == nil {
			t.Fatalf("SizeValue(%#v): expected error", raw)
		}
	}
}

func TestPixelValue_RejectsPercent(t *testing.T) {
	if _, err := PixelValue("10%"); err == nil {
		t.Fatalf("expected percentage to be rejected")
	}
	got, err := PixelValue(8)
	if err != nil || got != 8 {
		t.Fatalf("PixelValue(8) = %v, %v", got, err)
	}
}

func TestColorValue(t *testing.T) {
	cases := map[string]uint32{
		"0xFF8800": 0xFF8800,
		"#00ff00":  0x00FF00,
		"#abc":     0xAABBCC,
		"white":    0xFFFFFF,
		"Navy":     0x000080,
	}
	for raw, want := range cases {
		got, err := ColorValue(raw)
		if err != nil {
			t.Fatalf("ColorValue(%q): %v", raw, err)
		}
		if got.(Color).RGB != want {
			t.Fatalf("ColorValue(%q) = %06X, want %06X", raw, got.(Color).RGB, want)
		}
	}
	c, _ := ColorValue(0x123456)
	if expr := c.(Color).Expr(); expr != "lv_color_hex(0x123456)" {
		t.Fatalf("unexpected expr %q", expr)
	}
	for _, raw := range []any{"0xGG0000", "#12345", "blurple", -1, 0x1000000} {
		if _, err := ColorValue(raw); err == nil {
			t.Fatalf("ColorValue(%#v): expected error", raw)
		}
	}
}

func TestOpacity(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{"transp", 0},
		{"cover", 255},
		{"50%", 127},
		{"100%", 255},
		{128, 128},
		{0.5, 127},
		{"200", 200},
	}
	for _, tc := range cases {
		got, err := Opacity(tc.in)
		if err != nil {
			t.Fatalf("Opacity(%#v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Opacity(%#v) = %v, want %d", tc.in, got, tc.want)
		}
	}
	for _, raw := range []any{"150%", 256, -1, 1.5, "half"} {
		if _, err := Opacity(raw); err == nil {
			t.Fatalf("Opacity(%#v): expected error", raw)
		}
	}
}

func TestEnum(t *testing.T) {
	align := Enum("LV_ALIGN_", "CENTER", "TOP_LEFT")
	for _, raw := range []string{"center", "CENTER", "LV_ALIGN_CENTER", " Center "} {
		got, err := align(raw)
		if err != nil {
			t.Fatalf("Enum(%q): %v", raw, err)
		}
		if got != Keyword("LV_ALIGN_CENTER") {
			t.Fatalf("Enum(%q) = %v", raw, got)
		}
	}
	_, err := align("middle")
	if err == nil || !strings.Contains(err.Error(), "center, top_left") {
		t.Fatalf("expected enum listing, got %v", err)
	}
	if _, err := align(3); err == nil {
		t.Fatalf("expected non-string to fail")
	}
}

func TestIdentifier(t *testing.T) {
	for _, raw := range []string{"label_1", "_x", "Main"} {
		if _, err := Identifier(raw); err != nil {
			t.Fatalf("Identifier(%q): %v", raw, err)
		}
	}
	for _, raw := range []any{"1abc", "has-dash", "", "new", "App", 5} {
		if _, err := Identifier(raw); err == nil {
			t.Fatalf("Identifier(%#v): expected error", raw)
		}
	}
}

func TestInts(t *testing.T) {
	v := IntRange(0, 10)
	if got, err := v("7"); err != nil || got != 7 {
		t.Fatalf("IntRange string: %v %v", got, err)
	}
	if _, err := v(11); err == nil {
		t.Fatalf("expected range error")
	}
	if _, err := Int(1.5); err == nil {
		t.Fatalf("expected fractional value to fail")
	}
	if got, err := Int(3.0); err != nil || got != 3 {
		t.Fatalf("integral float: %v %v", got, err)
	}
	if _, err := PositiveInt(0); err == nil {
		t.Fatalf("expected zero to fail")
	}
}

func TestScalars(t *testing.T) {
	if got, _ := String(12); got != "12" {
		t.Fatalf("String(12) = %v", got)
	}
	if _, err := String(true); err == nil {
		t.Fatalf("expected boolean to be rejected")
	}
	if _, err := NonEmptyString("  "); err == nil {
		t.Fatalf("expected blank string to be rejected")
	}
	if got, _ := Bool("yes"); got != true {
		t.Fatalf("Bool(yes) = %v", got)
	}
	if _, err := Bool("maybe"); err == nil {
		t.Fatalf("expected maybe to fail")
	}
	if got, _ := Float("2.5"); got != 2.5 {
		t.Fatalf("Float = %v", got)
	}
}

func TestEnsureList_PrefixesIndex(t *testing.T) {
	v := EnsureList(Identifier)
	got, err := v("single")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any{"single"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = v([]any{"ok", "1bad"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.PathString() != "[1]" {
		t.Fatalf("unexpected path %q", verr.PathString())
	}
}
