package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Validator coerces a raw decoded YAML value into its normalized form. The
// returned error should not carry a path; schemas add it.
type Validator func(value any) (any, error)

var (
	positionPattern   = regexp.MustCompile(`^\s*(-?[0-9]+)\s*,\s*(-?[0-9]+)\s*$`)
	dimensionsPattern = regexp.MustCompile(`^\s*([0-9]+)\s*[xX,]\s*([0-9]+)\s*$`)
	identPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	hexColorPattern   = regexp.MustCompile(`^(?:0[xX]|#)([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)
)

var reservedIdentifiers = map[string]struct{}{
	"auto": {}, "bool": {}, "break": {}, "case": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "delete": {}, "do": {}, "double": {}, "else": {}, "enum": {},
	"extern": {}, "false": {}, "float": {}, "for": {}, "if": {}, "int": {}, "long": {},
	"namespace": {}, "new": {}, "nullptr": {}, "private": {}, "public": {}, "return": {},
	"short": {}, "signed": {}, "sizeof": {}, "static": {}, "struct": {}, "switch": {},
	"template": {}, "this": {}, "true": {}, "typedef": {}, "union": {}, "unsigned": {},
	"using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
	"App": {}, "esphome": {}, "lv_scr_act": {},
}

// NamedColors lists the colour keywords accepted in place of hex values.
var NamedColors = map[string]uint32{
	"black":   0x000000,
	"white":   0xFFFFFF,
	"red":     0xFF0000,
	"green":   0x00FF00,
	"blue":    0x0000FF,
	"yellow":  0xFFFF00,
	"cyan":    0x00FFFF,
	"magenta": 0xFF00FF,
	"gray":    0x808080,
	"grey":    0x808080,
	"silver":  0xC0C0C0,
	"orange":  0xFFA500,
	"purple":  0x800080,
	"navy":    0x000080,
	"teal":    0x008080,
	"maroon":  0x800000,
	"olive":   0x808000,
	"lime":    0x32CD32,
}

// Any accepts every value unchanged.
func Any(value any) (any, error) {
	return value, nil
}

// String accepts strings and scalar numbers. Booleans, mappings and lists are
// rejected so that a missing quote does not silently turn into "true".
func String(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, uint64:
		return fmt.Sprintf("%d", v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return nil, Errorf("string value is required")
	default:
		return nil, Errorf("expected a string, got %s", describe(value))
	}
}

// NonEmptyString is String that rejects blank input.
func NonEmptyString(value any) (any, error) {
	out, err := String(value)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.(string)) == "" {
		return nil, Errorf("value must not be empty")
	}
	return out, nil
}

// Bool accepts YAML booleans and the usual on/off spellings.
func Bool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "enable", "enabled":
			return true, nil
		case "false", "no", "off", "disable", "disabled":
			return false, nil
		}
	}
	return nil, Errorf("expected a boolean, got %s", describe(value))
}

// Int accepts integers, integral floats and numeric strings.
func Int(value any) (any, error) {
	n, err := toInt(value)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// IntRange returns an Int validator bounded to [lo, hi].
func IntRange(lo, hi int) Validator {
	return func(value any) (any, error) {
		n, err := toInt(value)
		if err != nil {
			return nil, err
		}
		if n < lo || n > hi {
			return nil, Errorf("value %d is out of range [%d, %d]", n, lo, hi)
		}
		return n, nil
	}
}

// PositiveInt accepts integers greater than zero.
func PositiveInt(value any) (any, error) {
	n, err := toInt(value)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, Errorf("value must be greater than zero, got %d", n)
	}
	return n, nil
}

// Float accepts numbers and numeric strings.
func Float(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, Errorf("expected a number, got %q", v)
		}
		return f, nil
	}
	return nil, Errorf("expected a number, got %s", describe(value))
}

// Position parses "x,y" strings or two-element lists into a Point. Both
// coordinates must lie within [-CoordMax, CoordMax].
func Position(value any) (any, error) {
	var x, y int
	switch v := value.(type) {
	case string:
		m := positionPattern.FindStringSubmatch(v)
		if m == nil {
			return nil, Errorf("position requires x,y integers, got %q", v)
		}
		var errX, errY error
		x, errX = strconv.Atoi(m[1])
		y, errY = strconv.Atoi(m[2])
		if errX != nil || errY != nil {
			return nil, Errorf("position requires x,y integers, got %q", v)
		}
	case []any:
		if len(v) != 2 {
			return nil, Errorf("position requires x,y integers, got %d values", len(v))
		}
		var errX, errY error
		x, errX = toInt(v[0])
		y, errY = toInt(v[1])
		if errX != nil || errY != nil {
			return nil, Errorf("position requires x,y integers, got %v", v)
		}
	default:
		return nil, Errorf("position requires x,y integers, got %s", describe(value))
	}
	if !inCoordRange(x, -CoordMax) || !inCoordRange(y, -CoordMax) {
		return nil, Errorf("position %d,%d is out of range [%d, %d]", x, y, -CoordMax, CoordMax)
	}
	return Point{X: x, Y: y}, nil
}

// Dimensions parses "WxH" strings or two-element lists. Both values must be
// within [1, CoordMax].
func Dimensions(value any) (any, error) {
	var w, h int
	switch v := value.(type) {
	case string:
		m := dimensionsPattern.FindStringSubmatch(v)
		if m == nil {
			return nil, Errorf("dimensions require WIDTHxHEIGHT, got %q", v)
		}
		var errW, errH error
		w, errW = strconv.Atoi(m[1])
		h, errH = strconv.Atoi(m[2])
		if errW != nil || errH != nil {
			return nil, Errorf("dimensions require WIDTHxHEIGHT, got %q", v)
		}
	case []any:
		if len(v) != 2 {
			return nil, Errorf("dimensions require width and height, got %d values", len(v))
		}
		var errW, errH error
		w, errW = toInt(v[0])
		h, errH = toInt(v[1])
		if errW != nil || errH != nil {
			return nil, Errorf("dimensions require integer width and height, got %v", v)
		}
	default:
		return nil, Errorf("dimensions require WIDTHxHEIGHT, got %s", describe(value))
	}
	if w <= 0 || h <= 0 {
		return nil, Errorf("dimensions must be greater than zero, got %dx%d", w, h)
	}
	if !inCoordRange(w, 1) || !inCoordRange(h, 1) {
		return nil, Errorf("dimensions %dx%d are out of range [1, %d]", w, h, CoordMax)
	}
	return Point{X: w, Y: h}, nil
}

func inCoordRange(n, lo int) bool {
	return n >= lo && n <= CoordMax
}

// SizeValue parses a pixel or percentage size. Integers and "Npx" are pixels,
// "N%" is a percentage and "content" maps to LV_SIZE_CONTENT.
func SizeValue(value any) (any, error) {
	switch v := value.(type) {
	case int, int64, uint64, float64:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		return pixels(n)
	case string:
		raw := strings.ToLower(strings.TrimSpace(v))
		switch {
		case raw == "content" || raw == "size_content":
			return Size{Content: true}, nil
		case strings.HasSuffix(raw, "%"):
			p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(raw, "%")), 64)
			if err != nil {
				return nil, Errorf("malformed percentage %q", v)
			}
			rounded := int(math.Round(p))
			if rounded < -PctPosMax || rounded > PctPosMax {
				return nil, Errorf("percentage %q is out of range [-%d%%, %d%%]", v, PctPosMax, PctPosMax)
			}
			return Pct(rounded), nil
		case strings.HasSuffix(raw, "px"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(raw, "px")))
			if err != nil {
				return nil, Errorf("malformed pixel size %q", v)
			}
			return pixels(n)
		default:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, Errorf("size must be pixels or a percentage, got %q", v)
			}
			return pixels(n)
		}
	}
	return nil, Errorf("size must be pixels or a percentage, got %s", describe(value))
}

// PixelValue is SizeValue restricted to pixel encodings.
func PixelValue(value any) (any, error) {
	out, err := SizeValue(value)
	if err != nil {
		return nil, err
	}
	size := out.(Size)
	if size.IsPercent || size.Content {
		return nil, Errorf("value must be given in pixels, got %s", size)
	}
	return size.Pixels, nil
}

func pixels(n int) (any, error) {
	if n < -CoordMax || n > CoordMax {
		return nil, Errorf("pixel value %d is out of range [-%d, %d]", n, CoordMax, CoordMax)
	}
	return Px(n), nil
}

// ColorValue accepts 0xRRGGBB, #RRGGBB, #RGB, integers and named colours.
func ColorValue(value any) (any, error) {
	switch v := value.(type) {
	case int, int64, uint64:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 0xFFFFFF {
			return nil, Errorf("colour value 0x%X is out of range", n)
		}
		return Color{RGB: uint32(n)}, nil
	case string:
		raw := strings.TrimSpace(v)
		if rgb, ok := NamedColors[strings.ToLower(raw)]; ok {
			return Color{RGB: rgb}, nil
		}
		m := hexColorPattern.FindStringSubmatch(raw)
		if m == nil {
			return nil, Errorf("invalid colour %q, expected 0xRRGGBB, #RRGGBB or a colour name", v)
		}
		digits := m[1]
		if len(digits) == 3 {
			digits = strings.Repeat(digits[0:1], 2) + strings.Repeat(digits[1:2], 2) + strings.Repeat(digits[2:3], 2)
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, Errorf("invalid colour %q", v)
		}
		return Color{RGB: uint32(n)}, nil
	}
	return nil, Errorf("invalid colour %s", describe(value))
}

// Opacity normalizes transp/cover, percentages, 0..255 integers and 0..1
// floats into the 0..255 LVGL opacity range.
func Opacity(value any) (any, error) {
	switch v := value.(type) {
	case int, int64, uint64:
		n, _ := toInt(v)
		if n < 0 || n > 255 {
			return nil, Errorf("opacity %d is out of range [0, 255]", n)
		}
		return n, nil
	case float64:
		if v < 0 || v > 1 {
			return nil, Errorf("opacity %v is out of range [0.0, 1.0]", v)
		}
		return int(v * 255), nil
	case string:
		raw := strings.ToLower(strings.TrimSpace(v))
		switch raw {
		case "transp", "transparent":
			return 0, nil
		case "cover":
			return 255, nil
		}
		if strings.HasSuffix(raw, "%") {
			p, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
			if err != nil {
				return nil, Errorf("malformed percentage %q", v)
			}
			if p < 0 || p > 100 {
				return nil, Errorf("opacity %q is out of range [0%%, 100%%]", v)
			}
			return int(p) * 255 / 100, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, Errorf("invalid opacity %q", v)
		}
		return Opacity(n)
	}
	return nil, Errorf("invalid opacity %s", describe(value))
}

// Enum accepts one of values, case-insensitively and with or without prefix,
// and returns the prefixed upper-case Keyword.
func Enum(prefix string, values ...string) Validator {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[strings.ToUpper(value)] = struct{}{}
	}
	return func(value any) (any, error) {
		raw, ok := value.(string)
		if !ok {
			return nil, Errorf("expected one of %s, got %s", enumList(values), describe(value))
		}
		key := strings.ToUpper(strings.TrimSpace(raw))
		key = strings.TrimPrefix(key, prefix)
		if _, ok := allowed[key]; !ok {
			return nil, Errorf("unknown value %q, expected one of %s", raw, enumList(values))
		}
		return Keyword(prefix + key), nil
	}
}

// OneOf accepts one of the literal lower-case values and returns it as a
// string.
func OneOf(values ...string) Validator {
	return func(value any) (any, error) {
		raw, ok := value.(string)
		if !ok {
			return nil, Errorf("expected one of %s, got %s", enumList(values), describe(value))
		}
		key := strings.ToLower(strings.TrimSpace(raw))
		for _, candidate := range values {
			if key == candidate {
				return candidate, nil
			}
		}
		return nil, Errorf("unknown value %q, expected one of %s", raw, enumList(values))
	}
}

// Identifier accepts C++ identifiers that do not collide with keywords or
// host-reserved names.
func Identifier(value any) (any, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, Errorf("id must be a string, got %s", describe(value))
	}
	id := strings.TrimSpace(raw)
	if !identPattern.MatchString(id) {
		return nil, Errorf("invalid id %q, ids may contain letters, digits and underscores and must not start with a digit", raw)
	}
	if _, reserved := reservedIdentifiers[id]; reserved {
		return nil, Errorf("id %q is a reserved word", id)
	}
	return id, nil
}

// List validates every item of a sequence.
func List(item Validator) Validator {
	return func(value any) (any, error) {
		items, ok := value.([]any)
		if !ok {
			return nil, Errorf("expected a list, got %s", describe(value))
		}
		return validateItems(items, item)
	}
}

// EnsureList wraps a single value into a one-element list before validating
// each item.
func EnsureList(item Validator) Validator {
	return func(value any) (any, error) {
		if value == nil {
			return []any{}, nil
		}
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}
		return validateItems(items, item)
	}
}

func validateItems(items []any, item Validator) (any, error) {
	out := make([]any, 0, len(items))
	var errs Errors
	for idx, raw := range items {
		v, err := item(raw)
		if err != nil {
			errs = append(errs, Flatten(Prefix(err, Index(idx)))...)
			continue
		}
		out = append(out, v)
	}
	if err := join(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// All chains validators, feeding each output into the next.
func All(validators ...Validator) Validator {
	return func(value any) (any, error) {
		current := value
		for _, validate := range validators {
			next, err := validate(current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, Errorf("integer %d is too large", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, Errorf("expected an integer, got %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, Errorf("expected an integer, got %q", v)
		}
		return n, nil
	}
	return 0, Errorf("expected an integer, got %s", describe(value))
}

func enumList(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	lowered := make([]string, len(sorted))
	for i, v := range sorted {
		lowered[i] = strings.ToLower(v)
	}
	return strings.Join(lowered, ", ")
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "nothing"
	case map[string]any:
		return "a mapping"
	case []any:
		return "a list"
	case bool:
		return fmt.Sprintf("boolean %t", v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
