// Package style holds the table of LVGL style properties accepted on widgets
// and style definitions, together with the coercion rule of each property.
// Property names match the LVGL v8 names so the C++ setter can be derived as
// lv_obj_set_style_<name> / lv_style_set_<name>.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-lvglgen/pkg/schema"
)

// Kind classifies how a property value is coerced and rendered.
type Kind string

const (
	KindSize    Kind = "size"
	KindPixels  Kind = "pixels"
	KindInt     Kind = "int"
	KindColor   Kind = "color"
	KindOpacity Kind = "opacity"
	KindEnum    Kind = "enum"
	KindBool    Kind = "bool"
	KindFont    Kind = "font"
)

// Property describes one style key.
type Property struct {
	Name     string
	Kind     Kind
	Validate schema.Validator

	// Prefix and Values list the accepted keywords of KindEnum properties.
	Prefix string
	Values []string
}

// ObjSetter returns the per-object setter name.
func (p Property) ObjSetter() string { return "lv_obj_set_style_" + p.Name }

// StyleSetter returns the lv_style_t setter name.
func (p Property) StyleSetter() string { return "lv_style_set_" + p.Name }

var (
	alignValues = []string{
		"DEFAULT", "TOP_LEFT", "TOP_MID", "TOP_RIGHT", "BOTTOM_LEFT", "BOTTOM_MID", "BOTTOM_RIGHT",
		"LEFT_MID", "RIGHT_MID", "CENTER",
		"OUT_TOP_LEFT", "OUT_TOP_MID", "OUT_TOP_RIGHT", "OUT_BOTTOM_LEFT", "OUT_BOTTOM_MID",
		"OUT_BOTTOM_RIGHT", "OUT_LEFT_TOP", "OUT_LEFT_MID", "OUT_LEFT_BOTTOM", "OUT_RIGHT_TOP",
		"OUT_RIGHT_MID", "OUT_RIGHT_BOTTOM",
	}

	gradDirs    = []string{"NONE", "HOR", "VER"}
	borderSides = []string{"NONE", "BOTTOM", "TOP", "LEFT", "RIGHT", "FULL", "INTERNAL"}
	textAligns  = []string{"AUTO", "LEFT", "CENTER", "RIGHT"}
	textDecors  = []string{"NONE", "UNDERLINE", "STRIKETHROUGH"}
	blendModes  = []string{"NORMAL", "ADDITIVE", "SUBTRACTIVE", "MULTIPLY"}
	baseDirs    = []string{"LTR", "RTL", "AUTO"}
	ditherModes = []string{"NONE", "ORDERED", "ERR_DIFF"}
)

func size(name string) Property    { return Property{Name: name, Kind: KindSize, Validate: schema.SizeValue} }
func pixels(name string) Property  { return Property{Name: name, Kind: KindPixels, Validate: schema.PixelValue} }
func color(name string) Property   { return Property{Name: name, Kind: KindColor, Validate: schema.ColorValue} }
func opacity(name string) Property { return Property{Name: name, Kind: KindOpacity, Validate: schema.Opacity} }
func boolean(name string) Property { return Property{Name: name, Kind: KindBool, Validate: schema.Bool} }

func integer(name string, min, max int) Property {
	return Property{Name: name, Kind: KindInt, Validate: schema.IntRange(min, max)}
}

func enum(name, prefix string, values ...string) Property {
	return Property{Name: name, Kind: KindEnum, Validate: schema.Enum(prefix, values...), Prefix: prefix, Values: values}
}

var table = []Property{
	size("width"), size("min_width"), size("max_width"),
	size("height"), size("min_height"), size("max_height"),
	size("x"), size("y"),
	enum("align", "LV_ALIGN_", alignValues...),
	size("transform_width"), size("transform_height"),
	size("translate_x"), size("translate_y"),
	integer("transform_zoom", 0, 0xFFFF),
	integer("transform_angle", -3600, 3600),
	pixels("transform_pivot_x"), pixels("transform_pivot_y"),

	pixels("pad_top"), pixels("pad_bottom"), pixels("pad_left"), pixels("pad_right"),
	pixels("pad_row"), pixels("pad_column"),

	color("bg_color"), opacity("bg_opa"),
	color("bg_grad_color"), enum("bg_grad_dir", "LV_GRAD_DIR_", gradDirs...),
	integer("bg_main_stop", 0, 255), integer("bg_grad_stop", 0, 255),
	enum("bg_dither_mode", "LV_DITHER_", ditherModes...),
	opacity("bg_img_opa"), color("bg_img_recolor"), opacity("bg_img_recolor_opa"),
	boolean("bg_img_tiled"),

	color("border_color"), opacity("border_opa"), pixels("border_width"),
	enum("border_side", "LV_BORDER_SIDE_", borderSides...), boolean("border_post"),

	pixels("outline_width"), color("outline_color"), opacity("outline_opa"), pixels("outline_pad"),

	pixels("shadow_width"), pixels("shadow_ofs_x"), pixels("shadow_ofs_y"), pixels("shadow_spread"),
	color("shadow_color"), opacity("shadow_opa"),

	opacity("img_opa"), color("img_recolor"), opacity("img_recolor_opa"),

	pixels("line_width"), pixels("line_dash_width"), pixels("line_dash_gap"),
	boolean("line_rounded"), color("line_color"), opacity("line_opa"),

	pixels("arc_width"), boolean("arc_rounded"), color("arc_color"), opacity("arc_opa"),

	color("text_color"), opacity("text_opa"),
	{Name: "text_font", Kind: KindFont, Validate: FontValue},
	pixels("text_letter_space"), pixels("text_line_space"),
	enum("text_decor", "LV_TEXT_DECOR_", textDecors...), enum("text_align", "LV_TEXT_ALIGN_", textAligns...),

	pixels("radius"), boolean("clip_corner"), opacity("opa"),
	integer("anim_time", 0, 0xFFFF), enum("blend_mode", "LV_BLEND_MODE_", blendModes...), enum("base_dir", "LV_BASE_DIR_", baseDirs...),
}

var index = func() map[string]int {
	out := make(map[string]int, len(table))
	for i, prop := range table {
		out[prop.Name] = i
	}
	return out
}()

// Lookup returns the property named name.
func Lookup(name string) (Property, bool) {
	idx, ok := index[name]
	if !ok {
		return Property{}, false
	}
	return table[idx], true
}

// Properties returns the property table in canonical order.
func Properties() []Property {
	return append([]Property(nil), table...)
}

// Names returns the property names in canonical order.
func Names() []string {
	names := make([]string, len(table))
	for i, prop := range table {
		names[i] = prop.Name
	}
	return names
}

// Keys returns optional schema keys for every property, ready to be merged
// into a widget or style-definition schema.
func Keys() []schema.Key {
	keys := make([]schema.Key, len(table))
	for i, prop := range table {
		keys[i] = schema.Optional(prop.Name, prop.Validate)
	}
	return keys
}

// Setting is a normalized property value.
type Setting struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Property returns the table entry of the setting.
func (s Setting) Property() Property {
	prop, _ := Lookup(s.Name)
	return prop
}

// Expr renders the setting value as a C++ expression.
func (s Setting) Expr() string {
	switch v := s.Value.(type) {
	case schema.Size:
		return v.Expr()
	case schema.Color:
		return v.Expr()
	case schema.Keyword:
		return v.Expr()
	case Font:
		return v.Expr()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// Collect extracts the style settings present in a validated mapping, in
// canonical table order so generated output is stable.
func Collect(cfg map[string]any) []Setting {
	var out []Setting
	for _, prop := range table {
		value, ok := cfg[prop.Name]
		if !ok {
			continue
		}
		out = append(out, Setting{Name: prop.Name, Value: value})
	}
	return out
}

// Fonts returns the sorted names of fonts referenced by settings.
func Fonts(settings []Setting) []string {
	seen := make(map[string]struct{})
	for _, s := range settings {
		if f, ok := s.Value.(Font); ok {
			seen[f.Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsStyleKey reports whether key is a style property name.
func IsStyleKey(key string) bool {
	_, ok := index[strings.TrimSpace(key)]
	return ok
}
