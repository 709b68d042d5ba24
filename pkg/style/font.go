package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-lvglgen/pkg/schema"
)

var builtinFontPattern = regexp.MustCompile(`^(montserrat_(8|10|12|14|16|18|20|22|24|26|28|30|32|34|36|38|40|42|44|46|48)|montserrat_12_subpx|montserrat_28_compressed|dejavu_16_persian_hebrew|simsun_16_cjk|unscii_8|unscii_16)$`)

// Font references either an LVGL built-in font or a font declared by the
// host under the given id.
type Font struct {
	Name    string `json:"name"`
	Builtin bool   `json:"builtin"`
}

// Expr renders a pointer to the font.
func (f Font) Expr() string {
	if f.Builtin {
		return "&lv_font_" + f.Name
	}
	return f.Name
}

// ConfMacro returns the lv_conf.h switch that compiles the built-in font in.
func (f Font) ConfMacro() string {
	if !f.Builtin {
		return ""
	}
	return "LV_FONT_" + strings.ToUpper(f.Name)
}

// FontValue accepts built-in font names (montserrat_14, unscii_8, ...) and
// identifiers of host-provided fonts.
func FontValue(value any) (any, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, schema.Errorf("font must be a name, got %v", value)
	}
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, "lv_font_")
	if builtinFontPattern.MatchString(name) {
		return Font{Name: name, Builtin: true}, nil
	}
	if strings.HasPrefix(name, "montserrat_") {
		return nil, schema.Errorf("montserrat font %q is not available, sizes 8 to 48 in steps of 2 are built in", raw)
	}
	id, err := schema.Identifier(strings.TrimSpace(raw))
	if err != nil {
		return nil, schema.Errorf("font %q is neither a built-in font nor a valid font id", raw)
	}
	return Font{Name: fmt.Sprint(id)}, nil
}

// DefaultFont is compiled into every build and used as LV_FONT_DEFAULT.
var DefaultFont = Font{Name: "montserrat_14", Builtin: true}
