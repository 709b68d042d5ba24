// Package schemaexport publishes the GUI configuration format as a JSON
// Schema so editors can offer completion and inline validation. The schema
// describes the wrapped widget form (`- label: {...}`); the flat `type:` form
// accepted by the validator is not described.
package schemaexport

import (
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Title is the schema title.
const Title = "LVGL GUI configuration"

// styled lists the definitions that accept style properties.
var styled = []string{
	"StyleDefinition", "Label", "Checkbox", "Meter", "Arc", "Bar", "Line", "Image",
}

// Reflect builds the JSON Schema of the configuration document.
func Reflect() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	s := r.Reflect(&Document{})
	s.Title = Title
	s.Description = "Widget tree and styles of one GUI component bound to a display."
	s.Version = "http://json-schema.org/draft-07/schema#"

	for _, name := range styled {
		def, ok := s.Definitions[name]
		if !ok || def.Properties == nil {
			continue
		}
		for _, prop := range style.Properties() {
			def.Properties.Set(prop.Name, propertySchema(prop))
		}
	}
	return s
}

// JSON returns the indented schema document.
func JSON() ([]byte, error) {
	return json.MarshalIndent(Reflect(), "", "  ")
}

func propertySchema(p style.Property) *jsonschema.Schema {
	switch p.Kind {
	case style.KindSize:
		return &jsonschema.Schema{
			Description: "pixels, N% or content",
			AnyOf: []*jsonschema.Schema{
				{Type: "integer"},
				{Type: "string", Pattern: `^\s*(-?\d+(px|%)?|content|size_content)\s*$`},
			},
		}
	case style.KindPixels:
		return &jsonschema.Schema{
			Description: "pixels",
			AnyOf: []*jsonschema.Schema{
				{Type: "integer"},
				{Type: "string", Pattern: `^\s*-?\d+(px)?\s*$`},
			},
		}
	case style.KindColor:
		return colorSchema()
	case style.KindOpacity:
		return &jsonschema.Schema{
			Description: "0-255, N%, transp or cover",
			AnyOf: []*jsonschema.Schema{
				{Type: "number"},
				{Type: "string"},
			},
		}
	case style.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case style.KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case style.KindFont:
		return &jsonschema.Schema{Type: "string", Description: "built-in font name, e.g. montserrat_14"}
	case style.KindEnum:
		values := make([]any, 0, 3*len(p.Values))
		for _, v := range p.Values {
			values = append(values, v, strings.ToLower(v), p.Prefix+v)
		}
		return &jsonschema.Schema{
			Type:        "string",
			Description: "one of " + strings.Join(p.Values, ", ") + ", the " + p.Prefix + " prefix is optional",
			Enum:        values,
		}
	}
	return &jsonschema.Schema{}
}

func colorSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "0xRRGGBB, #RRGGBB, #RGB or a colour name",
		AnyOf: []*jsonschema.Schema{
			{Type: "integer"},
			{Type: "string"},
		},
	}
}
