package schemaexport

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/validate"
)

func propertyNames(t *testing.T, s *jsonschema.Schema) []string {
	t.Helper()
	if s == nil || s.Properties == nil {
		t.Fatal("schema has no properties")
	}
	var out []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	sort.Strings(out)
	return out
}

func sorted(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

func definition(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	def, ok := s.Definitions[name]
	if !ok {
		t.Fatalf("definition %q missing", name)
	}
	return def
}

var widgetDefinitions = map[model.WidgetType]string{
	model.WidgetLabel:    "Label",
	model.WidgetCheckbox: "Checkbox",
	model.WidgetMeter:    "Meter",
	model.WidgetArc:      "Arc",
	model.WidgetBar:      "Bar",
	model.WidgetLine:     "Line",
	model.WidgetImage:    "Image",
}

func TestWidgetKeysMatchValidator(t *testing.T) {
	s := Reflect()
	for _, typ := range model.WidgetTypes {
		variant, ok := validate.WidgetSchema.Variant(string(typ))
		if !ok {
			t.Fatalf("validator has no %s variant", typ)
		}
		got := propertyNames(t, definition(t, s, widgetDefinitions[typ]))
		if diff := cmp.Diff(sorted(variant.Keys()), got); diff != "" {
			t.Errorf("%s keys mismatch (-validator +schema):\n%s", typ, diff)
		}
	}
}

func TestNestedKeysMatchValidator(t *testing.T) {
	s := Reflect()
	cases := []struct {
		def  string
		keys []string
	}{
		{"StyleDefinition", validate.StyleDefinitionSchema.Keys()},
		{"Scale", validate.ScaleSchema.Keys()},
	}
	indicators := map[model.IndicatorType]string{
		model.IndicatorLine:      "NeedleIndicator",
		model.IndicatorArc:       "ArcIndicator",
		model.IndicatorTickStyle: "TickStyleIndicator",
	}
	for typ, def := range indicators {
		variant, ok := validate.IndicatorSchema.Variant(string(typ))
		if !ok {
			t.Fatalf("validator has no %s indicator", typ)
		}
		cases = append(cases, struct {
			def  string
			keys []string
		}{def, variant.Keys()})
	}
	for _, tc := range cases {
		got := propertyNames(t, definition(t, s, tc.def))
		if diff := cmp.Diff(sorted(tc.keys), got); diff != "" {
			t.Errorf("%s keys mismatch (-validator +schema):\n%s", tc.def, diff)
		}
	}

	if diff := cmp.Diff(sorted(validate.DocumentSchema.Keys()), propertyNames(t, s)); diff != "" {
		t.Errorf("document keys mismatch (-validator +schema):\n%s", diff)
	}
}

func TestRequiredAndExclusiveKeys(t *testing.T) {
	s := Reflect()
	if diff := cmp.Diff([]string{"id", "display_id"}, s.Required); diff != "" {
		t.Fatalf("document required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"position", "dimensions", "switch_id"}, definition(t, s, "Checkbox").Required); diff != "" {
		t.Fatalf("checkbox required mismatch (-want +got):\n%s", diff)
	}

	entry := definition(t, s, "WidgetEntry")
	var exclusive []string
	for _, alt := range entry.OneOf {
		exclusive = append(exclusive, alt.Required...)
	}
	var want []string
	for _, typ := range model.WidgetTypes {
		want = append(want, string(typ))
	}
	if diff := cmp.Diff(want, exclusive); diff != "" {
		t.Fatalf("widget alternatives mismatch (-want +got):\n%s", diff)
	}
}

func TestStylePropertySchemas(t *testing.T) {
	props := definition(t, Reflect(), "Label").Properties
	align, ok := props.Get("align")
	if !ok {
		t.Fatal("align property missing")
	}
	if align.Type != "string" || len(align.Enum) == 0 {
		t.Fatalf("align should be a string enum, got %+v", align)
	}
	found := false
	for _, v := range align.Enum {
		if v == "LV_ALIGN_CENTER" {
			found = true
		}
	}
	if !found {
		t.Fatal("align enum should accept prefixed keywords")
	}
	if radius, _ := props.Get("radius"); radius == nil || len(radius.AnyOf) != 2 {
		t.Fatalf("radius should accept integers and px strings, got %+v", radius)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["title"] != Title || doc["$schema"] != "http://json-schema.org/draft-07/schema#" {
		t.Fatalf("unexpected header %v %v", doc["title"], doc["$schema"])
	}
	if _, ok := doc["$defs"]; !ok {
		t.Fatal("expected $defs in schema output")
	}
}
