package schemaexport

import "github.com/invopop/jsonschema"

// The types below mirror the configuration accepted by pkg/validate. They
// exist only to be reflected; style properties are added to every widget and
// style definition after reflection.

// Document is the top level GUI mapping.
type Document struct {
	ID               string            `yaml:"id" jsonschema:"description=ID of the GUI component"`
	DisplayID        string            `yaml:"display_id" jsonschema:"description=ID of the display the GUI draws on"`
	StyleDefinitions []StyleDefinition `yaml:"style_definitions,omitempty" jsonschema:"description=Reusable styles referenced by id"`
	Widgets          []WidgetEntry     `yaml:"widgets,omitempty" jsonschema:"description=Top level widgets"`
	Items            []WidgetEntry     `yaml:"items,omitempty" jsonschema:"description=Legacy alias of widgets"`
}

// StyleDefinition is a named style.
type StyleDefinition struct {
	ID string `yaml:"id"`
}

// WidgetEntry holds exactly one widget type key.
type WidgetEntry struct {
	Label    *Label    `yaml:"label,omitempty" jsonschema:"oneof_required=label"`
	Checkbox *Checkbox `yaml:"checkbox,omitempty" jsonschema:"oneof_required=checkbox"`
	Meter    *Meter    `yaml:"meter,omitempty" jsonschema:"oneof_required=meter"`
	Arc      *Arc      `yaml:"arc,omitempty" jsonschema:"oneof_required=arc"`
	Bar      *Bar      `yaml:"bar,omitempty" jsonschema:"oneof_required=bar"`
	Line     *Line     `yaml:"line,omitempty" jsonschema:"oneof_required=line"`
	Image    *Image    `yaml:"image,omitempty" jsonschema:"oneof_required=image"`
}

// Label shows a text.
type Label struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	Text       string        `yaml:"text,omitempty"`
	LongMode   string        `yaml:"long_mode,omitempty" jsonschema:"enum=WRAP,enum=DOT,enum=SCROLL,enum=SCROLL_CIRCULAR,enum=CLIP"`
	Recolor    bool          `yaml:"recolor,omitempty"`
}

// Checkbox mirrors a host switch.
type Checkbox struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	Text       string        `yaml:"text,omitempty"`
	SwitchID   string        `yaml:"switch_id" jsonschema:"description=ID of the switch the checkbox mirrors"`
	Checked    bool          `yaml:"checked,omitempty"`
}

// Meter draws scales with indicators.
type Meter struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	Scales     []Scale       `yaml:"scales"`
}

// Arc is a circular range widget.
type Arc struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	MinValue   int           `yaml:"min_value,omitempty" jsonschema:"default=0"`
	MaxValue   int           `yaml:"max_value,omitempty" jsonschema:"default=100"`
	Value      int           `yaml:"value,omitempty"`
	StartAngle int           `yaml:"start_angle,omitempty" jsonschema:"minimum=0,maximum=360"`
	EndAngle   int           `yaml:"end_angle,omitempty" jsonschema:"minimum=0,maximum=360"`
	Rotation   int           `yaml:"rotation,omitempty" jsonschema:"minimum=0,maximum=360"`
	Mode       string        `yaml:"mode,omitempty" jsonschema:"enum=NORMAL,enum=SYMMETRICAL,enum=REVERSE"`
	Adjustable bool          `yaml:"adjustable,omitempty"`
}

// Bar is a linear range widget.
type Bar struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	MinValue   int           `yaml:"min_value,omitempty" jsonschema:"default=0"`
	MaxValue   int           `yaml:"max_value,omitempty" jsonschema:"default=100"`
	Value      int           `yaml:"value,omitempty"`
	StartValue int           `yaml:"start_value,omitempty"`
	Mode       string        `yaml:"mode,omitempty" jsonschema:"enum=NORMAL,enum=SYMMETRICAL,enum=RANGE"`
	Animated   bool          `yaml:"animated,omitempty"`
}

// Line connects points.
type Line struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	Points     []Position    `yaml:"points"`
	YInvert    bool          `yaml:"y_invert,omitempty"`
}

// Image shows a host-declared image.
type Image struct {
	ID         string        `yaml:"id,omitempty"`
	Position   Position      `yaml:"position"`
	Dimensions Dimensions    `yaml:"dimensions"`
	Styles     []string      `yaml:"styles,omitempty"`
	Widgets    []WidgetEntry `yaml:"widgets,omitempty"`
	Src        string        `yaml:"src" jsonschema:"description=ID of the image component"`
	Angle      int           `yaml:"angle,omitempty" jsonschema:"minimum=0,maximum=3600"`
	Zoom       int           `yaml:"zoom,omitempty" jsonschema:"minimum=1,maximum=65535"`
	PivotX     int           `yaml:"pivot_x,omitempty"`
	PivotY     int           `yaml:"pivot_y,omitempty"`
}

// Scale is one meter scale.
type Scale struct {
	RangeFrom  int              `yaml:"range_from,omitempty" jsonschema:"default=0"`
	RangeTo    int              `yaml:"range_to,omitempty" jsonschema:"default=100"`
	AngleRange int              `yaml:"angle_range,omitempty" jsonschema:"minimum=0,maximum=360,default=270"`
	Rotation   int              `yaml:"rotation,omitempty" jsonschema:"minimum=0,maximum=360"`
	Ticks      *Ticks           `yaml:"ticks,omitempty"`
	Major      *MajorTicks      `yaml:"major,omitempty"`
	Indicators []IndicatorEntry `yaml:"indicators,omitempty"`
}

// Ticks configures minor ticks.
type Ticks struct {
	Count  int   `yaml:"count,omitempty" jsonschema:"minimum=1,default=12"`
	Width  int   `yaml:"width,omitempty" jsonschema:"default=2"`
	Length int   `yaml:"length,omitempty" jsonschema:"default=10"`
	Color  Color `yaml:"color,omitempty"`
}

// MajorTicks configures major ticks.
type MajorTicks struct {
	Stride   int   `yaml:"stride,omitempty" jsonschema:"minimum=1,default=3"`
	Width    int   `yaml:"width,omitempty" jsonschema:"default=5"`
	Length   int   `yaml:"length,omitempty" jsonschema:"default=15"`
	Color    Color `yaml:"color,omitempty"`
	LabelGap int   `yaml:"label_gap,omitempty" jsonschema:"default=4"`
}

// IndicatorEntry holds exactly one indicator type key.
type IndicatorEntry struct {
	Line      *NeedleIndicator    `yaml:"line,omitempty" jsonschema:"oneof_required=line"`
	Arc       *ArcIndicator       `yaml:"arc,omitempty" jsonschema:"oneof_required=arc"`
	TickStyle *TickStyleIndicator `yaml:"tick_style,omitempty" jsonschema:"oneof_required=tick_style"`
}

// NeedleIndicator is a needle line.
type NeedleIndicator struct {
	ID    string `yaml:"id,omitempty"`
	Width int    `yaml:"width,omitempty" jsonschema:"default=4"`
	Color Color  `yaml:"color,omitempty"`
	RMod  int    `yaml:"r_mod,omitempty"`
	Value int    `yaml:"value,omitempty"`
}

// ArcIndicator highlights a scale range with an arc.
type ArcIndicator struct {
	ID         string `yaml:"id,omitempty"`
	Width      int    `yaml:"width,omitempty" jsonschema:"default=4"`
	Color      Color  `yaml:"color,omitempty"`
	RMod       int    `yaml:"r_mod,omitempty"`
	StartValue int    `yaml:"start_value,omitempty"`
	EndValue   int    `yaml:"end_value,omitempty"`
}

// TickStyleIndicator recolors scale ticks with a gradient.
type TickStyleIndicator struct {
	ID         string `yaml:"id,omitempty"`
	ColorStart Color  `yaml:"color_start"`
	ColorEnd   Color  `yaml:"color_end"`
	Local      bool   `yaml:"local,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	StartValue int    `yaml:"start_value,omitempty"`
	EndValue   int    `yaml:"end_value,omitempty"`
}

// Position is "x,y" or [x, y].
type Position string

// JSONSchema implements the jsonschema custom schema hook.
func (Position) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "x,y integers",
		AnyOf: []*jsonschema.Schema{
			{Type: "string", Pattern: `^\s*-?\d+\s*,\s*-?\d+\s*$`},
			{Type: "array", Items: &jsonschema.Schema{Type: "integer"}},
		},
	}
}

// Dimensions is "WxH" or [w, h].
type Dimensions string

// JSONSchema implements the jsonschema custom schema hook.
func (Dimensions) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "WIDTHxHEIGHT, both greater than zero",
		AnyOf: []*jsonschema.Schema{
			{Type: "string", Pattern: `^\s*\d+\s*[xX,]\s*\d+\s*$`},
			{Type: "array", Items: &jsonschema.Schema{Type: "integer"}},
		},
	}
}

// Color is a 0xRRGGBB integer, a "#RRGGBB" string or a named color.
type Color string

// JSONSchema implements the jsonschema custom schema hook.
func (Color) JSONSchema() *jsonschema.Schema {
	return colorSchema()
}
