package validate

import (
	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Configuration keys.
const (
	KeyID               = "id"
	KeyDisplayID        = "display_id"
	KeyWidgets          = "widgets"
	KeyItems            = "items"
	KeyStyleDefinitions = "style_definitions"
	KeyType             = "type"
	KeyPosition         = "position"
	KeyDimensions       = "dimensions"
	KeyStyles           = "styles"
	KeyText             = "text"
	KeySwitchID         = "switch_id"
	KeyMinValue         = "min_value"
	KeyMaxValue         = "max_value"
	KeyValue            = "value"
	KeyStartValue       = "start_value"
	KeyEndValue         = "end_value"
	KeyScales           = "scales"
	KeyIndicators       = "indicators"
	KeyRangeFrom        = "range_from"
	KeyRangeTo          = "range_to"
	KeyAngleRange       = "angle_range"
	KeyRotation         = "rotation"
	KeyTicks            = "ticks"
	KeyMajor            = "major"
	KeyPoints           = "points"
	KeySrc              = "src"
)

// CommonWidgetSchema is shared by every widget variant: geometry, style
// references, inline style properties and nested children.
var CommonWidgetSchema = schema.New(
	schema.Optional(KeyID, schema.Identifier),
	schema.Required(KeyDimensions, schema.Dimensions),
	schema.Required(KeyPosition, schema.Position),
	schema.Optional(KeyStyles, schema.EnsureList(schema.Identifier)),
	schema.Optional(KeyWidgets, schema.List(schema.Any)),
).Extend(style.Keys()...)

var labelSchema = CommonWidgetSchema.Extend(
	schema.Optional(KeyText, schema.String),
	schema.Optional("long_mode", schema.Enum("LV_LABEL_LONG_", "WRAP", "DOT", "SCROLL", "SCROLL_CIRCULAR", "CLIP")),
	schema.Optional("recolor", schema.Bool),
)

var checkboxSchema = CommonWidgetSchema.Extend(
	schema.Optional(KeyText, schema.String),
	schema.Required(KeySwitchID, schema.Identifier),
	schema.Optional("checked", schema.Bool),
)

var arcSchema = CommonWidgetSchema.Extend(
	schema.Optional(KeyMinValue, schema.Int).WithDefault(0),
	schema.Optional(KeyMaxValue, schema.Int).WithDefault(100),
	schema.Optional(KeyValue, schema.Int),
	schema.Optional("start_angle", schema.IntRange(0, 360)),
	schema.Optional("end_angle", schema.IntRange(0, 360)),
	schema.Optional(KeyRotation, schema.IntRange(0, 360)),
	schema.Optional("mode", schema.Enum("LV_ARC_MODE_", "NORMAL", "SYMMETRICAL", "REVERSE")),
	schema.Optional("adjustable", schema.Bool),
)

var barSchema = CommonWidgetSchema.Extend(
	schema.Optional(KeyMinValue, schema.Int).WithDefault(0),
	schema.Optional(KeyMaxValue, schema.Int).WithDefault(100),
	schema.Optional(KeyValue, schema.Int),
	schema.Optional(KeyStartValue, schema.Int),
	schema.Optional("mode", schema.Enum("LV_BAR_MODE_", "NORMAL", "SYMMETRICAL", "RANGE")),
	schema.Optional("animated", schema.Bool),
)

var lineSchema = CommonWidgetSchema.Extend(
	schema.Required(KeyPoints, schema.List(schema.Position)),
	schema.Optional("y_invert", schema.Bool),
)

var imageSchema = CommonWidgetSchema.Extend(
	schema.Required(KeySrc, schema.Identifier),
	schema.Optional("angle", schema.IntRange(0, 3600)),
	schema.Optional("zoom", schema.IntRange(1, 0xFFFF)),
	schema.Optional("pivot_x", schema.Int),
	schema.Optional("pivot_y", schema.Int),
)

var ticksSchema = schema.New(
	schema.Optional("count", schema.PositiveInt).WithDefault(12),
	schema.Optional("width", schema.PixelValue).WithDefault(2),
	schema.Optional("length", schema.PixelValue).WithDefault(10),
	schema.Optional("color", schema.ColorValue).WithDefault(0x808080),
)

var majorSchema = schema.New(
	schema.Optional("stride", schema.PositiveInt).WithDefault(3),
	schema.Optional("width", schema.PixelValue).WithDefault(5),
	schema.Optional("length", schema.PixelValue).WithDefault(15),
	schema.Optional("color", schema.ColorValue).WithDefault(0x000000),
	schema.Optional("label_gap", schema.PixelValue).WithDefault(4),
)

var indicatorCommon = schema.New(
	schema.Optional(KeyID, schema.Identifier),
)

// IndicatorSchema selects between line (needle), arc and tick_style meter
// indicators.
var IndicatorSchema = schema.Typed(KeyType).
	Add(string(model.IndicatorLine), indicatorCommon.Extend(
		schema.Optional("width", schema.PixelValue).WithDefault(4),
		schema.Optional("color", schema.ColorValue).WithDefault(0x000000),
		schema.Optional("r_mod", schema.Int).WithDefault(0),
		schema.Optional(KeyValue, schema.Int),
	)).
	Add(string(model.IndicatorArc), indicatorCommon.Extend(
		schema.Optional("width", schema.PixelValue).WithDefault(4),
		schema.Optional("color", schema.ColorValue).WithDefault(0x000000),
		schema.Optional("r_mod", schema.Int).WithDefault(0),
		schema.Optional(KeyStartValue, schema.Int),
		schema.Optional(KeyEndValue, schema.Int),
	)).
	Add(string(model.IndicatorTickStyle), indicatorCommon.Extend(
		schema.Required("color_start", schema.ColorValue),
		schema.Required("color_end", schema.ColorValue),
		schema.Optional("local", schema.Bool).WithDefault(false),
		schema.Optional("width", schema.Int).WithDefault(0),
		schema.Optional(KeyStartValue, schema.Int),
		schema.Optional(KeyEndValue, schema.Int),
	))

// ScaleSchema validates one meter scale. Indicators are validated separately
// so their values can be checked against the scale range.
var ScaleSchema = schema.New(
	schema.Optional(KeyRangeFrom, schema.Int).WithDefault(0),
	schema.Optional(KeyRangeTo, schema.Int).WithDefault(100),
	schema.Optional(KeyAngleRange, schema.IntRange(0, 360)).WithDefault(270),
	schema.Optional(KeyRotation, schema.IntRange(0, 360)),
	schema.Optional(KeyTicks, ticksSchema.Validator()).WithDefault(map[string]any{}),
	schema.Optional(KeyMajor, majorSchema.Validator()),
	schema.Optional(KeyIndicators, schema.List(schema.Any)),
)

var meterSchema = CommonWidgetSchema.Extend(
	schema.Required(KeyScales, schema.List(schema.Any)),
)

// WidgetSchema selects the widget variant. Each widget type appears exactly
// once.
var WidgetSchema = schema.Typed(KeyType).
	Add(string(model.WidgetLabel), labelSchema).
	Add(string(model.WidgetCheckbox), checkboxSchema).
	Add(string(model.WidgetMeter), meterSchema).
	Add(string(model.WidgetArc), arcSchema).
	Add(string(model.WidgetBar), barSchema).
	Add(string(model.WidgetLine), lineSchema).
	Add(string(model.WidgetImage), imageSchema)

// StyleDefinitionSchema validates a reusable style: an id plus any style
// properties.
var StyleDefinitionSchema = schema.New(
	schema.Required(KeyID, schema.Identifier),
).Extend(style.Keys()...)

// DocumentSchema validates the top level GUI mapping. widgets and the legacy
// items key are mutually exclusive.
var DocumentSchema = schema.New(
	schema.Required(KeyID, schema.Identifier),
	schema.Required(KeyDisplayID, schema.Identifier),
	schema.Optional(KeyStyleDefinitions, schema.List(StyleDefinitionSchema.Validator())),
	schema.Optional(KeyWidgets, schema.List(schema.Any)).InGroup(KeyWidgets),
	schema.Optional(KeyItems, schema.List(schema.Any)).InGroup(KeyWidgets),
)
