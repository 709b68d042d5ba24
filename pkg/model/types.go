package model

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// WidgetType identifies a widget variant.
type WidgetType string

const (
	WidgetLabel    WidgetType = "label"
	WidgetCheckbox WidgetType = "checkbox"
	WidgetMeter    WidgetType = "meter"
	WidgetArc      WidgetType = "arc"
	WidgetBar      WidgetType = "bar"
	WidgetLine     WidgetType = "line"
	WidgetImage    WidgetType = "image"
)

// WidgetTypes lists every supported widget variant in canonical order.
var WidgetTypes = []WidgetType{
	WidgetLabel, WidgetCheckbox, WidgetMeter, WidgetArc, WidgetBar, WidgetLine, WidgetImage,
}

// Define returns the USE_<TYPE> preprocessor toggle of the widget type.
func (t WidgetType) Define() string {
	return "USE_" + strings.ToUpper(string(t))
}

// ConfMacro returns the lv_conf.h switch enabling the LVGL widget.
func (t WidgetType) ConfMacro() string {
	switch t {
	case WidgetImage:
		return "LV_USE_IMG"
	default:
		return "LV_USE_" + strings.ToUpper(string(t))
	}
}

// Document is the validated GUI configuration: one GUI component bound to a
// display and its widget tree.
type Document struct {
	ID               string            `json:"id"`
	DisplayID        string            `json:"displayId"`
	StyleDefinitions []StyleDefinition `json:"styleDefinitions,omitempty"`
	Widgets          []Widget          `json:"widgets,omitempty"`
}

// StyleDefinition is a named, reusable lv_style_t.
type StyleDefinition struct {
	ID         string          `json:"id"`
	Properties []style.Setting `json:"properties,omitempty"`
}

// Widget is a tagged union over the widget variants. Exactly one of the
// variant pointers matching Type is set.
type Widget struct {
	Type       WidgetType      `json:"type"`
	ID         string          `json:"id"`
	Position   schema.Point    `json:"position"`
	Dimensions schema.Point    `json:"dimensions"`
	Styles     []string        `json:"styles,omitempty"`
	Style      []style.Setting `json:"style,omitempty"`
	Children   []Widget        `json:"children,omitempty"`

	Label    *Label    `json:"label,omitempty"`
	Checkbox *Checkbox `json:"checkbox,omitempty"`
	Meter    *Meter    `json:"meter,omitempty"`
	Arc      *Arc      `json:"arc,omitempty"`
	Bar      *Bar      `json:"bar,omitempty"`
	Line     *Line     `json:"line,omitempty"`
	Image    *Image    `json:"image,omitempty"`
}

// PointsName is the global array holding the points of line widget id.
func PointsName(id string) string { return id + "_points" }

// InlineStyleName is the lv_style_t holding the inline style of widget id.
func InlineStyleName(id string) string { return id + "_inline_style" }

// ScaleName is the local handle of the n-th scale of meter id.
func ScaleName(id string, n int) string { return id + "_scale_" + strconv.Itoa(n) }

// DerivedNames lists the C++ names generated code declares for w besides
// its own id.
func (w *Widget) DerivedNames() []string {
	var names []string
	if len(w.Style) > 0 {
		names = append(names, InlineStyleName(w.ID))
	}
	if w.Line != nil {
		names = append(names, PointsName(w.ID))
	}
	if w.Meter != nil {
		for n := range w.Meter.Scales {
			names = append(names, ScaleName(w.ID, n))
		}
	}
	return names
}

// Label shows a text.
type Label struct {
	Text     string         `json:"text,omitempty"`
	LongMode schema.Keyword `json:"longMode,omitempty"`
	Recolor  bool           `json:"recolor,omitempty"`
}

// Checkbox mirrors a host switch.
type Checkbox struct {
	Text     string `json:"text,omitempty"`
	SwitchID string `json:"switchId"`
	Checked  bool   `json:"checked,omitempty"`
}

// Meter draws one or more scales with indicators.
type Meter struct {
	Scales []Scale `json:"scales"`
}

// Arc is a circular range widget.
type Arc struct {
	MinValue   int            `json:"minValue"`
	MaxValue   int            `json:"maxValue"`
	Value      *int           `json:"value,omitempty"`
	StartAngle *int           `json:"startAngle,omitempty"`
	EndAngle   *int           `json:"endAngle,omitempty"`
	Rotation   *int           `json:"rotation,omitempty"`
	Mode       schema.Keyword `json:"mode,omitempty"`
	Adjustable bool           `json:"adjustable,omitempty"`
}

// Bar is a linear range widget.
type Bar struct {
	MinValue   int            `json:"minValue"`
	MaxValue   int            `json:"maxValue"`
	Value      *int           `json:"value,omitempty"`
	StartValue *int           `json:"startValue,omitempty"`
	Mode       schema.Keyword `json:"mode,omitempty"`
	Animated   bool           `json:"animated,omitempty"`
}

// Line connects a list of points.
type Line struct {
	Points  []schema.Point `json:"points"`
	YInvert bool           `json:"yInvert,omitempty"`
}

// Image shows a host-declared image.
type Image struct {
	Src    string `json:"src"`
	Angle  *int   `json:"angle,omitempty"`
	Zoom   *int   `json:"zoom,omitempty"`
	PivotX *int   `json:"pivotX,omitempty"`
	PivotY *int   `json:"pivotY,omitempty"`
}

// Scale is one meter scale.
type Scale struct {
	RangeFrom  int         `json:"rangeFrom"`
	RangeTo    int         `json:"rangeTo"`
	AngleRange int         `json:"angleRange"`
	Rotation   int         `json:"rotation"`
	Ticks      Ticks       `json:"ticks"`
	Major      *MajorTicks `json:"major,omitempty"`
	Indicators []Indicator `json:"indicators,omitempty"`
}

// Ticks configures the minor ticks of a scale.
type Ticks struct {
	Count  int          `json:"count"`
	Width  int          `json:"width"`
	Length int          `json:"length"`
	Color  schema.Color `json:"color"`
}

// MajorTicks configures every Stride-th tick as a labelled major tick.
type MajorTicks struct {
	Stride   int          `json:"stride"`
	Width    int          `json:"width"`
	Length   int          `json:"length"`
	Color    schema.Color `json:"color"`
	LabelGap int          `json:"labelGap"`
}

// IndicatorType identifies an indicator variant.
type IndicatorType string

const (
	IndicatorLine      IndicatorType = "line"
	IndicatorArc       IndicatorType = "arc"
	IndicatorTickStyle IndicatorType = "tick_style"
)

// Indicator is a tagged union over the meter indicator variants. Values are
// validated to lie inside the owning scale range.
type Indicator struct {
	Type IndicatorType `json:"type"`
	ID   string        `json:"id"`

	Width      int          `json:"width,omitempty"`
	Color      schema.Color `json:"color"`
	RModifier  int          `json:"rModifier,omitempty"`
	Value      *int         `json:"value,omitempty"`
	StartValue *int         `json:"startValue,omitempty"`
	EndValue   *int         `json:"endValue,omitempty"`

	ColorEnd      schema.Color `json:"colorEnd"`
	Local         bool         `json:"local,omitempty"`
	WidthModifier int          `json:"widthModifier,omitempty"`
}

// Walk visits widgets depth-first in declaration order. Returning false from
// fn skips the children of that widget.
func Walk(widgets []Widget, fn func(w *Widget, parent *Widget) bool) {
	walk(widgets, nil, fn)
}

func walk(widgets []Widget, parent *Widget, fn func(w *Widget, parent *Widget) bool) {
	for i := range widgets {
		w := &widgets[i]
		if !fn(w, parent) {
			continue
		}
		walk(w.Children, w, fn)
	}
}

// Count returns the number of widgets in the tree.
func (d Document) Count() int {
	n := 0
	Walk(d.Widgets, func(*Widget, *Widget) bool {
		n++
		return true
	})
	return n
}
