// Package validate turns a raw decoded configuration mapping into a
// model.Document. Field-level coercion is table driven through pkg/schema;
// this package adds the cross-field rules: value ranges, id generation and
// uniqueness, and style reference resolution.
package validate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Option customises a Validator.
type Option func(*Validator)

// WithLogger attaches a structured logger. A discarding logger is used when
// omitted.
func WithLogger(log *logrus.Entry) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// Validator validates configuration documents. It keeps no state between
// calls.
type Validator struct {
	log *logrus.Entry
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{log: discardLogger()}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Document validates raw and returns the normalized tree. The error, when
// present, contains every failure found and can be inspected with
// schema.Flatten.
func (v *Validator) Document(raw any) (model.Document, error) {
	cfg, err := DocumentSchema.Validate(raw)
	if err != nil {
		return model.Document{}, err
	}

	pass := &pass{ids: newIDs()}
	doc := model.Document{
		ID:        cfg[KeyID].(string),
		DisplayID: cfg[KeyDisplayID].(string),
	}
	pass.ids.declare(doc.ID, []string{KeyID})

	defs, _ := cfg[KeyStyleDefinitions].([]any)
	styleIDs := make(map[string]struct{}, len(defs))
	for idx, rawDef := range defs {
		def := rawDef.(map[string]any)
		id := def[KeyID].(string)
		pass.ids.declare(id, []string{KeyStyleDefinitions, schema.Index(idx), KeyID})
		styleIDs[id] = struct{}{}
		doc.StyleDefinitions = append(doc.StyleDefinitions, model.StyleDefinition{
			ID:         id,
			Properties: style.Collect(def),
		})
	}
	pass.styles = styleIDs

	listKey := KeyWidgets
	items, ok := cfg[KeyWidgets].([]any)
	if !ok {
		items, _ = cfg[KeyItems].([]any)
		listKey = KeyItems
	}
	doc.Widgets = pass.widgets(items, []string{listKey})

	pass.ids.assign(doc.Widgets)
	pass.errs = append(pass.errs, pass.ids.errs...)

	if len(pass.errs) > 0 {
		if len(pass.errs) == 1 {
			return model.Document{}, pass.errs[0]
		}
		return model.Document{}, pass.errs
	}

	v.log.WithFields(logrus.Fields{
		"id":      doc.ID,
		"widgets": doc.Count(),
		"styles":  len(doc.StyleDefinitions),
	}).Debug("validated gui document")
	return doc, nil
}

type pass struct {
	ids    *ids
	styles map[string]struct{}
	errs   schema.Errors
}

func (p *pass) fail(path []string, err error) {
	for _, item := range schema.Flatten(err) {
		full := append(append([]string(nil), path...), item.Path...)
		p.errs = append(p.errs, &schema.Error{Path: full, Message: item.Message})
	}
}

func (p *pass) failf(path []string, format string, args ...any) {
	p.errs = append(p.errs, &schema.Error{
		Path:    append([]string(nil), path...),
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *pass) widgets(items []any, path []string) []model.Widget {
	out := make([]model.Widget, 0, len(items))
	for idx, raw := range items {
		itemPath := at(path, schema.Index(idx))
		w, ok := p.widget(raw, itemPath)
		if ok {
			out = append(out, w)
		}
	}
	return out
}

func (p *pass) widget(raw any, path []string) (model.Widget, bool) {
	name, cfg, err := WidgetSchema.Validate(raw)
	if err != nil {
		p.fail(path, err)
		return model.Widget{}, false
	}
	if _, flat := raw.(map[string]any)[KeyType]; !flat {
		path = at(path, name)
	}

	w := model.Widget{
		Type:       model.WidgetType(name),
		Position:   cfg[KeyPosition].(schema.Point),
		Dimensions: cfg[KeyDimensions].(schema.Point),
		Style:      style.Collect(cfg),
	}
	if id, ok := cfg[KeyID].(string); ok {
		w.ID = id
		p.ids.declare(id, at(path, KeyID))
	}
	if refs, ok := cfg[KeyStyles].([]any); ok {
		for idx, ref := range refs {
			id := ref.(string)
			if _, known := p.styles[id]; !known {
				p.failf(at(path, KeyStyles, schema.Index(idx)), "unknown style %q", id)
				continue
			}
			w.Styles = append(w.Styles, id)
		}
	}

	switch w.Type {
	case model.WidgetLabel:
		w.Label = &model.Label{
			Text:     stringOf(cfg, KeyText),
			LongMode: keywordOf(cfg, "long_mode"),
			Recolor:  boolOf(cfg, "recolor"),
		}
	case model.WidgetCheckbox:
		w.Checkbox = &model.Checkbox{
			Text:     stringOf(cfg, KeyText),
			SwitchID: stringOf(cfg, KeySwitchID),
			Checked:  boolOf(cfg, "checked"),
		}
	case model.WidgetArc:
		w.Arc = p.arc(cfg, path)
	case model.WidgetBar:
		w.Bar = p.bar(cfg, path)
	case model.WidgetLine:
		w.Line = p.line(cfg, path)
	case model.WidgetImage:
		w.Image = &model.Image{
			Src:    stringOf(cfg, KeySrc),
			Angle:  intPtrOf(cfg, "angle"),
			Zoom:   intPtrOf(cfg, "zoom"),
			PivotX: intPtrOf(cfg, "pivot_x"),
			PivotY: intPtrOf(cfg, "pivot_y"),
		}
	case model.WidgetMeter:
		w.Meter = p.meter(cfg, path)
	}

	if children, ok := cfg[KeyWidgets].([]any); ok {
		w.Children = p.widgets(children, at(path, KeyWidgets))
	}
	return w, true
}

func (p *pass) arc(cfg map[string]any, path []string) *model.Arc {
	arc := &model.Arc{
		MinValue:   cfg[KeyMinValue].(int),
		MaxValue:   cfg[KeyMaxValue].(int),
		Value:      intPtrOf(cfg, KeyValue),
		StartAngle: intPtrOf(cfg, "start_angle"),
		EndAngle:   intPtrOf(cfg, "end_angle"),
		Rotation:   intPtrOf(cfg, KeyRotation),
		Mode:       keywordOf(cfg, "mode"),
		Adjustable: boolOf(cfg, "adjustable"),
	}
	if p.checkRange(arc.MinValue, arc.MaxValue, path) {
		p.checkWithin(arc.Value, arc.MinValue, arc.MaxValue, at(path, KeyValue))
	}
	return arc
}

func (p *pass) bar(cfg map[string]any, path []string) *model.Bar {
	bar := &model.Bar{
		MinValue:   cfg[KeyMinValue].(int),
		MaxValue:   cfg[KeyMaxValue].(int),
		Value:      intPtrOf(cfg, KeyValue),
		StartValue: intPtrOf(cfg, KeyStartValue),
		Mode:       keywordOf(cfg, "mode"),
		Animated:   boolOf(cfg, "animated"),
	}
	if p.checkRange(bar.MinValue, bar.MaxValue, path) {
		p.checkWithin(bar.Value, bar.MinValue, bar.MaxValue, at(path, KeyValue))
		p.checkWithin(bar.StartValue, bar.MinValue, bar.MaxValue, at(path, KeyStartValue))
	}
	if bar.StartValue != nil && bar.Mode != "LV_BAR_MODE_RANGE" {
		p.failf(at(path, KeyStartValue), "start_value requires mode: range")
	}
	if bar.StartValue != nil && bar.Value != nil && *bar.StartValue > *bar.Value {
		p.failf(at(path, KeyStartValue), "start_value must not exceed value")
	}
	return bar
}

func (p *pass) line(cfg map[string]any, path []string) *model.Line {
	raw := cfg[KeyPoints].([]any)
	line := &model.Line{YInvert: boolOf(cfg, "y_invert")}
	for _, point := range raw {
		line.Points = append(line.Points, point.(schema.Point))
	}
	if len(line.Points) < 2 {
		p.failf(at(path, KeyPoints), "a line requires at least two points, got %d", len(line.Points))
	}
	return line
}

func (p *pass) meter(cfg map[string]any, path []string) *model.Meter {
	meter := &model.Meter{}
	scales := cfg[KeyScales].([]any)
	if len(scales) == 0 {
		p.failf(at(path, KeyScales), "a meter requires at least one scale")
	}
	for idx, raw := range scales {
		scalePath := at(path, KeyScales, schema.Index(idx))
		scale, ok := p.scale(raw, scalePath)
		if ok {
			meter.Scales = append(meter.Scales, scale)
		}
	}
	return meter
}

func (p *pass) scale(raw any, path []string) (model.Scale, bool) {
	cfg, err := ScaleSchema.Validate(raw)
	if err != nil {
		p.fail(path, err)
		return model.Scale{}, false
	}
	scale := model.Scale{
		RangeFrom:  cfg[KeyRangeFrom].(int),
		RangeTo:    cfg[KeyRangeTo].(int),
		AngleRange: cfg[KeyAngleRange].(int),
	}
	if rotation, ok := cfg[KeyRotation].(int); ok {
		scale.Rotation = rotation
	} else {
		scale.Rotation = DefaultRotation(scale.AngleRange)
	}
	ticks := cfg[KeyTicks].(map[string]any)
	scale.Ticks = model.Ticks{
		Count:  ticks["count"].(int),
		Width:  ticks["width"].(int),
		Length: ticks["length"].(int),
		Color:  ticks["color"].(schema.Color),
	}
	if major, ok := cfg[KeyMajor].(map[string]any); ok {
		scale.Major = &model.MajorTicks{
			Stride:   major["stride"].(int),
			Width:    major["width"].(int),
			Length:   major["length"].(int),
			Color:    major["color"].(schema.Color),
			LabelGap: major["label_gap"].(int),
		}
		if scale.Major.Stride > scale.Ticks.Count {
			p.failf(at(path, KeyMajor, "stride"), "stride %d exceeds the tick count %d", scale.Major.Stride, scale.Ticks.Count)
		}
	}

	rangeOK := true
	if scale.RangeTo <= scale.RangeFrom {
		p.failf(at(path, KeyRangeTo), "range_to must exceed range_from (%d <= %d)", scale.RangeTo, scale.RangeFrom)
		rangeOK = false
	}

	indicators, _ := cfg[KeyIndicators].([]any)
	for idx, rawInd := range indicators {
		indPath := at(path, KeyIndicators, schema.Index(idx))
		ind, ok := p.indicator(rawInd, indPath, scale, rangeOK)
		if ok {
			scale.Indicators = append(scale.Indicators, ind)
		}
	}
	return scale, true
}

func (p *pass) indicator(raw any, path []string, scale model.Scale, checkValues bool) (model.Indicator, bool) {
	name, cfg, err := IndicatorSchema.Validate(raw)
	if err != nil {
		p.fail(path, err)
		return model.Indicator{}, false
	}
	if _, flat := raw.(map[string]any)[KeyType]; !flat {
		path = at(path, name)
	}

	ind := model.Indicator{
		Type:       model.IndicatorType(name),
		Value:      intPtrOf(cfg, KeyValue),
		StartValue: intPtrOf(cfg, KeyStartValue),
		EndValue:   intPtrOf(cfg, KeyEndValue),
	}
	if id, ok := cfg[KeyID].(string); ok {
		ind.ID = id
		p.ids.declare(id, at(path, KeyID))
	}
	switch ind.Type {
	case model.IndicatorLine, model.IndicatorArc:
		ind.Width = cfg["width"].(int)
		ind.Color = cfg["color"].(schema.Color)
		ind.RModifier = cfg["r_mod"].(int)
	case model.IndicatorTickStyle:
		ind.Color = cfg["color_start"].(schema.Color)
		ind.ColorEnd = cfg["color_end"].(schema.Color)
		ind.Local = cfg["local"].(bool)
		ind.WidthModifier = cfg["width"].(int)
	}

	if checkValues {
		p.checkWithin(ind.Value, scale.RangeFrom, scale.RangeTo, at(path, KeyValue))
		p.checkWithin(ind.StartValue, scale.RangeFrom, scale.RangeTo, at(path, KeyStartValue))
		p.checkWithin(ind.EndValue, scale.RangeFrom, scale.RangeTo, at(path, KeyEndValue))
	}
	if ind.StartValue != nil && ind.EndValue != nil && *ind.StartValue > *ind.EndValue {
		p.failf(at(path, KeyEndValue), "end_value must not be lower than start_value")
	}
	return ind, true
}

// checkRange enforces max_value > min_value and reports whether it held.
func (p *pass) checkRange(min, max int, path []string) bool {
	if max <= min {
		p.failf(at(path, KeyMaxValue), "max_value must exceed min_value (%d <= %d)", max, min)
		return false
	}
	return true
}

func (p *pass) checkWithin(value *int, min, max int, path []string) {
	if value == nil {
		return
	}
	if *value < min || *value > max {
		p.failf(path, "value %d is outside the range [%d, %d]", *value, min, max)
	}
}

// DefaultRotation centres a scale of angleRange degrees at the bottom of the
// meter, matching the LVGL meter demo orientation.
func DefaultRotation(angleRange int) int {
	return 90 + (360-angleRange)/2
}

func at(path []string, segments ...string) []string {
	out := make([]string, 0, len(path)+len(segments))
	out = append(out, path...)
	return append(out, segments...)
}

func stringOf(cfg map[string]any, key string) string {
	s, _ := cfg[key].(string)
	return s
}

func boolOf(cfg map[string]any, key string) bool {
	b, _ := cfg[key].(bool)
	return b
}

func keywordOf(cfg map[string]any, key string) schema.Keyword {
	k, _ := cfg[key].(schema.Keyword)
	return k
}

func intPtrOf(cfg map[string]any, key string) *int {
	n, ok := cfg[key].(int)
	if !ok {
		return nil
	}
	return &n
}
