package codegen

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-lvglgen/pkg/model"
)

func builtinBuilders() []Builder {
	return []Builder{
		NewBuilder(model.WidgetLabel, "GuiLabel", buildLabel),
		NewBuilder(model.WidgetCheckbox, "GuiCheckbox", buildCheckbox),
		NewBuilder(model.WidgetMeter, "GuiMeter", buildMeter),
		NewBuilder(model.WidgetArc, "GuiArc", buildArc),
		NewBuilder(model.WidgetBar, "GuiBar", buildBar),
		NewBuilder(model.WidgetLine, "GuiLine", buildLine),
		NewBuilder(model.WidgetImage, "GuiImage", buildImage),
	}
}

func missing(w *model.Widget) error {
	return fmt.Errorf("%w: %s", ErrMissingPayload, w.Type)
}

func buildLabel(g *Generation, obj Expr, w *model.Widget) error {
	l := w.Label
	if l == nil {
		return missing(w)
	}
	if l.Text != "" {
		g.Add(Method(obj, "set_text", l.Text))
	}
	if l.LongMode != "" {
		g.Add(Method(obj, "set_long_mode", l.LongMode))
	}
	if l.Recolor {
		g.Add(Method(obj, "set_recolor", true))
	}
	return nil
}

func buildCheckbox(g *Generation, obj Expr, w *model.Widget) error {
	c := w.Checkbox
	if c == nil {
		return missing(w)
	}
	if c.Text != "" {
		g.Add(Method(obj, "set_text", c.Text))
	}
	g.Add(Method(obj, "set_switch", Ref(c.SwitchID)))
	if c.Checked {
		g.Add(Method(obj, "set_checked", true))
	}
	return nil
}

func buildArc(g *Generation, obj Expr, w *model.Widget) error {
	a := w.Arc
	if a == nil {
		return missing(w)
	}
	g.Add(Method(obj, "set_range", a.MinValue, a.MaxValue))
	if a.Value != nil {
		g.Add(Method(obj, "set_value", *a.Value))
	}
	if a.StartAngle != nil || a.EndAngle != nil {
		// LVGL draws the default background from 135 to 45 degrees.
		g.Add(Method(obj, "set_bg_angles", intOr(a.StartAngle, 135), intOr(a.EndAngle, 45)))
	}
	if a.Rotation != nil {
		g.Add(Method(obj, "set_rotation", *a.Rotation))
	}
	if a.Mode != "" {
		g.Add(Method(obj, "set_mode", a.Mode))
	}
	if a.Adjustable {
		g.Add(Method(obj, "set_adjustable", true))
	}
	return nil
}

func buildBar(g *Generation, obj Expr, w *model.Widget) error {
	b := w.Bar
	if b == nil {
		return missing(w)
	}
	anim := Expr("LV_ANIM_OFF")
	if b.Animated {
		anim = "LV_ANIM_ON"
	}
	g.Add(Method(obj, "set_range", b.MinValue, b.MaxValue))
	if b.Mode != "" {
		g.Add(Method(obj, "set_mode", b.Mode))
	}
	if b.StartValue != nil {
		g.Add(Method(obj, "set_start_value", *b.StartValue, anim))
	}
	if b.Value != nil {
		g.Add(Method(obj, "set_value", *b.Value, anim))
	}
	return nil
}

func buildLine(g *Generation, obj Expr, w *model.Widget) error {
	l := w.Line
	if l == nil {
		return missing(w)
	}
	points := make([]string, len(l.Points))
	for i, p := range l.Points {
		points[i] = fmt.Sprintf("{%d, %d}", p.X, p.Y)
	}
	name := model.PointsName(w.ID)
	g.Program.Global("static const lv_point_t", name+"[]", Expr("{"+strings.Join(points, ", ")+"}"))
	g.Add(Method(obj, "set_points", Ref(name), len(l.Points)))
	if l.YInvert {
		g.Add(Method(obj, "set_y_invert", true))
	}
	return nil
}

func buildImage(g *Generation, obj Expr, w *model.Widget) error {
	img := w.Image
	if img == nil {
		return missing(w)
	}
	g.Add(Method(obj, "set_src", Ref(img.Src)))
	if img.Angle != nil {
		g.Add(Method(obj, "set_angle", *img.Angle))
	}
	if img.Zoom != nil {
		g.Add(Method(obj, "set_zoom", *img.Zoom))
	}
	if img.PivotX != nil || img.PivotY != nil {
		g.Add(Method(obj, "set_pivot", intOr(img.PivotX, 0), intOr(img.PivotY, 0)))
	}
	return nil
}

func buildMeter(g *Generation, obj Expr, w *model.Widget) error {
	m := w.Meter
	if m == nil {
		return missing(w)
	}
	for i, scale := range m.Scales {
		sc := g.Program.Local("lv_meter_scale_t", model.ScaleName(w.ID, i), Method(obj, "add_scale"))
		t := scale.Ticks
		g.Add(Method(obj, "set_scale_ticks", sc, t.Count, t.Width, t.Length, t.Color))
		if mj := scale.Major; mj != nil {
			g.Add(Method(obj, "set_scale_major_ticks", sc, mj.Stride, mj.Width, mj.Length, mj.Color, mj.LabelGap))
		}
		g.Add(Method(obj, "set_scale_range", sc, scale.RangeFrom, scale.RangeTo, scale.AngleRange, scale.Rotation))

		for _, ind := range scale.Indicators {
			if err := buildIndicator(g, obj, sc, ind); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildIndicator(g *Generation, obj, sc Expr, ind model.Indicator) error {
	var add Expr
	switch ind.Type {
	case model.IndicatorLine:
		add = Method(obj, "add_needle_line", sc, ind.Width, ind.Color, ind.RModifier)
	case model.IndicatorArc:
		add = Method(obj, "add_arc", sc, ind.Width, ind.Color, ind.RModifier)
	case model.IndicatorTickStyle:
		add = Method(obj, "add_scale_lines", sc, ind.Color, ind.ColorEnd, ind.Local, ind.WidthModifier)
	default:
		return fmt.Errorf("unknown indicator type %q", ind.Type)
	}
	ref := g.Program.Local("lv_meter_indicator_t", ind.ID, add)
	if ind.Value != nil {
		g.Add(Method(obj, "set_indicator_value", ref, *ind.Value))
	}
	if ind.StartValue != nil {
		g.Add(Method(obj, "set_indicator_start_value", ref, *ind.StartValue))
	}
	if ind.EndValue != nil {
		g.Add(Method(obj, "set_indicator_end_value", ref, *ind.EndValue))
	}
	return nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
