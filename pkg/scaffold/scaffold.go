// Package scaffold builds a starter GUI configuration interactively. The
// answers are collected through a PromptDriver, validated with the same rules
// as `generate`, and returned as YAML.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/validate"
)

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Scaffolder) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Scaffolder) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxWidgets caps the number of widgets the flow offers to add.
func WithMaxWidgets(n int) Option {
	return func(s *Scaffolder) {
		if n > 0 {
			s.maxWidgets = n
		}
	}
}

// Scaffolder drives the prompts.
type Scaffolder struct {
	driver     PromptDriver
	log        *logrus.Entry
	maxWidgets int
}

// New constructs a Scaffolder. Without WithPromptDriver, Run fails with
// ErrNoDriver.
func New(options ...Option) *Scaffolder {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := &Scaffolder{log: logrus.NewEntry(log), maxWidgets: 32}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// scaffoldTypes lists the widget types offered by the flow, in prompt order.
var scaffoldTypes = []model.WidgetType{
	model.WidgetLabel,
	model.WidgetCheckbox,
	model.WidgetBar,
	model.WidgetArc,
	model.WidgetMeter,
	model.WidgetLine,
	model.WidgetImage,
}

type document struct {
	ID        string              `yaml:"id"`
	DisplayID string              `yaml:"display_id"`
	Widgets   []map[string]widget `yaml:"widgets,omitempty"`
}

type widget struct {
	ID         string                   `yaml:"id,omitempty"`
	Position   string                   `yaml:"position"`
	Dimensions string                   `yaml:"dimensions"`
	Text       string                   `yaml:"text,omitempty"`
	SwitchID   string                   `yaml:"switch_id,omitempty"`
	MinValue   *int                     `yaml:"min_value,omitempty"`
	MaxValue   *int                     `yaml:"max_value,omitempty"`
	Points     []string                 `yaml:"points,omitempty"`
	Src        string                   `yaml:"src,omitempty"`
	Scales     []map[string]interface{} `yaml:"scales,omitempty"`
}

// Run asks for the component, display and widgets and returns the resulting
// configuration as YAML.
func (s *Scaffolder) Run(ctx context.Context) ([]byte, error) {
	if s.driver == nil {
		return nil, ErrNoDriver
	}

	id, err := s.driver.Input(ctx, InputConfig{
		Message:   "GUI component id",
		Default:   "gui",
		Validator: identifier,
	})
	if err != nil {
		return nil, err
	}
	display, err := s.driver.Input(ctx, InputConfig{
		Message:   "Display id",
		Help:      "id of the display component the GUI draws on",
		Validator: identifier,
	})
	if err != nil {
		return nil, err
	}
	doc := document{ID: id, DisplayID: display}

	for len(doc.Widgets) < s.maxWidgets {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add a widget?",
			Default: len(doc.Widgets) == 0,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		t, w, err := s.askWidget(ctx)
		if err != nil {
			return nil, err
		}
		doc.Widgets = append(doc.Widgets, map[string]widget{string(t): w})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("scaffold: encode: %w", err)
	}
	if err := check(out); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"stage": "scaffold", "widgets": len(doc.Widgets)}).Debug("configuration scaffolded")
	return out, nil
}

func (s *Scaffolder) askWidget(ctx context.Context) (model.WidgetType, widget, error) {
	options := make([]string, len(scaffoldTypes))
	for i, t := range scaffoldTypes {
		options[i] = string(t)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Widget type", Options: options})
	if err != nil {
		return "", widget{}, err
	}
	if idx < 0 || idx >= len(scaffoldTypes) {
		return "", widget{}, fmt.Errorf("scaffold: invalid widget selection %d", idx)
	}
	t := scaffoldTypes[idx]

	var w widget
	if w.ID, err = s.driver.Input(ctx, InputConfig{
		Message:   "Widget id",
		Help:      "leave empty to generate one",
		Validator: optional(identifier),
	}); err != nil {
		return "", widget{}, err
	}
	if w.Position, err = s.driver.Input(ctx, InputConfig{
		Message:   "Position (x,y)",
		Default:   "0,0",
		Validator: check1(schema.Position),
	}); err != nil {
		return "", widget{}, err
	}
	if w.Dimensions, err = s.driver.Input(ctx, InputConfig{
		Message:   "Dimensions (WIDTHxHEIGHT)",
		Default:   "100x40",
		Validator: check1(schema.Dimensions),
	}); err != nil {
		return "", widget{}, err
	}

	switch t {
	case model.WidgetLabel:
		w.Text, err = s.driver.Input(ctx, InputConfig{Message: "Text"})
	case model.WidgetCheckbox:
		if w.Text, err = s.driver.Input(ctx, InputConfig{Message: "Text"}); err != nil {
			break
		}
		w.SwitchID, err = s.driver.Input(ctx, InputConfig{
			Message:   "Switch id",
			Help:      "id of the switch the checkbox mirrors",
			Validator: identifier,
		})
	case model.WidgetBar, model.WidgetArc:
		err = s.askRange(ctx, &w)
	case model.WidgetMeter:
		err = s.askMeter(ctx, &w)
	case model.WidgetLine:
		var raw string
		raw, err = s.driver.Input(ctx, InputConfig{
			Message:   "Points (x,y separated by spaces)",
			Default:   "0,0 100,0",
			Validator: points,
		})
		w.Points = strings.Fields(raw)
	case model.WidgetImage:
		w.Src, err = s.driver.Input(ctx, InputConfig{
			Message:   "Image id",
			Validator: identifier,
		})
	}
	if err != nil {
		return "", widget{}, err
	}
	return t, w, nil
}

func (s *Scaffolder) askRange(ctx context.Context, w *widget) error {
	lo, err := s.askInt(ctx, "Minimum value", "0")
	if err != nil {
		return err
	}
	hi, err := s.askInt(ctx, "Maximum value", "100")
	if err != nil {
		return err
	}
	for hi <= lo {
		if err := s.driver.Info(ctx, fmt.Sprintf("maximum value must be greater than %d", lo)); err != nil {
			return err
		}
		if hi, err = s.askInt(ctx, "Maximum value", strconv.Itoa(lo+1)); err != nil {
			return err
		}
	}
	w.MinValue, w.MaxValue = &lo, &hi
	return nil
}

func (s *Scaffolder) askMeter(ctx context.Context, w *widget) error {
	if err := s.askRange(ctx, w); err != nil {
		return err
	}
	scale := map[string]interface{}{
		validate.KeyRangeFrom: *w.MinValue,
		validate.KeyRangeTo:   *w.MaxValue,
	}
	w.MinValue, w.MaxValue = nil, nil

	needle, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add a needle indicator?", Default: true})
	if err != nil {
		return err
	}
	if needle {
		scale[validate.KeyIndicators] = []map[string]interface{}{
			{string(model.IndicatorLine): map[string]interface{}{validate.KeyValue: scale[validate.KeyRangeFrom]}},
		}
	}
	w.Scales = []map[string]interface{}{scale}
	return nil
}

func (s *Scaffolder) askInt(ctx context.Context, msg, def string) (int, error) {
	raw, err := s.driver.Input(ctx, InputConfig{Message: msg, Default: def, Validator: check1(schema.Int)})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("scaffold: %s: %w", strings.ToLower(msg), err)
	}
	return n, nil
}

// check runs the scaffolded YAML through the regular document pipeline.
func check(out []byte) error {
	doc, err := config.NewDocument(config.SourceFromBytes("scaffold", nil), out)
	if err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	raw, err := doc.Decode()
	if err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	if _, err := validate.New().Document(raw); err != nil {
		return fmt.Errorf("scaffold: generated configuration is invalid: %w", err)
	}
	return nil
}

func check1(v schema.Validator) func(string) error {
	return func(s string) error {
		_, err := v(strings.TrimSpace(s))
		return err
	}
}

func identifier(s string) error {
	return check1(schema.Identifier)(s)
}

func optional(fn func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return fn(s)
	}
}

func points(s string) error {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return fmt.Errorf("a line needs at least two points")
	}
	for _, f := range fields {
		if _, err := schema.Position(f); err != nil {
			return err
		}
	}
	return nil
}
