package scaffold

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/validate"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if val == "" {
		val = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRunBuildsValidConfiguration(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"gui_main", "tft",
			"", "10,10", "200x20", "Hello",
			"level", "0,40", "200x10", "0", "0", "50",
			"", "0,60", "120x120", "", "10",
		},
		selectIdx: []int{0, 2, 4},
		confirm:   []bool{true, true, true, true, false},
	}
	out, err := New(WithPromptDriver(driver)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(out, &raw); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	doc, err := validate.New().Document(raw)
	if err != nil {
		t.Fatalf("output does not validate: %v\n%s", err, out)
	}

	var ids []string
	var types []model.WidgetType
	for _, w := range doc.Widgets {
		ids = append(ids, w.ID)
		types = append(types, w.Type)
	}
	if diff := cmp.Diff([]string{"label_1", "level", "meter_1"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.WidgetType{model.WidgetLabel, model.WidgetBar, model.WidgetMeter}, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if bar := doc.Widgets[1].Bar; bar == nil || bar.MaxValue != 50 {
		t.Fatalf("unexpected bar %+v", bar)
	}
	meter := doc.Widgets[2].Meter
	if meter == nil || len(meter.Scales) != 1 || len(meter.Scales[0].Indicators) != 1 {
		t.Fatalf("unexpected meter %+v", meter)
	}
	if meter.Scales[0].RangeTo != 10 {
		t.Fatalf("unexpected scale range %+v", meter.Scales[0])
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "greater than 0") {
		t.Fatalf("expected one range hint, got %v", driver.infoMessages)
	}
	if !strings.HasPrefix(string(out), "id: gui_main\ndisplay_id: tft\n") {
		t.Fatalf("unexpected key order:\n%s", out)
	}
}

func TestRunWithoutWidgets(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "tft"}, confirm: []bool{false}}
	out, err := New(WithPromptDriver(driver)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff("id: gui\ndisplay_id: tft\n", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMaxWidgets(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"gui", "tft", "", "", "", "x"},
		selectIdx: []int{0},
		confirm:   []bool{true},
	}
	if _, err := New(WithPromptDriver(driver), WithMaxWidgets(1)).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.confirmPos != 1 {
		t.Fatalf("expected a single add prompt, got %d", driver.confirmPos)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := New().Run(context.Background()); !errors.Is(err, ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}

	invalid := &stubDriver{inputs: []string{"gui", "1tft"}}
	if _, err := New(WithPromptDriver(invalid)).Run(context.Background()); err == nil {
		t.Fatal("expected invalid display id to fail")
	}

	aborting := &abortDriver{stubDriver{inputs: []string{"gui", "tft"}}}
	if _, err := New(WithPromptDriver(aborting)).Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct {
	stubDriver
}

func (a *abortDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return false, ErrAborted
}

func TestPointsValidator(t *testing.T) {
	if err := points("0,0 10,10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "0,0", "0,0 a,b"} {
		if err := points(bad); err == nil {
			t.Errorf("points(%q) should fail", bad)
		}
	}
}

func TestSurveyDriverWithoutTerminal(t *testing.T) {
	var out strings.Builder
	driver := NewSurveyDriver(&out)

	if err := driver.Info(context.Background(), "wrote gui.yaml"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "wrote gui.yaml\n" {
		t.Fatalf("unexpected info output %q", out.String())
	}

	if _, err := driver.Select(context.Background(), SelectConfig{Message: "Widget type"}); err == nil {
		t.Fatal("expected select without options to fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Input(ctx, InputConfig{Message: "Component id"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled input, got %v", err)
	}
	if _, err := driver.Confirm(ctx, ConfirmConfig{Message: "Add another widget?"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled confirm, got %v", err)
	}
	if err := driver.Info(ctx, "ignored"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled info, got %v", err)
	}
}
