package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Transformer mutates a validated document before code generation.
type Transformer interface {
	Transform(ctx context.Context, doc *model.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *model.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *model.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// DefaultStyle returns a transformer that attaches the named style definition
// to every top level widget that references no style of its own. The style
// must be defined in the document.
func DefaultStyle(id string) Transformer {
	return TransformerFunc(func(_ context.Context, doc *model.Document) error {
		found := false
		for _, def := range doc.StyleDefinitions {
			if def.ID == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("default style %q is not defined", id)
		}
		for i := range doc.Widgets {
			if len(doc.Widgets[i].Styles) == 0 {
				doc.Widgets[i].Styles = []string{id}
			}
		}
		return nil
	})
}

// Theme returns a transformer that prepends a style definition built from
// settings and applies it like DefaultStyle. The id must be a valid C
// identifier not already declared by the document.
func Theme(id string, settings []style.Setting) Transformer {
	return TransformerFunc(func(ctx context.Context, doc *model.Document) error {
		valid, err := schema.Identifier(id)
		if err != nil {
			return fmt.Errorf("theme style: %w", err)
		}
		name := valid.(string)
		if _, taken := declaredNames(doc)[name]; taken {
			return fmt.Errorf("theme style %q collides with an existing id", name)
		}
		def := model.StyleDefinition{ID: name, Properties: append([]style.Setting(nil), settings...)}
		doc.StyleDefinitions = append([]model.StyleDefinition{def}, doc.StyleDefinitions...)
		return DefaultStyle(name).Transform(ctx, doc)
	})
}

// declaredNames lists every C++ name the generated code of doc declares.
func declaredNames(doc *model.Document) map[string]struct{} {
	names := map[string]struct{}{doc.ID: {}}
	for _, def := range doc.StyleDefinitions {
		names[def.ID] = struct{}{}
	}
	model.Walk(doc.Widgets, func(w *model.Widget, _ *model.Widget) bool {
		names[w.ID] = struct{}{}
		for _, derived := range w.DerivedNames() {
			names[derived] = struct{}{}
		}
		if w.Meter != nil {
			for _, scale := range w.Meter.Scales {
				for _, ind := range scale.Indicators {
					names[ind.ID] = struct{}{}
				}
			}
		}
		return true
	})
	return names
}
