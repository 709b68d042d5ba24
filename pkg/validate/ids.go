package validate

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/schema"
)

// ids tracks explicitly declared ids and hands out generated ones that do not
// collide with them.
type ids struct {
	taken    map[string][]string
	counters map[string]int
	errs     schema.Errors
}

func newIDs() *ids {
	return &ids{
		taken:    make(map[string][]string),
		counters: make(map[string]int),
	}
}

func (i *ids) declare(id string, path []string) {
	if first, exists := i.taken[id]; exists {
		prev := &schema.Error{Path: first}
		i.errs = append(i.errs, &schema.Error{
			Path:    append([]string(nil), path...),
			Message: fmt.Sprintf("duplicate id %q, already declared at %s", id, prev.PathString()),
		})
		return
	}
	i.taken[id] = append([]string(nil), path...)
}

func (i *ids) generate(base string) string {
	for {
		i.counters[base]++
		candidate := fmt.Sprintf("%s_%d", base, i.counters[base])
		if _, exists := i.taken[candidate]; exists {
			continue
		}
		i.taken[candidate] = nil
		return candidate
	}
}

// reserve claims a name generated code declares on behalf of widget owner.
// A clash is reported at the declaration of the id already holding it.
func (i *ids) reserve(name, owner string) {
	if first, exists := i.taken[name]; exists {
		i.errs = append(i.errs, &schema.Error{
			Path:    append([]string(nil), first...),
			Message: fmt.Sprintf("duplicate id %q, the name is declared by the generated code of widget %q", name, owner),
		})
		return
	}
	i.taken[name] = nil
}

// assign fills in missing widget and indicator ids in tree order, then
// reserves the names derived from every widget id.
func (i *ids) assign(widgets []model.Widget) {
	i.fill(widgets)
	model.Walk(widgets, func(w *model.Widget, _ *model.Widget) bool {
		for _, name := range w.DerivedNames() {
			i.reserve(name, w.ID)
		}
		return true
	})
}

func (i *ids) fill(widgets []model.Widget) {
	model.Walk(widgets, func(w *model.Widget, _ *model.Widget) bool {
		if w.ID == "" {
			w.ID = i.generate(string(w.Type))
		}
		if w.Meter == nil {
			return true
		}
		for s := range w.Meter.Scales {
			scale := &w.Meter.Scales[s]
			for n := range scale.Indicators {
				ind := &scale.Indicators[n]
				if ind.ID == "" {
					ind.ID = i.generate(w.ID + "_" + string(ind.Type))
				}
			}
		}
		return true
	})
}

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
