package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Key describes a single mapping entry validated by a Schema.
type Key struct {
	Name     string
	Required bool
	Default  any
	Validate Validator
	// Exclusive groups keys that must not be supplied together.
	Exclusive string
}

// Required declares a key that must be present.
func Required(name string, validate Validator) Key {
	return Key{Name: name, Required: true, Validate: validate}
}

// Optional declares a key that may be omitted.
func Optional(name string, validate Validator) Key {
	return Key{Name: name, Validate: validate}
}

// WithDefault sets the value used when the key is omitted. Defaults are run
// through the validator so they end up normalized.
func (k Key) WithDefault(value any) Key {
	k.Default = value
	return k
}

// InGroup marks the key as part of a mutually exclusive group.
func (k Key) InGroup(group string) Key {
	k.Exclusive = group
	return k
}

// Schema validates a mapping against an ordered set of keys. Unknown keys are
// rejected unless AllowExtra was called.
type Schema struct {
	keys  []Key
	index map[string]int
	extra bool
}

// New builds a schema from keys. Later keys with the same name replace
// earlier ones.
func New(keys ...Key) *Schema {
	s := &Schema{index: make(map[string]int)}
	s.add(keys...)
	return s
}

// Extend returns a copy of the schema with additional keys.
func (s *Schema) Extend(keys ...Key) *Schema {
	out := &Schema{
		keys:  append([]Key(nil), s.keys...),
		index: make(map[string]int, len(s.index)+len(keys)),
		extra: s.extra,
	}
	for name, idx := range s.index {
		out.index[name] = idx
	}
	out.add(keys...)
	return out
}

// AllowExtra returns a copy that passes unknown keys through unchanged.
func (s *Schema) AllowExtra() *Schema {
	out := s.Extend()
	out.extra = true
	return out
}

// Keys returns the key names in declaration order.
func (s *Schema) Keys() []string {
	names := make([]string, 0, len(s.keys))
	for _, key := range s.keys {
		names = append(names, key.Name)
	}
	return names
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Schema) add(keys ...Key) {
	for _, key := range keys {
		name := strings.TrimSpace(key.Name)
		if name == "" {
			continue
		}
		key.Name = name
		if idx, ok := s.index[name]; ok {
			s.keys[idx] = key
			continue
		}
		s.index[name] = len(s.keys)
		s.keys = append(s.keys, key)
	}
}

// Validator adapts the schema to the Validator signature so schemas can nest.
func (s *Schema) Validator() Validator {
	return func(value any) (any, error) {
		return s.Validate(value)
	}
}

// Validate checks raw against the schema and returns the normalized mapping.
// All key failures of the mapping are reported together.
func (s *Schema) Validate(raw any) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	input, ok := raw.(map[string]any)
	if !ok {
		return nil, Errorf("expected a mapping, got %s", describe(raw))
	}

	out := make(map[string]any, len(input))
	var errs Errors

	for _, name := range sortedKeys(input) {
		if _, known := s.index[name]; known {
			continue
		}
		if s.extra {
			out[name] = input[name]
			continue
		}
		errs = append(errs, &Error{Path: []string{name}, Message: fmt.Sprintf("unknown key %q", name)})
	}

	groups := make(map[string]string)
	for _, key := range s.keys {
		value, present := input[key.Name]
		if present && key.Exclusive != "" {
			if other, taken := groups[key.Exclusive]; taken {
				errs = append(errs, &Error{
					Path:    []string{key.Name},
					Message: fmt.Sprintf("%q and %q are mutually exclusive", other, key.Name),
				})
				continue
			}
			groups[key.Exclusive] = key.Name
		}
		if !present {
			if key.Required {
				errs = append(errs, &Error{Path: []string{key.Name}, Message: "required key is missing"})
				continue
			}
			if key.Default == nil {
				continue
			}
			value = key.Default
		}
		if key.Validate == nil {
			out[key.Name] = value
			continue
		}
		normalized, err := key.Validate(value)
		if err != nil {
			errs = append(errs, Flatten(Prefix(err, key.Name))...)
			continue
		}
		out[key.Name] = normalized
	}

	if err := join(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// TypedSchema selects one of several variant schemas. A node names its
// variant either as the single wrapping key ({label: {...}}) or through a
// discriminator key in the flat form ({type: label, ...}).
type TypedSchema struct {
	typeKey  string
	variants map[string]*Schema
	order    []string
}

// Typed builds an empty typed schema using typeKey as the flat-form
// discriminator.
func Typed(typeKey string) *TypedSchema {
	return &TypedSchema{typeKey: typeKey, variants: make(map[string]*Schema)}
}

// Add registers a variant. Registering the same name twice replaces the
// previous schema.
func (t *TypedSchema) Add(name string, variant *Schema) *TypedSchema {
	name = strings.TrimSpace(name)
	if _, exists := t.variants[name]; !exists {
		t.order = append(t.order, name)
	}
	t.variants[name] = variant
	return t
}

// Variants returns the registered variant names in registration order.
func (t *TypedSchema) Variants() []string {
	return append([]string(nil), t.order...)
}

// Variant returns the schema registered for name.
func (t *TypedSchema) Variant(name string) (*Schema, bool) {
	s, ok := t.variants[name]
	return s, ok
}

// Validate determines the variant of raw and validates its body.
func (t *TypedSchema) Validate(raw any) (string, map[string]any, error) {
	input, ok := raw.(map[string]any)
	if !ok {
		return "", nil, Errorf("expected a mapping, got %s", describe(raw))
	}

	if discriminator, flat := input[t.typeKey]; flat {
		name, ok := discriminator.(string)
		if !ok {
			return "", nil, &Error{Path: []string{t.typeKey}, Message: fmt.Sprintf("expected a string, got %s", describe(discriminator))}
		}
		name = strings.ToLower(strings.TrimSpace(name))
		variant, known := t.variants[name]
		if !known {
			return "", nil, &Error{Path: []string{t.typeKey}, Message: fmt.Sprintf("unknown type %q, expected one of %s", name, strings.Join(t.order, ", "))}
		}
		body := make(map[string]any, len(input)-1)
		for k, v := range input {
			if k == t.typeKey {
				continue
			}
			if _, clash := t.variants[k]; clash {
				return "", nil, &Error{Path: []string{k}, Message: fmt.Sprintf("%q and %q are mutually exclusive", t.typeKey, k)}
			}
			body[k] = v
		}
		out, err := variant.Validate(body)
		if err != nil {
			return "", nil, err
		}
		return name, out, nil
	}

	var found []string
	for _, name := range t.order {
		if _, present := input[name]; present {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return "", nil, Errorf("exactly one of %s is required", strings.Join(t.order, ", "))
	case 1:
	default:
		return "", nil, &Error{Path: []string{found[1]}, Message: fmt.Sprintf("%q and %q are mutually exclusive", found[0], found[1])}
	}

	name := found[0]
	for _, key := range sortedKeys(input) {
		if key != name {
			return "", nil, &Error{Path: []string{key}, Message: fmt.Sprintf("unknown key %q next to %q", key, name)}
		}
	}
	out, err := t.variants[name].Validate(input[name])
	if err != nil {
		return "", nil, Prefix(err, name)
	}
	return name, out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
