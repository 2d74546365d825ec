package container

import (
	"fmt"
	"regexp"

	"github.com/spf13/cast"
)

// %name% anywhere in a string; %% is a literal percent sign.
var (
	placeholderRe = regexp.MustCompile(`%%|%([^%\s]+)%`)
	exactRe       = regexp.MustCompile(`^%([^%\s]+)%$`)
)

// ── ParameterBag ──────────────────────────────────────────────────────────────

// ParameterBag is the flat name → value configuration registry — mirrors
// Symfony's ParameterBag. Values may themselves contain %other.name%
// placeholders, resolved recursively with cycle detection.
//
//	bag.Set("db.host", "localhost")
//	bag.Set("db.dsn", "postgres://%db.host%:5432")
//
// Substitution preserves types: a string that is exactly one placeholder
// yields the parameter's native value (an int parameter stays an int), while
// a placeholder embedded in a larger string substitutes textually.
type ParameterBag struct {
	params map[string]any
	names  []string // insertion order
}

// NewParameterBag creates an empty bag.
func NewParameterBag() *ParameterBag {
	return &ParameterBag{params: make(map[string]any)}
}

// Set stores a parameter value. Setting an existing name overwrites it.
func (b *ParameterBag) Set(name string, value any) {
	if _, ok := b.params[name]; !ok {
		b.names = append(b.names, name)
	}
	b.params[name] = value
}

// Get returns the raw (unresolved) value for name.
func (b *ParameterBag) Get(name string) (any, error) {
	v, ok := b.params[name]
	if !ok {
		return nil, &ParameterNotFoundError{Name: name}
	}
	return v, nil
}

// Has reports whether name is defined.
func (b *ParameterBag) Has(name string) bool {
	_, ok := b.params[name]
	return ok
}

// Names returns all parameter names in insertion order.
func (b *ParameterBag) Names() []string {
	return append([]string(nil), b.names...)
}

// All returns a copy of the raw parameter map.
func (b *ParameterBag) All() map[string]any {
	out := make(map[string]any, len(b.params))
	for k, v := range b.params {
		out[k] = v
	}
	return out
}

// ── Typed getters ─────────────────────────────────────────────────────────────

// GetString resolves name and coerces the result to a string.
func (b *ParameterBag) GetString(name string) (string, error) {
	v, err := b.resolveParameter(name, nil)
	if err != nil {
		return "", err
	}
	return cast.ToStringE(v)
}

// GetInt resolves name and coerces the result to an int.
func (b *ParameterBag) GetInt(name string) (int, error) {
	v, err := b.resolveParameter(name, nil)
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(v)
}

// GetBool resolves name and coerces the result to a bool.
func (b *ParameterBag) GetBool(name string) (bool, error) {
	v, err := b.resolveParameter(name, nil)
	if err != nil {
		return false, err
	}
	return cast.ToBoolE(v)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve substitutes every placeholder in every parameter, in place. Called
// once by Compile so the frozen container hands out fully-resolved values.
func (b *ParameterBag) Resolve() error {
	for _, name := range b.names {
		v, err := b.resolveParameter(name, nil)
		if err != nil {
			return err
		}
		b.params[name] = v
	}
	return nil
}

// ResolveValue substitutes placeholders inside an arbitrary value: strings
// are expanded, slices and attribute maps recurse element-wise, everything
// else passes through untouched.
func (b *ParameterBag) ResolveValue(v any) (any, error) {
	return b.resolveValue(v, nil)
}

func (b *ParameterBag) resolveValue(v any, resolving []string) (any, error) {
	switch x := v.(type) {
	case string:
		return b.resolveString(x, resolving)
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			r, err := b.resolveValue(el, resolving)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			r, err := b.resolveValue(el, resolving)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case Attributes:
		out := make(Attributes, len(x))
		for k, el := range x {
			r, err := b.resolveValue(el, resolving)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

// resolveParameter resolves the named parameter, tracking the chain of names
// currently being resolved to detect cycles.
func (b *ParameterBag) resolveParameter(name string, resolving []string) (any, error) {
	for _, seen := range resolving {
		if seen == name {
			return nil, &CircularDependencyError{Path: append(append([]string(nil), resolving...), name)}
		}
	}
	raw, err := b.Get(name)
	if err != nil {
		return nil, err
	}
	return b.resolveValue(raw, append(resolving, name))
}

func (b *ParameterBag) resolveString(s string, resolving []string) (any, error) {
	// exactly one placeholder: keep the parameter's native type
	if m := exactRe.FindStringSubmatch(s); m != nil {
		return b.resolveParameter(m[1], resolving)
	}

	var firstErr error
	out := placeholderRe.ReplaceAllStringFunc(s, func(tok string) string {
		if tok == "%%" {
			return "%"
		}
		name := tok[1 : len(tok)-1]
		v, err := b.resolveParameter(name, resolving)
		if err == nil {
			var text string
			text, err = cast.ToStringE(v)
			if err == nil {
				return text
			}
			err = fmt.Errorf("container: parameter [%s] cannot be embedded in a string: %w", name, err)
		}
		if firstErr == nil {
			firstErr = err
		}
		return tok
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
