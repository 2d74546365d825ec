package container

import (
	"fmt"
	"reflect"
	"strings"
)

// ── AutowirePass ──────────────────────────────────────────────────────────────

// AutowirePass fills the missing constructor arguments of every definition
// flagged autowired, by matching constructor parameter types against the
// instance types other definitions produce — mirrors Symfony's AutowirePass,
// with the type registry standing in for PHP's constructor reflection.
//
// Resolution per parameter, in order:
//  1. an explicitly supplied argument is never touched;
//  2. a definition or alias registered under the parameter's exact type name
//     (see TypeKey) wins outright;
//  3. exactly one definition producing a compatible type binds a Reference;
//  4. more than one candidate is an error — the pass never guesses;
//  5. zero candidates bind nil when the parameter is a non-interface nilable
//     kind (ptr, map, slice, func, chan), drop the parameter when it is
//     variadic, and fail otherwise — interface parameters always require a
//     producing service.
type AutowirePass struct{}

// NewAutowirePass creates the pass. It is part of the standard pipeline; a
// separate instance is only needed for custom stage placement.
func NewAutowirePass() *AutowirePass {
	return &AutowirePass{}
}

func (p *AutowirePass) Process(b *ContainerBuilder) error {
	for _, id := range b.ServiceIDs() {
		def, err := b.GetDefinition(id)
		if err != nil {
			return err
		}
		if !def.IsAutowired() || def.IsAbstract() || def.IsSynthetic() {
			continue
		}
		// factories own their argument lists
		if def.Factory() != nil {
			continue
		}
		if err := p.autowire(b, id, def); err != nil {
			return err
		}
	}
	return nil
}

func (p *AutowirePass) autowire(b *ContainerBuilder, id string, def *Definition) error {
	ctor, ok := b.Types().constructorFor(def.Class())
	if !ok {
		return &AutowireError{ID: id, Reason: fmt.Sprintf("class [%s] has no registered constructor", def.Class())}
	}

	args := def.Arguments()
	ft := ctor.typ
	n := ft.NumIn()

	for i := 0; i < n; i++ {
		if ft.IsVariadic() && i == n-1 {
			// trailing variadic is optional: drop it when nothing fills it
			if i < len(args) && isHole(args[i]) {
				args = args[:i]
			}
			break
		}
		if i < len(args) && !isHole(args[i]) {
			continue
		}

		arg, err := p.resolveParameter(b, id, ft.In(i), i)
		if err != nil {
			return err
		}
		if i < len(args) {
			args[i] = arg
		} else {
			args = append(args, arg)
		}
	}

	def.SetArguments(args)
	return nil
}

func (p *AutowirePass) resolveParameter(b *ContainerBuilder, id string, pt reflect.Type, pos int) (any, error) {
	// exact type-name registration takes precedence over the candidate scan
	key := pt.String()
	if b.HasDefinition(key) || b.HasAlias(key) {
		return NewReference(key), nil
	}

	candidates := p.candidatesFor(b, pt)
	switch len(candidates) {
	case 1:
		return NewReference(candidates[0]), nil
	case 0:
		// An interface parameter is a required collaborator: zero candidates
		// is a wiring hole, not an optional dependency, so it fails here.
		// Other nilable kinds (ptr, map, slice, func, chan) bind nil.
		if pt.Kind() != reflect.Interface && isNilable(pt) {
			return nil, nil
		}
		return nil, &AutowireError{
			ID:     id,
			Reason: fmt.Sprintf("no service produces type %s for argument %d", pt, pos),
		}
	default:
		return nil, &AutowireError{
			ID: id,
			Reason: fmt.Sprintf("ambiguous type %s for argument %d: candidates [%s]",
				pt, pos, strings.Join(candidates, ", ")),
		}
	}
}

// candidatesFor scans definitions in registration order for those producing
// an instance type assignable to pt (identical, or implementing pt when pt
// is an interface).
func (p *AutowirePass) candidatesFor(b *ContainerBuilder, pt reflect.Type) []string {
	var out []string
	for _, id := range b.ServiceIDs() {
		def, err := b.GetDefinition(id)
		if err != nil || def.IsAbstract() {
			continue
		}
		rt, ok := producedType(b, def)
		if !ok {
			continue
		}
		if rt.AssignableTo(pt) {
			out = append(out, id)
		}
	}
	return out
}

// producedType reports the instance type a definition builds: the factory
// func's return type when one is set, the class constructor's otherwise.
// Service-method factories are opaque until runtime and yield no type.
func producedType(b *ContainerBuilder, def *Definition) (reflect.Type, bool) {
	if f := def.Factory(); f != nil {
		if f.Fn == nil {
			return nil, false
		}
		ft := reflect.TypeOf(f.Fn)
		if ft == nil || ft.Kind() != reflect.Func || ft.NumOut() == 0 {
			return nil, false
		}
		return ft.Out(0), true
	}
	return b.Types().ReturnType(def.Class())
}
