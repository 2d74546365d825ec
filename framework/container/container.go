package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the frozen runtime produced by ContainerBuilder.Compile. The
// structural graph — definitions, aliases, parameters — is immutable and safe
// for unsynchronized concurrent reads; the instance cache is the only mutable
// state.
//
// Shared services are built at most once per container lifetime, even under
// concurrent first access: the first caller constructs while concurrent
// callers for the same id block and then receive the cached instance.
//
//	c, err := b.Compile()
//	mailer, err := container.Resolve[*mailer.SMTP](c, "mailer")
type Container struct {
	definitions map[string]*Definition
	ids         []string
	aliases     map[string]string
	params      *ParameterBag
	types       *TypeRegistry
	logger      *zap.Logger

	mu        sync.RWMutex
	instances map[string]any
	flight    singleflight.Group
}

func newContainer(definitions map[string]*Definition, ids []string, aliases map[string]string,
	params *ParameterBag, types *TypeRegistry, logger *zap.Logger) *Container {
	return &Container{
		definitions: definitions,
		ids:         ids,
		aliases:     aliases,
		params:      params,
		types:       types,
		logger:      logger,
		instances:   make(map[string]any),
	}
}

// ── Queries ───────────────────────────────────────────────────────────────────

// Has reports whether id resolves to a definition, without instantiating
// anything or touching the cache.
func (c *Container) Has(id string) bool {
	resolved, err := c.canonical(id)
	if err != nil {
		return false
	}
	_, ok := c.definitions[resolved]
	return ok
}

// ServiceIDs returns every defined service id in registration order.
func (c *Container) ServiceIDs() []string {
	return append([]string(nil), c.ids...)
}

// Parameters returns the resolved parameter bag.
func (c *Container) Parameters() *ParameterBag { return c.params }

// Definition returns the frozen definition for id, aliases resolved.
func (c *Container) Definition(id string) (*Definition, error) {
	resolved, err := c.canonical(id)
	if err != nil {
		return nil, err
	}
	def, ok := c.definitions[resolved]
	if !ok {
		return nil, &ServiceNotFoundError{ID: id}
	}
	return def, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves id, building the service and its dependency closure on first
// demand. Shared instances are cached; non-shared definitions build fresh on
// every call.
func (c *Container) Get(id string) (any, error) {
	return c.get(id, nil)
}

// MustGet is Get panicking on error.
func (c *Container) MustGet(id string) any {
	v, err := c.get(id, nil)
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve resolves id and type-asserts the result.
//
//	mailer, err := container.Resolve[*mailer.SMTP](c, "mailer")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: service [%s] is %T, not %T", id, v, zero)
	}
	return typed, nil
}

// MustResolve is Resolve panicking on error.
func MustResolve[T any](c *Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}

// Inject fills the slot of a synthetic service. It must happen before the
// first Get of that id and exactly once; the rest of the graph is frozen.
func (c *Container) Inject(id string, instance any) error {
	resolved, err := c.canonical(id)
	if err != nil {
		return err
	}
	def, ok := c.definitions[resolved]
	if !ok {
		return &ServiceNotFoundError{ID: id}
	}
	if !def.IsSynthetic() {
		return fmt.Errorf("container: service [%s] is not synthetic", resolved)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.instances[resolved]; exists {
		return fmt.Errorf("container: synthetic service [%s] is already injected", resolved)
	}
	c.instances[resolved] = instance
	return nil
}

// get carries the per-call construction stack used for cycle detection. The
// ordering below is deliberate: the cache is consulted before the stack so a
// setter-injection cycle can pick up the half-initialized shared instance
// (see build), and the stack is checked before the singleflight gate so a
// constructor cycle fails fast instead of deadlocking on its own flight key.
func (c *Container) get(id string, stack []string) (any, error) {
	resolved, err := c.canonical(id)
	if err != nil {
		return nil, err
	}
	def, ok := c.definitions[resolved]
	if !ok {
		return nil, &ServiceNotFoundError{ID: resolved}
	}
	if def.IsAbstract() {
		return nil, &AbstractServiceError{ID: resolved}
	}

	if def.IsShared() {
		c.mu.RLock()
		instance, cached := c.instances[resolved]
		c.mu.RUnlock()
		if cached {
			return instance, nil
		}
	}

	if def.IsSynthetic() {
		return nil, &ServiceNotFoundError{ID: resolved, Synthetic: true}
	}

	for _, seen := range stack {
		if seen == resolved {
			return nil, &CircularDependencyError{Path: append(append([]string(nil), stack...), resolved)}
		}
	}
	stack = append(stack, resolved)

	if !def.IsShared() {
		return c.build(resolved, def, stack)
	}

	v, err, _ := c.flight.Do(resolved, func() (any, error) {
		c.mu.RLock()
		instance, cached := c.instances[resolved]
		c.mu.RUnlock()
		if cached {
			return instance, nil
		}
		return c.build(resolved, def, stack)
	})
	return v, err
}

// canonical follows the alias chain to a definition id, erroring on a chain
// that revisits an id.
func (c *Container) canonical(id string) (string, error) {
	path := []string{id}
	seen := map[string]bool{id: true}
	for {
		target, ok := c.aliases[id]
		if !ok {
			return id, nil
		}
		path = append(path, target)
		if seen[target] {
			return "", &CircularDependencyError{Path: path}
		}
		seen[target] = true
		id = target
	}
}

// ── Construction ──────────────────────────────────────────────────────────────

func (c *Container) build(id string, def *Definition, stack []string) (any, error) {
	c.logger.Debug("building service", zap.String("id", id), zap.String("class", def.Class()))

	args, err := c.resolveArgs(id, def.Arguments(), stack)
	if err != nil {
		return nil, err
	}

	var instance any
	if f := def.Factory(); f != nil {
		instance, err = c.callFactory(id, f, args, stack)
	} else {
		instance, err = c.construct(id, def.Class(), args)
	}
	if err != nil {
		return nil, err
	}

	// Cache before running method calls: a setter-injected peer whose
	// constructor needs this service must find it, even though our own
	// setters have not run yet. Pure constructor cycles still fail above.
	if def.IsShared() {
		c.mu.Lock()
		c.instances[id] = instance
		c.mu.Unlock()
	}

	for _, call := range def.MethodCalls() {
		callArgs, err := c.resolveArgs(id, call.Args, stack)
		if err != nil {
			return nil, err
		}
		if err := c.invokeMethod(id, instance, call.Method, callArgs); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// resolveArgs resolves a value list, honoring ignore-policy omissions.
func (c *Container) resolveArgs(id string, args []any, stack []string) ([]any, error) {
	out := make([]any, 0, len(args))
	for i, arg := range args {
		if isHole(arg) {
			return nil, fmt.Errorf("container: argument %d of service [%s] is not set", i, id)
		}
		v, omit, err := c.resolveValue(id, arg, stack)
		if err != nil {
			return nil, err
		}
		if omit {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// resolveValue turns one definition argument into a runtime value: literals
// pass through, placeholder strings substitute from the parameter bag,
// references recurse into get, slices resolve element-wise.
func (c *Container) resolveValue(id string, arg any, stack []string) (any, bool, error) {
	switch v := arg.(type) {
	case *Reference:
		instance, err := c.get(v.ID(), stack)
		if err != nil {
			var notFound *ServiceNotFoundError
			if errors.As(err, &notFound) {
				switch v.InvalidBehavior() {
				case NilOnInvalid:
					return nil, false, nil
				case IgnoreOnInvalid:
					return nil, true, nil
				}
			}
			return nil, false, err
		}
		return instance, false, nil
	case string:
		resolved, err := c.params.ResolveValue(v)
		return resolved, false, err
	case []any:
		out := make([]any, 0, len(v))
		for _, el := range v {
			r, omit, err := c.resolveValue(id, el, stack)
			if err != nil {
				return nil, false, err
			}
			if omit {
				continue
			}
			out = append(out, r)
		}
		return out, false, nil
	default:
		return arg, false, nil
	}
}

func (c *Container) construct(id, class string, args []any) (any, error) {
	ctor, ok := c.types.constructorFor(class)
	if !ok {
		return nil, fmt.Errorf("container: service [%s]: class [%s] has no registered constructor", id, class)
	}
	out, err := callFunc(ctor.fn, args)
	if err != nil {
		return nil, fmt.Errorf("container: building service [%s]: %w", id, err)
	}
	return takeResult(out)
}

func (c *Container) callFactory(id string, f *Factory, args []any, stack []string) (any, error) {
	var fn reflect.Value
	switch {
	case f.Fn != nil:
		fn = reflect.ValueOf(f.Fn)
		if fn.Kind() != reflect.Func {
			return nil, fmt.Errorf("container: factory of service [%s] is %T, not a func", id, f.Fn)
		}
	case f.Service != nil:
		provider, omit, err := c.resolveValue(id, f.Service, stack)
		if err != nil {
			return nil, err
		}
		if omit || provider == nil {
			return nil, fmt.Errorf("container: factory service [%s] of service [%s] is unavailable", f.Service.ID(), id)
		}
		fn = reflect.ValueOf(provider).MethodByName(f.Method)
		if !fn.IsValid() {
			return nil, fmt.Errorf("container: factory service [%s] has no method [%s]", f.Service.ID(), f.Method)
		}
	default:
		return nil, fmt.Errorf("container: service [%s] has an empty factory", id)
	}

	out, err := callFunc(fn, args)
	if err != nil {
		return nil, fmt.Errorf("container: building service [%s]: %w", id, err)
	}
	return takeResult(out)
}

func (c *Container) invokeMethod(id string, instance any, method string, args []any) error {
	m := reflect.ValueOf(instance).MethodByName(method)
	if !m.IsValid() {
		return fmt.Errorf("container: service [%s] (%T) has no method [%s]", id, instance, method)
	}
	out, err := callFunc(m, args)
	if err != nil {
		return fmt.Errorf("container: calling %s on service [%s]: %w", method, id, err)
	}
	// setters may report failure through a trailing error
	if n := len(out); n > 0 && out[n-1].Type() == errType && !out[n-1].IsNil() {
		return fmt.Errorf("container: calling %s on service [%s]: %w", method, id, out[n-1].Interface().(error))
	}
	return nil
}

// ── Reflective call helpers ───────────────────────────────────────────────────

// callFunc invokes fn with args converted to its parameter types. nil
// arguments become typed zero values; convertible values (an int literal for
// an int64 parameter) are converted.
func callFunc(fn reflect.Value, args []any) ([]reflect.Value, error) {
	ft := fn.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("want at least %d arguments, have %d", fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("want %d arguments, have %d", fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if i < fixed {
			pt = ft.In(i)
		} else {
			pt = ft.In(fixed).Elem()
		}
		v, err := valueFor(arg, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return fn.Call(in), nil
}

func valueFor(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if !isNilable(pt) {
			return reflect.Value{}, fmt.Errorf("cannot pass nil as %s", pt)
		}
		return reflect.Zero(pt), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(pt) {
		return v, nil
	}
	// reflect considers int convertible to string (rune conversion) — that is
	// never what a misconfigured argument wants
	if v.Type().ConvertibleTo(pt) && !(pt.Kind() == reflect.String && v.Kind() != reflect.String) {
		return v.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, pt)
}

// takeResult unwraps a constructor/factory return: (T) or (T, error).
func takeResult(out []reflect.Value) (any, error) {
	switch len(out) {
	case 1:
		return out[0].Interface(), nil
	case 2:
		if !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	default:
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d values", len(out))
	}
}
