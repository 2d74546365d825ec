package container

import (
	"fmt"
	"reflect"
	"sync"
)

// ── TypeRegistry ──────────────────────────────────────────────────────────────

// Go cannot instantiate a type from its name the way PHP's `new $class` can,
// so the "class" of a Definition is a key into a TypeRegistry: a map from
// type name to constructor function, built at registration time. The
// registry supplies everything autowiring needs — parameter types,
// nilability, variadic-ness, return types for candidate matching.

// constructor is the introspected shape of one registered constructor func.
type constructor struct {
	fn         reflect.Value
	typ        reflect.Type // the func type
	returns    reflect.Type // first return value
	returnsErr bool         // trailing error return
}

// TypeRegistry maps class names to constructor functions.
//
//	types := container.NewTypeRegistry()
//	types.Register("mailer.SMTP", mailer.NewSMTP)        // func(host string) *mailer.SMTP
//	types.Register("report.Writer", report.NewWriter)    // func(m mailer.Transport) (*report.Writer, error)
type TypeRegistry struct {
	mu    sync.RWMutex
	ctors map[string]*constructor
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{ctors: make(map[string]*constructor)}
}

// Register binds class to a constructor function. ctor must be a func with
// at least one return value; a second return value, if present, must be an
// error. Registering an existing class replaces the prior constructor.
func (r *TypeRegistry) Register(class string, ctor any) error {
	c, err := introspect(ctor)
	if err != nil {
		return fmt.Errorf("container: cannot register class [%s]: %w", class, err)
	}
	r.mu.Lock()
	r.ctors[class] = c
	r.mu.Unlock()
	return nil
}

// MustRegister is Register panicking on error, for bootstrap wiring.
func (r *TypeRegistry) MustRegister(class string, ctor any) *TypeRegistry {
	if err := r.Register(class, ctor); err != nil {
		panic(err)
	}
	return r
}

// Has reports whether class has a registered constructor.
func (r *TypeRegistry) Has(class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[class]
	return ok
}

// ReturnType reports the instance type produced by the constructor for class.
func (r *TypeRegistry) ReturnType(class string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.ctors[class]
	if !ok {
		return nil, false
	}
	return c.returns, true
}

func (r *TypeRegistry) constructorFor(class string) (*constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.ctors[class]
	return c, ok
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func introspect(fn any) (*constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a func, got %T", fn)
	}
	t := v.Type()
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errType {
			return nil, fmt.Errorf("constructor must return an instance, got a bare error")
		}
		return &constructor{fn: v, typ: t, returns: t.Out(0)}, nil
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("second return value must be error, got %s", t.Out(1))
		}
		return &constructor{fn: v, typ: t, returns: t.Out(0), returnsErr: true}, nil
	default:
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d values", t.NumOut())
	}
}

// ── Type helpers ──────────────────────────────────────────────────────────────

// TypeKey returns the canonical type name of v, useful as a service id when
// registering a service under its own type so that autowiring binds it by
// exact name before scanning for candidates.
//
//	key := container.TypeKey((*mailer.Transport)(nil)) // "mailer.Transport"
//	b.Register(key, "mailer.SMTP").SetAutowired(true)
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return t.String()
}

// isNilable reports whether t can hold nil — the Go stand-in for a nullable
// constructor parameter.
func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
