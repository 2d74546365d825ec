package container

// ── Building blocks ───────────────────────────────────────────────────────────

// Attributes is one attribute map attached to a tag occurrence.
type Attributes map[string]any

// MethodCall is one setter-injection call, run after construction in
// registration order.
type MethodCall struct {
	Method string
	Args   []any
}

// Factory describes how to build a service when a plain constructor is not
// enough. Exactly one of Fn or Service is set:
//
//	// Symfony: $def->setFactory([new Reference('doctrine'), 'getRepository'])
//	def.SetFactoryService(container.NewReference("doctrine"), "Repository")
//
//	// Symfony: $def->setFactory('App\Mailer::create')
//	def.SetFactory(mailer.New)
type Factory struct {
	Fn      any        // a func, invoked with the resolved arguments
	Service *Reference // service providing the factory method
	Method  string     // method name on Service
}

// hole marks an argument position that was skipped by a sparse SetArgument
// call. The AutowirePass may fill it; one surviving to build time is an error.
type hole struct{}

func isHole(v any) bool {
	_, ok := v.(hole)
	return ok
}

// ── Definition ────────────────────────────────────────────────────────────────

// Definition is the mutable blueprint for one service — mirrors Symfony's
// Symfony\Component\DependencyInjection\Definition.
//
// All setters return the Definition itself for chaining:
//
//	b.Register("newsletter.manager", "newsletter.Manager").
//	    AddArgument(container.NewReference("mailer")).
//	    AddArgument("%app.name%").
//	    AddMethodCall("SetLogger", container.NewReference("logger")).
//	    AddTag("report.generator", container.Attributes{"format": "text"})
//
// A Definition knows nothing about the builder that holds it; it is pure
// state, mutated only before Compile.
type Definition struct {
	class     string
	args      []any
	calls     []MethodCall
	tags      map[string][]Attributes
	factory   *Factory
	parent    string
	public    bool
	shared    bool
	autowired bool
	lazy      bool
	synthetic bool
	abstract  bool
}

// NewDefinition creates a Definition for the given class (a TypeRegistry key).
// Definitions are shared and public by default.
func NewDefinition(class string) *Definition {
	return &Definition{
		class:  class,
		tags:   make(map[string][]Attributes),
		public: true,
		shared: true,
	}
}

// ── Class ─────────────────────────────────────────────────────────────────────

func (d *Definition) SetClass(class string) *Definition {
	d.class = class
	return d
}

func (d *Definition) Class() string { return d.class }

// ── Arguments ─────────────────────────────────────────────────────────────────

// AddArgument appends a constructor argument: a literal, a "%param%"
// placeholder string, a *Reference, or a nested []any of the same.
func (d *Definition) AddArgument(arg any) *Definition {
	d.args = append(d.args, arg)
	return d
}

// SetArgument sets the argument at index, extending the list with unset
// positions when index is past the current end. Unset positions must be
// filled — by a later SetArgument or by autowiring — before the service
// can be built.
func (d *Definition) SetArgument(index int, arg any) *Definition {
	for len(d.args) <= index {
		d.args = append(d.args, hole{})
	}
	d.args[index] = arg
	return d
}

// SetArguments replaces the whole argument list.
func (d *Definition) SetArguments(args []any) *Definition {
	d.args = args
	return d
}

// Arguments returns a copy of the argument list.
func (d *Definition) Arguments() []any {
	out := make([]any, len(d.args))
	copy(out, d.args)
	return out
}

// ── Method calls ──────────────────────────────────────────────────────────────

// AddMethodCall schedules a setter-injection call, run after construction.
//
//	// Symfony: $def->addMethodCall('setMailer', [new Reference('mailer')])
//	def.AddMethodCall("SetMailer", container.NewReference("mailer"))
func (d *Definition) AddMethodCall(method string, args ...any) *Definition {
	d.calls = append(d.calls, MethodCall{Method: method, Args: args})
	return d
}

// MethodCalls returns a copy of the scheduled calls, in registration order.
func (d *Definition) MethodCalls() []MethodCall {
	out := make([]MethodCall, len(d.calls))
	copy(out, d.calls)
	return out
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// AddTag appends one occurrence of a tag. The same tag may be added multiple
// times with different attributes; order of addition is preserved.
//
//	// Symfony: $def->addTag('report.generator', ['format' => 'csv'])
//	def.AddTag("report.generator", container.Attributes{"format": "csv"})
func (d *Definition) AddTag(name string, attrs Attributes) *Definition {
	if attrs == nil {
		attrs = Attributes{}
	}
	d.tags[name] = append(d.tags[name], attrs)
	return d
}

// HasTag reports whether the definition carries at least one occurrence of name.
func (d *Definition) HasTag(name string) bool {
	return len(d.tags[name]) > 0
}

// Tag returns the attribute maps for name, in order of addition.
func (d *Definition) Tag(name string) []Attributes {
	return append([]Attributes(nil), d.tags[name]...)
}

// Tags returns all tags with their attribute lists.
func (d *Definition) Tags() map[string][]Attributes {
	out := make(map[string][]Attributes, len(d.tags))
	for name, attrs := range d.tags {
		out[name] = append([]Attributes(nil), attrs...)
	}
	return out
}

// ClearTag removes every occurrence of name.
func (d *Definition) ClearTag(name string) *Definition {
	delete(d.tags, name)
	return d
}

// ── Factory ───────────────────────────────────────────────────────────────────

// SetFactory builds the service by calling fn with the resolved arguments
// instead of the class constructor. fn must be a func returning the instance,
// optionally with a trailing error.
func (d *Definition) SetFactory(fn any) *Definition {
	d.factory = &Factory{Fn: fn}
	return d
}

// SetFactoryService builds the service by calling the named method on another
// service, itself resolved through the container first.
func (d *Definition) SetFactoryService(service *Reference, method string) *Definition {
	d.factory = &Factory{Service: service, Method: method}
	return d
}

func (d *Definition) Factory() *Factory { return d.factory }

// ── Parent ────────────────────────────────────────────────────────────────────

// SetParent names another definition as the template this one inherits class,
// arguments, method calls and tags from. Resolved during Compile.
//
//	// Symfony: new ChildDefinition('report.generator.abstract')
//	def.SetParent("report.generator.abstract")
func (d *Definition) SetParent(id string) *Definition {
	d.parent = id
	return d
}

func (d *Definition) Parent() string { return d.parent }

// ── Flags ─────────────────────────────────────────────────────────────────────

func (d *Definition) SetPublic(public bool) *Definition {
	d.public = public
	return d
}

func (d *Definition) IsPublic() bool { return d.public }

// SetShared controls memoization: shared definitions produce exactly one
// instance per container lifetime, non-shared a fresh one on every Get.
func (d *Definition) SetShared(shared bool) *Definition {
	d.shared = shared
	return d
}

func (d *Definition) IsShared() bool { return d.shared }

// SetAutowired lets the AutowirePass fill missing constructor arguments from
// the declared parameter types of the class constructor.
func (d *Definition) SetAutowired(autowired bool) *Definition {
	d.autowired = autowired
	return d
}

func (d *Definition) IsAutowired() bool { return d.autowired }

// SetLazy is declarative metadata carried through compilation. The compiled
// container always constructs on first Get, so every service is effectively
// lazy; the flag exists for introspection tooling.
func (d *Definition) SetLazy(lazy bool) *Definition {
	d.lazy = lazy
	return d
}

func (d *Definition) IsLazy() bool { return d.lazy }

// SetSynthetic marks a service whose instance is produced outside the
// container and injected into the compiled Container before first use.
func (d *Definition) SetSynthetic(synthetic bool) *Definition {
	d.synthetic = synthetic
	return d
}

func (d *Definition) IsSynthetic() bool { return d.synthetic }

// SetAbstract marks the definition as a pure template: it can be the parent
// of other definitions but can never be the target of Get.
func (d *Definition) SetAbstract(abstract bool) *Definition {
	d.abstract = abstract
	return d
}

func (d *Definition) IsAbstract() bool { return d.abstract }
