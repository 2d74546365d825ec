package container

import (
	"fmt"

	"go.uber.org/zap"
)

// ── ContainerBuilder ──────────────────────────────────────────────────────────

// ContainerBuilder owns the mutable build-time state — definitions, aliases,
// parameters, compiler passes — and turns it into a frozen Container via
// Compile. Mirrors Symfony's ContainerBuilder.
//
//	types := container.NewTypeRegistry()
//	types.MustRegister("mailer.SMTP", mailer.NewSMTP)
//
//	b := container.NewContainerBuilder(types)
//	b.SetParameter("mail.host", "smtp.example.com")
//	b.Register("mailer", "mailer.SMTP").AddArgument("%mail.host%")
//
//	c, err := b.Compile()
//	m, err := container.Resolve[*mailer.SMTP](c, "mailer")
//
// The build phase is a one-shot, single-threaded bootstrap step; the builder
// does no locking. Mutating a frozen builder panics with a
// *FrozenContainerError — that is a programming error, not a runtime
// condition.
type ContainerBuilder struct {
	definitions map[string]*Definition
	ids         []string // registration order
	aliases     map[string]string
	params      *ParameterBag
	types       *TypeRegistry
	passes      *passConfig
	logger      *zap.Logger
	frozen      bool

	// pre-freeze Get support: shares one instance cache across calls
	bootstrap *Container
}

// NewContainerBuilder creates a builder backed by the given type registry.
// A nil registry gets an empty one, usable with factory-only definitions.
func NewContainerBuilder(types *TypeRegistry) *ContainerBuilder {
	if types == nil {
		types = NewTypeRegistry()
	}
	return &ContainerBuilder{
		definitions: make(map[string]*Definition),
		aliases:     make(map[string]string),
		params:      NewParameterBag(),
		types:       types,
		passes:      newPassConfig(),
		logger:      zap.NewNop(),
	}
}

// SetLogger installs a logger used during Compile and inherited by the
// compiled Container. Defaults to a no-op logger.
func (b *ContainerBuilder) SetLogger(logger *zap.Logger) *ContainerBuilder {
	b.logger = logger
	return b
}

// Types returns the builder's type registry.
func (b *ContainerBuilder) Types() *TypeRegistry { return b.types }

// IsFrozen reports whether Compile has run.
func (b *ContainerBuilder) IsFrozen() bool { return b.frozen }

func (b *ContainerBuilder) assertMutable(op string) {
	if b.frozen {
		panic(&FrozenContainerError{Op: op})
	}
}

// ── Definitions ───────────────────────────────────────────────────────────────

// Register creates, stores and returns a Definition for id. When class is
// empty the id itself is used as the type-registry key.
//
//	// Symfony: $builder->register('mailer', Mailer::class)
//	def := b.Register("mailer", "mailer.SMTP")
func (b *ContainerBuilder) Register(id, class string) *Definition {
	if class == "" {
		class = id
	}
	return b.SetDefinition(id, NewDefinition(class))
}

// SetDefinition stores def under id, replacing any prior definition for the
// same id (last write wins).
func (b *ContainerBuilder) SetDefinition(id string, def *Definition) *Definition {
	b.assertMutable("SetDefinition")
	if _, exists := b.definitions[id]; !exists {
		b.ids = append(b.ids, id)
	}
	b.definitions[id] = def
	delete(b.aliases, id) // a real definition shadows an alias of the same id
	return def
}

// GetDefinition returns the definition for id, resolving no aliases.
func (b *ContainerBuilder) GetDefinition(id string) (*Definition, error) {
	def, ok := b.definitions[id]
	if !ok {
		return nil, &ServiceNotFoundError{ID: id}
	}
	return def, nil
}

// HasDefinition reports whether id has a definition (aliases excluded).
func (b *ContainerBuilder) HasDefinition(id string) bool {
	_, ok := b.definitions[id]
	return ok
}

// RemoveDefinition drops the definition for id, if any.
func (b *ContainerBuilder) RemoveDefinition(id string) {
	b.assertMutable("RemoveDefinition")
	if _, ok := b.definitions[id]; !ok {
		return
	}
	delete(b.definitions, id)
	for i, existing := range b.ids {
		if existing == id {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			break
		}
	}
}

// Definitions returns a copy of the definition map.
func (b *ContainerBuilder) Definitions() map[string]*Definition {
	out := make(map[string]*Definition, len(b.definitions))
	for id, def := range b.definitions {
		out[id] = def
	}
	return out
}

// ServiceIDs returns every defined id in registration order.
func (b *ContainerBuilder) ServiceIDs() []string {
	return append([]string(nil), b.ids...)
}

// ── Aliases ───────────────────────────────────────────────────────────────────

// SetAlias makes alias resolve to target. Chains are followed at resolution
// time; a chain that revisits an id is a circular-dependency error.
//
//	// Symfony: $builder->setAlias('mailer', 'mailer.smtp')
//	b.SetAlias("mailer", "mailer.smtp")
func (b *ContainerBuilder) SetAlias(alias, target string) {
	b.assertMutable("SetAlias")
	if alias == target {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", alias))
	}
	b.aliases[alias] = target
}

// GetAlias returns the direct target of alias.
func (b *ContainerBuilder) GetAlias(alias string) (string, error) {
	target, ok := b.aliases[alias]
	if !ok {
		return "", &ServiceNotFoundError{ID: alias}
	}
	return target, nil
}

// HasAlias reports whether alias is registered.
func (b *ContainerBuilder) HasAlias(alias string) bool {
	_, ok := b.aliases[alias]
	return ok
}

// Aliases returns a copy of the alias map.
func (b *ContainerBuilder) Aliases() map[string]string {
	out := make(map[string]string, len(b.aliases))
	for k, v := range b.aliases {
		out[k] = v
	}
	return out
}

// ── Parameters ────────────────────────────────────────────────────────────────

// SetParameter stores a configuration parameter.
//
//	// Symfony: $builder->setParameter('db.host', 'localhost')
//	b.SetParameter("db.host", "localhost")
func (b *ContainerBuilder) SetParameter(name string, value any) {
	b.assertMutable("SetParameter")
	b.params.Set(name, value)
}

// GetParameter returns the raw parameter value for name.
func (b *ContainerBuilder) GetParameter(name string) (any, error) {
	return b.params.Get(name)
}

// HasParameter reports whether name is defined.
func (b *ContainerBuilder) HasParameter(name string) bool {
	return b.params.Has(name)
}

// ParameterNames returns all parameter names in insertion order.
func (b *ContainerBuilder) ParameterNames() []string {
	return b.params.Names()
}

// Parameters returns the underlying bag.
func (b *ContainerBuilder) Parameters() *ParameterBag { return b.params }

// ── Tags ──────────────────────────────────────────────────────────────────────

// FindTaggedServiceIDs returns every service id carrying tag, mapped to its
// attribute lists. An absent tag yields an empty map, not an error.
//
//	// Symfony: $builder->findTaggedServiceIds('report.generator')
//	for id, attrs := range b.FindTaggedServiceIDs("report.generator") { ... }
func (b *ContainerBuilder) FindTaggedServiceIDs(tag string) map[string][]Attributes {
	out := make(map[string][]Attributes)
	for _, id := range b.TaggedServiceIDs(tag) {
		out[id] = b.definitions[id].Tag(tag)
	}
	return out
}

// TaggedServiceIDs returns the ids carrying tag, in registration order — for
// callers that need deterministic iteration.
func (b *ContainerBuilder) TaggedServiceIDs(tag string) []string {
	var out []string
	for _, id := range b.ids {
		if b.definitions[id].HasTag(tag) {
			out = append(out, id)
		}
	}
	return out
}

// ── Compilation ───────────────────────────────────────────────────────────────

// AddCompilerPass schedules a pass for Compile.
//
//	// Symfony: $builder->addCompilerPass(new MyPass(), PassConfig::TYPE_BEFORE_OPTIMIZATION, 0)
//	b.AddCompilerPass(&MyPass{}, container.BeforeOptimization, 0)
func (b *ContainerBuilder) AddCompilerPass(pass CompilerPass, stage PassStage, priority int) *ContainerBuilder {
	b.assertMutable("AddCompilerPass")
	b.passes.add(pass, stage, priority)
	return b
}

// Compile runs every pass stage by stage, resolves all parameters, freezes
// the builder and returns the immutable runtime Container. Any pass error
// aborts compilation; a second Compile fails with *FrozenContainerError.
func (b *ContainerBuilder) Compile() (*Container, error) {
	if b.frozen {
		return nil, &FrozenContainerError{Op: "Compile"}
	}

	for _, stage := range allStages {
		for _, pass := range b.passes.ordered(stage) {
			b.logger.Debug("running compiler pass",
				zap.String("stage", stage.String()),
				zap.String("pass", fmt.Sprintf("%T", pass)))
			if err := pass.Process(b); err != nil {
				return nil, err
			}
		}
	}

	if err := b.params.Resolve(); err != nil {
		return nil, err
	}

	b.frozen = true
	return newContainer(b.Definitions(), b.ids, b.Aliases(), b.params, b.types, b.logger), nil
}

// ── Bootstrap resolution ──────────────────────────────────────────────────────

// Get resolves a service against the builder's current, uncompiled state —
// a bootstrap convenience only: no passes have run, so autowired holes and
// unvalidated references surface as build errors. The canonical flow is
// Compile then Get on the result.
func (b *ContainerBuilder) Get(id string) (any, error) {
	if b.bootstrap == nil {
		b.bootstrap = newContainer(b.definitions, b.ids, b.aliases, b.params, b.types, b.logger)
	}
	return b.bootstrap.Get(id)
}

// Has reports whether id names a definition or an alias.
func (b *ContainerBuilder) Has(id string) bool {
	return b.HasDefinition(id) || b.HasAlias(id)
}
