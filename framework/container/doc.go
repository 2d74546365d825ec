// Package container provides a Symfony-compatible compiled dependency
// injection container for Go.
//
// # Overview
//
// Unlike a runtime container that resolves bindings as it goes, this
// container splits the lifecycle in two. A ContainerBuilder collects service
// Definitions, aliases and parameters, then Compile runs a pipeline of
// compiler passes — autowiring, reference validation — and freezes the graph
// into an immutable Container. The compiled Container builds instances lazily
// on first Get, memoizes shared services, and detects constructor cycles.
//
// It mirrors the public API of Symfony's DependencyInjection component as
// closely as Go's type system allows. Because Go cannot instantiate a class
// from its name, Definitions name types registered in a TypeRegistry, which
// maps type names to constructor functions and gives autowiring its
// reflection surface.
//
// # Lifecycle
//
//  1. Register types:      types.Register("mailer.SMTP", mailer.NewSMTP)
//  2. Build the graph:     b := container.NewContainerBuilder(types); b.Register(...)
//  3. Compile:             c, err := b.Compile()   — passes run, graph freezes
//  4. Resolve:             c.Get("mailer") / container.Resolve[*mailer.SMTP](c, "mailer")
//
// # Definitions
//
//	// Symfony: $builder->register('mailer', SMTP::class)->addArgument('%mail.host%')
//	b.Register("mailer", "mailer.SMTP").
//	    AddArgument("%mail.host%")
//
//	// Constructor injection via Reference
//	// Symfony: ->addArgument(new Reference('mailer'))
//	b.Register("newsletter", "newsletter.Manager").
//	    AddArgument(container.NewReference("mailer"))
//
//	// Setter injection, run after construction
//	// Symfony: ->addMethodCall('setLogger', [new Reference('logger')])
//	def.AddMethodCall("SetLogger", container.NewReference("logger"))
//
//	// Non-shared: fresh instance on every Get
//	// Symfony: ->setShared(false)
//	def.SetShared(false)
//
// # Autowiring
//
//	// Symfony: ->setAutowired(true)
//	b.Register("report.writer", "report.Writer").SetAutowired(true)
//
// Missing constructor arguments are filled by matching parameter types
// against the instance types other definitions produce. Exactly one
// compatible definition binds; several fail compilation — the pass never
// guesses a winner.
//
// # Parameters
//
//	b.SetParameter("db.host", "localhost")
//	b.Register("db", "db.Conn").AddArgument("%db.host%")
//
// A string argument that is exactly one placeholder keeps the parameter's
// native type; embedded placeholders substitute textually; %% escapes a
// literal percent sign.
//
// # Tags
//
//	// Symfony: ->addTag('report.generator', ['format' => 'csv'])
//	def.AddTag("report.generator", container.Attributes{"format": "csv"})
//	for id, attrs := range b.FindTaggedServiceIDs("report.generator") { ... }
//
// # Compiler passes
//
//	type MyPass struct{}
//	func (p *MyPass) Process(b *container.ContainerBuilder) error { ... }
//
//	b.AddCompilerPass(&MyPass{}, container.BeforeOptimization, 0)
//
// Stages run in order: before-optimization, optimization, before-removing,
// removing, after-removing. Within a stage, higher priority first.
//
// # Synthetic services
//
// A synthetic definition has no buildable class; its instance comes from
// outside, before first use:
//
//	// Symfony: ->setSynthetic(true), then $container->set('request', $request)
//	b.Register("request", "").SetSynthetic(true)
//	c, _ := b.Compile()
//	c.Inject("request", req)
//
// # Circular dependencies
//
// Pure constructor cycles fail with the full path (a -> b -> a). A cycle
// closed through a method call succeeds: shared instances are cached before
// their setters run, so the peer's constructor finds the half-initialized
// instance. That asymmetry is a contract, not an accident.
package container
