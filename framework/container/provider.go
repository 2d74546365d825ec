package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related definitions, the way Symfony bundles
// configure the builder before compilation.
//
// Register runs against the mutable builder; Boot runs after Compile, against
// the frozen container, so it may resolve anything:
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(b *container.ContainerBuilder) {
//	    b.SetParameter("mail.host", "smtp.example.com")
//	    b.Register("mailer", "mailer.SMTP").AddArgument("%mail.host%")
//	}
//
//	func (p *MailProvider) Boot(c *container.Container) error {
//	    _, err := c.Get("mailer") // warm up eagerly if wanted
//	    return err
//	}
type ServiceProvider interface {
	// Register adds definitions, aliases and parameters to the builder.
	// Do not resolve services here — the graph is not compiled yet.
	Register(b *ContainerBuilder)

	// Boot runs after compilation with the frozen container.
	Boot(c *Container) error
}

// BaseProvider is an embeddable no-op Boot, for providers that only register.
type BaseProvider struct{}

func (BaseProvider) Boot(*Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry drives the two-phase provider lifecycle: every provider's
// Register runs against the builder as it is added, then Boot compiles the
// builder once and boots every provider against the result.
type ProviderRegistry struct {
	builder    *ContainerBuilder
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	container  *Container
}

// NewProviderRegistry creates a registry bound to builder.
func NewProviderRegistry(builder *ContainerBuilder) *ProviderRegistry {
	return &ProviderRegistry{
		builder:    builder,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and runs its Register phase immediately. Adding
// the same provider instance twice is a no-op; adding one after Boot is an
// error, since the compiled graph can no longer change.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	if r.container != nil {
		return fmt.Errorf("container: cannot register a provider after boot")
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)
	provider.Register(r.builder)
	return nil
}

// Boot compiles the builder and runs every provider's Boot phase in
// registration order. Calling Boot again returns the already-compiled
// container.
func (r *ProviderRegistry) Boot() (*Container, error) {
	if r.container != nil {
		return r.container, nil
	}
	c, err := r.builder.Compile()
	if err != nil {
		return nil, err
	}
	for _, provider := range r.providers {
		if err := provider.Boot(c); err != nil {
			return nil, fmt.Errorf("container: booting provider %T: %w", provider, err)
		}
	}
	r.container = c
	return c, nil
}

// Booted reports whether Boot has completed.
func (r *ProviderRegistry) Booted() bool { return r.container != nil }

// Container returns the compiled container, or nil before Boot.
func (r *ProviderRegistry) Container() *Container { return r.container }

// Providers returns all registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	return append([]ServiceProvider(nil), r.providers...)
}
