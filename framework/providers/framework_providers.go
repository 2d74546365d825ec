// Package providers holds the framework's core service providers: each one
// contributes definitions and parameters to the ContainerBuilder during the
// register phase, before the container is compiled.
package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-symfony/framework/config"
	"github.com/km-arc/go-symfony/framework/container"
	"github.com/km-arc/go-symfony/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the environment and seeds the parameter bag.
//
// Parameters seeded: app.name, app.env, app.debug, app.port, db.*
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(b *container.ContainerBuilder) {
	config.Load(p.EnvFiles...).Seed(b)
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider registers the shared "logger" service: a production
// zap logger when app.env is production, a development one otherwise.
type LoggerServiceProvider struct {
	container.BaseProvider
}

func (p *LoggerServiceProvider) Register(b *container.ContainerBuilder) {
	b.Register("logger", "").
		SetFactory(func(env string) (*zap.Logger, error) {
			if env == "production" {
				return zap.NewProduction()
			}
			return zap.NewDevelopment()
		}).
		AddArgument("%app.env%")
	b.SetAlias("log", "logger")
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the shared "router" service.
//
//	// Symfony: the 'router' service from FrameworkBundle
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(b *container.ContainerBuilder) {
	b.Register("router", "").SetFactory(routing.New)
}
