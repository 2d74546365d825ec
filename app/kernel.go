package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-symfony/framework/container"
	"github.com/km-arc/go-symfony/framework/providers"
	"github.com/km-arc/go-symfony/routing"
)

// Application is the top-level kernel: it owns the ContainerBuilder during
// bootstrap and the compiled Container afterwards.
//
//	application := app.New()
//	c, err := application.Boot()
//	router := container.MustResolve[*routing.Router](c, "router")
//	router.Get("/", handler)
//	application.Run()
type Application struct {
	Builder   *container.ContainerBuilder
	Providers *container.ProviderRegistry
}

// New creates the kernel and runs the register phase of the framework's core
// providers. The graph stays open for application providers and definitions
// until Boot.
func New(envFiles ...string) *Application {
	b := container.NewContainerBuilder(container.NewTypeRegistry())
	registry := container.NewProviderRegistry(b)

	app := &Application{
		Builder:   b,
		Providers: registry,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LoggerServiceProvider{},
		&providers.RoutingServiceProvider{},
	} {
		if err := registry.Register(p); err != nil {
			panic(err)
		}
	}

	return app
}

// Register adds an application ServiceProvider. Must happen before Boot.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot compiles the container and boots every provider. Idempotent.
func (a *Application) Boot() (*container.Container, error) {
	return a.Providers.Boot()
}

// Container returns the compiled container, booting first if needed.
func (a *Application) Container() (*container.Container, error) {
	return a.Boot()
}

// Run boots the application and serves HTTP on app.port.
func (a *Application) Run() error {
	c, err := a.Boot()
	if err != nil {
		return err
	}

	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zap.Logger](c, "logger")
	if err != nil {
		return err
	}
	port, err := c.Parameters().GetString("app.port")
	if err != nil {
		return err
	}
	name, err := c.Parameters().GetString("app.name")
	if err != nil {
		return err
	}

	addr := ":" + port
	logger.Info("server starting",
		zap.String("app", name),
		zap.String("addr", fmt.Sprintf("http://localhost%s", addr)))
	return http.ListenAndServe(addr, router)
}
