package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-symfony/app"
	"github.com/km-arc/go-symfony/framework/container"
	"github.com/km-arc/go-symfony/routing"
)

// Greeter is a small demo service, autowired against the framework's logger.
type Greeter struct {
	logger *zap.Logger
	app    string
}

func NewGreeter(logger *zap.Logger, appName string) *Greeter {
	return &Greeter{logger: logger, app: appName}
}

func (g *Greeter) Greet(who string) string {
	g.logger.Debug("greeting", zap.String("who", who))
	return "Hello " + who + ", welcome to " + g.app + "!"
}

func main() {
	application := app.New() // loads .env automatically

	// Application services: the constructor's *zap.Logger is autowired to
	// the framework's "logger" definition, the name comes from a parameter.
	application.Builder.Types().MustRegister("main.Greeter", NewGreeter)
	application.Builder.Register("greeter", "main.Greeter").
		SetAutowired(true).
		SetArgument(1, "%app.name%")

	c, err := application.Boot()
	if err != nil {
		log.Fatalf("boot: %v", err)
	}

	router := container.MustResolve[*routing.Router](c, "router")
	greeter := container.MustResolve[*Greeter](c, "greeter")

	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		routing.JSON(w, http.StatusOK, map[string]any{
			"message": greeter.Greet("stranger"),
		})
	})

	router.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
		routing.JSON(w, http.StatusOK, map[string]any{
			"message": greeter.Greet(routing.Param(req, "name")),
		})
	})

	if err := application.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
