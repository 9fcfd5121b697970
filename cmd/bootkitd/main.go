package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoCodeAlone/bootkit"
	"github.com/GoCodeAlone/bootkit/condition"
	"github.com/GoCodeAlone/bootkit/webserver"
)

// bootkitd is a small demonstration daemon: it loads an environment from
// YAML, runs a candidate list through the bulk filter pipeline and full
// condition evaluation, then boots a servlet web-server context serving a
// chi router, and dumps the condition evaluation report.
func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML property file")
	port := flag.Int("port", 8080, "server port (0 for ephemeral)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if err := run(logger, *configPath, *port); err != nil {
		logger.Error("bootkitd failed", "error", err)
		os.Exit(1)
	}
}

func run(logger bootkit.Logger, configPath string, port int) error {
	env := bootkit.NewWebEnvironment(bootkit.WebApplicationServlet)
	env.SetProperty(bootkit.ApplicationNameProperty, "bootkitd")
	if configPath != "" {
		if err := bootkit.LoadPropertySource(env, configPath); err != nil {
			return fmt.Errorf("loading %s: %w", configPath, err)
		}
	}

	loader := bootkit.NewStaticClassLoader(
		condition.ServletWebApplicationClass,
		"github.com/GoCodeAlone/bootkit/webserver.StdServletWebServerFactory",
		"github.com/go-chi/chi/v5.Mux",
	)

	registry := bootkit.NewBeanRegistry()
	if err := registry.RegisterScope(condition.SessionScopeName); err != nil {
		return err
	}

	// Candidate auto-configuration classes and their generated metadata.
	candidates := []string{
		"demo.WebConfiguration",
		"demo.MetricsConfiguration",
		"demo.SchedulingConfiguration",
	}
	metadata := condition.Properties{}
	metadata.Set("demo.WebConfiguration", condition.AttributeOnClass,
		"github.com/go-chi/chi/v5.Mux")
	metadata.Set("demo.WebConfiguration", condition.AttributeOnWebApplication, "SERVLET")
	metadata.Set("demo.MetricsConfiguration", condition.AttributeOnClass,
		"github.com/prometheus/client_golang.Registry")

	evalCtx := &condition.Context{
		Loader:      loader,
		Environment: env,
		Registry:    registry,
		Logger:      logger,
	}

	mask := condition.ApplyFilters(evalCtx, candidates, metadata,
		condition.NewOnClassCondition(),
		condition.NewOnWebApplicationCondition())
	survivors := condition.Survivors(candidates, mask)
	logger.Info("Bulk filter pass complete",
		"candidates", len(candidates), "survivors", len(survivors))

	// Full evaluation of the surviving candidates with typed requirements.
	subjects := map[string]condition.Subject{
		"demo.WebConfiguration": {
			Class:           "demo.WebConfiguration",
			RequiredClasses: []string{"github.com/go-chi/chi/v5.Mux"},
			Web:             &condition.WebRequirement{Type: bootkit.WebApplicationServlet},
		},
		"demo.SchedulingConfiguration": {
			Class: "demo.SchedulingConfiguration",
			Properties: []condition.PropertyAttributes{{
				Prefix:         "scheduling",
				Name:           []string{"enabled"},
				MatchIfMissing: false,
			}},
		},
	}
	conditions := []condition.Condition{
		condition.NewOnClassCondition(),
		condition.NewOnWebApplicationCondition(),
		condition.NewOnPropertyCondition(),
	}
	for _, candidate := range survivors {
		subject, ok := subjects[candidate]
		if !ok {
			condition.ReportFor(registry).RecordUnconditionalClasses(candidate)
			continue
		}
		matched, err := condition.EvaluateAll(evalCtx, subject, conditions...)
		if err != nil {
			return err
		}
		logger.Info("Candidate evaluated", "candidate", candidate, "matched", matched)
	}

	// Wire the web-server beans and boot the context.
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if err := registry.RegisterSingleton("router", router); err != nil {
		return err
	}
	if err := registry.RegisterSingleton("webServerFactory", &webserver.StdServletWebServerFactory{
		Port:            port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Logger:          logger,
	}); err != nil {
		return err
	}

	webCtx, err := webserver.NewServletWebServerContext(registry, env, logger)
	if err != nil {
		return err
	}
	if err := webCtx.RegisterObserver(webserver.NewServerPortInfoObserver(env),
		webserver.EventTypeServletWebServerInitialized); err != nil {
		return err
	}

	ctx := context.Background()
	if err := webCtx.Refresh(ctx); err != nil {
		return err
	}
	if boundPort, ok := env.Property(webserver.ServerPortProperty); ok {
		logger.Info("Listening", "port", boundPort)
	}

	condition.NewReportLogger(condition.ReportFor(registry), logger).Log()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	return webCtx.Close(ctx)
}
