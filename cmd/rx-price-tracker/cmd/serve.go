package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/rx-price-tracker/internal/api/handlers"
	mw "github.com/donaldgifford/rx-price-tracker/internal/api/middleware"
	"github.com/donaldgifford/rx-price-tracker/internal/engine"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfgFile)
	if err != nil {
		return err
	}
	log := a.log

	sched, err := engine.NewScheduler(a.engine, a.cfg.Schedule.RunInterval, log)
	if err != nil {
		return errors.Join(fmt.Errorf("creating scheduler: %w", err), a.close(ctx))
	}

	e := newServer(a)

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	e.Server.ReadTimeout = a.cfg.Server.ReadTimeout
	e.Server.WriteTimeout = a.cfg.Server.WriteTimeout

	go func() {
		log.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	sched.Start()
	log.Info("scheduler running", "interval", a.cfg.Schedule.RunInterval)
	if a.cfg.Schedule.RunOnStart {
		go sched.RunNow()
	}

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Waits for an in-flight scheduled cycle.
	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop before shutdown deadline")
	}

	var errs []error
	if err := e.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down server: %w", err))
	}
	if err := a.close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("closing resources: %w", err))
	}

	log.Info("server stopped")
	return errors.Join(errs...)
}

// newServer builds the Echo instance with middleware, operational routes,
// the HTML dashboard, and the Huma API.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.RequestLog(a.log), mw.Metrics(), mw.Recovery(a.log))

	health := handlers.NewHealthHandler(a.store)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", handlers.NewDashboardHandler(a.store, a.log).Index)

	api := humaecho.New(e, huma.DefaultConfig("rx-price-tracker API", Version))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(a.engine))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(a.store))
	handlers.RegisterNotificationRoutes(api, handlers.NewNotificationsHandler(a.store))
	handlers.RegisterTriggerRoutes(api, handlers.NewRunHandler(a.engine))

	return e
}
