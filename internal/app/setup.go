// Package app contains the application setup for the OrderHub service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orderhub/orderhub/internal/audit"
	"github.com/orderhub/orderhub/internal/config"
	"github.com/orderhub/orderhub/internal/notify"
	"github.com/orderhub/orderhub/internal/payment"
	"github.com/orderhub/orderhub/internal/service"
	"github.com/orderhub/orderhub/internal/store"
	"github.com/orderhub/orderhub/internal/transport/rest"
	"github.com/orderhub/orderhub/pkg/server"
)

type Dependencies struct {
	OrderService service.OrderService
	Logger       *slog.Logger
}

// SetupDependencies wires the order pipeline: store, payment dispatcher,
// notification fan-out and orchestrating service. The payment dispatcher
// uses its default randomness source; tests construct the service directly
// with a deterministic one.
func SetupDependencies(cfg *config.Config, auditLog *audit.Logger, logger *slog.Logger) *Dependencies {
	orderStore := store.NewInMemoryStore()
	dispatcher := payment.NewDispatcher(payment.Config{
		CardFailPercent:   cfg.Payment.CardFailPercent,
		PaypalFailPercent: cfg.Payment.PaypalFailPercent,
	}, nil)
	fanout := notify.NewFanout(auditLog, logger,
		notify.NewEmailNotifier(auditLog),
		notify.NewSMSNotifier(auditLog),
		notify.NewTelegramNotifier(auditLog),
	)
	svc := service.NewService(orderStore, dispatcher, fanout, auditLog, logger)

	return &Dependencies{
		OrderService: svc,
		Logger:       logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the OrderHub application.
// Used by tests to exercise the HTTP surface without a listening server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the OrderHub application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	orderHandler := rest.NewHandler(deps.OrderService, deps.Logger)
	orderHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the OrderHub application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
