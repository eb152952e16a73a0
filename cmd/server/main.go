package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pawluxe/storefront/internal"
	"github.com/pawluxe/storefront/internal/cart"
	"github.com/pawluxe/storefront/internal/events"
	"github.com/pawluxe/storefront/internal/handler/storefront"
	"github.com/pawluxe/storefront/internal/middleware"
	"github.com/pawluxe/storefront/internal/routes"
	"github.com/pawluxe/storefront/internal/service"
	"github.com/pawluxe/storefront/internal/session"
	"github.com/pawluxe/storefront/internal/vendure"
)

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Cart domain events; dropped silently when NATS is not configured.
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL, logger)
		if err != nil {
			return fmt.Errorf("NATS connection failed: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info().Str("url", cfg.NatsURL).Msg("publishing cart events to NATS")
	}

	// The catalog is session-independent; one shared client serves it.
	catalogClient := vendure.New(cfg.VendureURL, cfg.BackendTimeout, logger)

	// Each visitor gets their own client: the commerce API scopes the active
	// order to the client's session cookie.
	newVisitor := func() *session.Visitor {
		client := vendure.New(cfg.VendureURL, cfg.BackendTimeout, logger)
		return &session.Visitor{
			Controller: cart.NewController(client, publisher, logger),
			Backend:    client,
		}
	}

	sessions := session.NewManager(newVisitor, cfg.SessionTTL, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Run(ctx)

	productService := service.NewProductService(catalogClient)
	checkoutService := service.NewCheckoutService(logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	metrics := middleware.NewMetrics("pawluxe", prometheus.DefaultRegisterer)
	e.Use(metrics.Middleware())

	secure := cfg.Env == "prod"
	routes.Register(e, routes.Deps{
		Products: storefront.NewProductHandler(productService, logger),
		Cart:     storefront.NewCartHandler(sessions, secure, logger),
		Checkout: storefront.NewCheckoutHandler(sessions, checkoutService, secure, logger),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("storefront listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return e.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
