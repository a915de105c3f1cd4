// Package httpapi holds the HTTP plumbing shared by the module APIs: the chi root router,
// bearer auth, rate limiting and JSON responses.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Options configures the root router.
type Options struct {
	AllowedOrigins []string
	// RequestsPerSecond and Burst bound each client IP. Zero disables rate limiting.
	RequestsPerSecond float64
	Burst             int
	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer
	// TracerProvider, when set, opens a server span per request.
	TracerProvider trace.TracerProvider
}

// NewRouter returns the root router with /healthz and /metrics mounted. Modules register
// their routes on it afterwards.
func NewRouter(opts Options) chi.Router {
	r := chi.NewRouter()
	if opts.TracerProvider != nil {
		r.Use(otelhttp.NewMiddleware("scorebook.http", otelhttp.WithTracerProvider(opts.TracerProvider)))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(opts.AllowedOrigins))
	if opts.RequestsPerSecond > 0 {
		r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(opts.RequestsPerSecond), max(opts.Burst, 1))))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Serve runs the server until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
