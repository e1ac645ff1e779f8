package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler exposes the registry on /metrics.
func NewMetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// MetricsServer serves the metrics handler until stopped.
type MetricsServer struct {
	srv      *http.Server
	listener net.Listener
	logger   *slog.Logger
	done     chan struct{}
}

// StartMetricsServer listens on addr and serves in the background.
func StartMetricsServer(addr string, gatherer prometheus.Gatherer, logger *slog.Logger) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	ms := &MetricsServer{
		srv:      &http.Server{Handler: NewMetricsHandler(gatherer), ReadHeaderTimeout: 5 * time.Second},
		listener: ln,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(ms.done)
		if err := ms.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", ln.Addr().String())
	return ms, nil
}

// Addr returns the bound address (useful with ":0").
func (ms *MetricsServer) Addr() string {
	return ms.listener.Addr().String()
}

// Stop shuts the server down and waits for the serve loop to exit.
func (ms *MetricsServer) Stop(ctx context.Context) error {
	err := ms.srv.Shutdown(ctx)
	<-ms.done
	return err
}
