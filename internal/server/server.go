package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/metrics"
)

// New builds the API mux. Metrics are registered on reg and served from it.
func New(cfg *config.Config, reg *prometheus.Registry, log zerolog.Logger) (http.Handler, error) {
	rec, err := metrics.NewPromRecorder(reg)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/api/evaluate", NewEvaluateHandler(cfg, rec, log))
	mux.Handle("/api/sweep", NewSweepHandler(cfg, rec, log))
	mux.Handle("/api/presets", NewPresetsHandler())
	mux.Handle("/api/sliders", NewSlidersHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux, nil
}

// Run serves h on addr until ctx is canceled.
func Run(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()
	log.Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
