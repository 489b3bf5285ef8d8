package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gopkg.in/tomb.v2"
)

func newMetricsHandler(cs ...prometheus.Collector) (http.Handler, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register collector: %w", err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux, nil
}

// serveMetrics exposes the collectors until t starts dying.
func serveMetrics(t *tomb.Tomb, listenURI string, cs ...prometheus.Collector) error {
	handler, err := newMetricsHandler(cs...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              listenURI,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	t.Go(func() error {
		<-t.Dying()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(ctx)
	})

	log.Infof("serving prometheus metrics on http://%s/metrics", listenURI)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}

	return nil
}
