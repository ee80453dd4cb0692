package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler exposes Prometheus metrics
func NewMetricsHandler() http.Handler {
	return promhttp.Handler()
}
