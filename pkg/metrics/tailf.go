package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	TailfLinesReadMetricName    = "tailf_lines_read_total"
	TailfLinesEmittedMetricName = "tailf_lines_emitted_total"
	TailfTruncationsMetricName  = "tailf_truncations_total"
	TailfReadErrorsMetricName   = "tailf_read_errors_total"
)

var TailfLinesRead = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: TailfLinesReadMetricName,
		Help: "Total complete lines reassembled from the followed file.",
	},
	[]string{"source"},
)

var TailfLinesEmitted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: TailfLinesEmittedMetricName,
		Help: "Total lines delivered to at least one subscriber.",
	},
	[]string{"source", "level"},
)

var TailfTruncations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: TailfTruncationsMetricName,
		Help: "Number of times the followed file shrank and was read again from the start.",
	},
	[]string{"source"},
)

var TailfReadErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: TailfReadErrorsMetricName,
		Help: "Poll ticks that ended on an I/O error.",
	},
	[]string{"source"},
)
