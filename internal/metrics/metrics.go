package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RemindersSentCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminder emails delivered",
		},
	)

	ReminderFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_send_failures_total",
			Help: "Total number of failed reminder delivery attempts",
		},
	)

	ScanCycleErrorsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scan_cycle_errors_total",
			Help: "Total number of scan cycles aborted by a store error",
		},
	)
)

func Init() {
	prometheus.MustRegister(RemindersSentCounter)
	prometheus.MustRegister(ReminderFailuresCounter)
	prometheus.MustRegister(ScanCycleErrorsCounter)
}

func StartMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics server running on %s", port)
		if err := http.ListenAndServe(port, nil); err != nil {
			log.Fatalf("failed to start metrics server: %v", err)
		}
	}()
}
