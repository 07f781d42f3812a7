package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	IntakeSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craftmyresume_intake_submissions_total",
		Help: "Intake submissions by kind and outcome",
	}, []string{"kind", "status"})

	NotificationEmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craftmyresume_notification_emails_total",
		Help: "Notification emails by template and outcome",
	}, []string{"template", "status"})

	RequestStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craftmyresume_request_status_changes_total",
		Help: "Order status transitions made from the back office",
	}, []string{"kind", "status"})

	AnalyticsReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craftmyresume_analytics_reports_total",
		Help: "Analytics report computations",
	}, []string{"status"})

	AnalyticsReportLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "craftmyresume_analytics_report_latency_seconds",
		Help:    "Time to fetch records and compute the analytics report",
		Buckets: prometheus.DefBuckets,
	})

	// Infrastructure metrics
	QueueMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "craftmyresume_queue_messages_total",
		Help: "Event bus messages",
	}, []string{"subject", "direction"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "craftmyresume_database_latency_seconds",
		Help:    "Latency of database queries",
		Buckets: prometheus.DefBuckets,
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "craftmyresume_admin_websocket_clients",
		Help: "Connected admin live-feed clients",
	})
)
