package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmailSendCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claim_email_send_total",
			Help: "Total number of claim-resolution email send attempts",
		},
		[]string{"status"}, // status: sent, failed, skipped
	)

	NotificationInsertCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_insert_total",
			Help: "Total number of notification row inserts",
		},
		[]string{"status"}, // status: ok, failed
	)

	WorkflowRunCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claim_workflow_runs_total",
			Help: "Total number of claim-resolution workflow runs by outcome",
		},
		[]string{"outcome"}, // outcome: done, aborted, crashed
	)
)

func RecordEmailSend(status string) {
	EmailSendCount.WithLabelValues(status).Inc()
}

func RecordNotificationInsert(status string) {
	NotificationInsertCount.WithLabelValues(status).Inc()
}

func RecordWorkflowRun(outcome string) {
	WorkflowRunCount.WithLabelValues(outcome).Inc()
}
