// Package metrics defines Prometheus collectors for the consultation
// backend. They are registered on the default registry and exposed at
// /metrics in server mode; in function mode they are still updated but
// nothing scrapes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contact endpoint metrics
var (
	ContactRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_requests_total",
			Help: "Total number of contact form requests",
		},
		[]string{"status"}, // HTTP status code
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"kind"}, // notification, auto_reply
	)

	EmailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_failed_total",
			Help: "Total number of email send failures",
		},
		[]string{"kind"},
	)

	AutoReplyPartsOmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auto_reply_parts_omitted_total",
			Help: "Total number of best-effort auto-reply parts omitted",
		},
		[]string{"part"}, // preview_image, guide_pdf
	)
)

// Articles endpoint metrics
var (
	ArticlesRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_requests_total",
			Help: "Total number of articles API requests",
		},
		[]string{"method", "status"},
	)
)
