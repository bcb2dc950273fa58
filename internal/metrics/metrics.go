// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus instruments of the service. All
// collectors are registered with the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission results
const (
	ResultInvalid      = "invalid"
	ResultDelivered    = "delivered"
	ResultFailed       = "failed"
	ResultUnconfigured = "unconfigured"
	ResultRejected     = "rejected"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourmailer",
			Name:      "form_submissions_total",
			Help:      "Number of form submissions by form kind and result.",
		}, []string{"kind", "result"})

	EmailSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourmailer",
			Name:      "email_sends_total",
			Help:      "Number of outbound emails by recipient role and result.",
		}, []string{"recipient", "result"})

	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tourmailer",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent sending both emails of a submission.",
			Buckets:   prometheus.DefBuckets,
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		EmailSendsTotal,
		DispatchDuration,
	)
}
