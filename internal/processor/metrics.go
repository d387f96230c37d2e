// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package processor

import "github.com/prometheus/client_golang/prometheus"

var (
	//BackendRequestCounter is a prometheus.CounterVec.
	BackendRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "occi_backend_requests",
			Help: "Counter for requests made by the OCCI adapter to its backend gateway, by operation and outcome (success, not_found or failure).",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(BackendRequestCounter)
}
