// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occiv11

import "github.com/prometheus/client_golang/prometheus"

var (
	// RenderedResponsesCounter is a prometheus.CounterVec.
	RenderedResponsesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "occi_rendered_responses",
			Help: "Counts responses rendered by the OCCI API, by media type and type of the rendered object.",
		},
		[]string{"format", "object_type"},
	)
)

func init() {
	prometheus.MustRegister(RenderedResponsesCounter)
}
