// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package apicmd

import (
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/gorilla/mux"

	occiv11 "github.com/sapcc/occi-adapter/internal/api/occi"
)

// headerReflector is an httpapi.API that implements the GET /debug/reflect-headers endpoint.
type headerReflector struct {
	Enabled bool // usually only on dev/QA systems
}

// AddTo implements the httpapi.API interface.
func (hr *headerReflector) AddTo(r *mux.Router) {
	if hr.Enabled {
		r.Methods("GET").Path("/debug/reflect-headers").HandlerFunc(reflectHeaders)
	}
}

// Shows which response format an OCCI client would get, e.g. behind proxies
// that rewrite the Accept header.
func reflectHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	for _, headerName := range slices.Sorted(maps.Keys(r.Header)) {
		for _, val := range r.Header[headerName] {
			fmt.Fprintf(w, "Request %s: %s\n", headerName, val)
		}
	}
	fmt.Fprintf(w, "Negotiated media type: %s\n", occiv11.NegotiateMediaType(r))
}
