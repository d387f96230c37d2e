// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package apicmd

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sapcc/go-bits/httpapi"
)

// rootRedirecter is an httpapi.API that handles GET / by redirecting web
// browsers to a GUI (if configured) and everyone else to the query interface.
type rootRedirecter struct {
	guiURL string
}

// AddTo implements the httpapi.API interface.
func (rr *rootRedirecter) AddTo(r *mux.Router) {
	r.Methods("GET").Path("/").HandlerFunc(rr.redirect)
}

func (rr *rootRedirecter) redirect(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/")
	target := "/-/"
	if rr.guiURL != "" && strings.Contains(r.Header.Get("Accept"), "text/html") {
		target = rr.guiURL
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}
