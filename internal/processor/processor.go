// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package processor translates between the OCCI type model and the backend
// gateway. The API layer calls it with request-scoped contexts and renders
// whatever it returns.
package processor

import (
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/occi"
)

// Processor is a higher-level interface wrapping backend.Gateway. It builds
// OCCI entities from backend descriptors and maps OCCI actions to backend
// operations.
type Processor struct {
	gateway backend.Gateway
}

// New creates a new Processor.
func New(gateway backend.Gateway) *Processor {
	return &Processor{gateway}
}

// track records the outcome of a backend request in BackendRequestCounter.
func (p *Processor) track(operation string, err error) error {
	outcome := "success"
	switch {
	case err == nil:
	case backend.IsNotFound(err):
		outcome = "not_found"
	default:
		outcome = "failure"
	}
	BackendRequestCounter.WithLabelValues(operation, outcome).Inc()
	return err
}

// tolerateNotFound swallows 404 errors, which the backend reports when an
// optional extension is not deployed. The caller continues without the
// respective data.
func tolerateNotFound(err error, what string) error {
	if backend.IsNotFound(err) {
		logg.Info("skipping %s: %s", what, err.Error())
		return nil
	}
	return err
}

// errNoSuchEntity is returned by the Show...() methods for link IDs that do
// not match any link.
func errNoSuchEntity(kind *occi.Kind, id string) error {
	return backend.NotFound(kind.Term(), id)
}

// findAction looks up an action on the given kind by term. Unknown actions
// are not implemented by definition.
func findAction(kind *occi.Kind, term string) (*occi.Action, error) {
	action, exists := occi.FindAction(kind.Actions(), term)
	if !exists {
		return nil, backend.NotImplemented("action %q is not supported for %s", term, kind.Term())
	}
	return action, nil
}
