// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package occiv11 contains the HTTP surface of the OCCI 1.1 API: the query
// interface and read/act/delete endpoints for all infrastructure kinds.
package occiv11

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/httpapi"

	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/processor"
	"github.com/sapcc/occi-adapter/internal/rendering"
)

// API contains state variables used by the OCCI API endpoints.
type API struct {
	processor *processor.Processor
	publicURL Option[string]
}

// NewAPI constructs a new API instance. If publicURL is None, the URLs in
// responses are derived from the respective request.
func NewAPI(p *processor.Processor, publicURL Option[string]) *API {
	return &API{p, publicURL}
}

// AddTo implements the httpapi.API interface.
func (a *API) AddTo(r *mux.Router) {
	r.Methods("GET").Path("/-/").HandlerFunc(a.handleQuery)
	r.Methods("GET").Path("/.well-known/org/ogf/occi/-/").HandlerFunc(a.handleQuery)

	for _, e := range a.endpoints() {
		r.Methods("GET").Path("/" + e.kind.Location()).HandlerFunc(a.listHandler(e))
		r.Methods("GET").Path("/" + e.kind.Location() + "{id}").HandlerFunc(a.showHandler(e))
		if e.act != nil {
			r.Methods("POST").Path("/" + e.kind.Location() + "{id}").HandlerFunc(a.actionHandler(e))
		}
		if e.delete != nil {
			r.Methods("DELETE").Path("/" + e.kind.Location() + "{id}").HandlerFunc(a.deleteHandler(e))
		}
	}
}

// endpoint describes the operations that the API offers for one kind.
type endpoint struct {
	kind   *occi.Kind
	list   func(ctx context.Context) (*occi.Collection, error)
	show   func(ctx context.Context, id string) (occi.Object, error)
	act    func(ctx context.Context, id, term string) error //optional
	delete func(ctx context.Context, id string) error       //optional
}

func (a *API) endpoints() []endpoint {
	p := a.processor
	return []endpoint{
		{
			kind:   infrastructure.ComputeKind,
			list:   p.ListComputes,
			show:   showFunc(p.ShowCompute),
			act:    p.RunComputeAction,
			delete: p.DeleteCompute,
		},
		{
			kind:   infrastructure.StorageKind,
			list:   p.ListStorages,
			show:   showFunc(p.ShowStorage),
			act:    p.RunStorageAction,
			delete: p.DeleteStorage,
		},
		{
			kind: infrastructure.NetworkKind,
			list: p.ListNetworks,
			show: showFunc(p.ShowNetwork),
			act:  p.RunNetworkAction,
		},
		{
			kind: infrastructure.IPReservationKind,
			list: p.ListIPReservations,
			show: showFunc(p.ShowIPReservation),
		},
		{
			kind: infrastructure.SecurityGroupKind,
			list: p.ListSecurityGroups,
			show: showFunc(p.ShowSecurityGroup),
		},
		{
			kind: infrastructure.StorageLinkKind,
			list: p.ListStorageLinks,
			show: showFunc(p.ShowStorageLink),
		},
		{
			kind: infrastructure.NetworkInterfaceKind,
			list: p.ListNetworkInterfaces,
			show: showFunc(p.ShowNetworkInterface),
		},
		{
			kind: infrastructure.SecurityGroupLinkKind,
			list: p.ListSecurityGroupLinks,
			show: showFunc(p.ShowSecurityGroupLink),
		},
	}
}

func showFunc[T occi.Object](show func(context.Context, string) (T, error)) func(context.Context, string) (occi.Object, error) {
	return func(ctx context.Context, id string) (occi.Object, error) {
		obj, err := show(ctx, id)
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
}

// This implements the GET /-/ endpoint.
func (a *API) handleQuery(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/-/")
	c, err := a.processor.Query(r.Context())
	if respondWithError(w, r, a.environment(r), err) {
		return
	}
	respond(w, r, a.environment(r), http.StatusOK, c)
}

func (a *API) listHandler(e endpoint) http.HandlerFunc {
	path := "/" + e.kind.Location()
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, path)
		c, err := e.list(r.Context())
		if respondWithError(w, r, a.environment(r), err) {
			return
		}
		respond(w, r, a.environment(r), http.StatusOK, c)
	}
}

func (a *API) showHandler(e endpoint) http.HandlerFunc {
	path := "/" + e.kind.Location() + ":id"
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, path)
		obj, err := e.show(r.Context(), mux.Vars(r)["id"])
		if respondWithError(w, r, a.environment(r), err) {
			return
		}
		respond(w, r, a.environment(r), http.StatusOK, obj)
	}
}

func (a *API) actionHandler(e endpoint) http.HandlerFunc {
	path := "/" + e.kind.Location() + ":id"
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, path+"?action=:action")
		env := a.environment(r)
		term := r.URL.Query().Get("action")
		if term == "" {
			respondWithError(w, r, env, requestError{http.StatusBadRequest, "missing query parameter: action"})
			return
		}

		id := mux.Vars(r)["id"]
		err := e.act(r.Context(), id, term)
		if respondWithError(w, r, env, err) {
			return
		}
		obj, err := e.show(r.Context(), id)
		if respondWithError(w, r, env, err) {
			return
		}
		respond(w, r, env, http.StatusOK, obj)
	}
}

func (a *API) deleteHandler(e endpoint) http.HandlerFunc {
	path := "/" + e.kind.Location() + ":id"
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, path)
		err := e.delete(r.Context(), mux.Vars(r)["id"])
		if respondWithError(w, r, a.environment(r), err) {
			return
		}
		respond(w, r, a.environment(r), http.StatusOK, &occi.Collection{})
	}
}

// environment returns the rendering environment for the given request.
func (a *API) environment(r *http.Request) rendering.Environment {
	if publicURL, ok := a.publicURL.Unpack(); ok {
		return rendering.Environment{ApplicationURL: strings.TrimSuffix(publicURL, "/")}
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return rendering.Environment{ApplicationURL: scheme + "://" + r.Host}
}
