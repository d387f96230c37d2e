// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occiv11

import (
	"net/http"

	"github.com/munnerz/goautoneg"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
	"github.com/sapcc/occi-adapter/internal/rendering/headers"
	"github.com/sapcc/occi-adapter/internal/rendering/occijson"
	"github.com/sapcc/occi-adapter/internal/rendering/text"
	"github.com/sapcc/occi-adapter/internal/rendering/urilist"
)

// Media types understood by this API.
const (
	MediaTypeOCCIHeaders = "text/occi"
	MediaTypeText        = "text/plain"
	MediaTypeOCCIJSON    = "application/occi+json"
	MediaTypeJSON        = "application/json"
	MediaTypeURIList     = "text/uri-list"
)

// The first entry is chosen for "*/*" and for requests without Accept header.
var supportedMediaTypes = []string{
	MediaTypeText,
	MediaTypeOCCIHeaders,
	MediaTypeOCCIJSON,
	MediaTypeJSON,
	MediaTypeURIList,
}

// NegotiateMediaType chooses the response format for the given request from
// its Accept header.
func NegotiateMediaType(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return MediaTypeText
	}
	mediaType := goautoneg.Negotiate(accept, supportedMediaTypes)
	if mediaType == "" {
		logg.Debug("no supported media type in Accept: %q, falling back to %s", accept, MediaTypeText)
		return MediaTypeText
	}
	return mediaType
}

// renderBody renders the value in the given format. Headers are only
// produced by the text/occi format.
func renderBody(mediaType string, env rendering.Environment, value any) ([]byte, []rendering.Header, error) {
	switch mediaType {
	case MediaTypeOCCIHeaders:
		r, err := headers.GetRenderer(value)
		if err != nil {
			return nil, nil, err
		}
		body := "OK"
		if err, ok := value.(error); ok {
			body = err.Error()
		}
		return []byte(body), r.Render(env), nil
	case MediaTypeOCCIJSON, MediaTypeJSON:
		r, err := occijson.GetRenderer(value)
		if err != nil {
			return nil, nil, err
		}
		body, err := r.Render(env)
		return body, nil, err
	case MediaTypeURIList:
		r, err := urilist.GetRenderer(value)
		if err != nil {
			return nil, nil, err
		}
		return []byte(r.Render(env)), nil, nil
	default:
		r, err := text.GetRenderer(value)
		if err != nil {
			return nil, nil, err
		}
		return []byte(r.Render(env)), nil, nil
	}
}

// objectType returns the label value for RenderedResponsesCounter.
func objectType(value any) string {
	if obj, ok := value.(occi.Object); ok {
		return obj.Variant().String()
	}
	return "exception"
}

// respond renders the value in the format requested by the client.
func respond(w http.ResponseWriter, r *http.Request, env rendering.Environment, status int, value any) {
	mediaType := NegotiateMediaType(r)
	body, hdrs, err := renderBody(mediaType, env, value)
	if err != nil {
		//this can only be a rendering.UnsupportedRenderTypeError
		logg.Error("while rendering response for %s %s: %s", r.Method, r.URL.Path, err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	RenderedResponsesCounter.WithLabelValues(mediaType, objectType(value)).Inc()

	for _, hdr := range hdrs {
		w.Header().Add(hdr.Name, hdr.Value)
	}
	w.Header().Set("Content-Type", mediaType+"; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// respondWithError renders the given error, if any, with the status code
// that it carries. Returns whether a response was written.
func respondWithError(w http.ResponseWriter, r *http.Request, env rendering.Environment, err error) bool {
	if err == nil {
		return false
	}
	status := rendering.StatusCodeOf(err)
	if status >= http.StatusInternalServerError {
		logg.Error("%s %s failed with status %d: %s", r.Method, r.URL.Path, status, err.Error())
	}
	respond(w, r, env, status, err)
	return true
}

// requestError is an error caused by a malformed request.
type requestError struct {
	status  int
	message string
}

// Error implements the builtin/error interface.
func (e requestError) Error() string { return e.message }

// HTTPStatus implements the rendering.StatusError interface.
func (e requestError) HTTPStatus() int { return e.status }
