// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occiv11

import (
	"context"
	"net/http"
	"testing"

	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/drivers/trivial"
	"github.com/sapcc/occi-adapter/internal/processor"
)

func setup(t *testing.T, publicURL Option[string]) (http.Handler, *trivial.Gateway) {
	t.Helper()
	gw := &trivial.Gateway{}
	must.SucceedT(t, gw.Init(context.Background()))

	gw.AddFlavor(backend.Flavor{ID: "2", Name: "m1.small", VCPUs: 2, RAMMiB: 2048, DiskGiB: 20})
	gw.AddImage(backend.Image{ID: "img1", Name: "Ubuntu 24.04"})
	gw.AddNetwork(backend.Network{ID: "net1", Name: "private", Status: "ACTIVE"})
	gw.AddVolume(backend.Volume{ID: "vol1", Name: "data", Status: "in-use", SizeGiB: 10, Attachments: []backend.VolumeAttachment{
		{ServerID: "srv1", VolumeID: "vol1", Device: "/dev/vdb"},
	}})
	gw.AddVolume(backend.Volume{ID: "vol2", Name: "scratch", Status: "creating", SizeGiB: 1})
	gw.AddServer(backend.Server{
		ID:       "srv1",
		Name:     "web",
		Status:   "ACTIVE",
		FlavorID: "2",
		ImageID:  "img1",
		Volumes:  []backend.VolumeAttachment{{ServerID: "srv1", VolumeID: "vol1", Device: "/dev/vdb"}},
	})
	gw.AddServer(backend.Server{ID: "srv2", Name: "worker", Status: "SHUTOFF"})

	a := NewAPI(processor.New(gw), publicURL)
	return httpapi.Compose(a, httpapi.WithoutLogging()), gw
}

func TestListInAllFormats(t *testing.T) {
	h, _ := setup(t, Some("https://occi.example.com/"))

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/compute/",
		ExpectStatus: http.StatusOK,
		ExpectHeader: map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		ExpectBody: assert.StringData(
			"X-OCCI-Location: https://occi.example.com/compute/srv1\n" +
				"X-OCCI-Location: https://occi.example.com/compute/srv2",
		),
	}.Check(t, h)

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/compute/",
		Header:       map[string]string{"Accept": "text/occi"},
		ExpectStatus: http.StatusOK,
		ExpectHeader: map[string]string{
			"Content-Type":    "text/occi; charset=utf-8",
			"X-OCCI-Location": "https://occi.example.com/compute/srv1",
		},
		ExpectBody: assert.StringData("OK"),
	}.Check(t, h)

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/compute/",
		Header:       map[string]string{"Accept": "text/uri-list"},
		ExpectStatus: http.StatusOK,
		ExpectBody:   assert.StringData("https://occi.example.com/compute/srv1\nhttps://occi.example.com/compute/srv2"),
	}.Check(t, h)

	//unsupported media types fall back to text/plain
	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/link/storage/",
		Header:       map[string]string{"Accept": "application/xml"},
		ExpectStatus: http.StatusOK,
		ExpectBody:   assert.StringData("X-OCCI-Location: https://occi.example.com/link/storage/srv1_vol1"),
	}.Check(t, h)
}

func TestShowAsJSON(t *testing.T) {
	h, _ := setup(t, Some("https://occi.example.com"))

	for _, mediaType := range []string{"application/occi+json", "application/json"} {
		assert.HTTPRequest{
			Method:       "GET",
			Path:         "/storage/vol2",
			Header:       map[string]string{"Accept": mediaType},
			ExpectStatus: http.StatusOK,
			ExpectBody: assert.JSONObject{
				"kind":  "http://schemas.ogf.org/occi/infrastructure#storage",
				"id":    "vol2",
				"title": "scratch",
				"attributes": assert.JSONObject{
					"occi.storage.size":          1,
					"occi.storage.state":         "offline",
					"occi.storage.state.message": "creating",
				},
			},
		}.Check(t, h)
	}

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/link/storage/srv1_vol1",
		Header:       map[string]string{"Accept": "application/json"},
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"kind": "http://schemas.ogf.org/occi/infrastructure#storagelink",
			"id":   "srv1_vol1",
			"attributes": assert.JSONObject{
				"occi.storagelink.deviceid": "/dev/vdb",
				"occi.storagelink.state":    "active",
			},
			"source": assert.JSONObject{
				"kind":     "http://schemas.ogf.org/occi/infrastructure#compute",
				"location": "https://occi.example.com/compute/srv1",
			},
			"target": assert.JSONObject{
				"kind":     "http://schemas.ogf.org/occi/infrastructure#storage",
				"location": "https://occi.example.com/storage/vol1",
			},
		},
	}.Check(t, h)
}

func TestQueryInterface(t *testing.T) {
	h, _ := setup(t, None[string]())

	for _, path := range []string{"/-/", "/.well-known/org/ogf/occi/-/"} {
		assert.HTTPRequest{
			Method:       "GET",
			Path:         path,
			Header:       map[string]string{"Accept": "text/occi"},
			ExpectStatus: http.StatusOK,
			ExpectHeader: map[string]string{
				//the first category is the root of the kind hierarchy
				"Category": `entity; scheme="http://schemas.ogf.org/occi/core#"; class="kind"; title="entity"`,
			},
			ExpectBody: assert.StringData("OK"),
		}.Check(t, h)
	}

	//without public URL, locations are derived from the request
	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/network/",
		Header:       map[string]string{"Accept": "text/uri-list", "X-Forwarded-Proto": "https"},
		ExpectStatus: http.StatusOK,
		ExpectBody:   assert.StringData("https://example.com/network/net1"),
	}.Check(t, h)
}

func TestErrors(t *testing.T) {
	h, _ := setup(t, Some("https://occi.example.com"))

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/compute/srv3",
		Header:       map[string]string{"Accept": "text/occi"},
		ExpectStatus: http.StatusNotFound,
		ExpectHeader: map[string]string{"X-OCCI-Error": `server "srv3" not found`},
		ExpectBody:   assert.StringData(`server "srv3" not found`),
	}.Check(t, h)

	assert.HTTPRequest{
		Method:       "POST",
		Path:         "/compute/srv1",
		ExpectStatus: http.StatusBadRequest,
		ExpectBody:   assert.StringData("X-OCCI-Error: missing query parameter: action"),
	}.Check(t, h)

	assert.HTTPRequest{
		Method:       "POST",
		Path:         "/storage/vol1?action=resize",
		Header:       map[string]string{"Accept": "application/occi+json"},
		ExpectStatus: http.StatusNotImplemented,
		ExpectBody: assert.JSONObject{
			"code":    501,
			"message": `storage action "resize" is not supported`,
		},
	}.Check(t, h)

	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/link/networkinterface/srv1_net1_10.0.0.99",
		Header:       map[string]string{"Accept": "text/uri-list"},
		ExpectStatus: http.StatusNotFound,
		ExpectBody:   assert.StringData(`networkinterface "srv1_net1_10.0.0.99" not found`),
	}.Check(t, h)
}

func TestActionsAndDelete(t *testing.T) {
	h, gw := setup(t, Some("https://occi.example.com"))

	assert.HTTPRequest{
		Method:       "POST",
		Path:         "/compute/srv1?action=stop",
		Header:       map[string]string{"Accept": "text/uri-list"},
		ExpectStatus: http.StatusOK,
		ExpectBody:   assert.StringData("https://occi.example.com/compute/srv1"),
	}.Check(t, h)
	s, _ := gw.Server("srv1")
	assert.DeepEqual(t, "server status", s.Status, "SHUTOFF")

	assert.HTTPRequest{
		Method:       "POST",
		Path:         "/storage/vol1?action=backup",
		ExpectStatus: http.StatusOK,
	}.Check(t, h)
	assert.DeepEqual(t, "backups", gw.Backups, []string{"vol1"})

	assert.HTTPRequest{
		Method:       "DELETE",
		Path:         "/storage/vol1",
		ExpectStatus: http.StatusConflict,
	}.Check(t, h)
	assert.HTTPRequest{
		Method:       "DELETE",
		Path:         "/storage/vol2",
		ExpectStatus: http.StatusOK,
		ExpectBody:   assert.StringData(""),
	}.Check(t, h)
	assert.DeepEqual(t, "vol2 exists", gw.HasVolume("vol2"), false)

	//networks and IP reservations cannot be deleted
	assert.HTTPRequest{
		Method:       "DELETE",
		Path:         "/network/net1",
		ExpectStatus: http.StatusMethodNotAllowed,
	}.Check(t, h)
}
