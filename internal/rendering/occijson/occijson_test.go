// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package occijson

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	. "github.com/majewsky/gg/option"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/must"

	"github.com/sapcc/occi-adapter/internal/infrastructure"
	"github.com/sapcc/occi-adapter/internal/occi"
	"github.com/sapcc/occi-adapter/internal/rendering"
)

const infraURL = "http://schemas.ogf.org/occi/infrastructure#"

var testEnv = rendering.Environment{ApplicationURL: "http://occi.example.com"}

func renderString(t *testing.T, value any) string {
	t.Helper()
	r := must.ReturnT(GetRenderer(value))(t)
	return string(must.ReturnT(r.Render(testEnv))(t))
}

func renderData(t *testing.T, value any) any {
	t.Helper()
	var data any
	must.SucceedT(t, json.Unmarshal([]byte(renderString(t, value)), &data))
	return data
}

func TestBareComputeResource(t *testing.T) {
	c := must.ReturnT(infrastructure.NewComputeResource(infrastructure.ComputeOptions{ID: "x", Title: "foo", Summary: "bar"}))(t)
	assert.DeepEqual(t, "JSON", renderString(t, c),
		`{"id":"x","kind":"http://schemas.ogf.org/occi/infrastructure#compute","summary":"bar","title":"foo"}`)
}

func TestResourceWithLinks(t *testing.T) {
	tpl := must.ReturnT(infrastructure.NewOSTemplate("img1", "Ubuntu"))(t)
	c := must.ReturnT(infrastructure.NewComputeResource(infrastructure.ComputeOptions{
		ID:      "srv1",
		Cores:   Some(2),
		State:   "active",
		Mixins:  []*occi.Mixin{tpl},
		Actions: []*occi.Action{infrastructure.StopAction},
	}))(t)
	s := must.ReturnT(infrastructure.NewStorageResource(infrastructure.StorageOptions{ID: "vol1", Size: Some(10.0)}))(t)
	c.AddLink(must.ReturnT(infrastructure.NewStorageLink(c, s, infrastructure.StorageLinkOptions{DeviceID: "/dev/vdb"}))(t))

	assert.DeepEqual(t, "JSON", renderData(t, c), any(map[string]any{
		"kind":   infraURL + "compute",
		"id":     "srv1",
		"mixins": []any{"http://schemas.openstack.org/template/os#img1"},
		"attributes": map[string]any{
			"occi.compute.cores": 2.0,
			"occi.compute.state": "active",
		},
		"actions": []any{"http://schemas.ogf.org/occi/infrastructure/compute/action#stop"},
		"links": []any{
			map[string]any{
				"kind": infraURL + "storagelink",
				"id":   "srv1_vol1",
				"attributes": map[string]any{
					"occi.storagelink.deviceid": "/dev/vdb",
				},
				"source": map[string]any{"kind": infraURL + "compute", "location": "http://occi.example.com/compute/srv1"},
				"target": map[string]any{"kind": infraURL + "storage", "location": "http://occi.example.com/storage/vol1"},
			},
		},
	}))
}

func TestCategoryRendering(t *testing.T) {
	assert.DeepEqual(t, "storage kind", renderData(t, infrastructure.StorageKind), any(map[string]any{
		"term":     "storage",
		"scheme":   infraURL,
		"title":    "storage resource",
		"location": "http://occi.example.com/storage/",
		"parent":   "http://schemas.ogf.org/occi/core#resource",
		"attributes": map[string]any{
			"occi.storage.size":          map[string]any{"mutable": true, "required": true, "type": "number"},
			"occi.storage.state":         map[string]any{"mutable": false, "required": false, "type": "string"},
			"occi.storage.state.message": map[string]any{"mutable": false, "required": false, "type": "string"},
		},
		"actions": []any{
			"http://schemas.ogf.org/occi/infrastructure/storage/action#online",
			"http://schemas.ogf.org/occi/infrastructure/storage/action#offline",
			"http://schemas.ogf.org/occi/infrastructure/storage/action#backup",
			"http://schemas.ogf.org/occi/infrastructure/storage/action#snapshot",
			"http://schemas.ogf.org/occi/infrastructure/storage/action#resize",
		},
	}))

	pool := must.ReturnT(infrastructure.NewFloatingIPPool("public"))(t)
	assert.DeepEqual(t, "pool mixin", renderData(t, pool), any(map[string]any{
		"term":    "public",
		"scheme":  "http://schemas.openstack.org/network/floatingippool#",
		"title":   "public",
		"applies": []any{infraURL + "compute"},
	}))

	rt := must.ReturnT(infrastructure.NewResourceTemplate(infrastructure.FlavorInfo{ID: "1", Name: "tiny", Cores: 1, Memory: 0.5}))(t)
	data := renderData(t, rt).(map[string]any)
	assert.DeepEqual(t, "depends", data["depends"], any([]any{infraURL + "resource_tpl"}))
	cores := data["attributes"].(map[string]any)["occi.compute.cores"]
	assert.DeepEqual(t, "cores", cores, any(map[string]any{"mutable": false, "required": false, "type": "number", "default": 1.0}))
}

func TestCollectionRendering(t *testing.T) {
	c := must.ReturnT(infrastructure.NewComputeResource(infrastructure.ComputeOptions{ID: "srv1"}))(t)
	coll := &occi.Collection{
		Actions:   []*occi.Action{infrastructure.UpAction},
		Resources: []occi.ResourceObject{c},
	}
	assert.DeepEqual(t, "collection", renderData(t, coll), any(map[string]any{
		"actions": []any{
			map[string]any{
				"term":   "up",
				"scheme": "http://schemas.ogf.org/occi/infrastructure/network/action#",
				"title":  "Bring network up",
			},
		},
		"resources": []any{
			map[string]any{"kind": infraURL + "compute", "id": "srv1"},
		},
	}))

	assert.DeepEqual(t, "empty collection", renderString(t, &occi.Collection{}), "{}")
}

type notFoundError struct{}

func (notFoundError) Error() string   { return "no such thing" }
func (notFoundError) HTTPStatus() int { return http.StatusNotFound }

func TestExceptionRendering(t *testing.T) {
	assert.DeepEqual(t, "backend error", renderString(t, notFoundError{}), `{"code":404,"message":"no such thing"}`)
	assert.DeepEqual(t, "internal error", renderString(t, errors.New("boom")), `{"code":500,"message":"boom"}`)

	_, err := GetRenderer(42)
	assert.DeepEqual(t, "is UnsupportedRenderTypeError", errext.IsOfType[rendering.UnsupportedRenderTypeError](err), true)

	_, err = GetRenderer(&occi.Collection{Resources: []occi.ResourceObject{nil}})
	assert.DeepEqual(t, "nil member is UnsupportedRenderTypeError", errext.IsOfType[rendering.UnsupportedRenderTypeError](err), true)
	_, err = GetRenderer(&occi.Collection{Links: []occi.LinkObject{nil}, Kinds: []*occi.Kind{infrastructure.ComputeKind}})
	assert.DeepEqual(t, "nil link is UnsupportedRenderTypeError", errext.IsOfType[rendering.UnsupportedRenderTypeError](err), true)
}
