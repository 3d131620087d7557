package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pv-udpv/opendirect21-adcom/internal/httpapi"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/store"
)

const serverDoc = `## Object: Order

|Attribute|Description|Type|
|--|--|--|
|id*|Order ID|string (36)|
|accountid*|Parent account|string (36)|
|name*|Order name|string (255)|
|budget|Total budget|number|
|status*|Order status|enum (Pending, Approved, Declined)|

## Object: Line

|Attribute|Description|Type|
|--|--|--|
|id*|Line ID|string (36)|
|orderid*|Parent order|string (36)|
|name*|Line name|string (200)|
`

// newTestServer builds an isolated store and server per test.
func newTestServer(t *testing.T) *httpapi.Server {
	t.Helper()
	doc := spec.Parse(serverDoc)
	require.False(t, doc.Report.HasErrors(), doc.Report.Summary())
	return httpapi.New(store.New(), nil, httpapi.SpecSet{
		Name:   "opendirect",
		Prefix: "/v1/opendirect",
		Doc:    doc,
	})
}

func do(t *testing.T, srv *httpapi.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func validOrder(name string) map[string]any {
	return map[string]any{
		"accountid": "a-1",
		"name":      name,
		"status":    "Pending",
	}
}

func TestCreateAndRead(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/v1/opendirect/orders", validOrder("first"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id, "store assigns the identifier")
	assert.NotEmpty(t, created["created_at"])

	w = do(t, srv, http.MethodGet, "/v1/opendirect/orders/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first", decode(t, w)["name"])
}

func TestCreate_ValidationFailures(t *testing.T) {
	srv := newTestServer(t)

	// missing required field
	w := do(t, srv, http.MethodPost, "/v1/opendirect/orders", map[string]any{"name": "x", "status": "Pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// enum value outside the closed set
	bad := validOrder("x")
	bad["status"] = "Maybe"
	w = do(t, srv, http.MethodPost, "/v1/opendirect/orders", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// wrong scalar type
	bad = validOrder("x")
	bad["budget"] = "lots"
	w = do(t, srv, http.MethodPost, "/v1/opendirect/orders", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreate_IDCollisionIsConflict(t *testing.T) {
	srv := newTestServer(t)

	body := validOrder("first")
	body["id"] = "o-1"
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/orders", body).Code)

	body = validOrder("second")
	body["id"] = "o-1"
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/v1/opendirect/orders", body).Code)
}

func TestList_PaginationAndTotal(t *testing.T) {
	srv := newTestServer(t)
	for _, name := range []string{"a", "b", "c"} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/orders", validOrder(name)).Code)
	}

	w := do(t, srv, http.MethodGet, "/v1/opendirect/orders?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, float64(3), out["total"])
	items := out["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].(map[string]any)["name"])

	w = do(t, srv, http.MethodGet, "/v1/opendirect/orders?skip=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestList_ParentReferenceFilter(t *testing.T) {
	srv := newTestServer(t)
	for _, l := range []map[string]any{
		{"id": "l-1", "orderid": "o-1", "name": "one"},
		{"id": "l-2", "orderid": "o-2", "name": "two"},
		{"id": "l-3", "orderid": "o-1", "name": "three"},
	} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/lines", l).Code)
	}

	w := do(t, srv, http.MethodGet, "/v1/opendirect/lines?orderid=o-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, float64(2), out["total"])
}

func TestUpdate_FullReplace(t *testing.T) {
	srv := newTestServer(t)

	body := validOrder("before")
	body["id"] = "o-1"
	body["budget"] = 100.0
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/orders", body).Code)

	w := do(t, srv, http.MethodPut, "/v1/opendirect/orders/o-1", validOrder("after"))
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, "after", updated["name"])
	assert.Equal(t, "o-1", updated["id"])
	assert.NotContains(t, updated, "budget", "replace drops fields absent from the new document")

	w = do(t, srv, http.MethodPut, "/v1/opendirect/orders/missing", validOrder("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	body := validOrder("x")
	body["id"] = "o-1"
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/orders", body).Code)

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/v1/opendirect/orders/o-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/v1/opendirect/orders/o-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/v1/opendirect/orders/o-1", nil).Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/opendirect/orders", validOrder("x")).Code)

	w := do(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "ok", out["status"])
	counts := out["collections"].(map[string]any)
	assert.Equal(t, float64(1), counts["orders"])
}
