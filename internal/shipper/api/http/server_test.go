package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
)

func do(t *testing.T, h http.Handler, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestShipperAPI_Lifecycle(t *testing.T) {
	h := NewHandler(docstore.NewMemory(), logger.Discard())

	var shipper map[string]any
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/shippers",
		map[string]any{"name": "Sam", "phone": "555", "vehicle": "bike"}, &shipper))
	id, _ := shipper["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "available", shipper["status"])

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/shippers/"+id, nil, &shipper))
	assert.Equal(t, "Sam", shipper["name"])

	var list []map[string]any
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/shippers", nil, &list))
	assert.Len(t, list, 1)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/shippers/"+id+"/status",
		map[string]any{"status": "busy"}, &shipper))
	assert.Equal(t, "busy", shipper["status"])
	assert.Equal(t, "bike", shipper["vehicle"])

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/shippers", nil, &list))
	assert.Empty(t, list)
}

func TestShipperAPI_Errors(t *testing.T) {
	h := NewHandler(docstore.NewMemory(), logger.Discard())

	var body map[string]any
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/shippers/missing", nil, &body))
	assert.Equal(t, "Shipper not found", body["error"])

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/shippers/missing/status",
		map[string]any{"status": "busy"}, nil))

	var shipper map[string]any
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/shippers", map[string]any{"name": "Sam"}, &shipper))
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/shippers/"+shipper["id"].(string)+"/status",
		map[string]any{"status": "asleep"}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/shippers",
		map[string]any{"name": "Kim", "status": "asleep"}, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/shippers/x/status", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShipperAPI_Health(t *testing.T) {
	var body map[string]any
	assert.Equal(t, http.StatusOK, do(t, NewHandler(docstore.NewMemory(), logger.Discard()), http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "shipper-service", body["service"])
}

type downStore struct{ docstore.Store }

func (downStore) Collection(string) docstore.Collection { return downCollection{} }

type downCollection struct{ docstore.Collection }

func (downCollection) FindMany(context.Context, docstore.Filter, any) error {
	return errors.New("store down")
}

func TestShipperAPI_FailureLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&buf, "INFO")
	require.NoError(t, err)

	h := httpx.WithRequestLog(NewHandler(downStore{}, log), log)
	req := httptest.NewRequest(http.MethodGet, "/shippers", nil)
	req.Header.Set(httpx.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var failed map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["action"] == "request_failed" {
			failed = entry
		}
	}
	require.NotNil(t, failed, buf.String())
	assert.Equal(t, "req-42", failed["request_id"])
}
