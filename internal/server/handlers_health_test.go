package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHome(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, &mockDataset{})

	rec := doRequest(srv, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "available_endpoints")
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, &mockDataset{})

	rec := doRequest(srv, http.MethodGet, "/health/live", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadinessHealthy(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, &mockDataset{})

	rec := doRequest(srv, http.MethodGet, "/health/ready", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadinessDatasetDown(t *testing.T) {
	dataset := &mockDataset{
		checkErr: fmt.Errorf("%w: no such file", domain.ErrDatasetUnavailable),
	}
	srv := newTestServer(t, &mockAppService{}, dataset)

	rec := doRequest(srv, http.MethodGet, "/health/ready", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"dataset"`)
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, &mockAppService{}, &mockDataset{})

	rec := doRequest(srv, http.MethodGet, "/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "version")
}
