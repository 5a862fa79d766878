package analysis

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ksfit/domain/fit"
	"ksfit/internal/config"
	"ksfit/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService stands in for the remote analysis service
type fakeService struct {
	status int
	body   string
	calls  atomic.Int32

	gotContentType string
	gotPayload     map[string]interface{}
}

func (f *fakeService) start(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/analyze", func(w http.ResponseWriter, req *http.Request) {
		f.calls.Add(1)
		f.gotContentType = req.Header.Get("Content-Type")
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &f.gotPayload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.AnalysisConfig{BaseURL: srv.URL, Path: "/analyze"})
}

func TestSubmitSuccess(t *testing.T) {
	svc := &fakeService{
		status: http.StatusOK,
		body: `{"status":"success","distribution":"norm","distribution_name":"Normal",
			"statistic":0.12,"p_value":0.1,"params":[1.0,2.0],
			"stats":{"mean":1,"std":2,"min":0,"max":5,"size":6,"median":1.5,"q1":0.5,"q3":2.5,"variance":4}}`,
	}
	srv := svc.start(t)

	req := fit.NewRequest(fit.Sample{0, 1, 1.5, 2, 5, -1}, fit.DistributionNormal)
	result, err := newTestClient(srv).Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "application/json", svc.gotContentType)
	assert.Equal(t, "norm", svc.gotPayload["distribution"])
	assert.Equal(t, []interface{}{0.0, 1.0, 1.5, 2.0, 5.0, -1.0}, svc.gotPayload["data"])

	assert.Equal(t, "norm", result.Distribution)
	assert.Equal(t, "Normal", result.DistributionName)
	assert.Equal(t, 0.12, result.Statistic)
	assert.Equal(t, 0.1, result.PValue)
	assert.Equal(t, []float64{1, 2}, result.Params)
	assert.Equal(t, fit.Stats{Mean: 1, Std: 2, Min: 0, Max: 5, Size: 6, Variance: 4, Median: 1.5, Q1: 0.5, Q3: 2.5}, result.Stats)
}

func TestSubmitNonSuccessStatusIsTransportError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		svc := &fakeService{status: status, body: `{"status":"error","message":"Se requieren al menos 5 puntos de datos."}`}
		srv := svc.start(t)

		_, err := newTestClient(srv).Submit(context.Background(), fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionUniform))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeTransport), "status %d", status)
		assert.Contains(t, err.Error(), "status")
		assert.Equal(t, int32(1), svc.calls.Load(), "no retry")
	}
}

func TestSubmitSuccessStatusWithErrorLookingBody(t *testing.T) {
	// 2xx is success regardless of what the body says about itself
	svc := &fakeService{status: http.StatusCreated, body: `{"status":"error","distribution":"expon","statistic":0.3,"p_value":0.01,"stats":{"mean":1,"std":1,"min":0,"max":3}}`}
	srv := svc.start(t)

	result, err := newTestClient(srv).Submit(context.Background(), fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionExponential))
	require.NoError(t, err)
	assert.Equal(t, "expon", result.Distribution)
}

func TestSubmitMalformedBodies(t *testing.T) {
	bodies := map[string]string{
		"empty":             ``,
		"html":              `<html>oops</html>`,
		"array":             `[1,2,3]`,
		"truncated":         `{"distribution":"norm","statistic":`,
		"string statistic":  `{"distribution":"norm","statistic":"0.1","p_value":0.2,"stats":{}}`,
		"numeric dist":      `{"distribution":7,"statistic":0.1,"p_value":0.2,"stats":{}}`,
		"stats not object":  `{"distribution":"norm","statistic":0.1,"p_value":0.2,"stats":[1,2]}`,
		"params not number": `{"distribution":"norm","statistic":0.1,"p_value":0.2,"params":["a"],"stats":{}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{status: http.StatusOK, body: body}
			srv := svc.start(t)

			_, err := newTestClient(srv).Submit(context.Background(), fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionNormal))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeMalformedResponse), err.Error())
		})
	}
}

func TestSubmitMissingFieldsBecomeNaN(t *testing.T) {
	svc := &fakeService{status: http.StatusOK, body: `{"distribution":"norm","p_value":null}`}
	srv := svc.start(t)

	result, err := newTestClient(srv).Submit(context.Background(), fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionNormal))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.Statistic))
	assert.True(t, math.IsNaN(result.PValue))
	assert.True(t, math.IsNaN(result.Stats.Mean))
	assert.True(t, math.IsNaN(result.Stats.Max))
	assert.Nil(t, result.Params)
}

func TestSubmitUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(config.AnalysisConfig{BaseURL: url, Path: "/analyze"})
	_, err := client.Submit(context.Background(), fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionNormal))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeTransport))
}

func TestSubmitHonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	r := chi.NewRouter()
	r.Post("/analyze", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-release:
		case <-req.Context().Done():
		}
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv).Submit(ctx, fit.NewRequest(fit.Sample{1, 2, 3, 4, 5}, fit.DistributionNormal))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeTransport))
}

func TestEndpointJoin(t *testing.T) {
	c := NewClient(config.AnalysisConfig{BaseURL: "http://svc:5000/", Path: "analyze"})
	assert.Equal(t, "http://svc:5000/analyze", c.Endpoint())
}
