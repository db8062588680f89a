package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vestibule"
	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler  http.Handler
	sessions *session.Manager
	engine   *vestibule.Engine
}

func setup(t *testing.T, dwell time.Duration, opts ...Option) *fixture {
	t.Helper()
	eng, err := vestibule.New(
		vestibule.WithDwell(dwell),
		vestibule.WithSelectionStore(memory.NewSelectionStore()),
	)
	require.NoError(t, err)

	mgr := eng.Sessions()
	t.Cleanup(mgr.Close)

	h, err := NewHandler(eng, mgr, opts...)
	require.NoError(t, err)
	return &fixture{handler: h, sessions: mgr, engine: eng}
}

func (f *fixture) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) onboarding.View {
	t.Helper()
	var v onboarding.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	f := setup(t, time.Hour)

	w := f.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = f.do(t, "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "vestibule-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])

	w = f.do(t, "GET", "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), "the embedded document is JSON")
	assert.Equal(t, "3.0.3", doc["openapi"])

	w = f.do(t, "GET", "/swagger", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "url: '/openapi.yaml'")
}

func TestRoutesMatchDocument(t *testing.T) {
	f := setup(t, time.Hour)
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "Vestibule API", doc.Info.Title)

	routes, ok := f.handler.(chi.Routes)
	require.True(t, ok)

	served := 0
	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		switch route {
		case "/openapi.yaml", "/swagger", "/metrics":
			return nil
		}
		item := doc.Paths.Value(route)
		if assert.NotNil(t, item, route) {
			assert.NotNil(t, item.GetOperation(method), "%s %s", method, route)
		}
		served++
		return nil
	})
	require.NoError(t, err)

	documented := 0
	for _, item := range doc.Paths.Map() {
		documented += len(item.Operations())
	}
	assert.Equal(t, documented, served)
}

func TestUnimplementedAnswers501(t *testing.T) {
	h := Handler(Unimplemented{})
	req := httptest.NewRequest("POST", "/sessions/s1/confirm", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestListGuides_ResolvesImages(t *testing.T) {
	f := setup(t, time.Hour)

	w := f.do(t, "GET", "/guides", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cards []onboarding.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, len(f.engine.Guides()))
	for _, c := range cards {
		assert.NotEmpty(t, c.ImageURL, c.ID)
		assert.NotContains(t, c.ImageURL, "portrait:", "legacy keys are resolved")
	}
}

func TestPointerFlow_Orin(t *testing.T) {
	f := setup(t, 20*time.Millisecond)

	w := f.do(t, "POST", "/sessions", `{"session_id":"s1","visitor_id":"v1","capability":"pointer"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	v := decodeView(t, w)
	assert.Equal(t, domain.StepWelcome, v.Step)
	assert.Equal(t, domain.CapabilityPointer, v.Capability)
	require.NotNil(t, v.Intro)

	v = decodeView(t, f.do(t, "POST", "/sessions/s1/proceed", ""))
	assert.Equal(t, domain.StepChoose, v.Step)
	assert.Len(t, v.Guides, 5)

	v = decodeView(t, f.do(t, "POST", "/sessions/s1/hover", `{"guide_id":"Orin"}`))
	require.NotNil(t, v.Preview)
	assert.Equal(t, "Orin", v.Preview.ID)

	v = decodeView(t, f.do(t, "POST", "/sessions/s1/activate", `{"guide_id":"Orin"}`))
	assert.Equal(t, domain.StepConfirm, v.Step)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "Orin", v.Selected.ID)

	v = decodeView(t, f.do(t, "POST", "/sessions/s1/confirm", ""))
	assert.Equal(t, domain.StepReveal, v.Step)
	require.NotNil(t, v.Message)
	assert.Equal(t, "The page turns", v.Message.Title)

	assert.Eventually(t, func() bool {
		w := f.do(t, "GET", "/selection/v1", "")
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), `"guide_id":"Orin"`)
	}, 2*time.Second, 10*time.Millisecond)

	v = decodeView(t, f.do(t, "GET", "/sessions/s1", ""))
	assert.True(t, v.Completed)
}

func TestStartSession_ProbesCapability(t *testing.T) {
	f := setup(t, time.Hour)

	w := f.do(t, "POST", "/sessions", "", "User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, domain.CapabilityTouch, decodeView(t, w).Capability)

	w = f.do(t, "POST", "/sessions", "", "X-Input-Capability", "coarse")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.CapabilityTouch, decodeView(t, w).Capability)

	w = f.do(t, "POST", "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.CapabilityPointer, decodeView(t, w).Capability)
}

func TestErrorMapping(t *testing.T) {
	f := setup(t, time.Hour)
	require.Equal(t, http.StatusCreated, f.do(t, "POST", "/sessions", `{"session_id":"s1"}`).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown session", "GET", "/sessions/nope", "", http.StatusNotFound},
		{"confirm during welcome", "POST", "/sessions/s1/confirm", "", http.StatusConflict},
		{"duplicate start", "POST", "/sessions", `{"session_id":"s1"}`, http.StatusConflict},
		{"hover without body", "POST", "/sessions/s1/hover", "", http.StatusBadRequest},
		{"empty guide id", "POST", "/sessions/s1/activate", `{"guide_id":""}`, http.StatusBadRequest},
		{"bad capability", "POST", "/sessions", `{"capability":"laser"}`, http.StatusBadRequest},
		{"no selection yet", "GET", "/selection/v2", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	require.Equal(t, http.StatusOK, f.do(t, "POST", "/sessions/s1/proceed", "").Code)
	w := f.do(t, "POST", "/sessions/s1/activate", `{"guide_id":"Ghost"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEndSession(t *testing.T) {
	f := setup(t, time.Hour)
	require.Equal(t, http.StatusCreated, f.do(t, "POST", "/sessions", `{"session_id":"s1"}`).Code)

	assert.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/sessions/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "GET", "/sessions/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "DELETE", "/sessions/s1", "").Code)
}

func TestSubscribeEvents_Session(t *testing.T) {
	f := setup(t, time.Hour)
	require.Equal(t, http.StatusCreated, f.do(t, "POST", "/sessions", `{"session_id":"sess-1"}`).Code)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/sessions/sess-1/events?watch=step", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	require.Equal(t, http.StatusOK, f.do(t, "POST", "/sessions/sess-1/proceed", "").Code)
	require.Equal(t, http.StatusOK, f.do(t, "POST", "/sessions/sess-1/hover", `{"guide_id":"Vela"}`).Code)
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"step":"welcome"`, "initial sync")
	assert.Contains(t, output, `"step":"choose"`)
	assert.NotContains(t, output, `"preview_for":"Vela"`, "filtered by watch=step")
}

func TestSubscribeEvents_EndsWithSession(t *testing.T) {
	f := setup(t, time.Hour)
	require.Equal(t, http.StatusCreated, f.do(t, "POST", "/sessions", `{"session_id":"sess-2"}`).Code)

	wSub := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.ServeHTTP(wSub, httptest.NewRequest("GET", "/sessions/sess-2/events", nil))
	}()
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/sessions/sess-2", "").Code)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end with the session")
	}
	assert.Contains(t, wSub.Body.String(), "event: end")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := setup(t, time.Hour, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	w := f.do(t, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	f := setup(t, time.Hour)
	w := f.do(t, "OPTIONS", "/sessions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
