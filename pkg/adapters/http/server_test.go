package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/unixtime"
	"github.com/aretw0/unixtime/pkg/adapters/memory"
	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/observability"
	"github.com/aretw0/unixtime/pkg/transform"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...unixtime.Option) (http.Handler, *memory.Log) {
	t.Helper()
	log := memory.NewLog(domain.LogName)
	base := []unixtime.Option{
		unixtime.WithLocation(time.UTC),
		unixtime.WithClock(transform.FixedClock(time.Unix(1609459200, 0))),
	}
	u := unixtime.New(append(base, opts...)...)

	handler, err := NewHandler(u, WithLog(log), WithGatherer(prometheus.NewRegistry()))
	require.NoError(t, err)
	return handler, log
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, CommandResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp CommandResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/commands/{id}"))
}

func TestRunCommand_ReplacesSelection(t *testing.T) {
	h, log := newTestHandler(t)

	w, resp := post(t, h, "/commands/convertUnixToHuman", `{"document":true,"selection":"0"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusReplaced, resp.Status)
	assert.Equal(t, "Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)", resp.Result)
	require.NotNil(t, resp.Document)
	assert.Equal(t, resp.Result, *resp.Document)
	assert.Equal(t, domain.MessageSelectionReplaced, resp.Message)
	assert.Empty(t, log.ShowCount())
}

func TestRunCommand_FullCommandID(t *testing.T) {
	h, _ := newTestHandler(t)

	w, resp := post(t, h, "/commands/"+string(domain.CommandHumanToUnix), `{"document":true,"selection":"2021-01-01T00:00:00Z"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1609459200", resp.Result)
}

func TestRunCommand_NoDocumentAppendsToLog(t *testing.T) {
	h, _ := newTestHandler(t)

	w, resp := post(t, h, "/commands/convertToUnixTimestamp", `{"input":"Thu Jan 01 1970 00:00:01 GMT+0000 (UTC)"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusLogged, resp.Status)
	assert.Equal(t, "1", resp.Result)
	assert.Nil(t, resp.Document)

	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	lw := httptest.NewRecorder()
	h.ServeHTTP(lw, req)

	var logResp LogResponse
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &logResp))
	assert.Equal(t, domain.LogName, logResp.Name)
	assert.Equal(t, []string{"1"}, logResp.Lines)
}

func TestRunCommand_EmptyLog(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.JSONEq(t, `{"name":"Unix Time Utility","lines":[]}`, w.Body.String())
}

func TestRunCommand_InvalidInput(t *testing.T) {
	h, log := newTestHandler(t)

	w, resp := post(t, h, "/commands/convertUnixToHuman", `{"input":"abc"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, domain.StatusError, resp.Status)
	assert.Equal(t, "Invalid input", resp.Message)
	lines, _ := log.Lines(context.Background())
	assert.Empty(t, lines)
}

func TestRunCommand_InsertWithoutDocument(t *testing.T) {
	h, _ := newTestHandler(t)

	w, resp := post(t, h, "/commands/insertUnixTimestamp", `{}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "There is no active text editor", resp.Message)
}

func TestRunCommand_InsertAtCursor(t *testing.T) {
	h, _ := newTestHandler(t)

	w, resp := post(t, h, "/commands/insertUnixTimestamp", `{"document":true,"selection":"ts=;","cursor":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusInserted, resp.Status)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "ts=1609459200;", *resp.Document)
}

func TestRunCommand_NothingToConvertIsCancelled(t *testing.T) {
	h, log := newTestHandler(t)

	w, resp := post(t, h, "/commands/convertUnixToHuman", `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Empty(t, resp.Message)
	lines, _ := log.Lines(context.Background())
	assert.Empty(t, lines)
}

func TestRunCommand_Rejections(t *testing.T) {
	h, _ := newTestHandler(t, unixtime.WithMaxInputSize(8))

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown command", "/commands/explode", `{}`, http.StatusNotFound},
		{"malformed body", "/commands/convertUnixToHuman", `{`, http.StatusBadRequest},
		{"input too large", "/commands/convertUnixToHuman", `{"input":"1234567890"}`, http.StatusBadRequest},
		{"selection too large", "/commands/convertUnixToHuman", `{"document":true,"selection":"1234567890"}`, http.StatusBadRequest},
		{"cursor outside selection", "/commands/insertUnixTimestamp", `{"document":true,"selection":"ab","cursor":5}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	u := unixtime.New(unixtime.WithLocation(time.UTC), unixtime.WithLifecycleHooks(metrics.Hooks()))
	h, err := NewHandler(u, WithGatherer(reg))
	require.NoError(t, err)

	post(t, h, "/commands/convertUnixToHuman", `{"input":"0"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `unixtime_commands_total{command="convertUnixToHuman",outcome="logged"} 1`)
}

func TestStaticEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		path     string
		contains string
	}{
		{"/health", `"status":"ok"`},
		{"/info", `"app":"unixtime-http"`},
		{"/openapi.yaml", "openapi: 3.0.3"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/commands/convertUnixToHuman", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_StreamsAppendedLines(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil(t, reader, "data: connected")

	cmd, err := http.Post(srv.URL+"/commands/convertUnixToHuman", "application/json", strings.NewReader(`{"input":"0"}`))
	require.NoError(t, err)
	io.Copy(io.Discard, cmd.Body)
	cmd.Body.Close()

	readUntil(t, reader, "data: Thu Jan 01 1970 00:00:00 GMT+0000 (UTC)")
}

func readUntil(t *testing.T, r *bufio.Reader, want string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err, "stream ended before %q", want)
		if strings.TrimRight(line, "\r\n") == want {
			return
		}
	}
}

func TestStreamManager_Unsubscribe(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe()
	assert.Equal(t, 1, sm.Subscribers())

	sm.Broadcast("x")
	assert.Equal(t, "x", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)
}
