package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permute/pkg/observability"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readLines(t *testing.T, r io.Reader) [][]string {
	t.Helper()
	var items [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var item []string
		require.NoError(t, json.Unmarshal(sc.Bytes(), &item))
		items = append(items, item)
	}
	require.NoError(t, sc.Err())
	return items
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp := get(t, srv, "/healthz")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Version)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Server"), "permute/"))
}

func TestEnumerate(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name      string
		path      string
		wantTotal string
		want      [][]string
	}{
		{
			name:      "permutations",
			path:      "/v1/permutations?items=a,b,c",
			wantTotal: "6",
			want: [][]string{
				{"a", "b", "c"}, {"a", "c", "b"}, {"b", "a", "c"},
				{"b", "c", "a"}, {"c", "a", "b"}, {"c", "b", "a"},
			},
		},
		{
			name:      "combinations alias",
			path:      "/v1/comb?items=a,b,c,d&k=2",
			wantTotal: "6",
			want: [][]string{
				{"a", "b"}, {"a", "c"}, {"a", "d"},
				{"b", "c"}, {"b", "d"}, {"c", "d"},
			},
		},
		{
			name:      "arrangements",
			path:      "/v1/arrangements?items=a&items=b&items=c&k=2",
			wantTotal: "6",
			want: [][]string{
				{"a", "b"}, {"b", "a"}, {"a", "c"},
				{"c", "a"}, {"b", "c"}, {"c", "b"},
			},
		},
		{
			name:      "limit",
			path:      "/v1/perm?items=a,b,c&limit=2",
			wantTotal: "6",
			want:      [][]string{{"a", "b", "c"}, {"a", "c", "b"}},
		},
		{
			name:      "size larger than input",
			path:      "/v1/combinations?items=a,b&k=3",
			wantTotal: "0",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, tt.path)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))
			assert.Equal(t, tt.wantTotal, resp.Header.Get(TotalCountHeader))
			assert.Equal(t, tt.want, readLines(t, resp.Body))
		})
	}
}

func TestEnumerateMaxItems(t *testing.T) {
	srv := newTestServer(t, Options{MaxItems: 4})

	resp := get(t, srv, "/v1/permutations?items=a,b,c,d")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "24", resp.Header.Get(TotalCountHeader))
	assert.Len(t, readLines(t, resp.Body), 4)

	resp = get(t, srv, "/v1/permutations?items=a,b,c,d&limit=100")
	assert.Len(t, readLines(t, resp.Body), 4)
}

func TestCount(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp := get(t, srv, "/v1/combinations/count?items=a,b,c,d,e&k=2")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body countResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, countResponse{Kind: "combinations", Elements: 5, Size: 2, Count: "10"}, body)
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, Options{MaxElements: 3})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"unknown kind", "/v1/shuffles?items=a,b", http.StatusBadRequest, "INVALID_KIND"},
		{"missing k", "/v1/combinations?items=a,b", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"negative k", "/v1/combinations?items=a,b&k=-1", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"non-numeric k", "/v1/arrangements/count?items=a&k=two", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"negative limit", "/v1/permutations?items=a&limit=-5", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"too many items", "/v1/permutations?items=a,b,c,d", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown route", "/v2/permutations", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, tt.path)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, string(body.Error.Code))
			assert.NotEmpty(t, body.Error.Message)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), body.Error.RequestID)
		})
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp := get(t, srv, "/healthz")
	generated := resp.Header.Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "trace-42")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "trace-42", resp2.Header.Get(RequestIDHeader))
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	h := New(Options{}).Handler()
	for _, path := range []string{"/healthz", "/v1/nope"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- New(Options{}).Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
