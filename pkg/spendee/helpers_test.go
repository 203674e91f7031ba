package spendee_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/Dan9191/spendee/pkg/config"
	"github.com/Dan9191/spendee/pkg/spendee"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const testToken = "5808b3d4-9999-9999-8466-aad7f20b3252"

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// upstream is a fake Spendee API. Routes not registered answer 404, wrong
// methods 405, so method and path are both checked.
type upstream struct {
	router *mux.Router
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{router: mux.NewRouter()}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		u.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		u.router.ServeHTTP(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) reply(method, path string, status int, body string) {
	u.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

func (u *upstream) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func (u *upstream) last(t *testing.T) recordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.requests, "no request reached the upstream")
	return u.requests[len(u.requests)-1]
}

func (u *upstream) all() []recordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]recordedRequest(nil), u.requests...)
}

// success wraps result in the service envelope most endpoints use
func success(result string) string {
	return `{"result":` + result + `,"version":"v1","service":"api.test","timestamp":"2019-12-29 07:30:01.163292","status":"SUCCESS","checksum":"addc3a80c74aa7268d14bee0209cc72a"}`
}

func newClient(t *testing.T, u *upstream, opts ...spendee.Option) (*spendee.Client, *logtest.Hook) {
	cfg := config.Default()
	cfg.BaseURL = u.server.URL + "/"

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	opts = append([]spendee.Option{spendee.WithDeviceID(func() string { return "device-1" })}, opts...)
	c, err := spendee.NewClient(cfg, log, opts...)
	require.NoError(t, err)
	return c, hook
}

func loggedIn(t *testing.T, u *upstream, opts ...spendee.Option) *spendee.Client {
	c, _ := newClient(t, u, opts...)
	c.Session().Restore(testToken)
	return c
}

func bodyOf(t *testing.T, r recordedRequest) map[string]any {
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}
