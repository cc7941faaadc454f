package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/middleware/requestid"
)

type fakeTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared int
}

func (f *fakeTokens) AccessToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, nil
}

func (f *fakeTokens) RefreshToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh, nil
}

func (f *fakeTokens) SetAccessToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = token
	return nil
}

func (f *fakeTokens) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = "", ""
	f.cleared++
	return nil
}

type recordingObserver struct {
	mu       sync.Mutex
	calls    int
	outcomes []string
}

func (r *recordingObserver) ObserveUpstream(string, string, int, time.Duration) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *recordingObserver) ObserveRefresh(outcome string) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, outcome)
	r.mu.Unlock()
}

type fakeBackend struct {
	dataCalls    int32
	refreshCalls int32
	validToken   string
	firstUnauth  bool
	refreshCode  int
	bodies       []string
	authHeaders  []string
	mu           sync.Mutex
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.refreshCalls, 1)
		if b.refreshCode != 0 && b.refreshCode != http.StatusOK {
			w.WriteHeader(b.refreshCode)
			return
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["refresh"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": b.validToken})
	})
	mux.HandleFunc("/api/students/", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&b.dataCalls, 1)
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, string(body))
		b.authHeaders = append(b.authHeaders, r.Header.Get("Authorization"))
		b.mu.Unlock()
		if b.firstUnauth && n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+b.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})
	return mux
}

func newTestClient(t *testing.T, backend *fakeBackend, observer Observer) (*Client, func()) {
	srv := httptest.NewServer(backend.handler())
	client := New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second, Observer: observer})
	return client, srv.Close
}

func TestDoWithoutTokenMakesNoNetworkCall(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh"}
	client, closeFn := newTestClient(t, backend, nil)
	defer closeFn()

	resp, err := client.Do(context.Background(), &fakeTokens{}, &Request{Method: http.MethodGet, Path: "/api/students/"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthenticated))
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.dataCalls))
}

func TestDoRefreshesOnceAndRetries(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh", firstUnauth: true}
	observer := &recordingObserver{}
	client, closeFn := newTestClient(t, backend, observer)
	defer closeFn()
	tokens := &fakeTokens{access: "fresh", refresh: "refresh-1"}

	req, err := NewJSONRequest(http.MethodPost, "/api/students/", map[string]string{"admission_no": "A123"})
	require.NoError(t, err)
	resp, err := client.Do(context.Background(), tokens, req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&backend.dataCalls))
	require.Len(t, backend.bodies, 2)
	assert.Equal(t, backend.bodies[0], backend.bodies[1])
	assert.JSONEq(t, `{"admission_no":"A123"}`, backend.bodies[1])
	assert.Equal(t, []string{RefreshSucceeded}, observer.outcomes)
	assert.Equal(t, 3, observer.calls)
}

func TestDoStoresRefreshedToken(t *testing.T) {
	backend := &fakeBackend{validToken: "new-token"}
	client, closeFn := newTestClient(t, backend, nil)
	defer closeFn()
	tokens := &fakeTokens{access: "expired", refresh: "refresh-1"}

	resp, err := client.Do(context.Background(), tokens, &Request{Path: "/api/students/"})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "new-token", tokens.access)
	assert.Equal(t, []string{"Bearer expired", "Bearer new-token"}, backend.authHeaders)
}

func TestDoRefreshFailureClearsSession(t *testing.T) {
	backend := &fakeBackend{validToken: "never", refreshCode: http.StatusUnauthorized}
	observer := &recordingObserver{}
	client, closeFn := newTestClient(t, backend, observer)
	defer closeFn()
	tokens := &fakeTokens{access: "expired", refresh: "stale"}

	resp, err := client.Do(context.Background(), tokens, &Request{Path: "/api/students/"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, appErrors.ErrAuthenticationFailed))
	assert.Equal(t, 1, tokens.cleared)
	assert.Empty(t, tokens.access)
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.dataCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
	assert.Equal(t, []string{RefreshFailed}, observer.outcomes)
}

func TestDoMissingRefreshTokenClearsWithoutExchange(t *testing.T) {
	backend := &fakeBackend{validToken: "never"}
	client, closeFn := newTestClient(t, backend, nil)
	defer closeFn()
	tokens := &fakeTokens{access: "expired"}

	_, err := client.Do(context.Background(), tokens, &Request{Path: "/api/students/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrAuthenticationFailed))
	assert.Equal(t, 1, tokens.cleared)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.refreshCalls))
}

func TestDoReturnsSecondUnauthorizedWithoutLooping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			_, _ = w.Write([]byte(`{"access":"still-bad"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})
	tokens := &fakeTokens{access: "a", refresh: "r"}

	resp, err := client.Do(context.Background(), tokens, &Request{Path: "/api/students/"})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, tokens.cleared)
}

func TestDoPassesOtherStatusesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"admission_no":["This field must be unique."]}`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	resp, err := client.Do(context.Background(), &fakeTokens{access: "a"}, &Request{Method: http.MethodPost, Path: "/api/students/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	err = DecodeJSON(resp, nil)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "This field must be unique.", appErr.Fields["admission_no"])
}

func TestDoHeaderMerge(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	ctx := requestid.WithValue(context.Background(), "req-123")
	header := http.Header{}
	header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	header.Set("X-Custom", "1")
	resp, err := client.Do(ctx, &fakeTokens{access: "tok"}, &Request{Method: http.MethodPost, Path: "/api/students/import_csv/", Header: header, Body: []byte("--xyz--")})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Equal(t, "multipart/form-data; boundary=xyz", got.Get("Content-Type"))
	assert.Equal(t, "1", got.Get("X-Custom"))
	assert.Equal(t, "req-123", got.Get(requestid.HeaderKey))
}

func TestDoKeepsCallerAuthorization(t *testing.T) {
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	header := http.Header{}
	header.Set("Authorization", "Bearer caller")
	resp, err := client.Do(context.Background(), &fakeTokens{access: "session"}, &Request{Path: "/api/user/", Header: header})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer caller", auth)
	assert.Equal(t, "application/json", contentType)
}

func TestConcurrentRefreshesCollapse(t *testing.T) {
	var refreshCalls int32
	var barrier sync.WaitGroup
	barrier.Add(2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			atomic.AddInt32(&refreshCalls, 1)
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{"access":"fresh"}`))
			return
		}
		if r.Header.Get("Authorization") == "Bearer stale" {
			barrier.Done()
			barrier.Wait()
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})
	tokens := &fakeTokens{access: "stale", refresh: "shared"}

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := client.Do(context.Background(), tokens, &Request{Path: "/api/students/"})
			if err == nil {
				statuses[i] = resp.StatusCode
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, statuses)
}

func TestPostIsUnauthenticated(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"access":"a","refresh":"r"}`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL + "/"})

	resp, err := client.Post(context.Background(), "/api/login/", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, DecodeJSON(resp, &payload))
	assert.Empty(t, auth)
	assert.Equal(t, "a", payload["access"])
	assert.Equal(t, srv.URL, client.BaseURL())
}
