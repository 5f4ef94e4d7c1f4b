package sodarest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

const (
	key          = "0123456789ABCDEF0123456789ABCDEF"
	precedingKey = "0123456789ABCDEF0123456789ABCDEE"
	basePath     = "/ords/app/soda/latest"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// fakeORDS answers with the handler registered for "METHOD path" and
// records every request.
type fakeORDS struct {
	t        *testing.T
	mu       sync.Mutex
	requests []request
	routes   map[string]http.HandlerFunc
}

func newFakeORDS(t *testing.T) (*fakeORDS, *Client) {
	f := &fakeORDS{t: t, routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	c, err := NewClient(Config{
		Host:     u.Hostname(),
		Port:     port,
		Username: "app",
		Password: "secret",
		Schema:   "app",
	})
	require.NoError(t, err)
	return f, c
}

func (f *fakeORDS) on(method, path string, h http.HandlerFunc) {
	f.routes[method+" "+basePath+path] = h
}

func (f *fakeORDS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	assert.True(f.t, ok)
	assert.Equal(f.t, "app", user)
	assert.Equal(f.t, "secret", pass)

	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: string(body)})
	f.mu.Unlock()

	h, ok := f.routes[r.Method+" "+r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"NotFound"}`))
		return
	}
	h(w, r)
}

func (f *fakeORDS) sent() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

const readBackBody = `{"items":[{"id":"` + key + `","etag":"E2","lastModified":"2024-03-01T10:00:00.000000Z","created":"2024-02-01T10:00:00.000000Z","value":{"title":"disk full"}}],"hasMore":false,"count":1}`

func TestEnsureCollection(t *testing.T) {
	t.Run("creates a missing collection", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodGet, "", reply(http.StatusOK, `{"items":[{"name":"other"}]}`))
		f.on(http.MethodPut, "/tickets", reply(http.StatusCreated, ""))

		require.NoError(t, c.EnsureCollection(context.Background(), "tickets"))
		reqs := f.sent()
		require.Len(t, reqs, 2)
		assert.Equal(t, http.MethodPut, reqs[1].Method)
		assert.Empty(t, reqs[1].Body)
	})

	t.Run("leaves an existing collection alone", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodGet, "", reply(http.StatusOK, `{"items":[{"name":"tickets"}]}`))

		require.NoError(t, c.EnsureCollection(context.Background(), "tickets"))
		assert.Len(t, f.sent(), 1)
	})

	t.Run("rejects an invalid name without a request", func(t *testing.T) {
		f, c := newFakeORDS(t)
		err := c.EnsureCollection(context.Background(), "tickets/../x")
		assert.True(t, document.IsConfiguration(err))
		assert.Empty(t, f.sent())
	})
}

func TestCreate(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodPost, "/tickets", reply(http.StatusCreated,
		`{"items":[{"id":"`+key+`","etag":"E1","lastModified":"2024-03-01T10:00:00Z","created":"2024-03-01T10:00:00Z"}]}`))

	doc := json.RawMessage(`{"title":"disk full"}`)
	env, err := c.Create(context.Background(), "tickets", doc)
	require.NoError(t, err)
	assert.Equal(t, key, env.ID)
	assert.Equal(t, "E1", env.ETag)
	assert.JSONEq(t, string(doc), string(env.Value))
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(env.Created))

	reqs := f.sent()
	require.Len(t, reqs, 1)
	assert.JSONEq(t, string(doc), reqs[0].Body)
}

func TestCreate_BackendError(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodPost, "/tickets", reply(http.StatusInternalServerError, `{"title":"ORA-01017"}`))

	_, err := c.Create(context.Background(), "tickets", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, document.IsBackend(err))

	var be *document.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "HttpPost", be.Operation)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Contains(t, be.Body, "ORA-01017")
}

func TestRetrieve_ReadsBackFromPrecedingKey(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/", reply(http.StatusOK, readBackBody))

	env, err := c.Retrieve(context.Background(), "tickets", key)
	require.NoError(t, err)
	assert.Equal(t, "E2", env.ETag)
	assert.JSONEq(t, `{"title":"disk full"}`, string(env.Value))

	reqs := f.sent()
	require.Len(t, reqs, 1)
	assert.Equal(t, precedingKey, reqs[0].Query.Get("fromID"))
	assert.Equal(t, "1", reqs[0].Query.Get("limit"))
}

func TestRetrieve_NotFound(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/", reply(http.StatusOK, `{"items":[{"id":"FFFF0000FFFF0000FFFF0000FFFF0000"}]}`))

	_, err := c.Retrieve(context.Background(), "tickets", key)
	assert.True(t, document.IsNotFound(err))

	_, err = c.Retrieve(context.Background(), "tickets", "---")
	assert.True(t, document.IsNotFound(err))
}

func TestRetrieve_CollectionGone(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/", reply(http.StatusNotFound, `{"title":"Collection not found"}`))

	_, err := c.Retrieve(context.Background(), "tickets", key)
	assert.True(t, document.IsNotFound(err))
	assert.False(t, document.IsBackend(err))
}

func TestUpdate_ReadBackAfterDrop(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/"+key, reply(http.StatusOK, `{"title":"old"}`))
	f.on(http.MethodPut, "/tickets/"+key, reply(http.StatusOK, ""))
	f.on(http.MethodGet, "/tickets/", reply(http.StatusNotFound, ""))

	_, err := c.Update(context.Background(), "tickets", key, json.RawMessage(`{"title":"new"}`))
	assert.True(t, document.IsNotFound(err))
	assert.Len(t, f.sent(), 3)
}

func TestRetrieve_ClientAssignedKey(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/order42", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("ETag", `"E7"`)
		w.Header().Set("Last-Modified", "Fri, 01 Mar 2024 10:00:00 GMT")
		_, _ = w.Write([]byte(`{"title":"manual"}`))
	})

	env, err := c.Retrieve(context.Background(), "tickets", "order-42")
	require.NoError(t, err)
	assert.Equal(t, "order42", env.ID)
	assert.Equal(t, "E7", env.ETag)
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(env.LastModified))
	assert.JSONEq(t, `{"title":"manual"}`, string(env.Value))

	_, err = c.Retrieve(context.Background(), "tickets", "missing")
	assert.True(t, document.IsNotFound(err))
}

func TestUpdate(t *testing.T) {
	t.Run("replaces and reads back", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodGet, "/tickets/"+key, reply(http.StatusOK, `{"title":"old"}`))
		f.on(http.MethodPut, "/tickets/"+key, reply(http.StatusOK, ""))
		f.on(http.MethodGet, "/tickets/", reply(http.StatusOK, readBackBody))

		env, err := c.Update(context.Background(), "tickets", key, json.RawMessage(`{"title":"disk full"}`))
		require.NoError(t, err)
		assert.Equal(t, "E2", env.ETag)

		reqs := f.sent()
		require.Len(t, reqs, 3)
		assert.Equal(t, http.MethodPut, reqs[1].Method)
		assert.JSONEq(t, `{"title":"disk full"}`, reqs[1].Body)
	})

	t.Run("missing key", func(t *testing.T) {
		f, c := newFakeORDS(t)
		_, err := c.Update(context.Background(), "tickets", key, json.RawMessage(`{}`))
		assert.True(t, document.IsNotFound(err))
		assert.Len(t, f.sent(), 1)
	})

	t.Run("empty key after sanitizing", func(t *testing.T) {
		f, c := newFakeORDS(t)
		_, err := c.Update(context.Background(), "tickets", "{}", json.RawMessage(`{}`))
		assert.True(t, document.IsNotFound(err))
		assert.Empty(t, f.sent())
	})

	t.Run("unexpected status", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodGet, "/tickets/"+key, reply(http.StatusServiceUnavailable, "down"))
		_, err := c.Update(context.Background(), "tickets", key, json.RawMessage(`{}`))
		assert.True(t, document.IsBackend(err))
	})
}

func TestUpsert(t *testing.T) {
	created := reply(http.StatusCreated, `{"items":[{"id":"`+key+`","etag":"E1"}]}`)

	t.Run("creates without key", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodPost, "/tickets", created)

		env, err := c.Upsert(context.Background(), "tickets", "", json.RawMessage(`{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, key, env.ID)
		assert.Len(t, f.sent(), 1)
	})

	t.Run("creates for an unknown key", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodPost, "/tickets", created)

		_, err := c.Upsert(context.Background(), "tickets", "FFFF0000FFFF0000FFFF0000FFFF0000", json.RawMessage(`{"a":1}`))
		require.NoError(t, err)
		reqs := f.sent()
		require.Len(t, reqs, 2)
		assert.Equal(t, http.MethodPost, reqs[1].Method)
	})

	t.Run("replaces an existing key", func(t *testing.T) {
		f, c := newFakeORDS(t)
		f.on(http.MethodGet, "/tickets/"+key, reply(http.StatusOK, `{}`))
		f.on(http.MethodPut, "/tickets/"+key, reply(http.StatusOK, ""))
		f.on(http.MethodGet, "/tickets/", reply(http.StatusOK, readBackBody))

		env, err := c.Upsert(context.Background(), "tickets", key, json.RawMessage(`{"title":"disk full"}`))
		require.NoError(t, err)
		assert.Equal(t, "E2", env.ETag)
	})
}

func TestDelete(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodDelete, "/tickets/"+key, reply(http.StatusOK, ""))
	f.on(http.MethodDelete, "/tickets/BROKEN", reply(http.StatusInternalServerError, "boom"))

	require.NoError(t, c.Delete(context.Background(), "tickets", key))

	err := c.Delete(context.Background(), "tickets", "FFFF")
	assert.True(t, document.IsNotFound(err))

	err = c.Delete(context.Background(), "tickets", "BROKEN")
	assert.True(t, document.IsBackend(err))

	assert.True(t, document.IsNotFound(c.Delete(context.Background(), "tickets", "")))
}

func TestList(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets", reply(http.StatusOK, `{"items":[{"id":"A","value":{"n":1}},{"id":"B","value":{"n":2}}],"hasMore":true}`))

	page := &document.Page{PageNumber: 3, ItemsPerPage: 2, OrderingPath: "n", Ordering: document.Descending}
	envs, err := c.List(context.Background(), "tickets", page)
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, "B", envs[1].ID)

	q := f.sent()[0].Query
	assert.Equal(t, "4", q.Get("offset"))
	assert.Equal(t, "2", q.Get("limit"))
	assert.JSONEq(t, `{"$orderby":[{"path":"n","order":"desc"}]}`, q.Get("q"))

	_, err = c.List(context.Background(), "tickets", &document.Page{PageNumber: 0, ItemsPerPage: 2})
	assert.True(t, document.IsValidation(err))
	assert.Len(t, f.sent(), 1)
}

func TestFilter(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodPost, "/custom-actions/query/tickets/", reply(http.StatusOK, `{"items":[{"id":"A","value":{"priority":3}}]}`))

	q := query.New().With(query.Int("priority", 2, query.GreaterThan))
	envs, err := c.Filter(context.Background(), "tickets", q, document.NewPage())
	require.NoError(t, err)
	require.Len(t, envs, 1)

	req := f.sent()[0]
	assert.Equal(t, "0", req.Query.Get("offset"))
	assert.Equal(t, "10", req.Query.Get("limit"))
	assert.JSONEq(t, `{"priority":{"$gt":2}}`, req.Body)
}

func TestFilterRaw_MergesPageOrder(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodPost, "/custom-actions/query/tickets/", reply(http.StatusOK, `{"items":[]}`))

	page := &document.Page{PageNumber: 1, ItemsPerPage: 5, OrderingPath: "title"}
	envs, err := c.FilterRaw(context.Background(), "tickets", `{"title":{"$startsWith":"disk"}}`, page)
	require.NoError(t, err)
	assert.Empty(t, envs)
	assert.JSONEq(t,
		`{"$query":{"title":{"$startsWith":"disk"}},"$orderby":[{"path":"title","order":"asc"}]}`,
		f.sent()[0].Body)

	_, err = c.FilterRaw(context.Background(), "tickets", `"not an object"`, page)
	assert.True(t, document.IsValidation(err))
	assert.Len(t, f.sent(), 1)
}

func TestObserverReceivesOperations(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "/tickets/", reply(http.StatusOK, readBackBody))

	var seen []observability.OperationContext
	c.WithObserver(observability.ObserverFunc(func(oc observability.OperationContext) {
		seen = append(seen, oc)
	}))

	_, err := c.Retrieve(context.Background(), "tickets", key)
	require.NoError(t, err)
	_, err = c.Retrieve(context.Background(), "tickets", "")
	require.Error(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "sodarest", seen[0].Component)
	assert.Equal(t, "retrieve", seen[0].Operation)
	assert.Equal(t, "tickets", seen[0].Resource)
	assert.Equal(t, key, seen[0].SubResource)
	assert.NoError(t, seen[0].Error)
	assert.True(t, document.IsNotFound(seen[1].Error))
}

func TestRateLimitHonoursContext(t *testing.T) {
	f, c := newFakeORDS(t)
	f.on(http.MethodGet, "", reply(http.StatusOK, `{"items":[{"name":"tickets"}]}`))
	c.cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	c2, err := NewClient(c.cfg)
	require.NoError(t, err)

	require.NoError(t, c2.EnsureCollection(context.Background(), "tickets"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c2.EnsureCollection(ctx, "tickets")
	assert.True(t, document.IsBackend(err))
	assert.Len(t, f.sent(), 1)
}
