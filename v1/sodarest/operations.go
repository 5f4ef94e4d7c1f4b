package sodarest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/pagination"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

var paging pagination.REST

// EnsureCollection lists the collections of the schema and creates the
// named one when it is missing.
func (c *Client) EnsureCollection(ctx context.Context, collection string) (err error) {
	ctx, done := c.begin(ctx, "ensure_collection", collection, "")
	defer func() { done(err, 0) }()

	if err := document.CheckCollection(collection); err != nil {
		return err
	}

	target := c.collectionsURL()
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(http.MethodGet, target, resp)
	}

	var existing collectionsResult
	if err := json.Unmarshal(resp.body, &existing); err != nil {
		return transportError(http.MethodGet, target, err)
	}
	for _, item := range existing.Items {
		if item.Name == collection {
			c.logger.Debug("collection exists", nil, map[string]interface{}{"collection": collection})
			return nil
		}
	}

	target = c.collectionURL(collection)
	resp, err = c.send(ctx, http.MethodPut, target, []byte{})
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(http.MethodPut, target, resp)
	}
	c.logger.Info("collection created", nil, map[string]interface{}{"collection": collection})
	return nil
}

// Create posts the document. The store answers with the key, version and
// timestamps only, so the returned envelope carries doc as its value.
func (c *Client) Create(ctx context.Context, collection string, doc json.RawMessage) (env document.Envelope, err error) {
	ctx, done := c.begin(ctx, "create", collection, "")
	defer func() { done(err, int64(len(doc))) }()

	if err := document.CheckCollection(collection); err != nil {
		return env, err
	}
	return c.create(ctx, collection, doc)
}

func (c *Client) create(ctx context.Context, collection string, doc json.RawMessage) (document.Envelope, error) {
	target := c.collectionURL(collection)
	resp, err := c.send(ctx, http.MethodPost, target, doc)
	if err != nil {
		return document.Envelope{}, err
	}
	if !resp.ok() {
		return document.Envelope{}, statusError(http.MethodPost, target, resp)
	}

	r, err := decodeResult(http.MethodPost, target, resp)
	if err != nil {
		return document.Envelope{}, err
	}
	if len(r.Items) == 0 {
		return document.Envelope{}, statusError(http.MethodPost, target, resp)
	}

	env := r.Items[0]
	env.Value = doc
	c.logger.Info("document created", nil, map[string]interface{}{"collection": collection, "id": env.ID})
	return env, nil
}

// Update checks that the key exists, replaces the document and reads the
// stored revision back.
func (c *Client) Update(ctx context.Context, collection, id string, doc json.RawMessage) (env document.Envelope, err error) {
	key := document.SanitizeID(id)
	ctx, done := c.begin(ctx, "update", collection, key)
	defer func() { done(err, int64(len(doc))) }()

	if err := document.CheckCollection(collection); err != nil {
		return env, err
	}
	if key == "" {
		return env, notFound(collection, key)
	}

	target := c.objectURL(collection, key)
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return env, err
	}
	switch {
	case resp.ok():
		return c.replace(ctx, collection, key, doc)
	case resp.status == http.StatusNotFound:
		return env, notFound(collection, key)
	default:
		return env, statusError(http.MethodGet, target, resp)
	}
}

// Upsert replaces the document stored under id, or creates a new one when
// id is empty or unknown to the store.
func (c *Client) Upsert(ctx context.Context, collection, id string, doc json.RawMessage) (env document.Envelope, err error) {
	key := document.SanitizeID(id)
	ctx, done := c.begin(ctx, "upsert", collection, key)
	defer func() { done(err, int64(len(doc))) }()

	if err := document.CheckCollection(collection); err != nil {
		return env, err
	}
	if key == "" {
		return c.create(ctx, collection, doc)
	}

	target := c.objectURL(collection, key)
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return env, err
	}
	switch {
	case resp.ok():
		return c.replace(ctx, collection, key, doc)
	case resp.status == http.StatusNotFound:
		return c.create(ctx, collection, doc)
	default:
		return env, statusError(http.MethodGet, target, resp)
	}
}

func (c *Client) replace(ctx context.Context, collection, key string, doc json.RawMessage) (document.Envelope, error) {
	target := c.objectURL(collection, key)
	resp, err := c.send(ctx, http.MethodPut, target, doc)
	if err != nil {
		return document.Envelope{}, err
	}
	if !resp.ok() {
		return document.Envelope{}, statusError(http.MethodPut, target, resp)
	}
	c.logger.Info("document replaced", nil, map[string]interface{}{"collection": collection, "id": key})
	return c.readBack(ctx, collection, key)
}

// Retrieve returns the envelope of id including its metadata.
func (c *Client) Retrieve(ctx context.Context, collection, id string) (env document.Envelope, err error) {
	key := document.SanitizeID(id)
	ctx, done := c.begin(ctx, "retrieve", collection, key)
	defer func() { done(err, int64(len(env.Value))) }()

	if err := document.CheckCollection(collection); err != nil {
		return env, err
	}
	if key == "" {
		return env, notFound(collection, key)
	}
	return c.readBack(ctx, collection, key)
}

// readBack lists one document starting right after the key preceding key,
// which yields key itself together with its metadata. Keys that are not
// 128-bit values are fetched directly instead.
func (c *Client) readBack(ctx context.Context, collection, key string) (document.Envelope, error) {
	preceding, err := document.PrecedingKey(key)
	if err != nil {
		return c.fetch(ctx, collection, key)
	}

	target := c.readBackURL(collection, preceding)
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return document.Envelope{}, err
	}
	switch {
	case resp.status == http.StatusNotFound:
		return document.Envelope{}, notFoundResponse(http.MethodGet, target, resp)
	case !resp.ok():
		return document.Envelope{}, statusError(http.MethodGet, target, resp)
	}

	r, err := decodeResult(http.MethodGet, target, resp)
	if err != nil {
		return document.Envelope{}, err
	}
	env, ok := findItem(r.Items, key)
	if !ok {
		return document.Envelope{}, notFound(collection, key)
	}
	return env, nil
}

// fetch reads a document by key. The body is the bare document; key and
// version come from the URL and the headers.
func (c *Client) fetch(ctx context.Context, collection, key string) (document.Envelope, error) {
	target := c.objectURL(collection, key)
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return document.Envelope{}, err
	}
	switch {
	case resp.status == http.StatusNotFound:
		return document.Envelope{}, notFound(collection, key)
	case !resp.ok():
		return document.Envelope{}, statusError(http.MethodGet, target, resp)
	}

	env := document.Envelope{
		ID:    key,
		ETag:  strings.Trim(resp.header.Get("ETag"), `"`),
		Value: json.RawMessage(resp.body),
	}
	if lm, err := http.ParseTime(resp.header.Get("Last-Modified")); err == nil {
		env.LastModified = lm.UTC()
	}
	return env, nil
}

func (c *Client) Delete(ctx context.Context, collection, id string) (err error) {
	key := document.SanitizeID(id)
	ctx, done := c.begin(ctx, "delete", collection, key)
	defer func() { done(err, 0) }()

	if err := document.CheckCollection(collection); err != nil {
		return err
	}
	if key == "" {
		return notFound(collection, key)
	}

	target := c.objectURL(collection, key)
	resp, err := c.send(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	switch {
	case resp.ok():
		c.logger.Info("document deleted", nil, map[string]interface{}{"collection": collection, "id": key})
		return nil
	case resp.status == http.StatusNotFound:
		return notFoundResponse(http.MethodDelete, target, resp)
	default:
		return statusError(http.MethodDelete, target, resp)
	}
}

// List returns one page of the collection. Ordered pages pass the order in
// the q parameter.
func (c *Client) List(ctx context.Context, collection string, page *document.Page) (envs []document.Envelope, err error) {
	ctx, done := c.begin(ctx, "list", collection, "")
	defer func() { done(err, int64(len(envs))) }()

	if err := document.CheckCollection(collection); err != nil {
		return nil, err
	}
	if err := paging.Validate(page); err != nil {
		return nil, err
	}

	target := paging.ListURL(page, c.collectionURL(collection))
	resp, err := c.send(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(http.MethodGet, target, resp)
	}
	r, err := decodeResult(http.MethodGet, target, resp)
	if err != nil {
		return nil, err
	}
	return r.Items, nil
}

// Filter renders q as a query-by-example document and runs it.
func (c *Client) Filter(ctx context.Context, collection string, q *query.Query, page *document.Page) ([]document.Envelope, error) {
	qbe, err := q.QBE()
	if err != nil {
		return nil, err
	}
	return c.FilterRaw(ctx, collection, qbe, page)
}

// FilterRaw posts a query-by-example document to the query action. A page
// ordering is merged into the filter unless it carries its own $orderby.
func (c *Client) FilterRaw(ctx context.Context, collection, filter string, page *document.Page) (envs []document.Envelope, err error) {
	start := time.Now()
	ctx, done := c.begin(ctx, "filter", collection, "")
	defer func() { done(err, int64(len(envs))) }()

	if err := document.CheckCollection(collection); err != nil {
		return nil, err
	}
	target, body, err := paging.ApplyFilter(page, c.filterURL(collection), filter)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, target, []byte(body))
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(http.MethodPost, target, resp)
	}
	r, err := decodeResult(http.MethodPost, target, resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("filter applied", nil, map[string]interface{}{
		"collection": collection,
		"items":      len(r.Items),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return r.Items, nil
}
