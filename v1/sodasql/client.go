package sodasql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/pagination"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

const componentName = "sodasql"

// ensureTimeout bounds a shared collection check, which outlives the
// cancellation of any single caller.
const ensureTimeout = 30 * time.Second

var orderingPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Client is the provider.Provider running SODA statements over SQL.
// Filters are SQL predicates over the JSON_DOCUMENT column.
type Client struct {
	conn      Conn
	templates Templates
	tracer    trace.Tracer
	logger    Logger
	observer  observability.Observer
	ensure    singleflight.Group
}

// NewClient returns a provider over conn. A nil templates selects
// NativeTemplates.
func NewClient(conn Conn, templates Templates) *Client {
	if templates == nil {
		templates = NativeTemplates()
	}
	return &Client{
		conn:      conn,
		templates: templates,
		tracer:    otel.Tracer("github.com/Aleph-Alpha/docstore/v1/sodasql"),
		logger:    logger.NewNopLoggerClient(),
	}
}

// WithLogger sets the logger and returns the client for chaining.
func (c *Client) WithLogger(l Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithObserver sets the operation observer and returns the client for
// chaining.
func (c *Client) WithObserver(o observability.Observer) *Client {
	c.observer = o
	return c
}

func (c *Client) statement(name, collection string) (string, error) {
	stmt, err := c.templates.Statement(name)
	if err != nil {
		return "", document.Configurationf("%v", err)
	}
	return Render(stmt, PlaceholderCollection, collection), nil
}

// EnsureCollection creates the collection unless it exists. Concurrent
// calls for one collection share a single round trip.
func (c *Client) EnsureCollection(ctx context.Context, collection string) (err error) {
	ctx, done := c.begin(ctx, "ensure_collection", collection, "")
	defer func() { done(err, 0) }()

	if err := document.CheckCollection(collection); err != nil {
		return err
	}
	ch := c.ensure.DoChan(collection, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), ensureTimeout)
		defer cancel()
		return nil, c.ensureCollection(shared, collection)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("collection check shared", nil, map[string]interface{}{"collection": collection})
		}
		return res.Err
	}
}

func (c *Client) ensureCollection(ctx context.Context, collection string) error {
	check, err := c.statement(StmtCheckCollection, collection)
	if err != nil {
		return err
	}
	create, err := c.statement(StmtCreateCollection, collection)
	if err != nil {
		return err
	}

	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": StmtCheckCollection, "collection": collection})
	rows, err := c.conn.QueryContext(ctx, check, map[string]interface{}{"name": collection})
	if err != nil {
		return TranslateError(StmtCheckCollection, collection, err)
	}
	var count int64
	if rows.Next() {
		err = rows.Scan(&count)
	}
	if err == nil {
		err = rows.Err()
	}
	_ = rows.Close()
	if err != nil {
		return TranslateError(StmtCheckCollection, collection, err)
	}

	c.logger.Info("collection existence checked", nil, map[string]interface{}{"collection": collection, "exists": count > 0})
	if count > 0 {
		return nil
	}

	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": StmtCreateCollection, "collection": collection})
	if _, err := c.conn.ExecContext(ctx, create, map[string]interface{}{"name": collection}); err != nil {
		return TranslateError(StmtCreateCollection, collection, err)
	}
	c.logger.Info("collection created", nil, map[string]interface{}{"collection": collection})
	return nil
}

// cursor runs a statement opening :mycursor and reads its documents.
func (c *Client) cursor(ctx context.Context, name, collection string, arg map[string]interface{}) ([]document.Envelope, error) {
	stmt, err := c.statement(name, collection)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": name, "collection": collection})

	rows, err := c.conn.CursorContext(ctx, stmt, arg)
	if err != nil {
		return nil, TranslateError(name, collection, err)
	}
	defer rows.Close()

	envs, err := ReadEnvelopes(rows)
	if err != nil {
		return nil, TranslateError(name, collection, err)
	}
	return envs, nil
}

// Create inserts doc and returns it as stored.
func (c *Client) Create(ctx context.Context, collection string, doc json.RawMessage) (env document.Envelope, err error) {
	ctx, done := c.begin(ctx, "create", collection, "")
	defer func() { done(err, int64(len(doc))) }()

	if err := document.CheckCollection(collection); err != nil {
		return env, err
	}
	return c.create(ctx, collection, doc)
}

func (c *Client) create(ctx context.Context, collection string, doc json.RawMessage) (document.Envelope, error) {
	envs, err := c.cursor(ctx, StmtCreate, collection, map[string]interface{}{
		"name":     collection,
		"document": []byte(doc),
	})
	if err != nil {
		return document.Envelope{}, err
	}
	if len(envs) == 0 {
		return document.Envelope{}, TranslateError(StmtCreate, collection, errNoRows)
	}
	c.logger.Info("document created", nil, map[string]interface{}{"collection": collection, "id": envs[0].ID})
	return envs[0], nil
}

// Update replaces the document stored under id.
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

	envs, err := c.cursor(ctx, StmtUpdate, collection, map[string]interface{}{
		"name":     collection,
		"key":      key,
		"document": []byte(doc),
	})
	if err != nil {
		return env, err
	}
	if len(envs) == 0 {
		return env, notFound(collection, key)
	}
	c.logger.Info("document updated", nil, map[string]interface{}{"collection": collection, "id": envs[0].ID})
	return envs[0], nil
}

// Upsert replaces the document stored under id, or inserts doc when id is
// empty or unknown.
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

	envs, err := c.cursor(ctx, StmtUpsert, collection, map[string]interface{}{
		"name":     collection,
		"key":      key,
		"document": []byte(doc),
	})
	if err != nil {
		return env, err
	}
	if len(envs) == 0 {
		return env, TranslateError(StmtUpsert, collection, errNoRows)
	}
	c.logger.Info("document upserted", nil, map[string]interface{}{"collection": collection, "id": envs[0].ID})
	return envs[0], nil
}

// Retrieve reads the document stored under id.
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

	stmt, err := c.statement(StmtRetrieve, collection)
	if err != nil {
		return env, err
	}
	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": StmtRetrieve, "collection": collection, "id": key})

	rows, err := c.conn.QueryContext(ctx, stmt, map[string]interface{}{"id": key})
	if err != nil {
		return env, TranslateError(StmtRetrieve, collection, err)
	}
	defer rows.Close()

	envs, err := ReadEnvelopes(rows)
	if err != nil {
		return env, TranslateError(StmtRetrieve, collection, err)
	}
	if len(envs) == 0 {
		return env, notFound(collection, key)
	}
	return envs[0], nil
}

// Delete removes the document stored under id.
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

	stmt, err := c.statement(StmtDelete, collection)
	if err != nil {
		return err
	}
	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": StmtDelete, "collection": collection, "id": key})

	var removed int64
	_, err = c.conn.ExecContext(ctx, stmt, map[string]interface{}{
		"name":    collection,
		"key":     key,
		"removed": sql.Out{Dest: &removed},
	})
	if err != nil {
		return TranslateError(StmtDelete, collection, err)
	}

	c.logger.Info("delete executed", nil, map[string]interface{}{"collection": collection, "id": key, "removed": removed})
	if removed == 0 {
		return notFound(collection, key)
	}
	return nil
}

// List returns one page of the collection.
func (c *Client) List(ctx context.Context, collection string, page *document.Page) ([]document.Envelope, error) {
	return c.FilterRaw(ctx, collection, "", page)
}

// Filter renders q as a SQL predicate and runs it.
func (c *Client) Filter(ctx context.Context, collection string, q *query.Query, page *document.Page) ([]document.Envelope, error) {
	predicate, err := q.SQL()
	if err != nil {
		return nil, err
	}
	return c.FilterRaw(ctx, collection, predicate, page)
}

// FilterRaw runs a SQL predicate over the collection. An empty predicate
// selects every document.
func (c *Client) FilterRaw(ctx context.Context, collection, filter string, page *document.Page) (envs []document.Envelope, err error) {
	ctx, done := c.begin(ctx, "filter", collection, "")
	defer func() { done(err, int64(len(envs))) }()

	if err := document.CheckCollection(collection); err != nil {
		return nil, err
	}
	data, err := pagination.SQL{}.Compute(page)
	if err != nil {
		return nil, err
	}
	orderBy, err := OrderClause(page)
	if err != nil {
		return nil, err
	}

	stmt, err := c.statement(StmtFilter, collection)
	if err != nil {
		return nil, err
	}
	where := ""
	if strings.TrimSpace(filter) != "" {
		where = "WHERE (" + filter + ")"
	}
	stmt = Render(stmt,
		PlaceholderWhere, where,
		PlaceholderOrderBy, orderBy,
		PlaceholderPagination, data.Clause(),
	)
	c.logger.Debug("executing statement", nil, map[string]interface{}{"statement": stmt, "collection": collection})

	rows, err := c.conn.QueryContext(ctx, stmt, nil)
	if err != nil {
		return nil, TranslateError(StmtFilter, collection, err)
	}
	defer rows.Close()

	envs, err = ReadEnvelopes(rows)
	if err != nil {
		return nil, TranslateError(StmtFilter, collection, err)
	}
	c.logger.Info("filter applied", nil, map[string]interface{}{"collection": collection, "items": len(envs)})
	return envs, nil
}

// OrderClause renders the ORDER BY clause of an ordered page, or nothing.
// The ordering path must be a dotted identifier path.
func OrderClause(page *document.Page) (string, error) {
	if !page.Ordered() {
		return "", nil
	}
	if !orderingPath.MatchString(page.OrderingPath) {
		return "", document.Validationf("ordering path %q is invalid", page.OrderingPath)
	}
	return fmt.Sprintf("ORDER BY json_value(%s, '$.%s') %s",
		query.DocumentColumn, page.OrderingPath, strings.ToUpper(page.Ordering.String())), nil
}

func notFound(collection, id string) error {
	return document.NotFoundf("ID %s not found for collection %s", id, collection)
}
