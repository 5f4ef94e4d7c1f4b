package sodaqbe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/pagination"
	"github.com/Aleph-Alpha/docstore/v1/provider"
	"github.com/Aleph-Alpha/docstore/v1/query"
	"github.com/Aleph-Alpha/docstore/v1/sodasql"
)

const componentName = "sodaqbe"

// Logger is the logging contract of the provider, satisfied by
// logger.LoggerClient.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Provider wraps another provider and answers Filter, FilterRaw and List
// with query-by-example statements. Every other operation is the wrapped
// provider's.
type Provider struct {
	provider.Provider

	conn      sodasql.Conn
	templates sodasql.Templates
	tracer    trace.Tracer
	logger    Logger
	observer  observability.Observer
}

// NewProvider wraps wrapped. A nil templates selects Templates().
func NewProvider(wrapped provider.Provider, conn sodasql.Conn, templates sodasql.Templates) *Provider {
	if templates == nil {
		templates = Templates()
	}
	return &Provider{
		Provider:  wrapped,
		conn:      conn,
		templates: templates,
		tracer:    otel.Tracer("github.com/Aleph-Alpha/docstore/v1/sodaqbe"),
		logger:    logger.NewNopLoggerClient(),
	}
}

// WithLogger sets the logger and returns the provider for chaining.
func (p *Provider) WithLogger(l Logger) *Provider {
	if l != nil {
		p.logger = l
	}
	return p
}

// WithObserver sets the operation observer and returns the provider for
// chaining.
func (p *Provider) WithObserver(o observability.Observer) *Provider {
	p.observer = o
	return p
}

// Unwrap returns the decorated provider.
func (p *Provider) Unwrap() provider.Provider {
	return p.Provider
}

// List returns one page of the collection.
func (p *Provider) List(ctx context.Context, collection string, page *document.Page) ([]document.Envelope, error) {
	return p.FilterRaw(ctx, collection, "", page)
}

// Filter renders q as a query-by-example document and runs it.
func (p *Provider) Filter(ctx context.Context, collection string, q *query.Query, page *document.Page) ([]document.Envelope, error) {
	filter, err := q.QBE()
	if err != nil {
		return nil, err
	}
	return p.FilterRaw(ctx, collection, filter, page)
}

// FilterRaw runs a query-by-example filter. The filter is either a bare
// predicate or a {"$query":...,"$orderby":...} document; a page ordering
// applies only when the filter has no $orderby.
func (p *Provider) FilterRaw(ctx context.Context, collection, filter string, page *document.Page) (envs []document.Envelope, err error) {
	ctx, done := p.begin(ctx, "filter", collection)
	defer func() { done(err, int64(len(envs))) }()

	if err := document.CheckCollection(collection); err != nil {
		return nil, err
	}
	f, err := pagination.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	data, err := pagination.QBE{}.Compute(page, f)
	if err != nil {
		return nil, err
	}

	stmt, err := p.templates.Statement(sodasql.StmtFilter)
	if err != nil {
		return nil, document.Configurationf("%v", err)
	}
	stmt = sodasql.Render(stmt,
		sodasql.PlaceholderCollection, collection,
		sodasql.PlaceholderSkip, data.SkipPart(),
		sodasql.PlaceholderLimit, data.LimitPart(),
	)
	p.logger.Debug("executing statement", nil, map[string]interface{}{
		"statement":  sodasql.StmtFilter,
		"collection": collection,
		"qbe":        data.FilterString,
	})

	rows, err := p.conn.CursorContext(ctx, stmt, map[string]interface{}{
		"name": collection,
		"qbe":  data.FilterString,
	})
	if err != nil {
		return nil, sodasql.TranslateError(sodasql.StmtFilter, collection, err)
	}
	defer rows.Close()

	envs, err = sodasql.ReadEnvelopes(rows)
	if err != nil {
		return nil, sodasql.TranslateError(sodasql.StmtFilter, collection, err)
	}
	p.logger.Info("filter applied", nil, map[string]interface{}{"collection": collection, "items": len(envs)})
	return envs, nil
}
