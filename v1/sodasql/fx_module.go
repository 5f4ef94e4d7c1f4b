package sodasql

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/provider"
)

// FXModule provides the Oracle pool as *DB and Conn, the native SQL client
// as *Client and provider.Provider, and runs the connection monitor for
// the lifetime of the application.
var FXModule = fx.Module("sodasql",
	fx.Provide(
		NewDBWithDI,
		fx.Annotate(
			ProvideConn,
			fx.As(new(Conn)),
		),
		NewClientWithDI,
		fx.Annotate(
			ProvideProvider,
			fx.As(new(provider.Provider)),
		),
	),
	fx.Invoke(RegisterDBLifecycle),
)

func ProvideConn(db *DB) *DB { return db }

func ProvideProvider(c *Client) *Client { return c }

// DBParams groups the dependencies of NewDBWithDI.
type DBParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewDBWithDI opens the pool from injected configuration.
func NewDBWithDI(params DBParams) (*DB, error) {
	db, err := NewDB(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		db.WithLogger(params.Logger)
	}
	return db, nil
}

// ClientParams groups the dependencies of NewClientWithDI. Templates
// default to NativeTemplates.
type ClientParams struct {
	fx.In

	Conn      Conn
	Templates Templates              `optional:"true"`
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewClientWithDI builds the native SQL client from injected dependencies.
func NewClientWithDI(params ClientParams) *Client {
	c := NewClient(params.Conn, params.Templates)
	if params.Logger != nil {
		c.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		c.WithObserver(params.Observer)
	}
	return c
}

// LifeCycleParams groups the dependencies of RegisterDBLifecycle.
type LifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	DB        *DB
}

// RegisterDBLifecycle starts the monitor and retry loops on start and
// closes the pool on stop, waiting for both loops to finish.
func RegisterDBLifecycle(params LifeCycleParams) {
	wg := &sync.WaitGroup{}
	loopCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.DB.MonitorConnection(loopCtx)
			}()
			go func() {
				defer wg.Done()
				params.DB.RetryConnection(loopCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := params.DB.GracefulShutdown()
			cancel()
			wg.Wait()
			return err
		},
	})
}
