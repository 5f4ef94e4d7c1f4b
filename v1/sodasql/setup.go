package sodasql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	go_ora "github.com/sijms/go-ora/v2"

	"github.com/Aleph-Alpha/docstore/v1/logger"
)

const driverName = "oracle"

func init() {
	sqlx.BindDriver(driverName, sqlx.NAMED)
}

// Logger is the logging contract of the package, satisfied by
// logger.LoggerClient.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// DB owns the Oracle connection pool, watches its health and reconnects
// when the database goes away. It implements Conn.
//
// The active *sqlx.DB is held in an atomic pointer and swapped on
// reconnection without blocking callers.
type DB struct {
	cfg             Config
	client          atomic.Pointer[sqlx.DB]
	logger          Logger
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewDB validates cfg and opens the pool.
func NewDB(cfg Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to oracle: %w", err)
	}

	db := &DB{
		cfg:             cfg,
		logger:          logger.NewNopLoggerClient(),
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	db.client.Store(conn)
	return db, nil
}

// WithLogger sets the logger and returns db for chaining.
func (d *DB) WithLogger(l Logger) *DB {
	if l != nil {
		d.logger = l
	}
	return d
}

// ConnectionURL renders the go-ora URL of cfg.
func ConnectionURL(cfg Config) string {
	return go_ora.BuildUrl(cfg.Host, cfg.port(), cfg.ServiceName, cfg.Username, cfg.Password, nil)
}

func connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, driverName, ConnectionURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to oracle at %s:%d/%s: %w", cfg.Host, cfg.port(), cfg.ServiceName, err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 20
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	return db, nil
}

// SQL returns the current pool.
func (d *DB) SQL() *sqlx.DB {
	return d.client.Load()
}

func (d *DB) current() (*sqlx.DB, error) {
	db := d.client.Load()
	if db == nil {
		return nil, fmt.Errorf("oracle connection is not initialized")
	}
	return db, nil
}

// QueryContext runs a query. A nil arg sends the statement text as is.
func (d *DB) QueryContext(ctx context.Context, query string, arg map[string]interface{}) (Rows, error) {
	db, err := d.current()
	if err != nil {
		return nil, err
	}
	if arg == nil {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecContext runs a statement, typically a PL/SQL block. Out binds are
// passed in arg as sql.Out values.
func (d *DB) ExecContext(ctx context.Context, query string, arg map[string]interface{}) (sql.Result, error) {
	db, err := d.current()
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return db.ExecContext(ctx, query)
	}
	return db.NamedExecContext(ctx, query, arg)
}

// CursorContext binds :mycursor as an out ref cursor, runs the block and
// wraps the cursor into rows. The block and the cursor fetch share one
// leased connection, which goes back to the pool when the rows are closed.
func (d *DB) CursorContext(ctx context.Context, query string, arg map[string]interface{}) (Rows, error) {
	db, err := d.current()
	if err != nil {
		return nil, err
	}
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	return openCursor(ctx, conn, sqlx.BindType(db.DriverName()), query, arg)
}

// leasedConn is the part of *sqlx.Conn a cursor needs.
type leasedConn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	Close() error
}

var wrapRefCursor = func(ctx context.Context, q go_ora.Querier, cursor *go_ora.RefCursor) (Rows, error) {
	rows, err := go_ora.WrapRefCursor(ctx, q, cursor)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// openCursor runs query on conn and wraps the returned cursor. conn is
// closed on failure, otherwise by the returned rows.
func openCursor(ctx context.Context, conn leasedConn, bindType int, query string, arg map[string]interface{}) (Rows, error) {
	var cursor go_ora.RefCursor
	bound := make(map[string]interface{}, len(arg)+1)
	for k, v := range arg {
		bound[k] = v
	}
	bound["mycursor"] = sql.Out{Dest: &cursor}

	q, args, err := sqlx.BindNamed(bindType, query, bound)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, q, args...); err != nil {
		_ = conn.Close()
		return nil, err
	}
	rows, err := wrapRefCursor(ctx, conn, &cursor)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &cursorRows{Rows: rows, conn: conn}, nil
}

// cursorRows releases the leased connection after the rows.
type cursorRows struct {
	Rows
	conn leasedConn
	once sync.Once
	err  error
}

func (r *cursorRows) Close() error {
	r.once.Do(func() {
		err := r.Rows.Close()
		if cerr := r.conn.Close(); err == nil {
			err = cerr
		}
		r.err = err
	})
	return r.err
}

// RetryConnection reconnects whenever MonitorConnection reports a failed
// health check. It returns on shutdown or when ctx ends.
func (d *DB) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-d.shutdownSignal:
			d.logger.Info("stopping oracle retry loop", nil, nil)
			return
		case <-ctx.Done():
			return
		case err, ok := <-d.retryChanSignal:
			if !ok {
				return
			}
			d.logger.Warn("oracle health check failed, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-d.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connect(d.cfg)
					if err != nil {
						d.logger.Error("oracle reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					if old := d.client.Swap(newConn); old != nil {
						_ = old.Close()
					}
					d.logger.Info("reconnected to oracle", nil, map[string]interface{}{"host": d.cfg.Host})
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every ten seconds and signals
// RetryConnection on failure.
func (d *DB) MonitorConnection(ctx context.Context) {
	defer d.closeRetryChanOnce.Do(func() {
		close(d.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-d.shutdownSignal:
			d.logger.Info("stopping oracle monitor loop", nil, nil)
			return
		case <-ticker.C:
			if err := d.healthCheck(); err != nil {
				select {
				case d.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (d *DB) healthCheck() error {
	db, err := d.current()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("oracle ping failed during health check: %w", err)
	}
	return nil
}

// GracefulShutdown stops the background loops and closes the pool.
func (d *DB) GracefulShutdown() error {
	d.closeShutdownOnce.Do(func() {
		close(d.shutdownSignal)
	})
	if db := d.client.Load(); db != nil {
		return db.Close()
	}
	return nil
}
