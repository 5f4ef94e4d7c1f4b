package sodasql

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=interface.go -destination=mock_conn.go -package=sodasql

// Conn runs statements with named binds. Every `:name` in a statement is
// bound from arg by name; a nil arg runs the statement text unchanged.
type Conn interface {
	QueryContext(ctx context.Context, query string, arg map[string]interface{}) (Rows, error)
	ExecContext(ctx context.Context, query string, arg map[string]interface{}) (sql.Result, error)

	// CursorContext executes a PL/SQL block that opens the ref cursor
	// :mycursor and returns the rows of that cursor.
	CursorContext(ctx context.Context, query string, arg map[string]interface{}) (Rows, error)
}

// Rows is the subset of *sql.Rows the providers read.
type Rows interface {
	Next() bool
	Columns() ([]string, error)
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}
