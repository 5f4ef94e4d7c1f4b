// Package sodasql implements provider.Provider over Oracle SQL using the
// DBMS_SODA PL/SQL API and plain SELECT statements on collection tables.
//
// DB owns the connection pool (go-ora through sqlx) and keeps it healthy:
// MonitorConnection pings every ten seconds and RetryConnection swaps in a
// fresh pool after a failure. Statements use named binds, each bind at
// most once per statement:
//
//	db, err := sodasql.NewDB(sodasql.Config{
//		Host:        "db.internal",
//		ServiceName: "FREEPDB1",
//		Username:    "app",
//		Password:    os.Getenv("SODA_SQL_PASSWORD"),
//	})
//	if err != nil {
//		return err
//	}
//	client := sodasql.NewClient(db, nil).WithLogger(log)
//
// Statements come from an embedded YAML template set. Collection names,
// WHERE, ORDER BY and OFFSET/FETCH clauses are substituted into the
// [[...]] placeholders; everything else is bound. Overlay layers a second
// set over the native one, which is how the sodaqbe package swaps in its
// query-by-example filter statement.
//
// Filters of this client are SQL predicates, normally rendered by
// query.Query.SQL:
//
//	q := query.New().With(query.Int("priority", 2, query.GreaterThan))
//	envs, err := client.Filter(ctx, "tickets", q, document.NewPage())
//
// Driver failures are mapped by TranslateError. Missing tables, bad
// credentials and missing privileges become document.ErrConfiguration,
// JSON and constraint failures become document.ErrValidation. Anything
// else is a *document.BackendError naming the statement.
package sodasql
