// Package sodaqbe decorates a provider.Provider so that filtering uses
// SODA query-by-example documents while writes and reads by key stay with
// the wrapped provider.
//
// Filter renders a query.Query with QBE, FilterRaw accepts any QBE filter
// and List is FilterRaw with an empty filter. The filter is bound as :qbe
// into a PL/SQL block that walks a SODA cursor and returns the matching
// documents in store order:
//
//	native := sodasql.NewClient(db, nil)
//	p := sodaqbe.NewProvider(native, db, nil)
//
//	envs, err := p.FilterRaw(ctx, "tickets",
//		`{"$query":{"status":"open"},"$orderby":[{"path":"priority","order":"desc"}]}`,
//		document.NewPage())
//
// Statement lookup goes to this package's templates first and then to the
// native set, so only the filter statement is defined here.
package sodaqbe
