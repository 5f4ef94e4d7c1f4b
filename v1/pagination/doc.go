// Package pagination translates a document.Page into the paging syntax of
// each backend.
//
// REST appends offset and limit parameters and, for ordered pages, a q
// parameter or a wrapped filter body. SQL derives an OFFSET/FETCH clause for
// native statements. QBE produces the filter document and the .skip/.limit
// fragments used by query-by-example statements.
//
// ParseFilter validates a raw QBE filter against a JSON schema and splits
// it into its predicate and its explicit order.
package pagination
