package pagination

import (
	"fmt"
	"math"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

// Data is what a SQL statement template needs to page a result.
type Data struct {
	// FilterString is the complete QBE document handed to the store.
	FilterString string

	Skip  *int
	Limit *int
}

// SkipPart renders ".skip(n)" for QBE statements, or nothing.
func (d Data) SkipPart() string {
	if d.Skip == nil {
		return ""
	}
	return fmt.Sprintf(".skip(%d)", *d.Skip)
}

// LimitPart renders ".limit(n)" for QBE statements, or nothing.
func (d Data) LimitPart() string {
	if d.Limit == nil {
		return ""
	}
	return fmt.Sprintf(".limit(%d)", *d.Limit)
}

// Clause renders the row-limiting clause of a native SQL statement.
func (d Data) Clause() string {
	skip, limit := 0, math.MaxInt32
	if d.Skip != nil {
		skip = *d.Skip
	}
	if d.Limit != nil {
		limit = *d.Limit
	}
	return Clause(skip, limit)
}

// Clause renders "OFFSET s ROWS FETCH NEXT l ROWS ONLY". It is empty only
// for the unbounded default of skip 0 and limit math.MaxInt32.
func Clause(skip, limit int) string {
	if skip == 0 && limit == math.MaxInt32 {
		return ""
	}
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", skip, limit)
}

// SQL translates a Page for native SQL statements.
type SQL struct{}

// Compute validates the page and derives skip and limit. The filter string
// is always the empty document.
func (SQL) Compute(p *document.Page) (Data, error) {
	if err := p.Validate(); err != nil {
		return Data{}, err
	}
	d := Data{FilterString: "{}"}
	if p != nil {
		skip, limit := p.Skip(), p.Limit()
		d.Skip, d.Limit = &skip, &limit
	}
	return d, nil
}
