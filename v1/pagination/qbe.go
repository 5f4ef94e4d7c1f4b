package pagination

import "github.com/Aleph-Alpha/docstore/v1/document"

// QBE translates a Page and a parsed filter into the filter document of a
// query-by-example statement.
type QBE struct{}

// Compute builds {"$query":...,"$orderby":...}. The page ordering is used
// only when the filter carries no order of its own.
func (QBE) Compute(p *document.Page, f Filter) (Data, error) {
	if err := p.Validate(); err != nil {
		return Data{}, err
	}

	d := Data{}
	if p.Ordered() && !f.HasOrder() {
		d.FilterString = `{"$query":` + f.queryOrEmpty() + "," + orderFragment(p) + "}"
	} else {
		d.FilterString = `{"$query":` + f.queryOrEmpty() + `,"$orderby":` + f.orderOrEmpty() + "}"
	}
	if p != nil {
		skip, limit := p.Skip(), p.Limit()
		d.Skip, d.Limit = &skip, &limit
	}
	return d, nil
}
