package pagination

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

type orderBy struct {
	Path  string `json:"path"`
	Order string `json:"order"`
}

// orderFragment renders `"$orderby":[{"path":...,"order":...}]` for an
// ordered page.
func orderFragment(p *document.Page) string {
	data, _ := json.Marshal([]orderBy{{Path: p.OrderingPath, Order: p.Ordering.String()}})
	return `"$orderby":` + string(data)
}

// REST expresses a Page as URL parameters and filter bodies of the SODA
// REST API.
type REST struct{}

// Validate rejects invalid pages.
func (REST) Validate(p *document.Page) error {
	return p.Validate()
}

// AppendURL adds the offset and limit parameters. A nil page leaves the URL
// untouched.
func (REST) AppendURL(p *document.Page, base string) string {
	if p == nil {
		return base
	}
	return fmt.Sprintf("%s?offset=%d&limit=%d", base, p.Skip(), p.Limit())
}

// ListURL is AppendURL plus an order clause in the q parameter when the
// page is ordered.
func (r REST) ListURL(p *document.Page, base string) string {
	u := r.AppendURL(p, base)
	if !p.Ordered() {
		return u
	}
	return u + "&q=" + url.QueryEscape("{"+orderFragment(p)+"}")
}

// ApplyFilter returns the request URL and body for a filter. An explicit
// "$orderby" in the filter wins over the page ordering.
func (r REST) ApplyFilter(p *document.Page, base, filter string) (string, string, error) {
	if err := p.Validate(); err != nil {
		return "", "", err
	}
	f, err := ParseFilter(filter)
	if err != nil {
		return "", "", err
	}

	body := filter
	if len(f.Query) == 0 {
		body = "{}"
	}
	if p.Ordered() && !f.HasOrder() {
		body = `{"$query":` + f.queryOrEmpty() + "," + orderFragment(p) + "}"
	}
	return r.AppendURL(p, base), body, nil
}
