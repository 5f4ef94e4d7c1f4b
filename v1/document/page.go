package document

// Ordering is the sort direction applied to the ordering path of a Page.
type Ordering int

const (
	Ascending Ordering = iota
	Descending
)

// String returns the direction token used in order-by clauses.
func (o Ordering) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Page describes one page of a list or filter result.
type Page struct {
	// PageNumber is 1-based.
	PageNumber int `json:"pageNumber" yaml:"page_number"`

	// ItemsPerPage is the page size.
	ItemsPerPage int `json:"itemsPerPage" yaml:"items_per_page"`

	// OrderingPath is the document path to sort on. Empty means store order.
	OrderingPath string `json:"orderingPath,omitempty" yaml:"ordering_path"`

	Ordering Ordering `json:"ordering" yaml:"ordering"`
}

// NewPage returns the first page of ten items in ascending order.
func NewPage() *Page {
	return &Page{
		PageNumber:   1,
		ItemsPerPage: 10,
		Ordering:     Ascending,
	}
}

// Validate rejects non-positive page numbers and page sizes. A nil page is valid.
func (p *Page) Validate() error {
	if p == nil {
		return nil
	}
	if p.PageNumber <= 0 {
		return Validationf("page number is invalid: %d", p.PageNumber)
	}
	if p.ItemsPerPage <= 0 {
		return Validationf("items per page value is invalid: %d", p.ItemsPerPage)
	}
	return nil
}

// Skip is the number of documents before the page.
func (p *Page) Skip() int {
	return (p.PageNumber - 1) * p.ItemsPerPage
}

// Limit is the page size.
func (p *Page) Limit() int {
	return p.ItemsPerPage
}

// Ordered reports whether an ordering path was requested.
func (p *Page) Ordered() bool {
	return p != nil && p.OrderingPath != ""
}
