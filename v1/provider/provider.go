package provider

import (
	"context"
	"encoding/json"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=provider

// Provider is the contract every document backend implements. Documents are
// exchanged as raw JSON and addressed by collection; Store adds typing and
// collection resolution on top.
//
// Keys are sanitized by the backend before use, so callers may pass keys in
// any of the store's textual forms.
type Provider interface {
	// EnsureCollection creates the collection when it does not exist.
	EnsureCollection(ctx context.Context, collection string) error

	// Create stores a new document and returns its envelope.
	Create(ctx context.Context, collection string, doc json.RawMessage) (document.Envelope, error)

	// Update replaces the document stored under id. A missing id is
	// document.ErrNotFound.
	Update(ctx context.Context, collection, id string, doc json.RawMessage) (document.Envelope, error)

	// Upsert updates the document stored under id, or creates it when id is
	// empty or unknown.
	Upsert(ctx context.Context, collection, id string, doc json.RawMessage) (document.Envelope, error)

	// Retrieve returns the document stored under id.
	Retrieve(ctx context.Context, collection, id string) (document.Envelope, error)

	// Delete removes the document stored under id.
	Delete(ctx context.Context, collection, id string) error

	// List returns a page of the collection in store order, or ordered by
	// the page's ordering path.
	List(ctx context.Context, collection string, page *document.Page) ([]document.Envelope, error)

	// Filter returns the documents matching q. A nil or empty query matches
	// every document.
	Filter(ctx context.Context, collection string, q *query.Query, page *document.Page) ([]document.Envelope, error)

	// FilterRaw returns the documents matching a backend-native filter.
	FilterRaw(ctx context.Context, collection, filter string, page *document.Page) ([]document.Envelope, error)
}
