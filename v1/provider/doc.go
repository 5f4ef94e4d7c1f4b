// Package provider defines the Provider contract shared by every document
// backend and the typed Store facade built on it.
//
// Backends exchange raw JSON envelopes and never see Go payload types.
// Store resolves the collection of its payload type, encodes values and
// decodes envelopes into document.Item:
//
//	store := provider.NewStore[Invoice](rest)
//	item, err := store.Create(ctx, Invoice{Number: "A-1"})
//
//	q := query.New().With(query.And().
//		With(query.String("status", "open")).
//		With(query.Int("total", 100, query.GreaterThan)))
//	items, err := store.Filter(ctx, q, document.NewPage())
//
// Decoration:
//
// A decorator embeds Provider and overrides only the methods it changes.
// Method promotion sends every other call to the wrapped instance, so the
// decorator does not need to know the rest of the contract.
//
//	type auditing struct {
//		provider.Provider
//	}
//
//	func (a auditing) Delete(ctx context.Context, collection, id string) error {
//		log.Printf("delete %s/%s", collection, id)
//		return a.Provider.Delete(ctx, collection, id)
//	}
package provider
