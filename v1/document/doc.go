// Package document holds the types shared by every document provider: the
// Item envelope and its raw Envelope form, Page, the error taxonomy, the
// collection resolver and key helpers.
//
// Collections:
//
// A payload type maps to a collection name in this order: an explicit
// override, a name registered with RegisterCollection, a name declared by a
// CollectionName method, and finally the Go type name. Every name must match
// ^[A-Za-z0-9_]+$; an invalid override is a configuration error.
//
//	type Invoice struct {
//		Number string `json:"number"`
//		Total  int    `json:"total,omitempty"`
//	}
//
//	func (Invoice) CollectionName() string { return "invoices" }
//
//	name, err := document.CollectionOf[Invoice]("") // "invoices"
//
// Errors:
//
// ErrConfiguration, ErrValidation, ErrNotFound and ErrBackend classify every
// provider failure. BackendError keeps the status and body returned by the
// store and unwraps to ErrBackend.
package document
