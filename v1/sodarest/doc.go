// Package sodarest implements provider.Provider over the SODA REST API of
// Oracle REST Data Services.
//
// Every document operation maps to one or two HTTP exchanges below
// /ords/{schema}/soda/latest:
//
//	EnsureCollection  GET /            then PUT /{collection} if missing
//	Create            POST /{collection}
//	Retrieve          GET /{collection}/?limit=1&fromID={preceding key}
//	Update, Upsert    GET /{collection}/{id}, PUT, then the Retrieve read-back
//	Delete            DELETE /{collection}/{id}
//	List              GET /{collection}?offset=&limit=[&q=]
//	Filter            POST /custom-actions/query/{collection}/?offset=&limit=
//
// The store answers writes with key and version only, so Update and Upsert
// read the revision back by listing one document after the key preceding
// the written one. Keys that are not 128-bit values are read directly.
//
// Usage:
//
//	client, err := sodarest.NewClient(sodarest.Config{
//		Host:     "ords.internal",
//		Port:     8443,
//		Secure:   true,
//		Username: "app",
//		Password: os.Getenv("SODA_REST_PASSWORD"),
//		Schema:   "app",
//	})
//	if err != nil {
//		return err
//	}
//	invoices := provider.NewStore[Invoice](client.WithLogger(log))
//
// Transport security is per client: TLS.MinVersion, TLS.CACertPath and
// TLS.InsecureSkipVerify only affect the client built from that Config.
// RateLimit caps the request rate of the client; requests wait for a token
// or fail when their context ends first.
//
// Responses other than 2xx become *document.BackendError carrying the
// operation, URL, status and body. Missing keys are document.ErrNotFound.
package sodarest
