package sodarest

import (
	"net/http"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

var operationNames = map[string]string{
	http.MethodGet:    "HttpGet",
	http.MethodPost:   "HttpPost",
	http.MethodPut:    "HttpPut",
	http.MethodDelete: "HttpDelete",
}

// statusError converts a non-2xx response into a BackendError.
func statusError(method, target string, resp *response) error {
	return &document.BackendError{
		Operation:  operationNames[method],
		Target:     target,
		StatusCode: resp.status,
		Body:       string(resp.body),
	}
}

// transportError wraps a failure that produced no response.
func transportError(method, target string, err error) error {
	return &document.BackendError{
		Operation: operationNames[method],
		Target:    target,
		Err:       err,
	}
}

func notFound(collection, id string) error {
	return document.NotFoundf("ID %s not found for collection %s", id, collection)
}

// notFoundResponse is a 404 kept with its diagnostics.
func notFoundResponse(method, target string, resp *response) error {
	return document.NotFoundf("%s: error calling %q; status: %d, message: %q",
		operationNames[method], target, resp.status, string(resp.body))
}
