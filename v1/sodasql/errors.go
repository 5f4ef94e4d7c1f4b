package sodasql

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

var oraCode = regexp.MustCompile(`ORA-(\d{5})`)

// ErrorCategory groups Oracle errors by how callers react to them.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryConfiguration
	CategoryValidation
	CategoryConnection
)

var categories = map[int]ErrorCategory{
	942:   CategoryConfiguration, // table or view does not exist
	1017:  CategoryConfiguration, // invalid username/password
	1031:  CategoryConfiguration, // insufficient privileges
	30625: CategoryConfiguration, // method dispatch on NULL SELF, collection missing
	40734: CategoryConfiguration, // key column type mismatch in collection metadata

	1:     CategoryValidation, // unique constraint violated
	1400:  CategoryValidation, // cannot insert NULL
	2290:  CategoryValidation, // check constraint (IS JSON) violated
	40441: CategoryValidation, // JSON syntax error
	40442: CategoryValidation, // JSON path expression syntax error
	40597: CategoryValidation, // JSON path expression syntax error

	3113:  CategoryConnection, // end-of-file on communication channel
	3114:  CategoryConnection, // not connected
	3135:  CategoryConnection, // connection lost contact
	12170: CategoryConnection, // connect timeout
	12514: CategoryConnection, // listener does not know service
	12541: CategoryConnection, // no listener
}

// OracleCode extracts the first ORA- code from err.
func OracleCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	m := oraCode.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	code, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, false
	}
	return code, true
}

// GetErrorCategory classifies err by its ORA- code.
func GetErrorCategory(err error) ErrorCategory {
	code, ok := OracleCode(err)
	if !ok {
		return CategoryUnknown
	}
	return categories[code]
}

// IsRetryable reports whether err was caused by a lost or refused
// connection.
func IsRetryable(err error) bool {
	return GetErrorCategory(err) == CategoryConnection
}

// TranslateError maps a driver error of statement into the document error
// taxonomy. Errors already in the taxonomy pass through unchanged.
func TranslateError(statement, collection string, err error) error {
	if err == nil {
		return nil
	}
	if document.IsConfiguration(err) || document.IsValidation(err) ||
		document.IsNotFound(err) || document.IsBackend(err) {
		return err
	}

	switch GetErrorCategory(err) {
	case CategoryConfiguration:
		return fmt.Errorf("%w: %s on collection %s: %v", document.ErrConfiguration, statement, collection, err)
	case CategoryValidation:
		return fmt.Errorf("%w: %s on collection %s: %v", document.ErrValidation, statement, collection, err)
	}
	return &document.BackendError{
		Operation: statement,
		Target:    collection,
		Err:       err,
	}
}

// errNoRows reports a write that returned no document.
var errNoRows = errors.New("statement returned no document")
