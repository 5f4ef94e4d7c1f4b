package document

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// Named is implemented by payload types that declare their collection.
type Named interface {
	CollectionName() string
}

var (
	collectionPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	namedType         = reflect.TypeOf((*Named)(nil)).Elem()

	collections = make(map[reflect.Type]string)
	mu          sync.RWMutex
)

// ValidCollectionName reports whether name may be embedded in a SQL table
// name or a REST path segment.
func ValidCollectionName(name string) bool {
	return collectionPattern.MatchString(name)
}

// CheckCollection returns a configuration error for an invalid name.
// Providers call it before a name reaches a URL or a statement.
func CheckCollection(name string) error {
	if !ValidCollectionName(name) {
		return Configurationf("collection name %q must have only alphanumeric characters or the _ character", name)
	}
	return nil
}

// RegisterCollection associates payload type T with a collection name.
func RegisterCollection[T any](name string) error {
	if err := CheckCollection(name); err != nil {
		return err
	}
	t := baseType(reflect.TypeOf((*T)(nil)).Elem())

	mu.Lock()
	defer mu.Unlock()
	collections[t] = name
	return nil
}

// CollectionOf resolves the collection of payload type T.
func CollectionOf[T any](override string) (string, error) {
	return ResolveCollection(reflect.TypeOf((*T)(nil)).Elem(), override)
}

// ResolveCollection maps a payload type to its collection name. A non-blank
// override wins and must be valid. Otherwise a registered or declared name
// is used when valid, falling back to the type's own name.
func ResolveCollection(t reflect.Type, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		if err := CheckCollection(override); err != nil {
			return "", err
		}
		return override, nil
	}
	if t == nil {
		return "", Configurationf("cannot resolve a collection without a type")
	}

	if name, ok := declaredName(t); ok && ValidCollectionName(name) {
		return name, nil
	}

	name := baseType(t).Name()
	if !ValidCollectionName(name) {
		return "", Configurationf("type %q cannot be used as a collection name, declare one", t.String())
	}
	return name, nil
}

func declaredName(t reflect.Type) (string, bool) {
	mu.RLock()
	name, ok := collections[baseType(t)]
	mu.RUnlock()
	if ok {
		return name, true
	}

	var v reflect.Value
	switch {
	case t.Kind() == reflect.Pointer && t.Implements(namedType):
		v = reflect.New(t.Elem())
	case t.Implements(namedType) && t.Kind() != reflect.Interface:
		v = reflect.New(t).Elem()
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(namedType):
		v = reflect.New(t)
	default:
		return "", false
	}
	return v.Interface().(Named).CollectionName(), true
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
