package document

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// Item is the envelope returned for every stored document: the system key,
// the concurrency token, the two timestamps and the decoded payload.
type Item[T any] struct {
	ID           string    `json:"id"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"lastModified"`
	Created      time.Time `json:"created"`
	Value        T         `json:"value"`
}

// Envelope is the undecoded form of Item that providers exchange. Value is
// the raw JSON payload exactly as the store returned it.
type Envelope struct {
	ID           string          `json:"id"`
	ETag         string          `json:"etag"`
	LastModified time.Time       `json:"lastModified"`
	Created      time.Time       `json:"created"`
	Value        json.RawMessage `json:"value,omitempty"`
}

// Encode serialises a payload for the store. Field naming and null omission
// follow the payload's json tags.
func Encode(v interface{}) (json.RawMessage, error) {
	if isNil(v) {
		return nil, Validationf("the item to serialize cannot be null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, Validationf("cannot serialize %T: %v", v, err)
	}
	return data, nil
}

// Decode converts an envelope into a typed item.
func Decode[T any](env Envelope) (Item[T], error) {
	item := Item[T]{
		ID:           env.ID,
		ETag:         env.ETag,
		LastModified: env.LastModified,
		Created:      env.Created,
	}
	if len(bytes.TrimSpace(env.Value)) == 0 {
		return item, Validationf("cannot convert empty document to %T", item.Value)
	}
	if err := json.Unmarshal(env.Value, &item.Value); err != nil {
		return item, Validationf("cannot convert to %T: %v", item.Value, err)
	}
	return item, nil
}

// DecodeAll converts a slice of envelopes, stopping at the first failure.
func DecodeAll[T any](envs []Envelope) ([]Item[T], error) {
	items := make([]Item[T], 0, len(envs))
	for _, env := range envs {
		item, err := Decode[T](env)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
