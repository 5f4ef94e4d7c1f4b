package provider

import (
	"context"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

// Store is a typed view of a Provider for payload type T. The collection is
// resolved from T unless overridden with WithCollection, and is resolved on
// every call so that an invalid name fails before any I/O.
type Store[T any] struct {
	provider   Provider
	collection string
}

// NewStore returns a Store for T backed by p.
func NewStore[T any](p Provider) *Store[T] {
	return &Store[T]{provider: p}
}

// WithCollection returns a copy of the store addressing the named collection.
func (s *Store[T]) WithCollection(name string) *Store[T] {
	return &Store[T]{provider: s.provider, collection: name}
}

// Collection resolves the collection this store addresses.
func (s *Store[T]) Collection() (string, error) {
	return document.CollectionOf[T](s.collection)
}

// Provider returns the backend this store delegates to.
func (s *Store[T]) Provider() Provider {
	return s.provider
}

func (s *Store[T]) EnsureCollection(ctx context.Context) error {
	collection, err := s.Collection()
	if err != nil {
		return err
	}
	return s.provider.EnsureCollection(ctx, collection)
}

func (s *Store[T]) Create(ctx context.Context, value T) (document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return document.Item[T]{}, err
	}
	doc, err := document.Encode(value)
	if err != nil {
		return document.Item[T]{}, err
	}
	env, err := s.provider.Create(ctx, collection, doc)
	if err != nil {
		return document.Item[T]{}, err
	}
	return document.Decode[T](env)
}

func (s *Store[T]) Update(ctx context.Context, id string, value T) (document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return document.Item[T]{}, err
	}
	doc, err := document.Encode(value)
	if err != nil {
		return document.Item[T]{}, err
	}
	env, err := s.provider.Update(ctx, collection, id, doc)
	if err != nil {
		return document.Item[T]{}, err
	}
	return document.Decode[T](env)
}

// Upsert creates the document when id is empty or unknown.
func (s *Store[T]) Upsert(ctx context.Context, id string, value T) (document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return document.Item[T]{}, err
	}
	doc, err := document.Encode(value)
	if err != nil {
		return document.Item[T]{}, err
	}
	env, err := s.provider.Upsert(ctx, collection, id, doc)
	if err != nil {
		return document.Item[T]{}, err
	}
	return document.Decode[T](env)
}

func (s *Store[T]) Retrieve(ctx context.Context, id string) (document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return document.Item[T]{}, err
	}
	env, err := s.provider.Retrieve(ctx, collection, id)
	if err != nil {
		return document.Item[T]{}, err
	}
	return document.Decode[T](env)
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	collection, err := s.Collection()
	if err != nil {
		return err
	}
	return s.provider.Delete(ctx, collection, id)
}

func (s *Store[T]) List(ctx context.Context, page *document.Page) ([]document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return nil, err
	}
	envs, err := s.provider.List(ctx, collection, page)
	if err != nil {
		return nil, err
	}
	return document.DecodeAll[T](envs)
}

func (s *Store[T]) Filter(ctx context.Context, q *query.Query, page *document.Page) ([]document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return nil, err
	}
	envs, err := s.provider.Filter(ctx, collection, q, page)
	if err != nil {
		return nil, err
	}
	return document.DecodeAll[T](envs)
}

func (s *Store[T]) FilterRaw(ctx context.Context, filter string, page *document.Page) ([]document.Item[T], error) {
	collection, err := s.Collection()
	if err != nil {
		return nil, err
	}
	envs, err := s.provider.FilterRaw(ctx, collection, filter, page)
	if err != nil {
		return nil, err
	}
	return document.DecodeAll[T](envs)
}
