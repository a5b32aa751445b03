package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meur/harborline/internal/models"
)

var (
	// ErrMissingID is returned when a record without an id is written.
	ErrMissingID = errors.New("storage: record id is required")
	// ErrDuplicateID is returned when a record id already exists in the collection.
	ErrDuplicateID = errors.New("storage: record id already exists")
	// ErrUnsupported is returned when the backend cannot perform the operation.
	ErrUnsupported = errors.New("storage: operation not supported by backend")
)

// Backend persists JSON documents grouped by collection.
type Backend interface {
	Insert(ctx context.Context, collection, id string, doc []byte) error
	List(ctx context.Context, collection string) ([][]byte, error)
	Close() error
}

// Upserter is implemented by backends that can overwrite documents. Only seeding uses it.
type Upserter interface {
	Upsert(ctx context.Context, collection, id string, doc []byte) error
}

// PersistenceError reports any failed read or write against the store.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}

// Page is a full snapshot of a collection.
type Page[T any] struct {
	Items []T `json:"items"`
}

// Client is the collection-agnostic gateway to the document store.
// It holds no records and is safe for concurrent use if the backend is.
type Client struct {
	backend Backend
}

// NewClient creates a Client over the given backend
func NewClient(backend Backend) *Client {
	return &Client{backend: backend}
}

// Close closes the underlying backend
func (c *Client) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

// CreateRecord persists rec verbatim in collection and returns it.
func CreateRecord[T models.Record](ctx context.Context, c *Client, collection string, rec T) (T, error) {
	if err := c.insert(ctx, collection, rec); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// ListRecords returns every record currently stored in collection.
func ListRecords[T any](ctx context.Context, c *Client, collection string) (Page[T], error) {
	if c == nil || c.backend == nil {
		return Page[T]{}, wrap("list", collection, errors.New("no backend configured"))
	}
	docs, err := c.backend.List(ctx, collection)
	if err != nil {
		return Page[T]{}, wrap("list", collection, err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return Page[T]{}, wrap("list", collection, fmt.Errorf("decode document: %w", err))
		}
		items = append(items, item)
	}
	return Page[T]{Items: items}, nil
}

// UpsertRecords writes or replaces records. Used for seeding content collections.
func UpsertRecords[T models.Record](ctx context.Context, c *Client, collection string, recs []T) error {
	if c == nil || c.backend == nil {
		return wrap("upsert", collection, errors.New("no backend configured"))
	}
	up, ok := c.backend.(Upserter)
	if !ok {
		return wrap("upsert", collection, ErrUnsupported)
	}
	for _, rec := range recs {
		id := rec.RecordID()
		if id == "" {
			return wrap("upsert", collection, ErrMissingID)
		}
		doc, err := json.Marshal(rec)
		if err != nil {
			return wrap("upsert", collection, fmt.Errorf("encode document %s: %w", id, err))
		}
		if err := up.Upsert(ctx, collection, id, doc); err != nil {
			return wrap("upsert", collection, err)
		}
	}
	return nil
}

func (c *Client) insert(ctx context.Context, collection string, rec models.Record) error {
	if c == nil || c.backend == nil {
		return wrap("create", collection, errors.New("no backend configured"))
	}
	id := rec.RecordID()
	if id == "" {
		return wrap("create", collection, ErrMissingID)
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return wrap("create", collection, fmt.Errorf("encode document %s: %w", id, err))
	}
	if err := c.backend.Insert(ctx, collection, id, doc); err != nil {
		return wrap("create", collection, err)
	}
	return nil
}
