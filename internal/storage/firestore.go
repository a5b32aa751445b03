package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/meur/harborline/internal/config"
)

const (
	defaultDialTimeout = 10 * time.Second
	envEmulatorHost    = "FIRESTORE_EMULATOR_HOST"
	envGoogleProjectID = "GOOGLE_CLOUD_PROJECT"
)

// ErrBackendClosed is returned after Close has been called.
var ErrBackendClosed = errors.New("firestore: backend is closed")

// FirestoreBackend stores each collection as a Firestore collection keyed by record id.
// The client is created lazily on first use.
type FirestoreBackend struct {
	cfg         config.FirestoreConfig
	dialTimeout time.Duration
	clientOpts  []option.ClientOption

	mu     sync.Mutex
	client *firestore.Client
	closed bool
}

// NewFirestore constructs a backend for the configured project
func NewFirestore(cfg config.FirestoreConfig, opts ...option.ClientOption) *FirestoreBackend {
	return &FirestoreBackend{
		cfg:         cfg,
		dialTimeout: defaultDialTimeout,
		clientOpts:  opts,
	}
}

// Insert creates the document, failing with ErrDuplicateID if it exists
func (f *FirestoreBackend) Insert(ctx context.Context, collection, id string, doc []byte) error {
	client, err := f.getClient(ctx)
	if err != nil {
		return err
	}
	data, err := documentData(doc)
	if err != nil {
		return err
	}
	if _, err := client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		return translateError(err)
	}
	return nil
}

// Upsert sets the document, replacing any existing content
func (f *FirestoreBackend) Upsert(ctx context.Context, collection, id string, doc []byte) error {
	client, err := f.getClient(ctx)
	if err != nil {
		return err
	}
	data, err := documentData(doc)
	if err != nil {
		return err
	}
	if _, err := client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return translateError(err)
	}
	return nil
}

// List reads every document of the collection
func (f *FirestoreBackend) List(ctx context.Context, collection string) ([][]byte, error) {
	client, err := f.getClient(ctx)
	if err != nil {
		return nil, err
	}

	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs [][]byte
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, translateError(err)
		}
		data := snap.Data()
		if data == nil {
			data = map[string]any{}
		}
		if _, ok := data["_id"]; !ok {
			data["_id"] = snap.Ref.ID
		}
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("firestore: encode document %s: %w", snap.Ref.ID, err)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

// Close releases the Firestore client. The backend cannot be reused afterwards.
func (f *FirestoreBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.client == nil {
		return nil
	}
	client := f.client
	f.client = nil
	return client.Close()
}

func (f *FirestoreBackend) getClient(ctx context.Context) (*firestore.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrBackendClosed
	}
	if f.client != nil {
		return f.client, nil
	}
	client, err := f.createClient(ctx)
	if err != nil {
		return nil, err
	}
	f.client = client
	return client, nil
}

func (f *FirestoreBackend) createClient(ctx context.Context) (*firestore.Client, error) {
	if f.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.dialTimeout)
		defer cancel()
	}

	projectID := strings.TrimSpace(f.cfg.ProjectID)
	if projectID == "" {
		projectID = strings.TrimSpace(os.Getenv(envGoogleProjectID))
	}
	if projectID == "" {
		return nil, errors.New("firestore: project id is required")
	}

	opts := append([]option.ClientOption(nil), f.clientOpts...)
	if host := f.emulatorHost(); host != "" {
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithEndpoint(host),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	return client, nil
}

func (f *FirestoreBackend) emulatorHost() string {
	if host := strings.TrimSpace(f.cfg.EmulatorHost); host != "" {
		return host
	}
	return strings.TrimSpace(os.Getenv(envEmulatorHost))
}

// documentData decodes a JSON document into Firestore fields. Whole numbers are
// stored as integers, everything else as float.
func documentData(doc []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("firestore: decode document: %w", err)
	}
	for k, v := range data {
		data[k] = firestoreValue(v)
	}
	return data, nil
}

func firestoreValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, inner := range val {
			val[k] = firestoreValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = firestoreValue(inner)
		}
		return val
	default:
		return v
	}
}

// translateError maps gRPC status codes onto storage sentinels. Context errors pass through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch status.Code(err) {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", ErrDuplicateID, err)
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}
	return err
}
