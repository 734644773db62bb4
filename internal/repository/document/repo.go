// Package document persists the paper catalog as JSON values in Redis, with
// auxiliary sets for the ID index and source-path dedup.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paperdex/paperdex/internal/db"
	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

// DefaultKeyPrefix namespaces every key this repository writes.
const DefaultKeyPrefix = "paperdex"

// store is the consumer interface for documents (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the document Repository contracts of the usecase layer.
type Repo struct {
	store  store
	prefix string
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s, prefix: DefaultKeyPrefix}
}

// WithKeyPrefix overrides the key namespace.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		r.prefix = prefix
	}
	return r
}

func (r *Repo) docKey(id string) string { return r.prefix + ":doc:" + id }
func (r *Repo) idSetKey() string        { return r.prefix + ":docs" }
func (r *Repo) pathSetKey() string      { return r.prefix + ":paths" }

// Save persists a document and indexes its ID and source path. Existing
// records are overwritten in place.
func (r *Repo) Save(ctx context.Context, doc domdoc.Document) error {
	data, err := json.Marshal(toRecord(doc))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	key := r.docKey(doc.ID())
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.idSetKey(), doc.ID()); err != nil {
		return fmt.Errorf("index id %s: %w", doc.ID(), err)
	}
	if doc.SourcePath() != "" {
		if err := r.store.SAdd(ctx, r.pathSetKey(), doc.SourcePath()); err != nil {
			return fmt.Errorf("index source path %s: %w", doc.SourcePath(), err)
		}
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	raw, err := r.store.Get(ctx, r.docKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("get %s: %w", id, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return rec.toDomain(), nil
}

// Delete removes a document and its index entries.
func (r *Repo) Delete(ctx context.Context, id string) error {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Del(ctx, r.docKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, r.idSetKey(), id); err != nil {
		return fmt.Errorf("unindex id %s: %w", id, err)
	}
	if doc.SourcePath() != "" {
		if err := r.store.SRem(ctx, r.pathSetKey(), doc.SourcePath()); err != nil {
			return fmt.Errorf("unindex source path %s: %w", doc.SourcePath(), err)
		}
	}
	return nil
}

// Scan loads every document and evaluates the predicate in process. A nil
// predicate matches everything. Records that disappear between the ID listing
// and the bulk fetch are skipped.
func (r *Repo) Scan(ctx context.Context, pred predicate.Predicate) ([]domdoc.Document, error) {
	ids, err := r.store.SMembers(ctx, r.idSetKey())
	if err != nil {
		return nil, fmt.Errorf("list document ids: %w", err)
	}
	if len(ids) == 0 {
		return []domdoc.Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(values))
	for i, raw := range values {
		if raw == nil {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", ids[i], err)
		}
		doc := rec.toDomain()
		if pred == nil || pred.Eval(doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// SourcePaths returns the source paths of every stored document.
func (r *Repo) SourcePaths(ctx context.Context) ([]string, error) {
	paths, err := r.store.SMembers(ctx, r.pathSetKey())
	if err != nil {
		return nil, fmt.Errorf("list source paths: %w", err)
	}
	return paths, nil
}
