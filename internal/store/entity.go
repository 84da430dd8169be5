package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD operations for any domain type.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity.
//
// Unique indexes map one value to one entity ID (e.g. user email) and are
// conflict-checked on write. Non-unique indexes map a value to many IDs
// (e.g. songs by artist) and are scanned with ListByIndex.
type Index[T any] struct {
	name            string
	keyGen          func(*T) []string
	unique          bool
	lookupTransform func(string) string // Optional transformation for lookups
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:   s,
		prefix:  prefix,
		indexes: make([]Index[T], 0),
	}
}

// WithUniqueIndex adds a unique secondary index to the entity.
// The lookupTransform, if non-nil, is applied to search values before lookup,
// enabling case-insensitive matching.
func (e *Entity[T]) WithUniqueIndex(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:            name,
		keyGen:          keyGen,
		unique:          true,
		lookupTransform: lookupTransform,
	})
	return e
}

// WithIndex adds a non-unique secondary index to the entity.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:   name,
		keyGen: keyGen,
	})
	return e
}

// key builds the primary key for an ID.
func (e *Entity[T]) key(id string) []byte {
	return []byte(e.prefix + id)
}

// indexKey builds an index entry key. Non-unique indexes append the entity ID
// so that multiple entities can share one index value.
func (e *Entity[T]) indexKey(idx Index[T], value, id string) []byte {
	k := e.prefix + "idx:" + idx.name + ":" + value
	if !idx.unique {
		k += ":" + id
	}
	return []byte(k)
}

// writeIndexes writes all index entries for an entity inside txn.
// Unique indexes are conflict-checked; skipValues suppresses checks for
// values carried over from a prior version of the entity.
func (e *Entity[T]) writeIndexes(txn *badger.Txn, id string, entity *T, skipValues map[string]bool) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			k := e.indexKey(idx, value, id)
			if idx.unique && !skipValues[idx.name+":"+value] {
				_, err := txn.Get(k)
				if err == nil {
					return fmt.Errorf("index %s conflict on %q: %w", idx.name, value, ErrAlreadyExists)
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("check index key: %w", err)
				}
			}
			if err := txn.Set(k, []byte(id)); err != nil {
				return fmt.Errorf("set index key: %w", err)
			}
		}
	}
	return nil
}

// deleteIndexes removes all index entries for an entity inside txn.
func (e *Entity[T]) deleteIndexes(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Delete(e.indexKey(idx, value, id)); err != nil {
				return fmt.Errorf("delete index key: %w", err)
			}
		}
	}
	return nil
}

// Create creates a new entity with the given ID.
// Returns ErrAlreadyExists if an entity with this ID already exists.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	return e.store.update(func(txn *badger.Txn) error {
		_, err := txn.Get(e.key(id))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check existing key: %w", err)
		}

		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("set key: %w", err)
		}

		return e.writeIndexes(txn, id, entity, nil)
	})
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
	})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// GetByIndex retrieves an entity by a unique secondary index.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	indexKey := []byte(e.prefix + "idx:" + indexName + ":" + value)

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return e.Get(ctx, id)
}

// ListByIndex returns all entities whose non-unique index contains value.
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanPrefix := []byte(e.prefix + "idx:" + indexName + ":" + value + ":")

	var ids []string
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = scanPrefix
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(scanPrefix); it.ValidForPrefix(scanPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0, len(ids))
	for _, id := range ids {
		entity, err := e.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue // index entry outlived the record
			}
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Update replaces an existing entity.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	return e.store.update(func(txn *badger.Txn) error {
		old, err := e.getInTxn(txn, id)
		if err != nil {
			return err
		}

		if err := e.deleteIndexes(txn, id, old); err != nil {
			return err
		}

		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("set key: %w", err)
		}

		// Values unchanged between versions are not conflicts.
		skip := make(map[string]bool)
		for _, idx := range e.indexes {
			for _, value := range idx.keyGen(old) {
				skip[idx.name+":"+value] = true
			}
		}
		return e.writeIndexes(txn, id, entity, skip)
	})
}

// Mutate applies fn to the stored entity inside a single transaction and
// persists the result. This is the atomic read-modify-write primitive behind
// every set mutation: concurrent Mutate calls on the same record serialize,
// so no update is lost. fn returning an error aborts without writing.
//
// Returns the entity as persisted, or ErrNotFound if the ID does not exist.
func (e *Entity[T]) Mutate(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result *T
	err := e.store.update(func(txn *badger.Txn) error {
		entity, err := e.getInTxn(txn, id)
		if err != nil {
			return err
		}

		if err := e.deleteIndexes(txn, id, entity); err != nil {
			return err
		}

		// Values unchanged between versions are not conflicts. Capture them
		// before fn runs, so a mutated unique value is still checked.
		skip := allValues(e.indexes, entity)

		if err := fn(entity); err != nil {
			return err
		}

		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshal entity: %w", err)
		}
		if err := txn.Set(e.key(id), data); err != nil {
			return fmt.Errorf("set key: %w", err)
		}
		if err := e.writeIndexes(txn, id, entity, skip); err != nil {
			return err
		}

		result = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// allValues marks every current index value as carried over, suppressing
// unique-conflict checks for values the entity already held.
func allValues[T any](indexes []Index[T], entity *T) map[string]bool {
	skip := make(map[string]bool)
	for _, idx := range indexes {
		for _, value := range idx.keyGen(entity) {
			skip[idx.name+":"+value] = true
		}
	}
	return skip
}

// getInTxn decodes an entity inside an open transaction.
func (e *Entity[T]) getInTxn(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get(e.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get key: %w", err)
	}

	var entity T
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entity)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal entity: %w", err)
	}
	return &entity, nil
}

// Delete deletes an entity by ID.
// Idempotent: no error if the entity does not exist.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.update(func(txn *badger.Txn) error {
		entity, err := e.getInTxn(txn, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := e.deleteIndexes(txn, id, entity); err != nil {
			return err
		}

		if err := txn.Delete(e.key(id)); err != nil {
			return fmt.Errorf("delete key: %w", err)
		}
		return nil
	})
}

// List returns an iterator over all entities.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index keys.
				key := string(it.Item().Key())
				if strings.HasPrefix(key[len(e.prefix):], "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}
