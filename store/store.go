// Package store keeps entity collections as whole JSON arrays.
//
// Every mutation reads the full collection, changes it in memory and writes
// the full collection back. There is no locking: two concurrent
// read-modify-write cycles on the same collection race and the later write
// silently discards the earlier one.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Backend persists one opaque blob per collection name.
// Load returns nil, nil for a collection that was never saved.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Record is anything addressable by a string id.
type Record interface {
	Key() string
}

type Collection[T Record] struct {
	name    string
	backend Backend
}

func NewCollection[T Record](backend Backend, name string) *Collection[T] {
	return &Collection[T]{name: name, backend: backend}
}

func (c *Collection[T]) Name() string { return c.name }

// All returns the whole collection in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	data, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	records := []T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return records, nil
}

// ReplaceAll overwrites the stored collection.
func (c *Collection[T]) ReplaceAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	records, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(records, id); i >= 0 {
		return records[i], nil
	}
	return zero, ErrNotFound
}

// Insert appends rec. An existing record with the same id yields ErrDuplicate.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	records, err := c.All(ctx)
	if err != nil {
		return err
	}
	if indexOf(records, rec.Key()) >= 0 {
		return ErrDuplicate
	}
	return c.ReplaceAll(ctx, append(records, rec))
}

// InsertIfAbsent appends rec unless its id is already stored, in which case
// the stored record is returned with created=false.
func (c *Collection[T]) InsertIfAbsent(ctx context.Context, rec T) (stored T, created bool, err error) {
	records, err := c.All(ctx)
	if err != nil {
		return stored, false, err
	}
	if i := indexOf(records, rec.Key()); i >= 0 {
		return records[i], false, nil
	}
	if err := c.ReplaceAll(ctx, append(records, rec)); err != nil {
		return stored, false, err
	}
	return rec, true, nil
}

// Update locates id, lets fn mutate a copy and writes the collection back.
// The id is taken from the original record whatever fn does to it.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var zero T
	records, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf(records, id)
	if i < 0 {
		return zero, ErrNotFound
	}
	rec := records[i]
	if err := fn(&rec); err != nil {
		return zero, err
	}
	if rec.Key() != id {
		return zero, fmt.Errorf("update %s/%s: id changed to %q", c.name, id, rec.Key())
	}
	records[i] = rec
	if err := c.ReplaceAll(ctx, records); err != nil {
		return zero, err
	}
	return rec, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	records, err := c.All(ctx)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		return ErrNotFound
	}
	return c.ReplaceAll(ctx, append(records[:i], records[i+1:]...))
}

// SeedIfEmpty writes records only when nothing is stored yet.
func (c *Collection[T]) SeedIfEmpty(ctx context.Context, records []T) (bool, error) {
	existing, err := c.All(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := c.ReplaceAll(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf[T Record](records []T, id string) int {
	for i, r := range records {
		if r.Key() == id {
			return i
		}
	}
	return -1
}
