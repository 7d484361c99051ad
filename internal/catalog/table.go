package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jonathan/party-optimizer/internal/schemas"
)

// table is an ordered collection of named records persisted as {"<root>": [...]}
type table[T any] struct {
	kind   string
	path   string
	root   string
	schema *schemas.Schema
	name   func(T) string
	clone  func(T) T

	rows []T
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (t *table[T]) index(name string) int {
	k := key(name)
	for i, r := range t.rows {
		if key(t.name(r)) == k {
			return i
		}
	}
	return -1
}

// load reads the file if present. A missing file is an empty table.
func (t *table[T]) load() error {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		t.rows = nil
		return nil
	}
	if err != nil {
		return &LoadError{Path: t.path, Message: "read failed", Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		t.rows = nil
		return nil
	}

	if t.schema != nil {
		if err := t.schema.Validate(data); err != nil {
			return &LoadError{Path: t.path, Message: "schema validation failed", Cause: err}
		}
	}

	var doc map[string][]T
	if err := json.Unmarshal(data, &doc); err != nil {
		return &LoadError{Path: t.path, Message: "invalid JSON", Cause: err}
	}
	t.rows = doc[t.root]

	seen := make(map[string]bool, len(t.rows))
	for _, r := range t.rows {
		k := key(t.name(r))
		if seen[k] {
			return &LoadError{Path: t.path, Message: fmt.Sprintf("duplicate %s %q", t.kind, t.name(r))}
		}
		seen[k] = true
	}
	return nil
}

// save writes through a temp file so a crash never leaves a truncated catalog
func (t *table[T]) save() error {
	rows := t.rows
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{t.root: rows}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", t.kind, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", t.path, err)
	}
	return nil
}

func (t *table[T]) get(name string) (T, error) {
	i := t.index(name)
	if i < 0 {
		var zero T
		return zero, &NotFoundError{Kind: t.kind, Name: name}
	}
	return t.clone(t.rows[i]), nil
}

func (t *table[T]) list() []T {
	out := make([]T, len(t.rows))
	for i, r := range t.rows {
		out[i] = t.clone(r)
	}
	return out
}

func (t *table[T]) add(r T) error {
	if t.index(t.name(r)) >= 0 {
		return &DuplicateError{Kind: t.kind, Name: t.name(r)}
	}
	t.rows = append(t.rows, t.clone(r))
	if err := t.save(); err != nil {
		t.rows = t.rows[:len(t.rows)-1]
		return err
	}
	return nil
}

// upsert replaces a record with the same name or appends it. Reports whether it replaced.
func (t *table[T]) upsert(r T) (bool, error) {
	if i := t.index(t.name(r)); i >= 0 {
		prev := t.rows[i]
		t.rows[i] = t.clone(r)
		if err := t.save(); err != nil {
			t.rows[i] = prev
			return false, err
		}
		return true, nil
	}
	return false, t.add(r)
}

func (t *table[T]) update(r T) error {
	i := t.index(t.name(r))
	if i < 0 {
		return &NotFoundError{Kind: t.kind, Name: t.name(r)}
	}
	prev := t.rows[i]
	t.rows[i] = t.clone(r)
	if err := t.save(); err != nil {
		t.rows[i] = prev
		return err
	}
	return nil
}

func (t *table[T]) remove(name string) error {
	i := t.index(name)
	if i < 0 {
		return &NotFoundError{Kind: t.kind, Name: name}
	}
	prev := t.rows
	t.rows = append(append([]T(nil), t.rows[:i]...), t.rows[i+1:]...)
	if err := t.save(); err != nil {
		t.rows = prev
		return err
	}
	return nil
}

func (t *table[T]) clear() (int, error) {
	n := len(t.rows)
	prev := t.rows
	t.rows = nil
	if err := t.save(); err != nil {
		t.rows = prev
		return 0, err
	}
	return n, nil
}
