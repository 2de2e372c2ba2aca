package ledger

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/saadjs/fooddiary/internal/store"
)

type element[T any] struct {
	raw  json.RawMessage
	item T
	err  error
}

// collection is one decoded JSON array. corrupt means the blob itself was
// not an array; otherwise every stored element is kept, decodable or not.
type collection[T any] struct {
	elems   []element[T]
	corrupt bool
}

func decodeBlob[T any](blob string, decode func(json.RawMessage) (T, error)) collection[T] {
	trimmed := strings.TrimSpace(blob)
	if !strings.HasPrefix(trimmed, "[") {
		return collection[T]{corrupt: true}
	}
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
		return collection[T]{corrupt: true}
	}
	c := collection[T]{elems: make([]element[T], 0, len(raws))}
	for _, raw := range raws {
		item, err := decode(raw)
		c.elems = append(c.elems, element[T]{raw: raw, item: item, err: err})
	}
	return c
}

func (c collection[T]) items() []T {
	out := make([]T, 0, len(c.elems))
	for _, e := range c.elems {
		if e.err == nil {
			out = append(out, e.item)
		}
	}
	return out
}

func (c collection[T]) all() []json.RawMessage {
	out := make([]json.RawMessage, 0, len(c.elems))
	for _, e := range c.elems {
		out = append(out, e.raw)
	}
	return out
}

func (c collection[T]) valid() []json.RawMessage {
	out := make([]json.RawMessage, 0, len(c.elems))
	for _, e := range c.elems {
		if e.err == nil {
			out = append(out, e.raw)
		}
	}
	return out
}

func (c collection[T]) malformed() int {
	n := 0
	for _, e := range c.elems {
		if e.err != nil {
			n++
		}
	}
	return n
}

func (c collection[T]) firstError() error {
	for _, e := range c.elems {
		if e.err != nil {
			return e.err
		}
	}
	return nil
}

func (c collection[T]) clean() bool {
	return !c.corrupt && c.malformed() == 0
}

// load reads and decodes the collection under c.key applying the ledger's
// ParsePolicy. With ResetOnParseError the key is rewritten to "[]" through s.
func load[T any](ctx context.Context, l *Ledger, s store.Store, c codec[T]) (collection[T], error) {
	blob, err := s.Get(ctx, c.key, emptyArray)
	if err != nil {
		return collection[T]{}, storageError("read "+c.key, err)
	}
	col := decodeBlob(blob, c.decode)
	if col.clean() {
		return col, nil
	}

	if col.corrupt || l.policy != SkipMalformed {
		l.log.Warn(ctx, "discarding unreadable collection",
			"key", c.key, "corrupt", col.corrupt, "malformed", col.malformed(), "elements", len(col.elems), "cause", col.firstError())
		if err := s.Set(ctx, c.key, emptyArray); err != nil {
			return collection[T]{}, storageError("reset "+c.key, err)
		}
		return collection[T]{}, nil
	}

	l.log.Warn(ctx, "skipping malformed elements",
		"key", c.key, "malformed", col.malformed(), "elements", len(col.elems), "cause", col.firstError())
	return col, nil
}

func save(ctx context.Context, s store.Store, key string, raws []json.RawMessage) error {
	if raws == nil {
		raws = []json.RawMessage{}
	}
	b, err := json.Marshal(raws)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return storageError("write "+key, err)
	}
	return nil
}

// checker exposes a codec to the integrity report without its element type.
type checker struct {
	key  string
	scan func(blob string) (all, valid []json.RawMessage, corrupt bool, cause error)
}

func checkerFor[T any](c codec[T]) checker {
	return checker{
		key: c.key,
		scan: func(blob string) ([]json.RawMessage, []json.RawMessage, bool, error) {
			col := decodeBlob(blob, c.decode)
			return col.all(), col.valid(), col.corrupt, col.firstError()
		},
	}
}
