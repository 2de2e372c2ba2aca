package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/saadjs/fooddiary/internal/ledger"
	"github.com/saadjs/fooddiary/internal/store"
)

var errDisk = errors.New("disk I/O error")

// tickingClock starts at a fixed instant and moves one minute per call.
func tickingClock() func() time.Time {
	t := time.Date(2026, 3, 14, 8, 30, 45, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestLedger(t *testing.T, policy ledger.ParsePolicy) (*ledger.Ledger, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return newLedgerOn(st, policy), st
}

func newLedgerOn(st store.Store, policy ledger.ParsePolicy) *ledger.Ledger {
	return ledger.New(st, ledger.Options{
		ParsePolicy: policy,
		Location:    time.UTC,
		Now:         tickingClock(),
		NewID:       sequentialIDs(),
	})
}

func rawValue(t *testing.T, st store.Store, key string) string {
	t.Helper()
	v, err := st.Get(context.Background(), key, "<unset>")
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	return v
}

// flakyStore fails writes to failKey, or every read when failGet is set.
type flakyStore struct {
	store.Store
	failKey string
	failGet bool
}

func (f *flakyStore) Get(ctx context.Context, key, def string) (string, error) {
	if f.failGet {
		return "", errDisk
	}
	return f.Store.Get(ctx, key, def)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errDisk
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return f.Store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		return fn(ctx, &flakyStore{Store: tx, failKey: f.failKey, failGet: f.failGet})
	})
}
