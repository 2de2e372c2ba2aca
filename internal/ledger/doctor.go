package ledger

import (
	"context"
	"encoding/json"

	"github.com/saadjs/fooddiary/internal/store"
)

// CollectionReport describes the stored state of one collection key.
type CollectionReport struct {
	Key       string `json:"key"`
	Elements  int    `json:"elements"`
	Malformed int    `json:"malformed"`
	Corrupt   bool   `json:"corrupt"`
}

func (r CollectionReport) Healthy() bool {
	return !r.Corrupt && r.Malformed == 0
}

// Check inspects every collection without applying the ParsePolicy and
// without writing anything.
func (l *Ledger) Check(ctx context.Context) ([]CollectionReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	reports, _, err := l.inspect(ctx, l.store)
	return reports, err
}

// Repair drops malformed elements and resets corrupt collections. It returns
// the reports taken before repairing.
func (l *Ledger) Repair(ctx context.Context) ([]CollectionReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var reports []CollectionReport
	err := l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		var fixed map[string][]json.RawMessage
		var err error
		reports, fixed, err = l.inspect(ctx, tx)
		if err != nil {
			return err
		}
		for key, valid := range fixed {
			if err := save(ctx, tx, key, valid); err != nil {
				return err
			}
			l.log.Info(ctx, "collection repaired", "key", key, "kept", len(valid))
		}
		return nil
	})
	if err != nil {
		return nil, storageError("repair", err)
	}
	return reports, nil
}

// inspect returns a report per collection and, for unhealthy ones, the
// elements worth keeping.
func (l *Ledger) inspect(ctx context.Context, s store.Store) ([]CollectionReport, map[string][]json.RawMessage, error) {
	checkers := l.checkers()
	reports := make([]CollectionReport, 0, len(checkers))
	fixed := map[string][]json.RawMessage{}
	for _, c := range checkers {
		blob, err := s.Get(ctx, c.key, emptyArray)
		if err != nil {
			return nil, nil, storageError("read "+c.key, err)
		}
		all, valid, corrupt, _ := c.scan(blob)
		r := CollectionReport{Key: c.key, Elements: len(all), Malformed: len(all) - len(valid), Corrupt: corrupt}
		reports = append(reports, r)
		if !r.Healthy() {
			fixed[c.key] = valid
		}
	}
	return reports, fixed, nil
}
