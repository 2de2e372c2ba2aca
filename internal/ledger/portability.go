package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/saadjs/fooddiary/internal/store"
)

// Snapshot is every ledger key in wire form, keyed like the store.
type Snapshot struct {
	DiaryEntries  json.RawMessage `json:"diary_entries"`
	Recipes       json.RawMessage `json:"recipes"`
	SavedProducts json.RawMessage `json:"my_products"`
	Goals         json.RawMessage `json:"goals"`
	DailyCalories int             `json:"daily_calories"`
	// BackgroundColor is nil when the snapshot carries no color.
	BackgroundColor *int32 `json:"backgroundColor,omitempty"`
}

func (l *Ledger) checkers() []checker {
	return []checker{
		checkerFor(entryCodec(l.loc)),
		checkerFor(recipeCodec),
		checkerFor(productCodec),
		checkerFor(goalCodec),
	}
}

func (s *Snapshot) collection(key string) *json.RawMessage {
	switch key {
	case KeyDiaryEntries:
		return &s.DiaryEntries
	case KeyRecipes:
		return &s.Recipes
	case KeySavedProducts:
		return &s.SavedProducts
	case KeyGoals:
		return &s.Goals
	}
	return nil
}

// Export returns the readable part of the store without writing to it.
// Malformed elements and collections that are not JSON arrays are left out;
// unreadable settings are exported as their defaults.
func (l *Ledger) Export(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var snap Snapshot
	for _, c := range l.checkers() {
		blob, err := l.store.Get(ctx, c.key, emptyArray)
		if err != nil {
			return Snapshot{}, storageError("read "+c.key, err)
		}
		_, valid, _, _ := c.scan(blob)
		b, err := json.Marshal(valid)
		if err != nil {
			return Snapshot{}, fmt.Errorf("encode %s: %w", c.key, err)
		}
		*snap.collection(c.key) = b
	}

	goal, _, _, err := peekScalar(ctx, l.store, KeyDailyCalories, 0, 0, false)
	if err != nil {
		return Snapshot{}, err
	}
	color, _, _, err := peekScalar(ctx, l.store, KeyBackgroundColor, int64(DefaultBackgroundColor), 32, true)
	if err != nil {
		return Snapshot{}, err
	}
	c := int32(color)
	snap.DailyCalories = int(goal)
	snap.BackgroundColor = &c
	return snap, nil
}

// Import replaces every ledger key with the snapshot in one transaction.
// A snapshot with any malformed element is rejected whole.
func (l *Ledger) Import(ctx context.Context, snap Snapshot) error {
	if snap.DailyCalories < 0 {
		return invalid("daily_calories", "must be >= 0")
	}
	blobs := map[string]string{}
	for _, c := range l.checkers() {
		raw := *snap.collection(c.key)
		blob := emptyArray
		if len(raw) > 0 && string(raw) != "null" {
			blob = string(raw)
		}
		all, _, corrupt, cause := c.scan(blob)
		if corrupt {
			return fmt.Errorf("%w: %s is not a JSON array", ErrParse, c.key)
		}
		if cause != nil {
			return fmt.Errorf("import %s: %w", c.key, cause)
		}
		b, err := json.Marshal(all)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}
		blobs[c.key] = string(b)
	}
	blobs[KeyDailyCalories] = strconv.Itoa(snap.DailyCalories)
	color := DefaultBackgroundColor
	if snap.BackgroundColor != nil {
		color = *snap.BackgroundColor
	}
	blobs[KeyBackgroundColor] = strconv.FormatInt(int64(color), 10)

	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		for key, value := range blobs {
			if err := tx.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageError("import", err)
	}
	l.log.Info(ctx, "snapshot imported", "keys", len(blobs))
	return nil
}
