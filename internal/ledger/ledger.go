// Package ledger owns the food diary: logged entries, recipes, saved
// products, goals and the daily calorie target, all kept as JSON arrays in a
// key/value store. Every mutation rewrites the whole collection.
package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/fooddiary/internal/logging"
	"github.com/saadjs/fooddiary/internal/model"
	"github.com/saadjs/fooddiary/internal/store"
)

// Store keys.
const (
	KeyDiaryEntries    = "diary_entries"
	KeyRecipes         = "recipes"
	KeySavedProducts   = "my_products"
	KeyGoals           = "goals"
	KeyDailyCalories   = "daily_calories"
	KeyBackgroundColor = "backgroundColor"
)

type Options struct {
	Logger      logging.Logger
	ParsePolicy ParsePolicy
	// Location stamps and parses entry times; time.Local when nil.
	Location *time.Location
	Now      func() time.Time
	NewID    func() string
}

// Ledger serializes every operation behind one mutex so read-modify-write
// cycles never interleave within a process.
type Ledger struct {
	mu     sync.Mutex
	store  store.Store
	log    logging.Logger
	policy ParsePolicy
	loc    *time.Location
	now    func() time.Time
	newID  func() string
}

func New(s store.Store, opts Options) *Ledger {
	l := &Ledger{
		store:  s,
		log:    opts.Logger,
		policy: opts.ParsePolicy,
		loc:    opts.Location,
		now:    opts.Now,
		newID:  opts.NewID,
	}
	if l.log == nil {
		l.log = logging.Nop()
	}
	l.log = l.log.With("component", "ledger")
	if l.policy == "" {
		l.policy = ResetOnParseError
	}
	if l.loc == nil {
		l.loc = time.Local
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newID == nil {
		l.newID = uuid.NewString
	}
	return l
}

// EntryInput is raw form input. Kind defaults to product.
type EntryInput struct {
	Kind        model.EntryKind
	Name        string
	Calories    string
	Ingredients string
}

// AppendEntry validates in, stamps it with the current minute and puts it
// at the front of the diary.
func (l *Ledger) AppendEntry(ctx context.Context, in EntryInput) (model.DiaryEntry, error) {
	entry, err := l.newEntry(in)
	if err != nil {
		return model.DiaryEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		return l.prependEntry(ctx, tx, entry)
	}); err != nil {
		return model.DiaryEntry{}, storageError("append entry", err)
	}
	l.log.Debug(ctx, "entry appended", "kind", entry.Kind, "name", entry.Name, "calories", entry.Calories)
	return entry, nil
}

// ListEntries returns the diary most recent first.
func (l *Ledger) ListEntries(ctx context.Context) ([]model.DiaryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries(ctx, l.store)
}

// Clear wipes every key the ledger owns.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Clear(ctx); err != nil {
		return storageError("clear", err)
	}
	l.log.Info(ctx, "store cleared")
	return nil
}

func (l *Ledger) entries(ctx context.Context, s store.Store) ([]model.DiaryEntry, error) {
	col, err := load(ctx, l, s, entryCodec(l.loc))
	if err != nil {
		return nil, err
	}
	return col.items(), nil
}

func (l *Ledger) prependEntry(ctx context.Context, tx store.Store, entry model.DiaryEntry) error {
	c := entryCodec(l.loc)
	col, err := load(ctx, l, tx, c)
	if err != nil {
		return err
	}
	raw, err := c.encode(entry)
	if err != nil {
		return err
	}
	return save(ctx, tx, c.key, append([]json.RawMessage{raw}, col.all()...))
}

func (l *Ledger) newEntry(in EntryInput) (model.DiaryEntry, error) {
	kind := in.Kind
	if kind == "" {
		kind = model.KindProduct
	}
	if kind != model.KindProduct && kind != model.KindRecipe {
		return model.DiaryEntry{}, invalid("kind", "must be product or recipe")
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return model.DiaryEntry{}, err
	}
	var ingredients string
	if kind == model.KindRecipe {
		if ingredients, err = requireText("ingredients", in.Ingredients); err != nil {
			return model.DiaryEntry{}, err
		}
	}
	calories, err := ParseCalories(in.Calories)
	if err != nil {
		return model.DiaryEntry{}, err
	}
	return l.stamp(model.DiaryEntry{Kind: kind, Name: name, Calories: calories, Ingredients: ingredients}), nil
}

func (l *Ledger) stamp(e model.DiaryEntry) model.DiaryEntry {
	e.ID = l.newID()
	e.Time = l.now().In(l.loc).Truncate(time.Minute)
	return e
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
