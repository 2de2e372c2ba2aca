package ledger

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/saadjs/fooddiary/internal/store"
)

func argb(v uint32) int32 { return int32(v) }

// Named background colors as signed ARGB values.
var palette = map[string]int32{
	"light": argb(0xFFE8F5E9),
	"dark":  argb(0xFF444444),
	"blue":  argb(0xFF0000FF),
	"green": argb(0xFF00FF00),
}

// DefaultBackgroundColor is the light theme.
var DefaultBackgroundColor = palette["light"]

// ThemeColor resolves a palette name.
func ThemeColor(name string) (int32, bool) {
	c, ok := palette[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ThemeName is the palette name for c, or its #AARRGGBB form.
func ThemeName(c int32) string {
	for name, v := range palette {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("#%08X", uint32(c))
}

// ThemeNames lists the palette in alphabetical order.
func ThemeNames() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DailyGoal returns the daily calorie target, 0 when unset.
func (l *Ledger) DailyGoal(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dailyGoal(ctx, l.store)
}

func (l *Ledger) SetDailyGoal(ctx context.Context, calories int) error {
	if calories < 0 {
		return invalid("daily goal", "must be >= 0")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Set(ctx, KeyDailyCalories, strconv.Itoa(calories)); err != nil {
		return storageError("set daily goal", err)
	}
	l.log.Debug(ctx, "daily goal set", "calories", calories)
	return nil
}

func (l *Ledger) BackgroundColor(ctx context.Context) (int32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, err := l.scalar(ctx, l.store, KeyBackgroundColor, int64(DefaultBackgroundColor), 32, true)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (l *Ledger) SetBackgroundColor(ctx context.Context, color int32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Set(ctx, KeyBackgroundColor, strconv.FormatInt(int64(color), 10)); err != nil {
		return storageError("set background color", err)
	}
	return nil
}

func (l *Ledger) dailyGoal(ctx context.Context, s store.Store) (int, error) {
	v, err := l.scalar(ctx, s, KeyDailyCalories, 0, 0, false)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// scalar reads an integer setting. An unreadable value falls back to def and,
// under ResetOnParseError, is overwritten with def.
func (l *Ledger) scalar(ctx context.Context, s store.Store, key string, def int64, bits int, signed bool) (int64, error) {
	v, text, ok, err := peekScalar(ctx, s, key, def, bits, signed)
	if err != nil || ok {
		return v, err
	}

	l.log.Warn(ctx, "discarding unreadable setting", "key", key, "value", text)
	if l.policy != SkipMalformed {
		if err := s.Set(ctx, key, strconv.FormatInt(def, 10)); err != nil {
			return 0, storageError("reset "+key, err)
		}
	}
	return def, nil
}

// peekScalar reads an integer setting without writing. ok is false when the
// stored text is unreadable; v is then def.
func peekScalar(ctx context.Context, s store.Store, key string, def int64, bits int, signed bool) (v int64, text string, ok bool, err error) {
	text, err = s.Get(ctx, key, strconv.FormatInt(def, 10))
	if err != nil {
		return 0, "", false, storageError("read "+key, err)
	}
	v, perr := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
	if perr != nil || (!signed && v < 0) {
		return def, text, false, nil
	}
	return v, text, true, nil
}
