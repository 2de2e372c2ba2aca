package ledger_test

import (
	"context"
	"testing"

	"github.com/saadjs/fooddiary/internal/ledger"
	"github.com/saadjs/fooddiary/internal/model"
)

func entriesOf(calories ...int) []model.DiaryEntry {
	out := make([]model.DiaryEntry, 0, len(calories))
	for _, c := range calories {
		out = append(out, model.DiaryEntry{Kind: model.KindProduct, Name: "x", Calories: c})
	}
	return out
}

func TestComputeProgress(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		calories  []int
		goal      int
		consumed  int
		remaining int
		percent   int
		noPercent bool
	}{
		{name: "under goal", calories: []int{300, 450}, goal: 2000, consumed: 750, remaining: 1250, percent: 38},
		{name: "rounds half up", calories: []int{1}, goal: 200, consumed: 1, remaining: 199, percent: 1},
		{name: "rounds down", calories: []int{333}, goal: 1000, consumed: 333, remaining: 667, percent: 33},
		{name: "over goal", calories: []int{1500, 800}, goal: 2000, consumed: 2300, remaining: -300, percent: 115},
		{name: "no entries", goal: 1800, remaining: 1800, percent: 0},
		{name: "goal unset", calories: []int{500}, goal: 0, consumed: 500, remaining: -500, noPercent: true},
		{name: "negative goal", calories: []int{100}, goal: -10, consumed: 100, remaining: -110, noPercent: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := ledger.ComputeProgress(entriesOf(tc.calories...), tc.goal)
			if p.Goal != tc.goal || p.Consumed != tc.consumed || p.Remaining != tc.remaining {
				t.Fatalf("expected goal=%d consumed=%d remaining=%d, got %+v", tc.goal, tc.consumed, tc.remaining, p)
			}
			if p.Remaining != p.Goal-p.Consumed {
				t.Fatalf("remaining %d != goal-consumed %d", p.Remaining, p.Goal-p.Consumed)
			}
			if tc.noPercent {
				if p.Percent != nil || p.HasGoal() {
					t.Fatalf("expected no percent, got %d", *p.Percent)
				}
				return
			}
			if p.Percent == nil {
				t.Fatalf("expected percent %d, got nil", tc.percent)
			}
			if *p.Percent != tc.percent {
				t.Fatalf("expected percent %d, got %d", tc.percent, *p.Percent)
			}
		})
	}
}

func TestComputeProgressIsIdempotent(t *testing.T) {
	t.Parallel()
	entries := entriesOf(120, 80, 640)
	first := ledger.ComputeProgress(entries, 1500)
	second := ledger.ComputeProgress(entries, 1500)
	if first.Consumed != second.Consumed || first.Remaining != second.Remaining || *first.Percent != *second.Percent {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if len(entries) != 3 || entries[0].Calories != 120 {
		t.Fatalf("input mutated: %+v", entries)
	}
}

func TestLedgerProgress(t *testing.T) {
	t.Parallel()
	l, _ := newTestLedger(t, ledger.ResetOnParseError)
	ctx := context.Background()

	p, err := l.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.HasGoal() || p.Consumed != 0 {
		t.Fatalf("expected empty progress without goal, got %+v", p)
	}

	if err := l.SetDailyGoal(ctx, 2000); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	for _, c := range []string{"500", "250"} {
		if _, err := l.AppendEntry(ctx, ledger.EntryInput{Name: "meal", Calories: c}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := l.AddRecipe(ctx, ledger.RecipeInput{Name: "Stew", Ingredients: "beef", Calories: "250"}); err != nil {
		t.Fatalf("add recipe: %v", err)
	}

	p, err = l.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Consumed != 1000 || p.Remaining != 1000 || p.Percent == nil || *p.Percent != 50 {
		t.Fatalf("unexpected progress %+v", p)
	}
}
