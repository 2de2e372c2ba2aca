package ledger

import (
	"context"
	"math"

	"github.com/saadjs/fooddiary/internal/model"
)

// ComputeProgress sums entry calories against dailyGoal. Remaining goes
// negative once the goal is exceeded. Percent is rounded and only set when
// dailyGoal > 0.
func ComputeProgress(entries []model.DiaryEntry, dailyGoal int) model.Progress {
	consumed := 0
	for _, e := range entries {
		consumed += e.Calories
	}
	p := model.Progress{
		Goal:      dailyGoal,
		Consumed:  consumed,
		Remaining: dailyGoal - consumed,
	}
	if dailyGoal > 0 {
		pct := int(math.Round(float64(consumed) * 100 / float64(dailyGoal)))
		p.Percent = &pct
	}
	return p
}

// Progress reads the diary and the daily goal and compares them.
func (l *Ledger) Progress(ctx context.Context) (model.Progress, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.entries(ctx, l.store)
	if err != nil {
		return model.Progress{}, err
	}
	goal, err := l.dailyGoal(ctx, l.store)
	if err != nil {
		return model.Progress{}, err
	}
	return ComputeProgress(entries, goal), nil
}
