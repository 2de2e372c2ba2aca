package model

import "time"

// EntryKind tells product consumptions and recipe consumptions apart.
type EntryKind string

const (
	KindProduct EntryKind = "product"
	KindRecipe  EntryKind = "recipe"
)

// DiaryEntry is one logged nutrition event. Time carries minute precision.
type DiaryEntry struct {
	ID          string
	Kind        EntryKind
	Name        string
	Calories    int
	Time        time.Time
	Ingredients string
}

type Recipe struct {
	Name        string
	Ingredients string
	Calories    int
}

// SavedProduct is a quick-add template; it never appears in the diary by itself.
type SavedProduct struct {
	Name     string
	Calories int
}

type Goal struct {
	Name     string
	Progress int
}

// Progress compares the diary total with the daily calorie goal.
// Percent is nil when no goal is set.
type Progress struct {
	Goal      int  `json:"goal"`
	Consumed  int  `json:"consumed"`
	Remaining int  `json:"remaining"`
	Percent   *int `json:"percent,omitempty"`
}

// HasGoal reports whether a daily goal was configured.
func (p Progress) HasGoal() bool {
	return p.Percent != nil
}
