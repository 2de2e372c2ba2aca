package ledger

import (
	"strconv"
	"strings"
)

// ParseCalories converts user-typed text to a calorie count.
// Empty, non-numeric and negative values are rejected.
func ParseCalories(text string) (int, error) {
	return parseNonNegative("calories", text)
}

// ParseDailyGoal is ParseCalories for the daily goal field.
func ParseDailyGoal(text string) (int, error) {
	return parseNonNegative("daily goal", text)
}

func parseNonNegative(field, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, invalid(field, "is required")
	}
	v, err := strconv.Atoi(text)
	if err != nil || v < 0 {
		return 0, invalid(field, "must be a non-negative integer")
	}
	return v, nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}
