package domain

import (
	"errors"
	"strconv"
	"strings"
)

// TotalWeeks is the length of the competition.
const TotalWeeks = 12

var ErrInvalidWeek = errors.New("week must be a whole number between 1 and 12")

// ParseWeekLabel validates a week label and returns its canonical form,
// i.e. "03" and " 3" both become "3".
func ParseWeekLabel(s string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidWeek
	}
	if n < 1 || n > TotalWeeks {
		return "", ErrInvalidWeek
	}

	return strconv.Itoa(n), nil
}

// WeekLabels returns "1".."12" in order, for views that render every week
// whether or not it has an entry.
func WeekLabels() []string {
	labels := make([]string, 0, TotalWeeks)
	for i := 1; i <= TotalWeeks; i++ {
		labels = append(labels, strconv.Itoa(i))
	}

	return labels
}
