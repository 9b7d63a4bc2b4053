// Package schedule derives the current week and redistributes incomplete
// tasks across the weeks that remain.
package schedule

import (
	"sort"
	"time"

	"papertrack/app/core/project"
)

// CurrentWeek is the 1-based week since project start, clamped to [1, totalWeeks].
func CurrentWeek(now time.Time, start time.Time, totalWeeks int) int {
	days := int(now.Sub(start).Hours() / 24)
	week := days/7 + 1
	if week < 1 {
		week = 1
	}
	if week > totalWeeks {
		week = totalWeeks
	}
	return week
}

// AutoAdjust pulls overdue incomplete tasks forward, then spreads the
// incomplete set across the remaining weeks by (week, priority rank),
// at most max(3, n/weeksRemaining) per week, capped at totalWeeks.
// Returns the computed current week. The integer-division quota can
// leave the final week underfilled; that rounding is kept on purpose.
func AutoAdjust(now time.Time, st *project.State, totalWeeks int) int {
	start, err := st.StartDate()
	if err != nil {
		start = now
	}
	week := CurrentWeek(now, start, totalWeeks)

	for i := range st.Tasks {
		t := &st.Tasks[i]
		if !t.Completed && t.Week < week {
			t.Week = week
		}
	}

	var incomplete []int
	for i := range st.Tasks {
		if !st.Tasks[i].Completed && st.Tasks[i].Week >= week {
			incomplete = append(incomplete, i)
		}
	}

	weeksRemaining := totalWeeks - week + 1
	if weeksRemaining <= 0 || len(incomplete) == 0 {
		return week
	}

	sort.SliceStable(incomplete, func(a, b int) bool {
		ta, tb := st.Tasks[incomplete[a]], st.Tasks[incomplete[b]]
		if ta.Week != tb.Week {
			return ta.Week < tb.Week
		}
		return project.PriorityRank(ta.Priority) < project.PriorityRank(tb.Priority)
	})

	tasksPerWeek := len(incomplete) / weeksRemaining
	if tasksPerWeek < 3 {
		tasksPerWeek = 3
	}

	w := week
	count := 0
	for _, i := range incomplete {
		if count >= tasksPerWeek && w < totalWeeks {
			w++
			count = 0
		}
		st.Tasks[i].Week = w
		count++
	}
	return week
}
