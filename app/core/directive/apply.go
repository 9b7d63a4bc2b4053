package directive

import (
	"time"

	"papertrack/app/core/project"
	"papertrack/app/pkg/logger"
)

// Outcome is the applied mutation or the reason it was skipped. Skips
// are data, not errors.
type Outcome struct {
	Action     string `json:"action"`
	TaskID     string `json:"task_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Week       int    `json:"week,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Applied    bool   `json:"applied"`
	SkipReason string `json:"skip_reason,omitempty"`
}

func skipped(u Update, why string) Outcome {
	logger.Info("directive: skipped %s (%s): %s", u.Action, u.TaskID, why)
	return Outcome{
		Action:     u.Action,
		TaskID:     u.TaskID,
		Reason:     u.Reason,
		SkipReason: why,
	}
}

// Apply mutates st according to u. Completing a completed task and
// deleting a missing task are no-op successes.
func Apply(st *project.State, u Update, currentWeek int, now time.Time) Outcome {
	switch u.Action {
	case "move":
		if u.TaskID == "" {
			return skipped(u, "missing task_id")
		}
		t := st.FindTask(u.TaskID)
		if t == nil {
			return skipped(u, "unknown task_id")
		}
		if !u.HasNewWeek {
			return skipped(u, "missing or non-numeric new_week")
		}
		t.Week = u.NewWeek
		logger.Info("directive: moved task %s to week %d", t.ID, t.Week)
		return Outcome{Action: u.Action, TaskID: t.ID, Week: t.Week, Reason: u.Reason, Applied: true}

	case "complete":
		if u.TaskID == "" {
			return skipped(u, "missing task_id")
		}
		t := st.FindTask(u.TaskID)
		if t == nil {
			return skipped(u, "unknown task_id")
		}
		t.Completed = true
		logger.Info("directive: completed task %s", t.ID)
		return Outcome{Action: u.Action, TaskID: t.ID, Reason: u.Reason, Applied: true}

	case "add":
		title := u.Title
		if title == "" {
			title = "New Task"
		}
		week := currentWeek
		if u.HasWeek {
			week = u.Week
		}
		priority := u.Priority
		if !project.ValidPriority(priority) {
			priority = "medium"
		}
		task := project.Task{
			ID:       st.NewTaskID(now),
			Title:    title,
			Week:     week,
			Priority: priority,
			Notes:    u.Reason,
		}
		if u.HasFigure {
			fig := u.Figure
			task.Figure = &fig
		}
		st.Tasks = append(st.Tasks, task)
		logger.Info("directive: added task %s (%s)", task.ID, task.Title)
		return Outcome{Action: u.Action, TaskID: task.ID, Title: task.Title, Week: task.Week, Reason: u.Reason, Applied: true}

	case "delete":
		if u.TaskID == "" {
			return skipped(u, "missing task_id")
		}
		if st.RemoveTask(u.TaskID) {
			logger.Info("directive: deleted task %s", u.TaskID)
		}
		return Outcome{Action: u.Action, TaskID: u.TaskID, Reason: u.Reason, Applied: true}

	default:
		return skipped(u, "unknown action")
	}
}

// ApplyAll runs updates in parse order with no rollback; each mutation
// is visible to the updates behind it.
func ApplyAll(st *project.State, updates []Update, currentWeek int, now time.Time) []Outcome {
	outcomes := make([]Outcome, 0, len(updates))
	for _, u := range updates {
		outcomes = append(outcomes, Apply(st, u, currentWeek, now))
	}
	return outcomes
}
