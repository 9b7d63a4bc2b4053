package project

import (
	"fmt"
	"time"
)

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Week      int    `json:"week"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Figure    *int   `json:"figure"`
	Notes     string `json:"notes"`
}

type Figure struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type Result map[string]interface{}

type ChatTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type State struct {
	ProjectStart string     `json:"project_start"`
	Deadline     string     `json:"deadline"`
	Tasks        []Task     `json:"tasks"`
	Figures      []Figure   `json:"figures"`
	Results      []Result   `json:"results"`
	ChatHistory  []ChatTurn `json:"chat_history"`
}

const startDateLayout = "2006-01-02"

func (s *State) StartDate() (time.Time, error) {
	return time.Parse(startDateLayout, s.ProjectStart)
}

func (s *State) FindTask(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

func (s *State) RemoveTask(id string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) CompletedCount() int {
	n := 0
	for i := range s.Tasks {
		if s.Tasks[i].Completed {
			n++
		}
	}
	return n
}

func (s *State) PendingCount() int {
	return len(s.Tasks) - s.CompletedCount()
}

func (s *State) AppendTurn(role, content string, now time.Time) {
	s.ChatHistory = append(s.ChatHistory, ChatTurn{
		Role:      role,
		Content:   content,
		Timestamp: now.Format(time.RFC3339),
	})
}

func (s *State) AppendResult(r Result, now time.Time) Result {
	if r == nil {
		r = Result{}
	}
	r["date"] = now.Format(time.RFC3339)
	s.Results = append(s.Results, r)
	return r
}

// NewTaskID suffixes a counter until the timestamp-derived id is unique.
func (s *State) NewTaskID(now time.Time) string {
	base := fmt.Sprintf("task-%d", now.Unix())
	id := base
	for n := 1; s.FindTask(id) != nil; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// PriorityRank orders priorities for scheduling; unknown sorts with low.
func PriorityRank(priority string) int {
	switch priority {
	case "critical":
		return 0
	case "high":
		return 1
	case "medium":
		return 2
	case "low":
		return 3
	default:
		return 3
	}
}

func ValidPriority(priority string) bool {
	switch priority {
	case "critical", "high", "medium", "low":
		return true
	default:
		return false
	}
}
