package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"papertrack/app/core/directive"
	"papertrack/app/core/llm"
	"papertrack/app/core/project"
	"papertrack/app/core/schedule"
	"papertrack/app/pkg/logger"
)

// CompleterFactory resolves the model client per conversation.
type CompleterFactory func() (llm.Completer, error)

type Assistant struct {
	newCompleter  CompleterFactory
	totalWeeks    int
	historyWindow int
	timeout       time.Duration
}

func New(factory CompleterFactory, totalWeeks, historyWindow int, timeout time.Duration) *Assistant {
	if totalWeeks <= 0 {
		totalWeeks = 8
	}
	if historyWindow <= 0 {
		historyWindow = 6
	}
	return &Assistant{
		newCompleter:  factory,
		totalWeeks:    totalWeeks,
		historyWindow: historyWindow,
		timeout:       timeout,
	}
}

type ChatResult struct {
	Response string
	Updates  []directive.Outcome
	Err      bool
}

// Converse runs one chat turn and applies any task_update directives
// from the raw reply. When the model cannot be reached the state is
// left untouched and the failure is reported in the result.
func (a *Assistant) Converse(ctx context.Context, st *project.State, userMessage string, now time.Time) ChatResult {
	week := a.currentWeek(st, now)

	completer, err := a.newCompleter()
	if err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			return ChatResult{
				Response: "API key not found. Please set the model API key in your environment or ~/.env file.",
				Updates:  []directive.Outcome{},
				Err:      true,
			}
		}
		return ChatResult{
			Response: fmt.Sprintf("Error communicating with AI: %v", err),
			Updates:  []directive.Outcome{},
			Err:      true,
		}
	}

	messages := a.historyMessages(st)
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: buildContext(st, week, a.totalWeeks, userMessage),
	})

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	reply, err := completer.Complete(ctx, systemPrompt, messages)
	if err != nil {
		logger.Error("assistant: model call failed: %v", err)
		return ChatResult{
			Response: fmt.Sprintf("Error communicating with AI: %v", err),
			Updates:  []directive.Outcome{},
			Err:      true,
		}
	}

	// History records the original user message, not the enriched one.
	st.AppendTurn("user", userMessage, now)
	st.AppendTurn("assistant", reply, now)

	updates := directive.Parse(reply)
	outcomes := directive.ApplyAll(st, updates, week, now)

	return ChatResult{
		Response: directive.Strip(reply),
		Updates:  outcomes,
		Err:      false,
	}
}

func (a *Assistant) currentWeek(st *project.State, now time.Time) int {
	start, err := st.StartDate()
	if err != nil {
		logger.Error("assistant: invalid project_start %q: %v", st.ProjectStart, err)
		return 1
	}
	return schedule.CurrentWeek(now, start, a.totalWeeks)
}

func (a *Assistant) historyMessages(st *project.State) []llm.Message {
	start := 0
	if len(st.ChatHistory) > a.historyWindow {
		start = len(st.ChatHistory) - a.historyWindow
	}
	messages := make([]llm.Message, 0, a.historyWindow+1)
	for _, turn := range st.ChatHistory[start:] {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return messages
}

func (a *Assistant) TotalWeeks() int {
	return a.totalWeeks
}
