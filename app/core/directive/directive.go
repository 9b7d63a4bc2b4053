package directive

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"papertrack/app/pkg/logger"
)

const (
	openFence  = "```task_update"
	closeFence = "```"
)

// Update is one decoded task_update command. Week fields carry
// presence flags so absent and zero can be told apart.
type Update struct {
	Action   string
	TaskID   string
	Title    string
	Priority string
	Reason   string

	Week       int
	HasWeek    bool
	NewWeek    int
	HasNewWeek bool

	Figure    int
	HasFigure bool
}

// Parse decodes each ```task_update block independently, in source
// order. Malformed bodies are dropped; Parse never fails.
func Parse(text string) []Update {
	var updates []Update
	rest := text
	for {
		start := strings.Index(rest, openFence)
		if start == -1 {
			break
		}
		rest = rest[start+len(openFence):]
		end := strings.Index(rest, closeFence)
		if end == -1 {
			break
		}
		body := strings.TrimSpace(rest[:end])
		rest = rest[end+len(closeFence):]

		if !gjson.Valid(body) {
			logger.Error("directive: dropping malformed body: %q", body)
			continue
		}
		doc := gjson.Parse(body)
		if !doc.IsObject() {
			logger.Error("directive: dropping non-object body: %q", body)
			continue
		}
		updates = append(updates, decode(doc))
	}
	return updates
}

func decode(doc gjson.Result) Update {
	u := Update{
		Action:   strings.TrimSpace(doc.Get("action").String()),
		TaskID:   strings.TrimSpace(doc.Get("task_id").String()),
		Title:    strings.TrimSpace(doc.Get("title").String()),
		Priority: strings.TrimSpace(doc.Get("priority").String()),
		Reason:   strings.TrimSpace(doc.Get("reason").String()),
	}
	u.Week, u.HasWeek = intField(doc, "week")
	u.NewWeek, u.HasNewWeek = intField(doc, "new_week")
	u.Figure, u.HasFigure = intField(doc, "figure")
	return u
}

// intField accepts numeric strings the model sometimes emits.
func intField(doc gjson.Result, key string) (int, bool) {
	r := doc.Get(key)
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.String()))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Strip removes complete task_update fences from text and trims the
// result. An unterminated fence is not a directive and stays in place.
func Strip(text string) string {
	var b strings.Builder
	rest := text
	for {
		start := strings.Index(rest, openFence)
		if start == -1 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(openFence):]
		end := strings.Index(rest, closeFence)
		if end == -1 {
			b.WriteString(openFence)
			b.WriteString(rest)
			break
		}
		rest = rest[end+len(closeFence):]
	}
	return strings.TrimSpace(b.String())
}
