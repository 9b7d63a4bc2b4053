package directive

import (
	"strings"
	"testing"
)

func TestParseKeepsWellFormedAroundMalformed(t *testing.T) {
	text := "Plan update:\n" +
		"```task_update\n{\"action\":\"move\",\"task_id\":\"mag-quant\",\"new_week\":2}\n```\n" +
		"```task_update\n{\"action\": broken json\n```\n" +
		"```task_update\n{\"action\":\"complete\",\"task_id\":\"olig2-stain\"}\n```\n"

	updates := Parse(text)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Action != "move" || updates[0].TaskID != "mag-quant" {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	if updates[1].Action != "complete" || updates[1].TaskID != "olig2-stain" {
		t.Fatalf("unexpected second update: %+v", updates[1])
	}
}

func TestParsePreservesSourceOrder(t *testing.T) {
	text := "```task_update\n{\"action\":\"add\",\"title\":\"A\"}\n```" +
		" and then " +
		"```task_update\n{\"action\":\"delete\",\"task_id\":\"x\"}\n```"

	updates := Parse(text)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Action != "add" || updates[1].Action != "delete" {
		t.Fatalf("order not preserved: %+v", updates)
	}
}

func TestParseNumericCoercion(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    int
		wantSet bool
	}{
		{"number", `{"action":"move","task_id":"t","new_week":3}`, 3, true},
		{"numeric string", `{"action":"move","task_id":"t","new_week":"4"}`, 4, true},
		{"non-numeric string", `{"action":"move","task_id":"t","new_week":"soon"}`, 0, false},
		{"null", `{"action":"move","task_id":"t","new_week":null}`, 0, false},
		{"absent", `{"action":"move","task_id":"t"}`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			updates := Parse("```task_update\n" + tc.body + "\n```")
			if len(updates) != 1 {
				t.Fatalf("expected 1 update, got %d", len(updates))
			}
			u := updates[0]
			if u.HasNewWeek != tc.wantSet {
				t.Fatalf("HasNewWeek = %v, want %v", u.HasNewWeek, tc.wantSet)
			}
			if u.HasNewWeek && u.NewWeek != tc.want {
				t.Fatalf("NewWeek = %d, want %d", u.NewWeek, tc.want)
			}
		})
	}
}

func TestParseDropsNonObjectBody(t *testing.T) {
	updates := Parse("```task_update\n[1,2,3]\n```")
	if len(updates) != 0 {
		t.Fatalf("expected no updates, got %d", len(updates))
	}
}

func TestParseEmptyAndFencelessText(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Fatalf("expected no updates from empty text")
	}
	if got := Parse("just a normal reply with ``` code\nfmt.Println(1)\n```"); len(got) != 0 {
		t.Fatalf("expected no updates from plain code fence")
	}
}

func TestParseUnterminatedFence(t *testing.T) {
	updates := Parse("```task_update\n{\"action\":\"complete\",\"task_id\":\"t\"}")
	if len(updates) != 0 {
		t.Fatalf("expected unterminated fence to be ignored, got %d updates", len(updates))
	}
}

func TestStripKeepsTextAfterUnterminatedFence(t *testing.T) {
	text := "Here is the plan.\n```task_update\n{\"action\":\"move\",\"task_id\":\"a\"\n\nAlso: send the samples today."
	got := Strip(text)
	if !strings.Contains(got, "Also: send the samples today.") {
		t.Fatalf("trailing reply text lost after unterminated fence: %q", got)
	}
	if !strings.Contains(got, "Here is the plan.") {
		t.Fatalf("leading reply text lost: %q", got)
	}
}

func TestStripRemovesFencesAndTrims(t *testing.T) {
	text := "Here is the plan.\n\n" +
		"```task_update\n{\"action\":\"move\",\"task_id\":\"a\",\"new_week\":2}\n```\n\n" +
		"I moved the task.\n" +
		"```task_update\n{\"action\":\"complete\",\"task_id\":\"b\"}\n```\n"

	got := Strip(text)
	if got != "Here is the plan.\n\n\n\nI moved the task." {
		t.Fatalf("unexpected stripped text: %q", got)
	}
}

func TestStripPlainTextUnchanged(t *testing.T) {
	if got := Strip("  nothing to remove here  "); got != "nothing to remove here" {
		t.Fatalf("unexpected stripped text: %q", got)
	}
}
