package prompt

import (
	"strings"
	"testing"
)

func TestBuildSummaryPrompt(t *testing.T) {
	got := BuildSummaryPrompt("Launch an Etsy store")
	want := "Summarize this goal in one concise sentence: Launch an Etsy store"
	if got != want {
		t.Errorf("BuildSummaryPrompt = %q, want %q", got, want)
	}
}

func TestBuildWorkflowPrompt_Region(t *testing.T) {
	tests := []struct {
		name      string
		region    string
		wantCount int
	}{
		{name: "absent", region: "", wantCount: 0},
		{name: "whitespace only", region: "   \t", wantCount: 0},
		{name: "present", region: "Japan", wantCount: 1},
		{name: "padded", region: "  United Kingdom ", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildWorkflowPrompt("You are a project engineer.", "Build a shed", tt.region)
			if got := strings.Count(p, "located in"); got != tt.wantCount {
				t.Errorf("count(located in) = %d, want %d\n%s", got, tt.wantCount, p)
			}
			if tt.wantCount == 1 {
				clause := "The user is located in " + strings.TrimSpace(tt.region) + "."
				if strings.Count(p, clause) != 1 {
					t.Errorf("prompt missing %q\n%s", clause, p)
				}
			}
		})
	}
}

func TestBuildWorkflowPrompt_EmptyPersona(t *testing.T) {
	p := BuildWorkflowPrompt("", "Learn Go", "")
	if !strings.HasPrefix(p, "Help a user who wants to: Learn Go\n") {
		t.Errorf("empty persona should leave no leading line, got %q", p[:40])
	}
}

func TestBuildWorkflowPrompt_Order(t *testing.T) {
	p := BuildWorkflowPrompt("You are a senior software engineer.", "Launch an Etsy store", "Japan")

	ordered := []string{
		"You are a senior software engineer.",
		"Help a user who wants to: Launch an Etsy store",
		"The user is located in Japan.",
		"Break it down into a clear, actionable workflow.",
		"**Action**",
		"**Tools**",
		"hyperlinks to their official websites",
		"**Time Estimate**",
		"**Estimated Cost** (in USD",
		"**Alternative**",
		"numbered list",
		"total estimated cost",
		"Only use official",
	}
	last := -1
	for _, want := range ordered {
		idx := strings.Index(p, want)
		if idx < 0 {
			t.Fatalf("prompt missing %q\n%s", want, p)
		}
		if idx <= last {
			t.Errorf("%q out of order (at %d, previous directive at %d)", want, idx, last)
		}
		last = idx
	}
}
