package markdown_test

import (
	"strings"
	"testing"

	"apnea/internal/platform/markdown"
)

type noteMeta struct {
	Focus     string `yaml:"focus"`
	TotalTime int    `yaml:"total_time"`
}

func TestRenderAndSplitFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(noteMeta{Focus: "CO₂ Tolerance", TotalTime: 555}, "# Session\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\n") || !strings.Contains(rendered, "total_time: 555") {
		t.Fatalf("unexpected rendering: %s", rendered)
	}
	var meta noteMeta
	body, err := markdown.SplitFrontmatter(rendered, &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta.Focus != "CO₂ Tolerance" || meta.TotalTime != 555 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !strings.Contains(body, "# Session") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterRejectsUnclosedBlock(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	if _, err := markdown.SplitFrontmatter("---\nfocus: x\n", &meta); err == nil {
		t.Fatalf("expected error for unclosed frontmatter")
	}
	body, err := markdown.SplitFrontmatter("plain body", &meta)
	if err != nil || body != "plain body" {
		t.Fatalf("plain content should pass through, got %q %v", body, err)
	}
}
