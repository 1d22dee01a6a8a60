package domain

import (
	"strings"
	"testing"
)

func TestComputedStyleHelpers(t *testing.T) {
	if (ComputedStyle{Position: "static"}).Positioned() {
		t.Error("static counted as positioned")
	}
	if !(ComputedStyle{Position: "fixed"}).Positioned() || !(ComputedStyle{Position: "absolute"}).Positioned() {
		t.Error("fixed/absolute not counted as positioned")
	}
	if !(ComputedStyle{Display: "none"}).Hidden() || !(ComputedStyle{Visibility: "hidden"}).Hidden() {
		t.Error("hidden styles not detected")
	}
	if (ComputedStyle{Display: "block", Visibility: "visible"}).Hidden() {
		t.Error("visible style counted as hidden")
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Fatalf("edges = %g, %g", r.Right(), r.Bottom())
	}
}

func TestSummarize(t *testing.T) {
	d := DiagnosticResult{}
	d.Summarize()
	if !d.Healthy || d.Summary != "no issues detected" {
		t.Fatalf("empty result: healthy=%v summary=%q", d.Healthy, d.Summary)
	}

	d = DiagnosticResult{Issues: []Issue{
		{Kind: IssueDisplayNone},
		{Kind: IssueDisplayNone},
		{Kind: IssueOpacityZero},
	}}
	d.Summarize()
	if d.Healthy {
		t.Fatal("result with issues marked healthy")
	}
	if !strings.HasPrefix(d.Summary, "3 issue(s)") {
		t.Fatalf("summary = %q", d.Summary)
	}
	if !strings.Contains(d.Summary, "display_none: 2") || !strings.Contains(d.Summary, "opacity_zero: 1") {
		t.Fatalf("summary missing counts: %q", d.Summary)
	}
}
